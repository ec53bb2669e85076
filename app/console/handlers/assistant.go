package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"shinkwang-site/app/console/client"
	"shinkwang-site/app/sections"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleModel = "model"

	emptyReply = "죄송합니다. 답변을 생성하지 못했습니다."
)

type ChatMessage struct {
	Role   string
	Text   string
	At     time.Time
	Failed bool
}

func (a *App) History() []ChatMessage { return a.history }

func (a *App) systemInstruction() string {
	if a.cfg.SystemInstruction != "" {
		return a.cfg.SystemInstruction
	}

	name, title := a.prefs.Name, a.prefs.Title
	display := name
	if display == "" {
		display = "미설정"
	}
	if title == "" {
		title = "성도"
	}
	addressed := name
	if addressed == "" {
		addressed = "성도"
	}

	return fmt.Sprintf(`당신은 성남신광교회 성도들을 돕는 자상하고 지혜로운 "AI 성경 길잡이"입니다.
사용자 정보 - 이름: %s, 직분: %s

[핵심 답변 원칙]
1. 반드시 실제 성경 구절을 근거로 답변하십시오.
2. 사용자가 성경 장/절을 혼동하더라도 문맥을 파악하여 친절히 바로잡아 주며 정확한 말씀을 들려주십시오.
3. 답변 중에 반드시 "%s %s님"이라고 호칭을 사용하여 따뜻한 유대감을 형성하십시오.
4. 목소리는 온유하고 겸손하며, 항상 주님의 소망을 전하는 태도를 유지하십시오.`, display, title, addressed, title)
}

// Ask sends prompt and records both sides in the history. A failure becomes a
// visible reply instead of an error so the conversation can go on.
func (a *App) Ask(ctx context.Context, prompt string) ChatMessage {
	a.history = append(a.history, ChatMessage{Role: RoleUser, Text: prompt, At: time.Now()})

	reply := ChatMessage{Role: RoleModel, At: time.Now()}
	text, err := a.api.Chat(ctx, prompt, a.systemInstruction())
	switch {
	case err != nil:
		reply.Failed = true
		reply.Text = fmt.Sprintf("오류가 발생했습니다. (원인: %s)\n\n서버 통신 중 문제가 발생했습니다.", failureCause(err))
	case strings.TrimSpace(text) == "":
		reply.Text = emptyReply
	default:
		reply.Text = text
	}

	a.history = append(a.history, reply)
	return reply
}

func failureCause(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Chat reads questions line by line until EOF or "/quit".
func (a *App) Chat(ctx context.Context) error {
	a.printf("AI 성경 길잡이입니다. 궁금한 말씀을 물어보세요. (/quit 종료, /history 대화 기록)\n")
	for {
		a.printf("> ")
		line, err := a.in.ReadString('\n')
		prompt := strings.TrimSpace(line)

		switch {
		case prompt == "/quit":
			return nil
		case prompt == "/history":
			a.printHistory()
		case prompt != "":
			reply := a.Ask(ctx, prompt)
			a.printf("%s\n\n", reply.Text)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read prompt: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *App) printHistory() {
	for _, m := range a.history {
		who := "나"
		if m.Role == RoleModel {
			who = "길잡이"
		}
		a.printf("[%s %s] %s\n", m.At.Format("15:04"), who, m.Text)
	}
}

// Summary asks for a study summary of the sermon with id.
func (a *App) Summary(ctx context.Context, id int64) error {
	content, err := a.api.Content(ctx)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}

	list := sections.Sermons.From(content)
	i := sections.Index(list, id)
	if i < 0 {
		return fmt.Errorf("sermon #%d: %w", id, sections.ErrRowNotFound)
	}
	s := list[i]

	summary, err := a.api.Summary(ctx, s.Title, s.Pastor, s.Passage)
	if err != nil {
		return fmt.Errorf("summarize sermon #%d: %w", id, err)
	}
	a.printf("%s\n%s · %s\n\n%s\n", s.Title, s.Pastor, s.Passage, summary)
	return nil
}
