// Package assistant relays devotional questions and sermon summaries to a
// hosted generative model. The API key never leaves the server.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// CredentialEnvs are probed in order; the first non-empty one wins.
var CredentialEnvs = []string{"GEMINI_API_KEY", "VITE_GEMINI_API_KEY", "GOOGLE_API_KEY"}

var ErrMissingCredential = errors.New("assistant api key is not configured")

// MissingCredentialError lists the variable names that were probed.
type MissingCredentialError struct {
	Probed []string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s (checked %s)", ErrMissingCredential, strings.Join(e.Probed, ", "))
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// ProviderError is a failure reported by, or on the way to, the model provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "assistant provider: " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// Generator produces a reply to prompt under an optional system instruction.
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// ResolveKey walks CredentialEnvs through lookup.
func ResolveKey(lookup func(string) (string, bool)) (string, error) {
	for _, name := range CredentialEnvs {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", &MissingCredentialError{Probed: append([]string(nil), CredentialEnvs...)}
}

type Option func(*Gemini)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(u string) Option {
	return func(g *Gemini) { g.baseURL = u }
}

// WithLookup replaces os.LookupEnv as the credential source.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(g *Gemini) { g.lookup = lookup }
}

// Gemini talks to the Gemini API. The key is resolved on every call so a
// rotated key takes effect without a restart.
type Gemini struct {
	model   string
	baseURL string
	lookup  func(string) (string, bool)

	mu      sync.Mutex
	clients map[string]*genai.Client // by api key
}

func NewGemini(model string, opts ...Option) *Gemini {
	g := &Gemini{
		model:   model,
		lookup:  os.LookupEnv,
		clients: map[string]*genai.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gemini) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	key, err := ResolveKey(g.lookup)
	if err != nil {
		return "", err
	}

	client, err := g.client(ctx, key)
	if err != nil {
		return "", &ProviderError{Err: err}
	}

	var cfg *genai.GenerateContentConfig
	if strings.TrimSpace(systemInstruction) != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", &ProviderError{Err: fmt.Errorf("generate content: %w", err)}
	}

	return resp.Text(), nil
}

func (g *Gemini) client(ctx context.Context, key string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[key]; ok {
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions.BaseURL = g.baseURL
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	// a rotated key replaces the old client
	clear(g.clients)
	g.clients[key] = c
	return c, nil
}

// SummaryPrompt builds the sermon summary request.
func SummaryPrompt(title, pastor, passage string) string {
	var b strings.Builder
	b.WriteString("다음 설교 정보를 바탕으로 성도들을 위한 깊이 있고 은혜로운 '설교 요약본'을 작성해 주세요.\n\n")
	fmt.Fprintf(&b, "제목: %s\n", title)
	fmt.Fprintf(&b, "설교자: %s\n", pastor)
	fmt.Fprintf(&b, "본문: %s\n\n", passage)
	b.WriteString("형식:\n")
	b.WriteString("1. 핵심 주제 (한 줄 요약)\n")
	b.WriteString("2. 주요 내용 (3가지 대지 또는 핵심 포인트)\n")
	b.WriteString("3. 적용과 기도 (삶에 적용할 점)\n\n")
	b.WriteString("말투: \"~합니다\", \"~습니다\"의 경어체로 정중하고 따뜻하게 작성해 주세요.")
	return b.String()
}
