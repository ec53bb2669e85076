package handlers

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"shinkwang-site/app/console/client"
	"strings"
)

const anonymousAuthor = "익명의 성도"

var errEmptyPost = errors.New("내용을 입력해 주세요")

func (a *App) PostList(ctx context.Context) error {
	posts, err := a.api.Posts(ctx)
	if err != nil {
		return fmt.Errorf("fetch posts: %w", err)
	}
	if len(posts) == 0 {
		a.printf("아직 나눔이 없습니다.\n")
		return nil
	}
	for _, p := range posts {
		a.printPost(p)
	}
	return nil
}

func (a *App) printPost(p client.Post) {
	mark := "♡"
	if a.prefs.HasLiked(p.ID) {
		mark = "♥"
	}
	a.printf("#%d %s · %s\n%s\n%s 아멘 %d\n\n", p.ID, p.Author, p.Date, p.Content, mark, p.Likes)
}

// PostWrite publishes content, or the saved draft when content is empty.
// A failed publish keeps the text as the draft.
func (a *App) PostWrite(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		content = a.prefs.Draft
	}
	if content == "" {
		return errEmptyPost
	}

	name := a.prefs.Name
	if name == "" {
		name = anonymousAuthor
	}

	err := a.api.CreatePost(ctx, &client.NewPost{
		AuthorName:  name,
		AuthorTitle: a.prefs.Title,
		Content:     content,
	})
	if err != nil {
		a.prefs.Draft = content
		a.savePrefs()
		a.printf("작성 중인 글을 임시 저장했습니다.\n")
		return fmt.Errorf("publish post: %w", err)
	}

	a.prefs.Draft = ""
	a.savePrefs()
	a.printf("은혜 나눔이 등록되었습니다.\n")
	return nil
}

// PostLike answers a post with amen once per installation.
func (a *App) PostLike(ctx context.Context, id uint) error {
	if a.prefs.HasLiked(id) {
		a.printf("이미 아멘으로 응답하신 글입니다.\n")
		return nil
	}

	posts, err := a.api.Posts(ctx)
	if err != nil {
		return fmt.Errorf("fetch posts: %w", err)
	}

	posts, err = a.like(ctx, posts, id)
	for _, p := range posts {
		if p.ID == id {
			a.printPost(p)
		}
	}
	return err
}

// like applies the like to posts and prefs first, then commits it. On failure
// both are put back.
func (a *App) like(ctx context.Context, posts []client.Post, id uint) ([]client.Post, error) {
	i := -1
	for j := range posts {
		if posts[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return posts, fmt.Errorf("post #%d not found", id)
	}

	before := posts[i].Likes
	posts[i].Likes++
	a.prefs.MarkLiked(id)

	likes, err := a.api.LikePost(ctx, id)
	if err != nil {
		posts[i].Likes = before
		a.prefs.UnmarkLiked(id)
		return posts, fmt.Errorf("like post #%d: %w", id, err)
	}
	if likes > 0 {
		posts[i].Likes = likes
	}
	a.savePrefs()
	return posts, nil
}

func (a *App) PostDelete(ctx context.Context, id uint) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.api.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post #%d: %w", id, err)
	}
	a.printf("삭제되었습니다.\n")
	return nil
}

func (a *App) savePrefs() {
	if err := a.prefs.Save(); err != nil {
		a.l.Error("failed to save prefs", zap.String("path", a.prefs.Path()), zap.Error(err))
	}
}
