package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shinkwang-site/app/console/client"
	"shinkwang-site/app/console/prefs"
)

func TestPostLikeIsOptimisticAndOnce(t *testing.T) {
	v := newTestApp(t, "")
	v.site.posts = []client.Post{{ID: 1, Author: "김집사 집사", Content: "감사합니다", Likes: 2}}

	require.NoError(t, v.PostLike(t.Context(), 1))
	assert.Contains(t, v.out.String(), "♥ 아멘 3")
	assert.True(t, v.prefs.HasLiked(1))
	assert.Equal(t, 1, v.site.likeCalls)

	saved, err := prefs.Load(v.prefs.Path())
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, saved.Liked)

	v.out.Reset()
	require.NoError(t, v.PostLike(t.Context(), 1))
	assert.Contains(t, v.out.String(), "이미 아멘으로 응답하신 글입니다.")
	assert.Equal(t, 1, v.site.likeCalls, "no request for an already liked post")
	assert.Equal(t, 3, v.site.posts[0].Likes)
}

func TestPostLikeRevertsOnFailure(t *testing.T) {
	v := newTestApp(t, "")
	v.site.failLike = true
	posts := []client.Post{{ID: 4, Likes: 5}}

	posts, err := v.like(t.Context(), posts, 4)
	require.Error(t, err)
	assert.Equal(t, 5, posts[0].Likes)
	assert.False(t, v.prefs.HasLiked(4))

	_, err = v.like(t.Context(), posts, 99)
	assert.Error(t, err)
}

func TestPostWrite(t *testing.T) {
	v := newTestApp(t, "")

	assert.ErrorIs(t, v.PostWrite(t.Context(), "  "), errEmptyPost)

	v.prefs.Name = "홍길동"
	v.prefs.Title = "권사"
	require.NoError(t, v.PostWrite(t.Context(), "오늘도 감사"))
	require.Len(t, v.site.posts, 1)
	assert.Equal(t, "홍길동 권사", v.site.posts[0].Author)
	assert.Empty(t, v.prefs.Draft)

	// no name set: posted anonymously
	v.prefs.Name = ""
	require.NoError(t, v.PostWrite(t.Context(), "익명 나눔"))
	require.Len(t, v.site.posts, 2)
	assert.Equal(t, anonymousAuthor+" 권사", v.site.posts[0].Author)
}

func TestPostWritePublishesDraft(t *testing.T) {
	v := newTestApp(t, "")
	v.prefs.Draft = "임시 저장된 글"

	require.NoError(t, v.PostWrite(t.Context(), ""))
	require.Len(t, v.site.posts, 1)
	assert.Equal(t, "임시 저장된 글", v.site.posts[0].Content)
	assert.Empty(t, v.prefs.Draft)
}

func TestPostWriteFailureSavesDraft(t *testing.T) {
	v := newTestApp(t, "")
	v.api = client.New("http://127.0.0.1:1", v.cfg.RequestTimeout)

	require.Error(t, v.PostWrite(t.Context(), "보내지 못한 글"))
	assert.Equal(t, "보내지 못한 글", v.prefs.Draft)
	assert.Contains(t, v.out.String(), "임시 저장했습니다")

	saved, err := prefs.Load(v.prefs.Path())
	require.NoError(t, err)
	assert.Equal(t, "보내지 못한 글", saved.Draft)
}

func TestPostDelete(t *testing.T) {
	v := newTestApp(t, "")
	v.site.posts = []client.Post{{ID: 1}, {ID: 2}}
	v.enterAdmin(t)

	require.NoError(t, v.PostDelete(t.Context(), 1))
	require.Len(t, v.site.posts, 1)
	assert.Equal(t, uint(2), v.site.posts[0].ID)
}
