package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shinkwang-site/app/console/client"
)

func TestNewcomerFlow(t *testing.T) {
	v := newTestApp(t, "")

	assert.ErrorIs(t, v.NewcomerRegister(t.Context(), client.Newcomer{Name: " "}), errNameRequired)

	require.NoError(t, v.NewcomerRegister(t.Context(), client.Newcomer{Name: "김새가족", Phone: "010-0000-0000"}))
	assert.Contains(t, v.out.String(), "김새가족님, 성남신광교회에 오신 것을 환영합니다!")

	v.enterAdmin(t)
	require.NoError(t, v.NewcomerList(t.Context()))
	assert.Contains(t, v.out.String(), "#1 김새가족  010-0000-0000")

	require.NoError(t, v.NewcomerUpdate(t.Context(), 1, map[string]string{"description": "심방 요청"}))
	assert.Equal(t, "심방 요청", v.site.newcomers[0].Description)
	assert.Equal(t, "010-0000-0000", v.site.newcomers[0].Phone)

	assert.Error(t, v.NewcomerUpdate(t.Context(), 1, map[string]string{"registration_date": "2026-01-01"}))
	assert.Error(t, v.NewcomerUpdate(t.Context(), 9, nil))
}
