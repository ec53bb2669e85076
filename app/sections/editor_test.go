package sections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCommitter struct {
	values map[string]string
	fail   error
	calls  int
}

func (m *memCommitter) Upsert(_ context.Context, key, value string) error {
	m.calls++
	if m.fail != nil {
		return m.fail
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func TestEditorCommitUpdatesShownValue(t *testing.T) {
	store := &memCommitter{}
	e := NewEditor(HeroTitle, map[string]string{}, store)
	assert.False(t, e.Stored())

	require.NoError(t, e.Commit(context.Background(), "새 제목"))

	assert.Equal(t, "새 제목", e.Value())
	assert.True(t, e.Stored())
	assert.Equal(t, "새 제목", store.values["hero_title"])
	assert.Equal(t, "새 제목", HeroTitle.From(store.values))
}

func TestEditorFailureKeepsPreviousValue(t *testing.T) {
	store := &memCommitter{fail: errors.New("db down")}
	e := NewEditor(Pastor, map[string]string{}, store)

	draft := e.Draft()
	draft.Name = "다른 이름"
	draft.Paragraphs[0] = "changed"

	err := e.Commit(context.Background(), draft)
	require.Error(t, err)
	assert.Equal(t, Pastor.Default(), e.Value(), "draft edits must not leak into the shown value")
}

func TestListEditorRowOperations(t *testing.T) {
	freezeClock(t, time.UnixMilli(9000))
	store := &memCommitter{}
	content := map[string]string{
		"general_worship": `[{"id":1,"name":"주일예배","time":"오전 11시","place":"본당"}]`,
	}
	ctx := context.Background()

	general := NewListEditor(GeneralWorship, content, store)
	school := NewListEditor(SchoolWorship, content, store)

	added, err := general.SaveRow(ctx, WorshipRow{Name: "수요예배", Time: "오후 7시", Place: "본당"})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), added.ID)
	require.Len(t, general.Value(), 2)

	_, err = general.SaveRow(ctx, WorshipRow{ID: 1, Name: "주일대예배", Time: "오전 11시", Place: "본당"})
	require.NoError(t, err)
	row, ok := general.Row(1)
	require.True(t, ok)
	assert.Equal(t, "주일대예배", row.Name)

	require.NoError(t, general.DeleteRow(ctx, 9000))
	assert.Len(t, general.Value(), 1)

	stored := GeneralWorship.From(store.values)
	assert.Equal(t, general.Value(), stored)
	_, touched := store.values["school_worship"]
	assert.False(t, touched, "editing one table must not write the other")
	assert.Equal(t, SchoolWorship.Default(), school.Value())
}

func TestListEditorUnknownRowDoesNotCommit(t *testing.T) {
	store := &memCommitter{}
	e := NewListEditor(OfferingAccounts, map[string]string{}, store)

	err := e.DeleteRow(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRowNotFound)
	_, err = e.SaveRow(context.Background(), OfferingAccount{ID: 42})
	assert.ErrorIs(t, err, ErrRowNotFound)
	assert.Zero(t, store.calls)
}

func TestListEditorFailedSaveKeepsRows(t *testing.T) {
	store := &memCommitter{fail: errors.New("boom")}
	e := NewListEditor(Sermons, map[string]string{}, store)

	_, err := e.SaveRow(context.Background(), Sermon{Title: "new"})
	require.Error(t, err)
	assert.Equal(t, Sermons.Default(), e.Value())
}
