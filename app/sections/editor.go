package sections

import (
	"context"
	"fmt"
)

// Committer persists one slot. The content store and the HTTP client both satisfy it.
type Committer interface {
	Upsert(ctx context.Context, key, value string) error
}

// Editor carries one slot through the edit flow. The shown value only changes
// after the committer accepts the new one.
type Editor[T any] struct {
	section Section[T]
	shown   T
	stored  bool
	c       Committer
}

// NewEditor starts from the value found in content (or the default).
func NewEditor[T any](section Section[T], content map[string]string, c Committer) *Editor[T] {
	v, ok := section.Lookup(content)
	return &Editor[T]{section: section, shown: v, stored: ok, c: c}
}

// Value is what a viewer sees right now.
func (e *Editor[T]) Value() T { return e.shown }

// Stored tells whether Value came from the store rather than the default.
func (e *Editor[T]) Stored() bool { return e.stored }

// Draft seeds an edit with the current value.
func (e *Editor[T]) Draft() T {
	// round-trip through the codec so slices/maps in the draft never alias the shown value
	raw, err := e.section.Encode(e.shown)
	if err != nil {
		return e.shown
	}
	v, err := e.section.codec.Decode(raw)
	if err != nil {
		return e.shown
	}
	return v
}

// Commit writes draft. On error the shown value is left as it was.
func (e *Editor[T]) Commit(ctx context.Context, draft T) error {
	raw, err := e.section.Encode(draft)
	if err != nil {
		return err
	}
	if err := e.c.Upsert(ctx, string(e.section.key), raw); err != nil {
		return fmt.Errorf("save %s: %w", e.section.key, err)
	}
	e.shown = draft
	e.stored = true
	return nil
}

// ListEditor adds row-level operations on top of Editor.
type ListEditor[T Row[T]] struct {
	*Editor[[]T]
	list ListSection[T]
}

func NewListEditor[T Row[T]](list ListSection[T], content map[string]string, c Committer) *ListEditor[T] {
	return &ListEditor[T]{Editor: NewEditor(list.Section, content, c), list: list}
}

// SaveRow adds the row when its id is zero, otherwise replaces the row with that id.
func (e *ListEditor[T]) SaveRow(ctx context.Context, row T) (T, error) {
	next, saved, err := e.list.Save(e.shown, row)
	if err != nil {
		return saved, err
	}
	if err := e.Commit(ctx, next); err != nil {
		return saved, err
	}
	return saved, nil
}

// DeleteRow removes the row with id.
func (e *ListEditor[T]) DeleteRow(ctx context.Context, id int64) error {
	next, err := e.list.Remove(e.shown, id)
	if err != nil {
		return err
	}
	return e.Commit(ctx, next)
}

// Row returns the row with id from the shown list.
func (e *ListEditor[T]) Row(id int64) (T, bool) {
	i := Index(e.shown, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return e.shown[i], true
}
