package sections

import (
	"errors"
	"slices"
	"time"
)

// ErrRowNotFound is returned when an edit or delete targets an id that is not in the list.
var ErrRowNotFound = errors.New("row not found")

// Row is an element of a list-shaped section. The id is only meaningful
// inside its own list.
type Row[T any] interface {
	RowID() int64
	WithID(id int64) T
}

// ListSection is a Section whose value is a slice of rows.
type ListSection[T Row[T]] struct {
	Section[[]T]
	prepend bool
}

func newListSection[T Row[T]](key Key, label string, prepend bool, initial func() []T) ListSection[T] {
	return ListSection[T]{
		Section: newSection[[]T](key, KindList, label, JSONCodec[[]T]{}, initial),
		prepend: prepend,
	}
}

// now is swapped in tests.
var now = time.Now

// NextID derives a new row id from the clock, bumped past every id already in rows.
func NextID[T Row[T]](rows []T) int64 {
	id := now().UnixMilli()
	for _, r := range rows {
		if r.RowID() >= id {
			id = r.RowID() + 1
		}
	}
	return id
}

// Index returns the position of the row with the given id, or -1.
func Index[T Row[T]](rows []T, id int64) int {
	return slices.IndexFunc(rows, func(r T) bool { return r.RowID() == id })
}

// Add returns a new list with row inserted under a fresh id.
func (s ListSection[T]) Add(rows []T, row T) ([]T, T) {
	row = row.WithID(NextID(rows))
	out := make([]T, 0, len(rows)+1)
	if s.prepend {
		out = append(out, row)
		out = append(out, rows...)
	} else {
		out = append(out, rows...)
		out = append(out, row)
	}
	return out, row
}

// Replace returns a new list with the row carrying row.RowID() swapped out.
func (s ListSection[T]) Replace(rows []T, row T) ([]T, error) {
	i := Index(rows, row.RowID())
	if i < 0 {
		return nil, ErrRowNotFound
	}
	out := slices.Clone(rows)
	out[i] = row
	return out, nil
}

// Remove returns a new list without the row carrying id.
func (s ListSection[T]) Remove(rows []T, id int64) ([]T, error) {
	i := Index(rows, id)
	if i < 0 {
		return nil, ErrRowNotFound
	}
	out := make([]T, 0, len(rows)-1)
	out = append(out, rows[:i]...)
	out = append(out, rows[i+1:]...)
	return out, nil
}

// Save adds row when its id is zero and replaces the existing row otherwise.
func (s ListSection[T]) Save(rows []T, row T) ([]T, T, error) {
	if row.RowID() == 0 {
		out, saved := s.Add(rows, row)
		return out, saved, nil
	}
	out, err := s.Replace(rows, row)
	return out, row, err
}
