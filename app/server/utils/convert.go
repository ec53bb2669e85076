package utils

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID reads a positive database id.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// ParseRowID reads the id of a row inside a list-shaped section.
func ParseRowID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// FlexibleID accepts an id sent either as a JSON number or as a numeric string.
type FlexibleID uint

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	id, err := ParseID(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	*f = FlexibleID(id)
	return nil
}
