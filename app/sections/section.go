// Package sections holds the typed schema of every editable content slot on
// the site. A slot is stored as a plain string under its key in the content
// table; this package decides how that string is read, what is shown when it
// is missing or broken, and how an edited value is written back.
package sections

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Key names one editable slot of site content.
type Key string

func (k Key) String() string { return string(k) }

// Kind tells how a slot's stored string is shaped.
type Kind string

const (
	KindText   Kind = "text"
	KindObject Kind = "object"
	KindList   Kind = "list"
)

// Codec converts between the stored string and the typed value.
type Codec[T any] interface {
	Decode(raw string) (T, error)
	Encode(value T) (string, error)
}

// TextCodec stores the value verbatim.
type TextCodec struct{}

func (TextCodec) Decode(raw string) (string, error)   { return raw, nil }
func (TextCodec) Encode(value string) (string, error) { return value, nil }

// JSONCodec stores the value as a JSON document.
type JSONCodec[T any] struct{}

var errNullValue = errors.New("stored value is null")

func (JSONCodec[T]) Decode(raw string) (T, error) {
	var v T
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return v, errNullValue
	}
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func (JSONCodec[T]) Encode(value T) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

// Section binds a key to its codec and built-in default.
type Section[T any] struct {
	key     Key
	kind    Kind
	label   string
	codec   Codec[T]
	initial func() T
}

func newSection[T any](key Key, kind Kind, label string, codec Codec[T], initial func() T) Section[T] {
	s := Section[T]{key: key, kind: kind, label: label, codec: codec, initial: initial}
	register(s)
	return s
}

func (s Section[T]) Key() Key      { return s.key }
func (s Section[T]) Kind() Kind    { return s.kind }
func (s Section[T]) Label() string { return s.label }

// Default returns a fresh copy of the built-in value.
func (s Section[T]) Default() T { return s.initial() }

// Lookup decodes the slot from a fetched content map. ok is false when the key
// is absent or its value does not decode; the default is returned in that case.
func (s Section[T]) Lookup(content map[string]string) (value T, ok bool) {
	raw, exist := content[string(s.key)]
	if !exist {
		return s.Default(), false
	}
	v, err := s.codec.Decode(raw)
	if err != nil {
		return s.Default(), false
	}
	return v, true
}

// From is Lookup without the flag.
func (s Section[T]) From(content map[string]string) T {
	v, _ := s.Lookup(content)
	return v
}

// Encode renders a value into the string that is stored under the key.
func (s Section[T]) Encode(value T) (string, error) {
	raw, err := s.codec.Encode(value)
	if err != nil {
		return "", fmt.Errorf("encode section %s: %w", s.key, err)
	}
	return raw, nil
}

// Validate reports whether raw decodes under this section's schema.
func (s Section[T]) Validate(raw string) error {
	if _, err := s.codec.Decode(raw); err != nil {
		return fmt.Errorf("section %s: %w", s.key, err)
	}
	return nil
}

// Descriptor is the type-erased view of a Section used for listing.
type Descriptor interface {
	Key() Key
	Kind() Kind
	Label() string
	Validate(raw string) error
}

var registry = map[Key]Descriptor{}
var registryOrder []Key

func register(d Descriptor) {
	if _, dup := registry[d.Key()]; dup {
		panic(fmt.Sprintf("sections: duplicate key %q", d.Key()))
	}
	registry[d.Key()] = d
	registryOrder = append(registryOrder, d.Key())
}

// Lookup finds a registered section by key.
func Lookup(key string) (Descriptor, bool) {
	d, ok := registry[Key(key)]
	return d, ok
}

// All lists registered sections in declaration order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(registryOrder))
	for _, k := range registryOrder {
		out = append(out, registry[k])
	}
	return out
}
