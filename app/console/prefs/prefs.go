// Package prefs is the state this installation keeps between runs: the admin
// session, the unfinished post and which posts were already answered with amen.
package prefs

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"slices"
)

type Prefs struct {
	Admin bool   `yaml:"admin"`
	Token string `yaml:"token,omitempty"`

	Draft string `yaml:"draft,omitempty"` // post being written
	Name  string `yaml:"name,omitempty"`
	Title string `yaml:"title,omitempty"`

	Liked []uint `yaml:"liked,omitempty"`

	path string
}

// Load reads the file at path. A missing file gives empty prefs.
func Load(path string) (*Prefs, error) {
	p := &Prefs{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	p.path = path
	return p, nil
}

// Save writes the prefs back through a temp file so a crash never leaves half a file.
func (p *Prefs) Save() error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func (p *Prefs) Path() string { return p.path }

func (p *Prefs) HasLiked(id uint) bool {
	return slices.Contains(p.Liked, id)
}

func (p *Prefs) MarkLiked(id uint) {
	if !p.HasLiked(id) {
		p.Liked = append(p.Liked, id)
	}
}

func (p *Prefs) UnmarkLiked(id uint) {
	p.Liked = slices.DeleteFunc(p.Liked, func(v uint) bool { return v == id })
}
