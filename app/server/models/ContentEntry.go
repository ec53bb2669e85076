package models

import "time"

// ContentEntry is one editable slot of site content. Writing an existing key
// replaces its value wholesale.
type ContentEntry struct {
	SectionKey string    `gorm:"column:section_key;primaryKey;size:100"`  // slot name, e.g. general_worship
	Value      string    `gorm:"column:content_value;type:text;not null"` // raw payload, often JSON
	UpdatedAt  time.Time `gorm:"column:updated_at"`                       // last write
}

func (ContentEntry) TableName() string {
	return "site_contents"
}
