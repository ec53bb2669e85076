package models

import "time"

// QTRecord is the devotional checklist of one day. Data is kept as the JSON
// document the client posted.
type QTRecord struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	DateKey   string    `gorm:"column:date_key;size:20;uniqueIndex;not null"` // YYYY-M-D
	Data      string    `gorm:"column:data;type:jsonb;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (QTRecord) TableName() string {
	return "qt_records"
}
