package models

import "time"

type Newcomer struct {
	ID               uint      `gorm:"column:id;primaryKey" json:"id"`
	Name             string    `gorm:"column:name;size:100;not null" json:"name"`
	Phone            string    `gorm:"column:phone;size:20" json:"phone"`
	BirthDate        string    `gorm:"column:birth_date;size:20" json:"birth_date"` // free text as typed on the form
	Address          string    `gorm:"column:address;type:text" json:"address"`
	Description      string    `gorm:"column:description;type:text" json:"description"`
	RegistrationDate time.Time `gorm:"column:registration_date;autoCreateTime" json:"registration_date"`
}
