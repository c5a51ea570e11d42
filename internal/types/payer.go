package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payer struct {
	ID    uint      `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID  uuid.UUID `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	Name  string    `gorm:"column:payer_name" json:"name" mapstructure:"name"`
	Type  string    `gorm:"column:payer_type;size:1" json:"type" mapstructure:"type"`
	Audit `mapstructure:",squash"`
}

func (Payer) TableName() string {
	return "tblPayer"
}

func (p *Payer) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}

type Officer struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	Code       string    `gorm:"column:code;size:8" json:"code" mapstructure:"code"`
	LastName   string    `gorm:"column:last_name" json:"last_name" mapstructure:"last_name"`
	OtherNames string    `gorm:"column:other_names" json:"other_names" mapstructure:"other_names"`
	Phone      string    `gorm:"column:phone" json:"phone" mapstructure:"phone"`
	Audit      `mapstructure:",squash"`
}

func (Officer) TableName() string {
	return "tblOfficer"
}

func (o *Officer) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == uuid.Nil {
		o.UUID = uuid.New()
	}
	return nil
}
