package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Family struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID          uuid.UUID `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	HeadInsureeID uint      `gorm:"column:head_insuree_id" json:"head_insuree_id" mapstructure:"head_insuree_id"`
	Address       string    `gorm:"column:address" json:"address" mapstructure:"address"`
	Poverty       bool      `gorm:"column:poverty" json:"poverty" mapstructure:"poverty"`
	FamilyType    string    `gorm:"column:family_type;size:2" json:"family_type" mapstructure:"family_type"`
	Confirmation  string    `gorm:"column:confirmation_no" json:"confirmation_no" mapstructure:"confirmation_no"`
	Audit         `mapstructure:",squash"`
}

func (Family) TableName() string {
	return "tblFamilies"
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.UUID == uuid.Nil {
		f.UUID = uuid.New()
	}
	return nil
}
