package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Insuree struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	CHFID      string     `gorm:"column:chf_id;size:12;index" json:"chf_id" mapstructure:"chf_id"`
	LastName   string     `gorm:"column:last_name" json:"last_name" mapstructure:"last_name"`
	OtherNames string     `gorm:"column:other_names" json:"other_names" mapstructure:"other_names"`
	DOB        *time.Time `gorm:"column:dob" json:"dob" mapstructure:"dob"`
	Gender     string     `gorm:"column:gender;size:1" json:"gender" mapstructure:"gender"`
	Head       bool       `gorm:"column:head" json:"head" mapstructure:"head"`
	Phone      string     `gorm:"column:phone" json:"phone" mapstructure:"phone"`
	FamilyID   *uint      `gorm:"column:family_id;index" json:"family_id" mapstructure:"family_id"`
	Audit      `mapstructure:",squash"`
}

func (Insuree) TableName() string {
	return "tblInsuree"
}

func (i *Insuree) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == uuid.Nil {
		i.UUID = uuid.New()
	}
	return nil
}
