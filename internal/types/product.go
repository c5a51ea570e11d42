package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID            uuid.UUID       `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	Code            string          `gorm:"column:code;size:8;index" json:"code" mapstructure:"code"`
	Name            string          `gorm:"column:name" json:"name" mapstructure:"name"`
	LumpSum         decimal.Decimal `gorm:"column:lump_sum;type:numeric(18,2)" json:"lump_sum" mapstructure:"lump_sum"`
	PremiumAdult    decimal.Decimal `gorm:"column:premium_adult;type:numeric(18,2)" json:"premium_adult" mapstructure:"premium_adult"`
	PremiumChild    decimal.Decimal `gorm:"column:premium_child;type:numeric(18,2)" json:"premium_child" mapstructure:"premium_child"`
	MaxMembers      int             `gorm:"column:max_members" json:"max_members" mapstructure:"max_members"`
	InsurancePeriod int             `gorm:"column:insurance_period" json:"insurance_period" mapstructure:"insurance_period"`
	DateFrom        *time.Time      `gorm:"column:date_from" json:"date_from" mapstructure:"date_from"`
	DateTo          *time.Time      `gorm:"column:date_to" json:"date_to" mapstructure:"date_to"`
	AgeMaximal      int             `gorm:"column:age_maximal" json:"age_maximal" mapstructure:"age_maximal"`
	Audit           `mapstructure:",squash"`
}

func (Product) TableName() string {
	return "tblProduct"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}
