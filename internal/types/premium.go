package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Premium struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id" mapstructure:"id"`
	UUID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid" mapstructure:"uuid"`
	PolicyID   uint            `gorm:"column:policy_id;index" json:"policy_id" mapstructure:"policy_id"`
	PayerID    *uint           `gorm:"column:payer_id" json:"payer_id" mapstructure:"payer_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(18,2)" json:"amount" mapstructure:"amount"`
	Receipt    string          `gorm:"column:receipt" json:"receipt" mapstructure:"receipt"`
	PayDate    *time.Time      `gorm:"column:pay_date" json:"pay_date" mapstructure:"pay_date"`
	PayType    string          `gorm:"column:pay_type;size:1" json:"pay_type" mapstructure:"pay_type"`
	IsPhotoFee bool            `gorm:"column:is_photo_fee" json:"is_photo_fee" mapstructure:"is_photo_fee"`
	IsOffline  bool            `gorm:"column:is_offline" json:"is_offline" mapstructure:"is_offline"`
	Audit      `mapstructure:",squash"`
}

func (Premium) TableName() string {
	return "tblPremium"
}

func (p *Premium) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}
