package types

import (
	"gorm.io/datatypes"
)

// ModuleConfiguration stores one JSON configuration blob per module. Read
// once at process start; a missing row means module defaults apply.
type ModuleConfiguration struct {
	ID     uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Module string         `gorm:"column:module;uniqueIndex;size:50" json:"module"`
	Config datatypes.JSON `gorm:"column:config" json:"config"`
}

func (ModuleConfiguration) TableName() string {
	return "core_module_configuration"
}
