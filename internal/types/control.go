package types

// Control field adjustability values.
const (
	ControlOptional  = "O"
	ControlMandatory = "M"
	ControlHidden    = "N"
	ControlRequired  = "R"
)

// Control is a read-only reference row describing how a form field behaves
// in the mobile client. The table is maintained by hand, never written here.
type Control struct {
	Name          string `gorm:"column:field_name;primaryKey;size:50" json:"name" mapstructure:"name"`
	Adjustability string `gorm:"column:adjustability;size:1;default:'O'" json:"adjustability" mapstructure:"adjustability"`
	Usage         string `gorm:"column:usage;size:200" json:"usage" mapstructure:"usage"`
}

func (Control) TableName() string {
	return "tblControls"
}
