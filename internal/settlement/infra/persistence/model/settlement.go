package model

// model
type Settlement struct {
	ID           int     `gorm:"column:id;primaryKey;autoIncrement;comment:定居点ID" json:"id"`
	Name         string  `gorm:"column:name;type:varchar(100);not null;comment:名称" json:"name"`
	Type         string  `gorm:"column:type;type:varchar(20);not null;comment:类型" json:"type"`
	Region       string  `gorm:"column:region;type:varchar(20);not null;comment:地区" json:"region"`
	Position     string  `gorm:"column:position;type:json;not null;comment:位置GeoJSON" json:"position"`
	Troops       float64 `gorm:"column:troops;not null;default:0;comment:驻军" json:"troops"`
	OwnerPartyID *int    `gorm:"column:owner_party_id;default:NULL;comment:所属部队ID" json:"owner_party_id"`
}

func (Settlement) TableName() string {
	return "settlement"
}
