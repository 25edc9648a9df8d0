package model

// model
type Terrain struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement;comment:地形ID" json:"id"`
	Type     string `gorm:"column:type;type:varchar(20);not null;comment:地形种类" json:"type"`
	Boundary string `gorm:"column:boundary;type:json;not null;comment:边界多边形GeoJSON" json:"boundary"`
}

func (Terrain) TableName() string {
	return "terrain"
}
