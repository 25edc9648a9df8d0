package domain

import "github.com/paulmach/orb"

// SettlementType 是定居点规模等级。
type SettlementType string

const (
	SettlementVillage SettlementType = "Village"
	SettlementCastle  SettlementType = "Castle"
	SettlementTown    SettlementType = "Town"
)

func (t SettlementType) Valid() bool {
	switch t {
	case SettlementVillage, SettlementCastle, SettlementTown:
		return true
	}
	return false
}

// Settlement 是地图上的定居点，部队可入驻、招募或围攻。
type Settlement struct {
	ID           int
	Name         string
	Type         SettlementType
	Region       string
	Position     orb.Point
	Troops       float64
	OwnerPartyID *int
}
