package model

import "time"

// model
type Battle struct {
	ID           int        `gorm:"column:id;primaryKey;autoIncrement;comment:战斗ID" json:"id"`
	Region       string     `gorm:"column:region;type:varchar(20);not null;comment:地区" json:"region"`
	Phase        string     `gorm:"column:phase;type:varchar(20);not null;comment:阶段" json:"phase"`
	Position     string     `gorm:"column:position;type:json;not null;comment:位置GeoJSON" json:"position"`
	ScheduledFor *time.Time `gorm:"column:scheduled_for;type:TIMESTAMP;default:NULL;comment:开战时间" json:"scheduled_for"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
}

func (Battle) TableName() string {
	return "battle"
}

type BattleFighter struct {
	ID           int    `gorm:"column:id;primaryKey;autoIncrement;comment:参战方ID" json:"id"`
	BattleID     int    `gorm:"column:battle_id;index;not null;comment:战斗ID" json:"battle_id"`
	PartyID      *int   `gorm:"column:party_id;index;default:NULL;comment:部队ID" json:"party_id"`
	SettlementID *int   `gorm:"column:settlement_id;default:NULL;comment:定居点ID" json:"settlement_id"`
	Side         string `gorm:"column:side;type:varchar(10);not null;comment:阵营" json:"side"`
	Commander    bool   `gorm:"column:commander;not null;default:0;comment:是否指挥官" json:"commander"`
	// 兵力与可排战时段是建战时的快照，排期与名额分配以此为准
	Troops             float64 `gorm:"column:troops;not null;default:0;comment:兵力快照" json:"troops"`
	ParticipantSlots   int     `gorm:"column:participant_slots;not null;default:0;comment:随从名额" json:"participant_slots"`
	VulnerabilityHours string  `gorm:"column:vulnerability_hours;type:json;comment:可排战时段" json:"vulnerability_hours"`
}

func (BattleFighter) TableName() string {
	return "battle_fighter"
}

type BattleFighterApplication struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement;comment:申请ID" json:"id"`
	BattleID int    `gorm:"column:battle_id;index;not null;comment:战斗ID" json:"battle_id"`
	PartyID  int    `gorm:"column:party_id;index;not null;comment:部队ID" json:"party_id"`
	Side     string `gorm:"column:side;type:varchar(10);not null;comment:阵营" json:"side"`
	Status   string `gorm:"column:status;type:varchar(10);not null;comment:状态" json:"status"`
}

func (BattleFighterApplication) TableName() string {
	return "battle_fighter_application"
}
