package model

// model
type Party struct {
	ID       int     `gorm:"column:id;primaryKey;autoIncrement;comment:部队ID" json:"id"`
	Name     string  `gorm:"column:name;type:varchar(50);not null;comment:名称" json:"name"`
	Region   string  `gorm:"column:region;type:varchar(20);not null;comment:地区" json:"region"`
	Gold     int     `gorm:"column:gold;not null;default:0;comment:金币" json:"gold"`
	Troops   float64 `gorm:"column:troops;not null;default:0;comment:兵力" json:"troops"`
	Position string  `gorm:"column:position;type:json;not null;comment:位置GeoJSON" json:"position"`
	Status   string  `gorm:"column:status;type:varchar(30);not null;comment:状态" json:"status"`

	CurrentPartyID      *int `gorm:"column:current_party_id;default:NULL;comment:要约发起方ID" json:"current_party_id"`
	CurrentSettlementID *int `gorm:"column:current_settlement_id;default:NULL;comment:所在据点ID" json:"current_settlement_id"`
	CurrentBattleID     *int `gorm:"column:current_battle_id;default:NULL;comment:当前战斗ID" json:"current_battle_id"`

	VulnerabilityHours string `gorm:"column:vulnerability_hours;type:json;comment:可排战时段" json:"vulnerability_hours"`
}

func (Party) TableName() string {
	return "party"
}

type PartyItem struct {
	ID             int    `gorm:"column:id;primaryKey;autoIncrement;comment:堆叠ID" json:"id"`
	PartyID        int    `gorm:"column:party_id;index;not null;comment:部队ID" json:"party_id"`
	ItemID         string `gorm:"column:item_id;type:varchar(50);not null;comment:物品ID" json:"item_id"`
	Count          int    `gorm:"column:count;not null;default:0;comment:数量" json:"count"`
	MountHitPoints int    `gorm:"column:mount_hit_points;not null;default:0;comment:坐骑耐力" json:"mount_hit_points"`
}

func (PartyItem) TableName() string {
	return "party_item"
}

type PartyOrder struct {
	ID         int    `gorm:"column:id;primaryKey;autoIncrement;comment:订单ID" json:"id"`
	PartyID    int    `gorm:"column:party_id;index;not null;comment:部队ID" json:"party_id"`
	Type       string `gorm:"column:type;type:varchar(30);not null;comment:订单类型" json:"type"`
	OrderIndex int    `gorm:"column:order_index;not null;default:0;comment:队列序号" json:"order_index"`
	// 途径点 GeoJSON MultiPoint，仅 MoveToPoint 使用
	Waypoints string `gorm:"column:waypoints;type:json;comment:途径点" json:"waypoints"`

	TargetPartyID      *int `gorm:"column:target_party_id;default:NULL;comment:目标部队ID" json:"target_party_id"`
	TargetSettlementID *int `gorm:"column:target_settlement_id;default:NULL;comment:目标据点ID" json:"target_settlement_id"`
	TargetBattleID     *int `gorm:"column:target_battle_id;default:NULL;comment:目标战斗ID" json:"target_battle_id"`
}

func (PartyOrder) TableName() string {
	return "party_order"
}

type PartyTransferOffer struct {
	ID            int     `gorm:"column:id;primaryKey;autoIncrement;comment:要约ID" json:"id"`
	PartyID       int     `gorm:"column:party_id;index;not null;comment:发起方ID" json:"party_id"`
	TargetPartyID int     `gorm:"column:target_party_id;index;not null;comment:目标方ID" json:"target_party_id"`
	Status        string  `gorm:"column:status;type:varchar(10);not null;comment:状态" json:"status"`
	Gold          int     `gorm:"column:gold;not null;default:0;comment:金币上限" json:"gold"`
	Troops        float64 `gorm:"column:troops;not null;default:0;comment:兵力上限" json:"troops"`
}

func (PartyTransferOffer) TableName() string {
	return "party_transfer_offer"
}

type PartyTransferOfferItem struct {
	ID      int    `gorm:"column:id;primaryKey;autoIncrement;comment:物品行ID" json:"id"`
	OfferID int    `gorm:"column:offer_id;index;not null;comment:要约ID" json:"offer_id"`
	ItemID  string `gorm:"column:item_id;type:varchar(50);not null;comment:物品ID" json:"item_id"`
	Count   int    `gorm:"column:count;not null;default:0;comment:数量上限" json:"count"`
}

func (PartyTransferOfferItem) TableName() string {
	return "party_transfer_offer_item"
}
