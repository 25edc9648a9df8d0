package domain

import "github.com/paulmach/orb"

// PartyStatus 是部队在大地图上的状态机取值。
type PartyStatus string

const (
	// StatusIdle 在野外，按订单队列行动。
	StatusIdle PartyStatus = "Idle"
	// StatusIdleInSettlement 驻扎在据点内，不可被攻击。
	StatusIdleInSettlement PartyStatus = "IdleInSettlement"
	// StatusRecruitingInSettlement 在据点内募兵，兵力随时间增长。
	StatusRecruitingInSettlement PartyStatus = "RecruitingInSettlement"
	// StatusAwaitingPartyOfferDecision 收到转让要约，等待本方答复，期间订单暂停。
	StatusAwaitingPartyOfferDecision PartyStatus = "AwaitingPartyOfferDecision"
	// StatusInBattle 已卷入战斗，不可下新订单。
	StatusInBattle PartyStatus = "InBattle"
	// StatusAwaitingBattleJoinDecision 入场申请已提交，等待指挥官裁决。
	StatusAwaitingBattleJoinDecision PartyStatus = "AwaitingBattleJoinDecision"
)

// InSettlement 返回部队是否处于据点保护中。
func (s PartyStatus) InSettlement() bool {
	return s == StatusIdleInSettlement || s == StatusRecruitingInSettlement
}

// Attackable 返回部队能否成为野战目标。据点内与战斗中的部队不可被攻击。
func (s PartyStatus) Attackable() bool {
	return !s.InSettlement() && s != StatusInBattle
}

// Party 是大地图上的一支部队。
// Troops 用浮点累计增长，结算时向下取整使用。
type Party struct {
	ID       int
	Name     string
	Region   string
	Gold     int
	Troops   float64
	Position orb.Point
	Status   PartyStatus

	// CurrentPartyID 在 AwaitingPartyOfferDecision 下指向要约发起方。
	CurrentPartyID *int
	// CurrentSettlementID 在据点内时指向所在据点。
	CurrentSettlementID *int
	// CurrentBattleID 在 InBattle / AwaitingBattleJoinDecision 下指向目标战斗。
	CurrentBattleID *int

	// VulnerabilityHours 是愿意接受排战的小时集合（0-23），空集表示全天可排。
	VulnerabilityHours []int

	Items  []*PartyItem
	Orders []*Order
}

// PartyItem 是部队携带的一类物品堆叠。
// MountHitPoints 大于 0 表示该物品是坐骑，参与行军速度计算。
type PartyItem struct {
	ID             int
	PartyID        int
	ItemID         string
	Count          int
	MountHitPoints int
}

// Item 按 ItemID 查找堆叠，不存在返回 nil。
func (p *Party) Item(itemID string) *PartyItem {
	for _, it := range p.Items {
		if it.ItemID == itemID {
			return it
		}
	}
	return nil
}

// AddItem 入账一类物品：已有堆叠则累加，否则新建堆叠。
func (p *Party) AddItem(itemID string, count, mountHitPoints int) {
	if it := p.Item(itemID); it != nil {
		it.Count += count
		return
	}
	p.Items = append(p.Items, &PartyItem{
		PartyID:        p.ID,
		ItemID:         itemID,
		Count:          count,
		MountHitPoints: mountHitPoints,
	})
}

// RemoveItem 出账一类物品，数量归零则移除堆叠。调用方保证余量充足。
func (p *Party) RemoveItem(itemID string, count int) {
	for i, it := range p.Items {
		if it.ItemID != itemID {
			continue
		}
		it.Count -= count
		if it.Count <= 0 {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
		}
		return
	}
}

// ClearOrders 清空订单队列。卷入战斗或收到要约时调用。
func (p *Party) ClearOrders() {
	p.Orders = nil
}
