package domain

import "github.com/paulmach/orb"

// OrderType 是部队订单类型。
type OrderType string

const (
	OrderMoveToPoint        OrderType = "MoveToPoint"
	OrderFollowParty        OrderType = "FollowParty"
	OrderAttackParty        OrderType = "AttackParty"
	OrderTransferOfferParty OrderType = "TransferOfferParty"
	OrderMoveToSettlement   OrderType = "MoveToSettlement"
	OrderAttackSettlement   OrderType = "AttackSettlement"
	OrderJoinBattle         OrderType = "JoinBattle"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderMoveToPoint, OrderFollowParty, OrderAttackParty, OrderTransferOfferParty,
		OrderMoveToSettlement, OrderAttackSettlement, OrderJoinBattle:
		return true
	}
	return false
}

// TargetsParty 返回该订单是否以另一支部队为目标。
func (t OrderType) TargetsParty() bool {
	return t == OrderFollowParty || t == OrderAttackParty || t == OrderTransferOfferParty
}

// TargetsSettlement 返回该订单是否以据点为目标。
func (t OrderType) TargetsSettlement() bool {
	return t == OrderMoveToSettlement || t == OrderAttackSettlement
}

// Order 是订单队列中的一项。Index 为队列内序号，从 0 连续编号。
// 只有 MoveToPoint 可以出现在非末位，其余类型必须是队列最后一项。
type Order struct {
	ID      int
	PartyID int
	Type    OrderType
	Index   int

	// Waypoints 仅 MoveToPoint 使用，按顺序途径。
	Waypoints orb.MultiPoint

	TargetPartyID      *int
	TargetSettlementID *int
	TargetBattleID     *int
}
