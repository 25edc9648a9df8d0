package domain

// TransferOfferStatus 是转让要约的状态。
// Intent 随订单排队，订单执行到位后升级为 Pending 等待对方答复。
type TransferOfferStatus string

const (
	TransferIntent   TransferOfferStatus = "Intent"
	TransferPending  TransferOfferStatus = "Pending"
	TransferAccepted TransferOfferStatus = "Accepted"
	TransferDeclined TransferOfferStatus = "Declined"
)

// TransferOffer 是一支部队向另一支部队提出的资源转让要约。
// Gold/Troops/Items 是要约的上限，对方可按需部分接受。
type TransferOffer struct {
	ID            int
	PartyID       int
	TargetPartyID int
	Status        TransferOfferStatus
	Gold          int
	Troops        float64
	Items         []*TransferOfferItem
}

// TransferOfferItem 是要约中的一类物品。
type TransferOfferItem struct {
	ID      int
	OfferID int
	ItemID  string
	Count   int
}

// TransferAmounts 是答复方实际接受的数量，必须逐项不超过要约上限。
type TransferAmounts struct {
	Gold   int
	Troops float64
	Items  []TransferAmountItem
}

type TransferAmountItem struct {
	ItemID string
	Count  int
}

// Item 按 ItemID 查找要约中的物品行，不存在返回 nil。
func (o *TransferOffer) Item(itemID string) *TransferOfferItem {
	for _, it := range o.Items {
		if it.ItemID == itemID {
			return it
		}
	}
	return nil
}

// ValidateAccepted 校验接受数量不超过要约上限。
// 任一数量超额返回 ErrTransferOfferInvalidAmount，物品不在要约内返回 ErrTransferOfferInvalidItem。
func (o *TransferOffer) ValidateAccepted(accepted TransferAmounts) error {
	if accepted.Gold > o.Gold {
		return ErrTransferOfferInvalidAmount.
			WithData("accepted_gold", accepted.Gold).
			WithData("offered_gold", o.Gold)
	}
	if accepted.Troops > o.Troops {
		return ErrTransferOfferInvalidAmount.
			WithData("accepted_troops", accepted.Troops).
			WithData("offered_troops", o.Troops)
	}
	for _, item := range accepted.Items {
		line := o.Item(item.ItemID)
		if line == nil {
			return ErrTransferOfferInvalidItem.WithData("item_id", item.ItemID)
		}
		if item.Count > line.Count {
			return ErrTransferOfferInvalidAmount.
				WithData("item_id", item.ItemID).
				WithData("accepted_count", item.Count).
				WithData("offered_count", line.Count)
		}
	}
	return nil
}

// ValidateSource 校验发起方资源足以兑付这些数量，且转出兵力后不低于 minTroops 下限。
func ValidateSource(from *Party, amounts TransferAmounts, minTroops float64) error {
	if from.Gold < amounts.Gold {
		return ErrPartyNotEnoughGold.
			WithData("party_id", from.ID).
			WithData("required", amounts.Gold).
			WithData("available", from.Gold)
	}
	if from.Troops < amounts.Troops {
		return ErrPartyNotEnoughTroops.WithData("party_id", from.ID)
	}
	if amounts.Troops > 0 && from.Troops-amounts.Troops < minTroops {
		return ErrTransferOfferInvalidAmount.
			WithData("troops", amounts.Troops).
			WithData("min_party_troops", minTroops)
	}
	for _, item := range amounts.Items {
		stack := from.Item(item.ItemID)
		if stack == nil || stack.Count < item.Count {
			return ErrTransferOfferInvalidAmount.
				WithData("item_id", item.ItemID).
				WithData("count", item.Count)
		}
	}
	return nil
}

// Settle 按 accepted 在两支部队之间完成资源交割。
// 调用方先通过 ValidateAccepted / ValidateSource，本方法不再校验。
func Settle(from, to *Party, accepted TransferAmounts) {
	from.Gold -= accepted.Gold
	to.Gold += accepted.Gold
	from.Troops -= accepted.Troops
	to.Troops += accepted.Troops
	for _, item := range accepted.Items {
		if item.Count <= 0 {
			continue
		}
		stack := from.Item(item.ItemID)
		mountHP := 0
		if stack != nil {
			mountHP = stack.MountHitPoints
		}
		from.RemoveItem(item.ItemID, item.Count)
		to.AddItem(item.ItemID, item.Count, mountHP)
	}
}
