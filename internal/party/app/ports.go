package app

import (
	"context"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
	worlddomain "Strategus/internal/world/domain"
)

type PartyRepo interface {
	// GetParty 连同物品与订单一起装载。
	GetParty(ctx context.Context, id int) (*domain.Party, error)
	ListParties(ctx context.Context) ([]*domain.Party, error)
	// SaveParty 原子落库：部队行、物品堆叠、订单队列整体替换。
	SaveParty(ctx context.Context, p *domain.Party) error
	// SaveParties 在一个事务里落库多支部队。
	SaveParties(ctx context.Context, parties ...*domain.Party) error
}

type TransferOfferRepo interface {
	// GetOffer 连同物品行一起装载。
	GetOffer(ctx context.Context, id int) (*domain.TransferOffer, error)
	// ListOffersByParty 返回该部队作为任一方参与的全部要约。
	ListOffersByParty(ctx context.Context, partyID int) ([]*domain.TransferOffer, error)
	// GetIntentOffer 返回 party 向 target 的 Intent 要约，没有返回 not found。
	GetIntentOffer(ctx context.Context, partyID, targetPartyID int) (*domain.TransferOffer, error)
	CreateOffer(ctx context.Context, o *domain.TransferOffer) error
	SaveOfferStatus(ctx context.Context, o *domain.TransferOffer) error
	DeleteIntentOffersByParty(ctx context.Context, partyID int) error
	// SettleOffer 在单个事务内结算要约：锁定要约行复核 Pending 状态，
	// 锁定双方部队行后执行 settle 回调，余额落库并删除要约。
	// 要约已被并发答复结算时返回 ErrTransferOfferInvalidStatus。
	SettleOffer(ctx context.Context, offerID int, settle func(from, to *domain.Party) error) error
}

// BattleGateway 是战斗上下文暴露给部队调度的操作面。
type BattleGateway interface {
	GetBattle(ctx context.Context, id int) (*battledomain.Battle, error)
	CreateBattle(ctx context.Context, b *battledomain.Battle) error
	CreateApplication(ctx context.Context, a *battledomain.FighterApplication) error
	DeleteIntentApplicationsByParty(ctx context.Context, partyID int) error
	PromoteIntentApplications(ctx context.Context, partyID int) error
	ListApplicationsByParty(ctx context.Context, partyID int, statuses ...battledomain.ApplicationStatus) ([]*battledomain.FighterApplication, error)
	ListVisible(ctx context.Context) ([]*battledomain.Battle, error)
	// HasActiveSettlementBattle 返回某据点是否已有未结束的战斗。
	HasActiveSettlementBattle(ctx context.Context, settlementID int) (bool, error)
}

type SettlementReader interface {
	GetSettlement(ctx context.Context, id int) (*settlementdomain.Settlement, error)
	ListSettlements(ctx context.Context) ([]*settlementdomain.Settlement, error)
}

// TerrainProvider 提供整张地图的地形区域，行军与投影共用。
type TerrainProvider interface {
	ListTerrains(ctx context.Context) (worlddomain.Catalog, error)
}
