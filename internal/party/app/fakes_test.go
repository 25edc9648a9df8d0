package app

import (
	"context"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
	worlddomain "Strategus/internal/world/domain"
)

type fakePartyRepo struct {
	parties    []*domain.Party
	saveCalls  int
	savedBatch []*domain.Party
}

func (r *fakePartyRepo) GetParty(ctx context.Context, id int) (*domain.Party, error) {
	for _, p := range r.parties {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPartyNotFound.WithData("id", id)
}

func (r *fakePartyRepo) ListParties(ctx context.Context) ([]*domain.Party, error) {
	return r.parties, nil
}

func (r *fakePartyRepo) SaveParty(ctx context.Context, p *domain.Party) error {
	r.saveCalls++
	return nil
}

func (r *fakePartyRepo) SaveParties(ctx context.Context, parties ...*domain.Party) error {
	r.saveCalls++
	r.savedBatch = parties
	return nil
}

type fakeOfferRepo struct {
	offers  []*domain.TransferOffer
	parties *fakePartyRepo
	nextID  int
	settled []int
	// settleErr 注入结算失败
	settleErr error
	// beforeSettle 在结算事务复核状态之前调用，用来模拟并发改写
	beforeSettle func()
}

func (r *fakeOfferRepo) GetOffer(ctx context.Context, id int) (*domain.TransferOffer, error) {
	for _, o := range r.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrTransferOfferNotFound.WithData("id", id)
}

func (r *fakeOfferRepo) ListOffersByParty(ctx context.Context, partyID int) ([]*domain.TransferOffer, error) {
	var out []*domain.TransferOffer
	for _, o := range r.offers {
		if o.PartyID == partyID || o.TargetPartyID == partyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) GetIntentOffer(ctx context.Context, partyID, targetPartyID int) (*domain.TransferOffer, error) {
	for _, o := range r.offers {
		if o.PartyID == partyID && o.TargetPartyID == targetPartyID && o.Status == domain.TransferIntent {
			return o, nil
		}
	}
	return nil, domain.ErrTransferOfferNotFound
}

func (r *fakeOfferRepo) CreateOffer(ctx context.Context, o *domain.TransferOffer) error {
	r.nextID++
	o.ID = r.nextID
	r.offers = append(r.offers, o)
	return nil
}

func (r *fakeOfferRepo) SaveOfferStatus(ctx context.Context, o *domain.TransferOffer) error {
	return nil
}

func (r *fakeOfferRepo) DeleteIntentOffersByParty(ctx context.Context, partyID int) error {
	kept := r.offers[:0]
	for _, o := range r.offers {
		if o.PartyID == partyID && o.Status == domain.TransferIntent {
			continue
		}
		kept = append(kept, o)
	}
	r.offers = kept
	return nil
}

func (r *fakeOfferRepo) SettleOffer(ctx context.Context, offerID int, settle func(from, to *domain.Party) error) error {
	if r.settleErr != nil {
		return r.settleErr
	}
	if r.beforeSettle != nil {
		r.beforeSettle()
	}
	var offer *domain.TransferOffer
	for _, o := range r.offers {
		if o.ID == offerID {
			offer = o
			break
		}
	}
	if offer == nil || offer.Status != domain.TransferPending {
		return domain.ErrTransferOfferInvalidStatus.WithData("offer_id", offerID)
	}
	from, err := r.parties.GetParty(ctx, offer.PartyID)
	if err != nil {
		return err
	}
	to, err := r.parties.GetParty(ctx, offer.TargetPartyID)
	if err != nil {
		return err
	}
	if err := settle(from, to); err != nil {
		return err
	}
	r.settled = append(r.settled, offerID)
	for i, o := range r.offers {
		if o.ID == offerID {
			r.offers = append(r.offers[:i], r.offers[i+1:]...)
			break
		}
	}
	return nil
}

type fakeBattleGateway struct {
	battles          []*battledomain.Battle
	applications     []*battledomain.FighterApplication
	nextID           int
	activeSettlement map[int]bool
}

func (g *fakeBattleGateway) GetBattle(ctx context.Context, id int) (*battledomain.Battle, error) {
	for _, b := range g.battles {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, battledomain.ErrBattleNotFound.WithData("id", id)
}

func (g *fakeBattleGateway) CreateBattle(ctx context.Context, b *battledomain.Battle) error {
	g.nextID++
	b.ID = g.nextID
	g.battles = append(g.battles, b)
	return nil
}

func (g *fakeBattleGateway) CreateApplication(ctx context.Context, a *battledomain.FighterApplication) error {
	g.nextID++
	a.ID = g.nextID
	g.applications = append(g.applications, a)
	return nil
}

func (g *fakeBattleGateway) DeleteIntentApplicationsByParty(ctx context.Context, partyID int) error {
	kept := g.applications[:0]
	for _, a := range g.applications {
		if a.PartyID == partyID && a.Status == battledomain.ApplicationIntent {
			continue
		}
		kept = append(kept, a)
	}
	g.applications = kept
	return nil
}

func (g *fakeBattleGateway) PromoteIntentApplications(ctx context.Context, partyID int) error {
	for _, a := range g.applications {
		if a.PartyID == partyID && a.Status == battledomain.ApplicationIntent {
			a.Status = battledomain.ApplicationPending
		}
	}
	return nil
}

func (g *fakeBattleGateway) ListApplicationsByParty(ctx context.Context, partyID int, statuses ...battledomain.ApplicationStatus) ([]*battledomain.FighterApplication, error) {
	var out []*battledomain.FighterApplication
	for _, a := range g.applications {
		if a.PartyID != partyID {
			continue
		}
		if len(statuses) == 0 {
			out = append(out, a)
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (g *fakeBattleGateway) ListVisible(ctx context.Context) ([]*battledomain.Battle, error) {
	var out []*battledomain.Battle
	for _, b := range g.battles {
		if b.Phase != battledomain.PhaseEnd {
			out = append(out, b)
		}
	}
	return out, nil
}

func (g *fakeBattleGateway) HasActiveSettlementBattle(ctx context.Context, settlementID int) (bool, error) {
	return g.activeSettlement[settlementID], nil
}

type fakeSettlementReader struct {
	settlements []*settlementdomain.Settlement
}

func (r *fakeSettlementReader) GetSettlement(ctx context.Context, id int) (*settlementdomain.Settlement, error) {
	for _, s := range r.settlements {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, settlementdomain.ErrSettlementNotFound.WithData("id", id)
}

func (r *fakeSettlementReader) ListSettlements(ctx context.Context) ([]*settlementdomain.Settlement, error) {
	return r.settlements, nil
}

type fakeTerrainProvider struct {
	catalog worlddomain.Catalog
}

func (p *fakeTerrainProvider) ListTerrains(ctx context.Context) (worlddomain.Catalog, error) {
	return p.catalog, nil
}
