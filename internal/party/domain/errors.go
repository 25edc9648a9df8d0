package domain

import "Strategus/modules/kit/errx"

type Code = errx.Code

const (
	CodePartyNotFound        Code = "PARTY_NOT_FOUND"
	CodePartyInBattle        Code = "PARTY_IN_BATTLE"
	CodePartyNotInSight      Code = "PARTY_NOT_IN_SIGHT"
	CodePartyNotEnoughTroops Code = "PARTY_NOT_ENOUGH_TROOPS"
	CodePartyNotEnoughGold   Code = "PARTY_NOT_ENOUGH_GOLD"
	CodeInvalidOrder         Code = "PARTY_INVALID_ORDER"

	CodeTransferOfferNotFound       Code = "TRANSFER_OFFER_NOT_FOUND"
	CodeTransferOfferNotAllowed     Code = "TRANSFER_OFFER_NOT_ALLOWED"
	CodeTransferOfferInvalidStatus  Code = "TRANSFER_OFFER_INVALID_STATUS"
	CodeTransferOfferInvalidAmount  Code = "TRANSFER_OFFER_INVALID_AMOUNT"
	CodeTransferOfferInvalidItem    Code = "TRANSFER_OFFER_INVALID_ITEM"
	CodeTransferOfferMissingAmounts Code = "TRANSFER_OFFER_MISSING_AMOUNTS"

	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrPartyNotFound        = errx.NewBiz(CodePartyNotFound, "")
	ErrPartyInBattle        = errx.NewBiz(CodePartyInBattle, "")
	ErrPartyNotInSight      = errx.NewBiz(CodePartyNotInSight, "")
	ErrPartyNotEnoughTroops = errx.NewBiz(CodePartyNotEnoughTroops, "")
	ErrPartyNotEnoughGold   = errx.NewBiz(CodePartyNotEnoughGold, "")
	ErrInvalidOrder         = errx.NewBiz(CodeInvalidOrder, "")

	ErrTransferOfferNotFound = errx.NewBiz(CodeTransferOfferNotFound, "")
	// ErrTransferOfferNotAllowed：答复人不是要约的目标方。
	ErrTransferOfferNotAllowed     = errx.NewBiz(CodeTransferOfferNotAllowed, "")
	ErrTransferOfferInvalidStatus  = errx.NewBiz(CodeTransferOfferInvalidStatus, "")
	ErrTransferOfferInvalidAmount  = errx.NewBiz(CodeTransferOfferInvalidAmount, "")
	ErrTransferOfferInvalidItem    = errx.NewBiz(CodeTransferOfferInvalidItem, "")
	ErrTransferOfferMissingAmounts = errx.NewBiz(CodeTransferOfferMissingAmounts, "")

	ErrSystemUnavailable = errx.ErrUnavailable
)
