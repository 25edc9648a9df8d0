package handler

import (
	"context"
	"errors"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
	"Strategus/internal/shared/transport"
	"Strategus/modules/kit/errx"
)

func clientCode(err error) int {
	switch {
	case err == nil:
		return transport.OK
	case errors.Is(err, domain.ErrPartyNotFound),
		errors.Is(err, domain.ErrTransferOfferNotFound),
		errors.Is(err, settlementdomain.ErrSettlementNotFound),
		errors.Is(err, battledomain.ErrBattleNotFound):
		return transport.NotFound
	case errors.Is(err, domain.ErrPartyInBattle),
		errors.Is(err, domain.ErrPartyNotInSight),
		errors.Is(err, domain.ErrPartyNotEnoughTroops),
		errors.Is(err, domain.ErrPartyNotEnoughGold),
		errors.Is(err, domain.ErrTransferOfferNotAllowed),
		errors.Is(err, domain.ErrTransferOfferInvalidStatus):
		return transport.BizRejected
	case errors.Is(err, domain.ErrInvalidOrder),
		errors.Is(err, domain.ErrTransferOfferInvalidAmount),
		errors.Is(err, domain.ErrTransferOfferInvalidItem),
		errors.Is(err, domain.ErrTransferOfferMissingAmounts):
		return transport.InvalidParam
	default:
		return transport.SystemError
	}
}

func errReason(err error) string {
	var e *errx.Error
	if errors.As(err, &e) {
		return e.CodeText()
	}
	return ""
}

// HandleError 把领域错误翻译成客户端业务码，并把 reason 写进 access 日志上下文。
func HandleError(ctx context.Context, err error) (int, string) {
	var e *errx.Error
	if errors.As(err, &e) {
		transport.SetErrorReason(ctx, e.CodeText())
	}

	code := clientCode(err)
	if code == transport.SystemError {
		return code, "系统繁忙，请稍后重试"
	}
	return code, errx.MsgOrCode(err)
}
