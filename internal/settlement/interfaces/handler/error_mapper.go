package handler

import (
	"context"
	"errors"

	"Strategus/internal/settlement/domain"
	"Strategus/internal/shared/transport"
	"Strategus/modules/kit/errx"
)

func clientCode(err error) int {
	switch {
	case err == nil:
		return transport.OK
	case errors.Is(err, domain.ErrSettlementNotFound):
		return transport.NotFound
	case errors.Is(err, domain.ErrSettlementInvalidType):
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
