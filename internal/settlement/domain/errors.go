package domain

import "Strategus/modules/kit/errx"

type Code = errx.Code

const (
	CodeSettlementNotFound    Code = "SETTLEMENT_NOT_FOUND"
	CodeSettlementInvalidType Code = "SETTLEMENT_INVALID_TYPE"
	CodeSystemUnavailable     Code = errx.CodeUnavailable
)

var (
	ErrSettlementNotFound    = errx.NewBiz(CodeSettlementNotFound, "")
	ErrSettlementInvalidType = errx.NewBiz(CodeSettlementInvalidType, "")
	ErrSystemUnavailable     = errx.ErrUnavailable
)
