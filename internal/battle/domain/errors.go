package domain

import "Strategus/modules/kit/errx"

type Code = errx.Code

const (
	CodeBattleNotFound     Code = "BATTLE_NOT_FOUND"
	CodeBattleInWrongPhase Code = "BATTLE_INVALID_PHASE"
	// CodeNotEnoughSlots：名额少于参战方数量时拒绝分配，而不是悄悄分 0。
	CodeNotEnoughSlots    Code = "BATTLE_NOT_ENOUGH_SLOTS"
	CodeHourOutOfRange    Code = "BATTLE_HOUR_OUT_OF_RANGE"
	CodeNoDefender        Code = "BATTLE_NO_DEFENDER"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrBattleNotFound     = errx.NewBiz(CodeBattleNotFound, "")
	ErrBattleInWrongPhase = errx.NewBiz(CodeBattleInWrongPhase, "")
	ErrNotEnoughSlots     = errx.NewBiz(CodeNotEnoughSlots, "")
	ErrHourOutOfRange     = errx.NewBiz(CodeHourOutOfRange, "")
	ErrNoDefender         = errx.NewBiz(CodeNoDefender, "")
	ErrSystemUnavailable  = errx.ErrUnavailable
)
