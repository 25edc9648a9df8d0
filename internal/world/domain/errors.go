package domain

import "Strategus/modules/kit/errx"

type Code = errx.Code

const (
	CodeTerrainNotFound    Code = "WORLD_TERRAIN_NOT_FOUND"
	CodeTerrainInvalidType Code = "WORLD_TERRAIN_INVALID_TYPE"
	// CodeSystemUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrTerrainNotFound    = errx.NewBiz(CodeTerrainNotFound, "")
	ErrTerrainInvalidType = errx.NewBiz(CodeTerrainInvalidType, "")
	ErrSystemUnavailable  = errx.ErrUnavailable
)
