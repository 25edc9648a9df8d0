package handler

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"Strategus/internal/settlement/app"
	"Strategus/internal/settlement/domain"
	"Strategus/internal/shared/transport"
	"Strategus/internal/shared/transport/http/dto"
	"Strategus/modules/kit/logx"
)

type Settlement struct {
	settlementService *app.SettlementService
	log               logx.Logger
}

func NewSettlement(settlementRepo app.SettlementRepo, log logx.Logger) *Settlement {
	return &Settlement{
		settlementService: app.NewSettlementService(settlementRepo),
		log:               log,
	}
}

// RegisterRoutes 挂载据点路由。写操作属于地图编辑，挂在 admin 组。
func (h *Settlement) RegisterRoutes(group, admin *gin.RouterGroup) {
	group.GET("/settlements", h.List)
	group.GET("/settlements/:id", h.Get)
	admin.POST("/settlements", h.Save)
	admin.PUT("/settlements/:id", h.Save)
}

type settlementView struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Region       string            `json:"region"`
	Position     *geojson.Geometry `json:"position"`
	Troops       float64           `json:"troops"`
	OwnerPartyID *int              `json:"owner_party_id,omitempty"`
}

type settlementSaveReq struct {
	Name         string          `json:"name" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	Region       string          `json:"region" binding:"required"`
	Position     json.RawMessage `json:"position" binding:"required"`
	Troops       float64         `json:"troops" binding:"min=0"`
	OwnerPartyID *int            `json:"owner_party_id"`
}

func (h *Settlement) List(c *gin.Context) {
	ctx := c.Request.Context()

	settlements, err := h.settlementService.List(ctx)
	if err != nil {
		h.error(ctx, c, "settlement list", err)
		return
	}

	views := make([]settlementView, 0, len(settlements))
	for _, s := range settlements {
		views = append(views, newSettlementView(s))
	}
	h.ok(c, views)
}

func (h *Settlement) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	s, err := h.settlementService.Get(ctx, id)
	if err != nil {
		h.error(ctx, c, "settlement get", err)
		return
	}
	h.ok(c, newSettlementView(s))
}

func (h *Settlement) Save(c *gin.Context) {
	ctx := c.Request.Context()

	var req settlementSaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	position, err := parsePosition(req.Position)
	if err != nil {
		h.fail(c, transport.InvalidParam, "位置必须是 GeoJSON Point")
		return
	}

	id := 0
	if raw := c.Param("id"); raw != "" {
		id, err = strconv.Atoi(raw)
		if err != nil || id <= 0 {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
	}

	s := &domain.Settlement{
		ID:           id,
		Name:         req.Name,
		Type:         domain.SettlementType(req.Type),
		Region:       req.Region,
		Position:     position,
		Troops:       req.Troops,
		OwnerPartyID: req.OwnerPartyID,
	}
	s, err = h.settlementService.Save(ctx, s)
	if err != nil {
		h.error(ctx, c, "settlement save", err)
		return
	}
	h.ok(c, newSettlementView(s))
}

func newSettlementView(s *domain.Settlement) settlementView {
	return settlementView{
		ID:           s.ID,
		Name:         s.Name,
		Type:         string(s.Type),
		Region:       s.Region,
		Position:     geojson.NewGeometry(s.Position),
		Troops:       s.Troops,
		OwnerPartyID: s.OwnerPartyID,
	}
}

func parsePosition(raw json.RawMessage) (orb.Point, error) {
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return orb.Point{}, err
	}
	point, ok := geom.Geometry().(orb.Point)
	if !ok {
		return orb.Point{}, domain.ErrSettlementInvalidType
	}
	return point, nil
}

func (h *Settlement) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *Settlement) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *Settlement) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := HandleError(ctx, err)
	if code >= transport.SystemError {
		logx.ReportSysError(ctx, h.log, logx.NewSysLog(action+" tech error", err))
	} else {
		logx.ReportBizError(ctx, h.log, logx.NewBizLog(action+" reject", errReason(err), msg))
	}
	h.fail(c, code, msg)
}
