package handler

import (
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/app"
	"Strategus/internal/party/domain"
	"Strategus/internal/shared/transport"
	"Strategus/internal/shared/transport/http/dto"
	"Strategus/internal/shared/transport/http/middleware"
	"Strategus/modules/kit/logx"
)

type Party struct {
	projectionService *app.ProjectionService
	orderService      *app.OrderService
	transferService   *app.TransferService
	movementService   *app.MovementService
	troopsService     *app.TroopsService
	log               logx.Logger
}

func NewParty(projectionService *app.ProjectionService, orderService *app.OrderService,
	transferService *app.TransferService, movementService *app.MovementService,
	troopsService *app.TroopsService, log logx.Logger) *Party {
	return &Party{
		projectionService: projectionService,
		orderService:      orderService,
		transferService:   transferService,
		movementService:   movementService,
		troopsService:     troopsService,
		log:               log,
	}
}

// RegisterRoutes 挂载部队路由。
// 位置与募兵结算是运维触发的对账入口，挂在 admin 组。
func (h *Party) RegisterRoutes(group, admin *gin.RouterGroup) {
	group.GET("/parties/self/update", h.GetUpdate)
	group.PUT("/parties/self/orders", h.UpdateOrders)
	group.PUT("/transfer-offers/:id/response", h.RespondTransferOffer)
	admin.POST("/parties/positions/update", h.MoveParties)
	admin.POST("/parties/troops/update", h.GrowTroops)
}

type transferAmountItemReq struct {
	ItemID string `json:"item_id" binding:"required"`
	Count  int    `json:"count" binding:"min=0"`
}

type transferAmountsReq struct {
	Gold   int                     `json:"gold" binding:"min=0"`
	Troops float64                 `json:"troops" binding:"min=0"`
	Items  []transferAmountItemReq `json:"items"`
}

func (r *transferAmountsReq) toAmounts() *domain.TransferAmounts {
	if r == nil {
		return nil
	}
	amounts := &domain.TransferAmounts{Gold: r.Gold, Troops: r.Troops}
	for _, it := range r.Items {
		amounts.Items = append(amounts.Items, domain.TransferAmountItem{ItemID: it.ItemID, Count: it.Count})
	}
	return amounts
}

type orderItemReq struct {
	Type               string              `json:"type" binding:"required"`
	Waypoints          *geojson.Geometry   `json:"waypoints"`
	TargetPartyID      int                 `json:"target_party_id"`
	TargetSettlementID int                 `json:"target_settlement_id"`
	TargetBattleID     int                 `json:"target_battle_id"`
	JoinSides          []string            `json:"join_sides"`
	TransferIntent     *transferAmountsReq `json:"transfer_intent"`
}

type updateOrdersReq struct {
	Orders []orderItemReq `json:"orders"`
}

type respondTransferOfferReq struct {
	Accept   bool                `json:"accept"`
	Accepted *transferAmountsReq `json:"accepted"`
}

type tickReq struct {
	DeltaSeconds float64 `json:"delta_seconds" binding:"required,gt=0"`
}

// GetUpdate 返回当前部队视角的战役地图快照。
func (h *Party) GetUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, ok := middleware.PartyID(c)
	if !ok {
		h.fail(c, transport.Unauthorized, "未登录")
		return
	}

	update, err := h.projectionService.GetUpdate(ctx, partyID)
	if err != nil {
		h.error(ctx, c, "party update", err)
		return
	}
	h.ok(c, newUpdateView(update))
}

// UpdateOrders 整体替换当前部队的订单队列。
func (h *Party) UpdateOrders(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, ok := middleware.PartyID(c)
	if !ok {
		h.fail(c, transport.Unauthorized, "未登录")
		return
	}

	var req updateOrdersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	items := make([]app.OrderItem, 0, len(req.Orders))
	for _, o := range req.Orders {
		item := app.OrderItem{
			Type:               domain.OrderType(o.Type),
			TargetPartyID:      o.TargetPartyID,
			TargetSettlementID: o.TargetSettlementID,
			TargetBattleID:     o.TargetBattleID,
		}
		if o.Waypoints != nil {
			mp, ok := o.Waypoints.Geometry().(orb.MultiPoint)
			if !ok {
				h.fail(c, transport.InvalidParam, "途径点必须是 MultiPoint")
				return
			}
			item.Waypoints = mp
		}
		for _, side := range o.JoinSides {
			item.JoinSides = append(item.JoinSides, battledomain.Side(side))
		}
		if o.TransferIntent != nil {
			item.TransferIntent = o.TransferIntent.toAmounts()
		}
		items = append(items, item)
	}

	party, err := h.orderService.UpdateOrders(ctx, partyID, items)
	if err != nil {
		h.error(ctx, c, "party orders update", err)
		return
	}
	h.ok(c, newPartyView(party))
}

// RespondTransferOffer 答复一个转让要约，可部分接受。
func (h *Party) RespondTransferOffer(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, ok := middleware.PartyID(c)
	if !ok {
		h.fail(c, transport.Unauthorized, "未登录")
		return
	}

	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil || offerID <= 0 {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	var req respondTransferOfferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	offer, err := h.transferService.Respond(ctx, partyID, offerID, req.Accept, req.Accepted.toAmounts())
	if err != nil {
		h.error(ctx, c, "transfer offer respond", err)
		return
	}
	h.ok(c, newOfferView(offer))
}

// MoveParties 结算一段真实时间内所有部队的移动与交互。
func (h *Party) MoveParties(c *gin.Context) {
	ctx := c.Request.Context()

	var req tickReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	moved, err := h.movementService.MoveParties(ctx, time.Duration(req.DeltaSeconds*float64(time.Second)))
	if err != nil {
		h.error(ctx, c, "party positions update", err)
		return
	}
	h.ok(c, gin.H{"moved": moved})
}

// GrowTroops 结算一段真实时间内募兵部队的兵力增长。
func (h *Party) GrowTroops(c *gin.Context) {
	ctx := c.Request.Context()

	var req tickReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	grown, err := h.troopsService.GrowTroops(ctx, time.Duration(req.DeltaSeconds*float64(time.Second)))
	if err != nil {
		h.error(ctx, c, "party troops update", err)
		return
	}
	h.ok(c, gin.H{"grown": grown})
}

func (h *Party) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *Party) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *Party) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := HandleError(ctx, err)
	if code >= transport.SystemError {
		logx.ReportSysError(ctx, h.log, logx.NewSysLog(action+" tech error", err))
	} else {
		logx.ReportBizError(ctx, h.log, logx.NewBizLog(action+" reject", errReason(err), msg))
	}
	h.fail(c, code, msg)
}
