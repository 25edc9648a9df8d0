package handler

import (
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"

	"Strategus/internal/battle/app"
	"Strategus/internal/battle/domain"
	"Strategus/internal/shared/transport"
	"Strategus/internal/shared/transport/http/dto"
	"Strategus/modules/kit/logx"
)

type Battle struct {
	battleService *app.BattleService
	phaseService  *app.PhaseService
	log           logx.Logger
}

func NewBattle(battleService *app.BattleService, phaseService *app.PhaseService, log logx.Logger) *Battle {
	return &Battle{
		battleService: battleService,
		phaseService:  phaseService,
		log:           log,
	}
}

// RegisterRoutes 挂载战斗路由。阶段推进是运维触发的对账入口，挂在 admin 组。
func (h *Battle) RegisterRoutes(group, admin *gin.RouterGroup) {
	group.GET("/battles", h.List)
	group.GET("/battles/:id", h.Get)
	admin.POST("/battles/phases/advance", h.AdvancePhases)
}

type fighterView struct {
	ID               int     `json:"id"`
	PartyID          *int    `json:"party_id,omitempty"`
	SettlementID     *int    `json:"settlement_id,omitempty"`
	Side             string  `json:"side"`
	Commander        bool    `json:"commander"`
	Troops           float64 `json:"troops"`
	ParticipantSlots int     `json:"participant_slots"`
}

type battleView struct {
	ID           int               `json:"id"`
	Region       string            `json:"region"`
	Phase        string            `json:"phase"`
	Position     *geojson.Geometry `json:"position"`
	ScheduledFor *time.Time        `json:"scheduled_for,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Fighters     []fighterView     `json:"fighters"`
}

func (h *Battle) List(c *gin.Context) {
	ctx := c.Request.Context()

	battles, err := h.battleService.ListVisible(ctx)
	if err != nil {
		h.error(ctx, c, "battle list", err)
		return
	}

	views := make([]battleView, 0, len(battles))
	for _, b := range battles {
		views = append(views, newBattleView(b))
	}
	h.ok(c, views)
}

func (h *Battle) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	b, err := h.battleService.Get(ctx, id)
	if err != nil {
		h.error(ctx, c, "battle get", err)
		return
	}
	h.ok(c, newBattleView(b))
}

// AdvancePhases 推进所有到期战斗的阶段。
func (h *Battle) AdvancePhases(c *gin.Context) {
	ctx := c.Request.Context()

	advanced, err := h.phaseService.AdvancePhases(ctx)
	if err != nil {
		h.error(ctx, c, "battle phase advance", err)
		return
	}
	h.ok(c, gin.H{"advanced": advanced})
}

func newBattleView(b *domain.Battle) battleView {
	fighters := make([]fighterView, 0, len(b.Fighters))
	for _, f := range b.Fighters {
		fighters = append(fighters, fighterView{
			ID:               f.ID,
			PartyID:          f.PartyID,
			SettlementID:     f.SettlementID,
			Side:             string(f.Side),
			Commander:        f.Commander,
			Troops:           f.Troops,
			ParticipantSlots: f.ParticipantSlots,
		})
	}
	return battleView{
		ID:           b.ID,
		Region:       b.Region,
		Phase:        string(b.Phase),
		Position:     geojson.NewGeometry(b.Position),
		ScheduledFor: b.ScheduledFor,
		CreatedAt:    b.CreatedAt,
		Fighters:     fighters,
	}
}

func (h *Battle) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *Battle) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *Battle) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := HandleError(ctx, err)
	if code >= transport.SystemError {
		logx.ReportSysError(ctx, h.log, logx.NewSysLog(action+" tech error", err))
	} else {
		logx.ReportBizError(ctx, h.log, logx.NewBizLog(action+" reject", errReason(err), msg))
	}
	h.fail(c, code, msg)
}
