package handler

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"Strategus/internal/shared/transport"
	"Strategus/internal/shared/transport/http/dto"
	"Strategus/internal/world/app"
	"Strategus/internal/world/domain"
	"Strategus/modules/kit/logx"
)

type Terrain struct {
	terrainService *app.TerrainService
	log            logx.Logger
}

func NewTerrain(terrainRepo app.TerrainRepo, log logx.Logger) *Terrain {
	return &Terrain{
		terrainService: app.NewTerrainService(terrainRepo),
		log:            log,
	}
}

// RegisterRoutes 挂载地形路由。写操作属于地图编辑，挂在 admin 组。
func (h *Terrain) RegisterRoutes(group, admin *gin.RouterGroup) {
	group.GET("/terrains", h.List)
	admin.POST("/terrains", h.Save)
	admin.PUT("/terrains/:id", h.Save)
	admin.DELETE("/terrains/:id", h.Delete)
}

type terrainView struct {
	ID       int               `json:"id"`
	Type     string            `json:"type"`
	Boundary *geojson.Geometry `json:"boundary"`
}

type terrainSaveReq struct {
	Type     string          `json:"type" binding:"required"`
	Boundary json.RawMessage `json:"boundary" binding:"required"`
}

func (h *Terrain) List(c *gin.Context) {
	ctx := c.Request.Context()

	terrains, err := h.terrainService.List(ctx)
	if err != nil {
		h.error(ctx, c, "terrain list", err)
		return
	}

	views := make([]terrainView, 0, len(terrains))
	for _, t := range terrains {
		views = append(views, newTerrainView(t))
	}
	h.ok(c, views)
}

func (h *Terrain) Save(c *gin.Context) {
	ctx := c.Request.Context()

	var req terrainSaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	boundary, err := parseBoundary(req.Boundary)
	if err != nil {
		h.fail(c, transport.InvalidParam, "边界必须是 GeoJSON Polygon")
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

	t, err := h.terrainService.Save(ctx, id, domain.TerrainType(req.Type), boundary)
	if err != nil {
		h.error(ctx, c, "terrain save", err)
		return
	}
	h.ok(c, newTerrainView(t))
}

func (h *Terrain) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.terrainService.Delete(ctx, id); err != nil {
		h.error(ctx, c, "terrain delete", err)
		return
	}
	h.ok(c, nil)
}

func newTerrainView(t *domain.Terrain) terrainView {
	return terrainView{
		ID:       t.ID,
		Type:     string(t.Type),
		Boundary: geojson.NewGeometry(t.Boundary),
	}
}

func parseBoundary(raw json.RawMessage) (orb.Polygon, error) {
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, err
	}
	poly, ok := geom.Geometry().(orb.Polygon)
	if !ok {
		return nil, domain.ErrTerrainInvalidType
	}
	return poly, nil
}

func (h *Terrain) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *Terrain) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *Terrain) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := HandleError(ctx, err)
	if code >= transport.SystemError {
		logx.ReportSysError(ctx, h.log, logx.NewSysLog(action+" tech error", err))
	} else {
		logx.ReportBizError(ctx, h.log, logx.NewBizLog(action+" reject", errReason(err), msg))
	}
	h.fail(c, code, msg)
}
