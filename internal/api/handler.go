// Package api exposes the battle service over HTTP with gin. Handlers
// translate between JSON requests, the service's sentinel errors and HTTP
// status codes; no game logic lives here.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/librozavisim/lor-simulator/internal/config"
	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/service"
)

// BattleHandler carries the service and the loaded content shared by all
// routes.
type BattleHandler struct {
	svc     *service.Service
	content *config.LoadedContent
}

func NewBattleHandler(svc *service.Service, content *config.LoadedContent) *BattleHandler {
	return &BattleHandler{svc: svc, content: content}
}

// RegisterRoutes mounts every API route on the router group.
func (h *BattleHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(constants.RouteCards, h.ListCards)
	r.GET(constants.RouteUnits, h.ListUnits)
	r.GET(constants.RouteWeapons, h.ListWeapons)

	r.GET(constants.RouteBattles, h.ListBattles)
	r.POST(constants.RouteBattles, h.CreateBattle)
	r.GET(constants.RouteBattleByID, h.GetBattle)
	r.POST(constants.RouteBattleSpeed, h.RollSpeed)
	r.POST(constants.RouteBattlePlan, h.SubmitPlan)
	r.POST(constants.RouteBattleResolve, h.Resolve)
	r.GET(constants.RouteBattleLog, h.GetLog)
	r.GET(constants.RouteBattleSnapshots, h.ListSnapshots)
	r.POST(constants.RouteBattleRewind, h.Rewind)
}

// writeServiceError maps the service's sentinel errors onto HTTP codes.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrBattleOver):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleAlreadyOver})
	case errors.Is(err, service.ErrNotRollPhase):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotRollPhase})
	case errors.Is(err, service.ErrNotPlanning):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotPlanning})
	case errors.Is(err, service.ErrUnknownUnit):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownUnit})
	case errors.Is(err, service.ErrUnknownSlot):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownSlot})
	case errors.Is(err, service.ErrUnknownCard), errors.Is(err, service.ErrCardNotInDeck):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCard})
	case errors.Is(err, service.ErrCardOnCooldown):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCardOnCooldown})
	case errors.Is(err, service.ErrSlotStunned):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSlotStunned})
	case errors.Is(err, service.ErrSnapshotNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSnapshotNotFound})
	case errors.Is(err, service.ErrUnknownTemplate):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownUnit})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveBattle})
	}
}
