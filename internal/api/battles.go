package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/service"
)

type CreateBattleRequest struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// CreateBattle starts a new battle between two named teams.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Left) == 0 || len(req.Right) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.svc.CreateBattle(req.Left, req.Right)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBattles returns the battle index without state blobs.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	battles, err := h.svc.ListBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, battles)
}

// GetBattle returns the full battle state.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	b, err := h.svc.GetBattle(c.Param("battleID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RollSpeed rolls the round's speed dice and opens planning.
func (h *BattleHandler) RollSpeed(c *gin.Context) {
	b, err := h.svc.RollSpeed(c.Param("battleID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SubmitPlan assigns a card to a slot during planning.
func (h *BattleHandler) SubmitPlan(c *gin.Context) {
	var plan service.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.svc.SubmitPlan(c.Param("battleID"), plan)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Resolve runs the planned round.
func (h *BattleHandler) Resolve(c *gin.Context) {
	b, err := h.svc.Resolve(c.Param("battleID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetLog returns the accumulated combat log.
func (h *BattleHandler) GetLog(c *gin.Context) {
	b, err := h.svc.GetBattle(c.Param("battleID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": b.Log})
}

// ListSnapshots returns the rewindable round index for a battle.
func (h *BattleHandler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.svc.ListSnapshots(c.Param("battleID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

type RewindRequest struct {
	Round int `json:"round"`
}

// Rewind restores the battle to the state before a completed round.
func (h *BattleHandler) Rewind(c *gin.Context) {
	var req RewindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Also accept ?round=N for convenience.
		if n, convErr := strconv.Atoi(c.Query("round")); convErr == nil {
			req.Round = n
		} else {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	b, err := h.svc.Rewind(c.Param("battleID"), req.Round)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
