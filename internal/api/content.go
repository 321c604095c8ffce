package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCards returns the loaded card library.
func (h *BattleHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Cards)
}

// ListUnits returns the unit templates battles can be built from.
func (h *BattleHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Units)
}

// ListWeapons returns the weapon definitions.
func (h *BattleHandler) ListWeapons(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Weapons)
}
