package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizinteltz/api/fixtures"
	"bizinteltz/api/store"
)

type AdminHandlers struct {
	Store    *store.DirectoryStore
	Fixtures *fixtures.Generator
}

func NewAdminHandlers(s *store.DirectoryStore, gen *fixtures.Generator) *AdminHandlers {
	return &AdminHandlers{Store: s, Fixtures: gen}
}

func (h *AdminHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}

// Leaderboard falls back to the sample directory while no businesses exist.
func (h *AdminHandlers) Leaderboard(c *gin.Context) {
	list := h.Store.ListBusinesses()
	if len(list) == 0 {
		list = h.Fixtures.SampleDirectory()
	}
	c.JSON(http.StatusOK, h.Fixtures.Leaderboard(list))
}
