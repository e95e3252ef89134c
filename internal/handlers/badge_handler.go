package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"learning-service/internal/auth"
	"learning-service/internal/service"
)

type BadgeHandler struct {
	Service *service.BadgeService
}

func NewBadgeHandler(s *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{Service: s}
}

func (h *BadgeHandler) MyBadges(c *gin.Context) {
	badges, err := h.Service.MyBadges(context.Background(), auth.ActorFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

func (h *BadgeHandler) GetBadge(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	badge, err := h.Service.Get(context.Background(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badge)
}
