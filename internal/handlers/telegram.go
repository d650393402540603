package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/yukikurage/company-tracker-api/internal/dto"
	"github.com/yukikurage/company-tracker-api/internal/services"
	"go.uber.org/zap"
)

// TelegramHandler serves the bot webhook and linked group management.
type TelegramHandler struct {
	telegramService *services.TelegramService
	log             *zap.Logger
}

func NewTelegramHandler(telegramService *services.TelegramService, log *zap.Logger) *TelegramHandler {
	return &TelegramHandler{
		telegramService: telegramService,
		log:             log.Named("telegram.webhook"),
	}
}

// Webhook receives bot updates. The secret is checked by middleware; from
// there on the platform always gets a 200 so it does not redeliver.
func (h *TelegramHandler) Webhook(c *gin.Context) {
	var update tgmodels.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.log.Warn("failed to decode update", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.telegramService.HandleUpdate(c.Request.Context(), &update); err != nil {
		h.log.Error("failed to handle update", zap.Int64("update_id", update.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListGroups returns chats linked to the caller's companies
func (h *TelegramHandler) ListGroups(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	groups, err := h.telegramService.ListGroups(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// LinkGroup links a chat to one of the caller's companies
func (h *TelegramHandler) LinkGroup(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}

	type LinkGroupRequest struct {
		ChatID    int64   `json:"chatId" binding:"required"`
		CompanyID uint64  `json:"companyId" binding:"required"`
		Title     *string `json:"title"`
	}

	var req LinkGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.telegramService.LinkGroup(userID, services.LinkGroupInput{
		ChatID:    req.ChatID,
		CompanyID: req.CompanyID,
		Title:     req.Title,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListMembers returns the users seen in a linked group
func (h *TelegramHandler) ListMembers(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "gid")
	if !ok {
		return
	}

	members, err := h.telegramService.ListMembers(userID, groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTelegramMemberDTOs(members))
}
