package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dolpcrm/internal/services"
)

// IntegrationsHandler exposes the pairing flow for external notification
// channels.
type IntegrationsHandler struct {
	Users services.UserService
}

func NewIntegrationsHandler(users services.UserService) *IntegrationsHandler {
	return &IntegrationsHandler{Users: users}
}

// TelegramLink issues the one-time code the user sends to the bot with
// /start <code> to pair their chat for notifications.
func (h *IntegrationsHandler) TelegramLink(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}
	code, err := h.Users.RequestTelegramLink(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":      code,
		"instrucao": "Envie /start " + code + " para o bot no Telegram",
	})
}
