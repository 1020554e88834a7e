package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lingolink/middleware"
	"lingolink/utils"
)

// GetStreamToken mints the chat provider token for the authenticated user.
// The frontend connects to the provider directly with it.
func (h *Handler) GetStreamToken(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, err := h.chat.TokenFor(userID)
	if err != nil {
		h.logger.Error("stream token generation failed", zap.Error(err))
		utils.InternalError(c, "Internal server error")
		return
	}

	utils.Success(c, gin.H{"token": token})
}
