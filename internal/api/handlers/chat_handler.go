package handlers

import (
	"context"
	"net/http"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/copilot"
	"github.com/gin-gonic/gin"
)

// Asker is implemented by copilot.Copilot.
type Asker interface {
	Ask(ctx context.Context, question string) copilot.Response
}

type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

type ChatHandler struct {
	copilot Asker
}

func NewChatHandler(asker Asker) *ChatHandler {
	return &ChatHandler{copilot: asker}
}

// Chat always answers 200 once the request is valid; failures are described in the body.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "question is required",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.copilot.Ask(c.Request.Context(), req.Question))
}
