package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kol-marketplace/internal/domain"
)

func (h handlers) listQuestions(c *gin.Context) {
	questions, err := h.deps.Onboarding.Questions(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": questions})
}

type answersRequest struct {
	UserID     string             `json:"userId" binding:"required"`
	Selections []domain.Selection `json:"selections" binding:"required"`
}

func (h handlers) submitAnswers(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.deps.Onboarding.ProcessSelections(c.Request.Context(), req.UserID, req.Selections); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
