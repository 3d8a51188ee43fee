package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immicv/parsers"
	"immicv/utils"
)

var parseLog = utils.GlobalLogger.WithComponent("parse")

// ParseCVRequest carries raw document text extracted upstream.
type ParseCVRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseCV converts raw CV text into a structured record. A failed
// parse is still a 200: the ParseResult carries success=false and the
// frontend falls back to manual entry.
func ParseCV(c *gin.Context) {
	var req ParseCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Request must include a text field", err)
		return
	}

	result := parsers.ParseTextToCV(req.Text)
	if !result.Success {
		parseLog.Warn("parse failed", gin.H{"error": result.Error})
	} else {
		parseLog.Info("parsed CV", gin.H{"confidence": result.Confidence})
	}

	utils.SuccessResponse(c, http.StatusOK, "CV parsed", result)
}
