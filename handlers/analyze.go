package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immicv/models"
	"immicv/services"
	"immicv/utils"
)

var analyzeLog = utils.GlobalLogger.WithComponent("analyze")

// AnalyzeCVRequest is the shared input of the analyze and enhance
// endpoints. Unknown visa/industry values are accepted and fall back
// to the default profiles.
type AnalyzeCVRequest struct {
	CV             models.StructuredCV `json:"cv" binding:"required"`
	TargetVisa     string              `json:"target_visa"`
	TargetIndustry string              `json:"target_industry"`
}

// AnalyzeCV scores a structured CV against the target visa program and
// industry.
func AnalyzeCV(c *gin.Context) {
	var req AnalyzeCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Request must include a cv object", err)
		return
	}

	analysis := services.CalculateATSScore(&req.CV, req.TargetVisa, req.TargetIndustry)
	analyzeLog.Info("scored CV", gin.H{
		"total":    analysis.TotalScore,
		"visa":     req.TargetVisa,
		"industry": req.TargetIndustry,
	})

	utils.SuccessResponse(c, http.StatusOK, "CV analyzed", analysis)
}

// EnhanceCV layers per-section improvement suggestions on top of a
// fresh analysis.
func EnhanceCV(c *gin.Context) {
	var req AnalyzeCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Request must include a cv object", err)
		return
	}

	result := services.GenerateCVEnhancements(&req.CV, req.TargetVisa, req.TargetIndustry)
	analyzeLog.Info("generated enhancements", gin.H{
		"current":   result.EstimatedImpact.CurrentScore,
		"projected": result.EstimatedImpact.ProjectedScore,
	})

	utils.SuccessResponse(c, http.StatusOK, "Enhancements generated", result)
}
