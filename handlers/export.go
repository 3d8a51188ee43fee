package handlers

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"immicv/models"
	"immicv/utils"
)

// ExportCVRequest wraps the CV to render as a Word document.
type ExportCVRequest struct {
	CV models.StructuredCV `json:"cv" binding:"required"`
}

// ExportCVWord renders a structured CV to .docx and streams it back.
func ExportCVWord(c *gin.Context) {
	var req ExportCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Request must include a cv object", err)
		return
	}

	tempFile := filepath.Join(os.TempDir(), "cv-"+uuid.NewString()+".docx")
	defer os.Remove(tempFile)

	if err := utils.GenerateCVWordFile(&req.CV, tempFile); err != nil {
		utils.InternalServerError(c, "Failed to generate Word document", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cv.docx"`)
	c.File(tempFile)
}
