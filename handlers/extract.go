package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"immicv/parsers"
	"immicv/utils"
)

var extractLog = utils.GlobalLogger.WithComponent("extract")

// ExtractAndParseCV accepts an uploaded CV file (PDF, DOCX or plain
// text), extracts its text and runs the parser over it.
func ExtractAndParseCV(c *gin.Context) {
	file, header, err := c.Request.FormFile("cv")
	if err != nil {
		utils.BadRequestError(c, "Could not read uploaded file", err)
		return
	}
	defer file.Close()

	tempFile := filepath.Join(os.TempDir(), filepath.Base(header.Filename))
	out, err := os.Create(tempFile)
	if err != nil {
		utils.InternalServerError(c, "Failed to save file", err)
		return
	}
	defer os.Remove(tempFile)

	if _, err = io.Copy(out, file); err != nil {
		out.Close()
		utils.InternalServerError(c, "Failed to save file", err)
		return
	}
	out.Close()

	text, err := parsers.NewDocumentExtractor().ExtractText(tempFile)
	if err != nil {
		extractLog.Error("text extraction failed", err, gin.H{"filename": header.Filename})
		utils.UnprocessableError(c, "Could not extract text from the document", err)
		return
	}

	result := parsers.ParseTextToCV(text)
	extractLog.Info("extracted and parsed upload", gin.H{
		"filename":   header.Filename,
		"confidence": result.Confidence,
	})

	utils.SuccessResponse(c, http.StatusOK, "Document processed", result)
}
