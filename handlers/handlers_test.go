package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"immicv/models"
	"immicv/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/cv/parse", ParseCV)
	r.POST("/api/cv/analyze", AnalyzeCV)
	r.POST("/api/cv/enhance", EnhanceCV)
	r.GET("/api/reference/visas", ListVisaPrograms)
	r.GET("/api/reference/industries", ListIndustries)
	r.GET("/api/reference/templates", ListCVTemplates)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestParseCV_Success(t *testing.T) {
	r := newRouter()
	w := postJSON(r, "/api/cv/parse", gin.H{
		"text": "Jane Doe\njane@x.com\n\nEXPERIENCE\nSoftware Engineer at Acme 2020 - Present\nBuilt APIs.\n\nSKILLS\nSQL, Docker",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    models.ParseResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Success)
	assert.Equal(t, "Jane Doe", resp.Data.Data.PersonalInfo.FullName)
}

func TestParseCV_FailedParseStill200(t *testing.T) {
	r := newRouter()
	w := postJSON(r, "/api/cv/parse", gin.H{"text": "#### ----"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ParseResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Success)
	assert.NotEmpty(t, resp.Data.Error)
}

func TestParseCV_MissingText(t *testing.T) {
	r := newRouter()
	w := postJSON(r, "/api/cv/parse", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAnalyzeCV_ReturnsFullAnalysis(t *testing.T) {
	r := newRouter()
	cv := models.NewStructuredCV()
	cv.PersonalInfo.FullName = "Jane Doe"
	cv.Experience = []models.ExperienceEntry{
		{Title: "Software Engineer", Company: "Acme", StartDate: "2020", EndDate: "Present", Description: "Built and delivered APIs; improved throughput by 30%."},
	}
	cv.Skills = []string{"JavaScript", "SQL", "Docker"}

	w := postJSON(r, "/api/cv/analyze", gin.H{
		"cv":              cv,
		"target_visa":     "Express Entry",
		"target_industry": "Software Engineering",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ATSAnalysis `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Breakdown, 6)
	assert.GreaterOrEqual(t, resp.Data.TotalScore, 0.0)
	assert.LessOrEqual(t, resp.Data.TotalScore, 100.0)
	assert.NotEmpty(t, resp.Data.VisaReadiness.Level)
	assert.NotEmpty(t, resp.Data.CompetitiveAnalysis.MarketPosition)
}

func TestAnalyzeCV_UnknownTargetsFallBack(t *testing.T) {
	r := newRouter()
	w := postJSON(r, "/api/cv/analyze", gin.H{
		"cv":              models.NewStructuredCV(),
		"target_visa":     "NonexistentVisa123",
		"target_industry": "NonexistentIndustry456",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnhanceCV_ReturnsSectionsAndTemplate(t *testing.T) {
	r := newRouter()
	w := postJSON(r, "/api/cv/enhance", gin.H{
		"cv":              models.NewStructuredCV(),
		"target_visa":     "Express Entry",
		"target_industry": "Software Engineering",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.EnhancementResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Sections, 5)
	assert.NotEmpty(t, resp.Data.TemplateRecommendation.Recommended.Template)
	assert.Len(t, resp.Data.TemplateRecommendation.Alternates, 2)
}

func TestReferenceEndpoints(t *testing.T) {
	r := newRouter()
	for _, path := range []string{
		"/api/reference/visas",
		"/api/reference/industries",
		"/api/reference/templates",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)

		var resp utils.StandardResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success, path)
		assert.NotNil(t, resp.Data, path)
	}
}
