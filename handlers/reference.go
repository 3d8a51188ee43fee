package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immicv/services"
	"immicv/utils"
)

// ListVisaPrograms returns the supported visa programs with their
// requirement profiles for the CRM dropdowns.
func ListVisaPrograms(c *gin.Context) {
	type visaInfo struct {
		Name                 string   `json:"name"`
		MinimumYears         float64  `json:"minimum_experience_years"`
		SponsorshipDependent bool     `json:"sponsorship_dependent"`
		BonusFactors         []string `json:"bonus_factors"`
	}

	out := make([]visaInfo, 0, len(services.AllVisaPrograms))
	for _, v := range services.AllVisaPrograms {
		p := v.Profile()
		out = append(out, visaInfo{
			Name:                 string(v),
			MinimumYears:         p.MinimumExperienceYears,
			SponsorshipDependent: p.SponsorshipDependent,
			BonusFactors:         p.BonusFactors,
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "Supported visa programs", out)
}

// ListIndustries returns the supported industries and their keyword
// sets.
func ListIndustries(c *gin.Context) {
	type industryInfo struct {
		Name           string   `json:"name"`
		Technical      []string `json:"technical"`
		Soft           []string `json:"soft"`
		Certifications []string `json:"certifications"`
	}

	out := make([]industryInfo, 0, len(services.AllIndustries))
	for _, ind := range services.AllIndustries {
		ks := ind.Keywords()
		out = append(out, industryInfo{
			Name:           string(ind),
			Technical:      ks.Technical,
			Soft:           ks.Soft,
			Certifications: ks.Certifications,
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "Supported industries", out)
}

// ListCVTemplates returns the CV template names the recommender scores.
func ListCVTemplates(c *gin.Context) {
	out := make([]string, 0, len(services.AllCVTemplates))
	for _, tpl := range services.AllCVTemplates {
		out = append(out, string(tpl))
	}
	utils.SuccessResponse(c, http.StatusOK, "Available CV templates", out)
}
