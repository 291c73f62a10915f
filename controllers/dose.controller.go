package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vaccination-service/config"
	"vaccination-service/security"
	"vaccination-service/services"
)

type AdministerDoseInput struct {
	PatientID string `form:"id" binding:"required"`
	Dose1     string `form:"dose1"`
	Dose2     string `form:"dose2"`
}

// GetAllRecords lists the hospital's full roster.
func GetAllRecords(c *gin.Context) {
	renderRoster(c, services.CategoryAll, "All records", 0)
}

// GetOneDose lists patients with only the first dose administered.
func GetOneDose(c *gin.Context) {
	renderRoster(c, services.CategoryOneDose, "One dose administered", 0)
}

// GetNoDose lists patients with no dose administered yet.
func GetNoDose(c *gin.Context) {
	renderRoster(c, services.CategoryNoDose, "No dose administered", 0)
}

// GetBothDose lists patients with both doses administered.
func GetBothDose(c *gin.Context) {
	renderRoster(c, services.CategoryBothDose, "Both dose administered", 0)
}

// AdministerDose is the dose-administration entry point. A successful
// administration redirects back to the roster; a rejected or unmatched
// attempt answers with the unchanged full roster instead.
func AdministerDose(c *gin.Context) {
	var input AdministerDoseInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	hospitalID := c.GetString("hospital_id")
	svc := services.NewLedgerService(services.NewPostgresStore(config.DB))

	outcome, err := svc.AdministerDoses(c.Request.Context(), hospitalID, input.PatientID, input.Dose1, input.Dose2)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDoseDate) {
			security.SendValidationError(c, "Invalid dose date", err.Error())
			return
		}
		security.SendDatabaseError(c, "Failed to administer dose")
		return
	}

	if outcome == services.OutcomeAdministered {
		c.Redirect(http.StatusFound, "/hosp_logindata")
		return
	}

	// rejected, or no assignment row matched: report the full roster
	renderRoster(c, services.CategoryAll, "All records", 1)
}

func renderRoster(c *gin.Context, category int, message string, check int) {
	hospitalID := c.GetString("hospital_id")
	svc := services.NewLedgerService(services.NewPostgresStore(config.DB))

	roster, err := svc.Roster(c.Request.Context(), hospitalID)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load patient records")
		return
	}

	filtered := services.FilterRoster(roster, category)
	c.JSON(http.StatusOK, gin.H{
		"patient_details": filtered,
		"message":         message,
		"check":           check,
		"count":           len(filtered),
	})
}
