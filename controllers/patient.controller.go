package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vaccination-service/config"
	"vaccination-service/security"
	"vaccination-service/services"
	"vaccination-service/utils"
)

type RegisterPatientInput struct {
	Name    string `form:"inputName" binding:"required,min=2,max=100"`
	Email   string `form:"inputEmail" binding:"omitempty,email"`
	Pincode string `form:"inputPIN" binding:"required"`
	DOB     string `form:"inputDOB" binding:"required"`
	Contact string `form:"contact" binding:"omitempty,max=15"`
	Gender  string `form:"optradio" binding:"required,oneof=M F O"`
}

type ChooseHospitalInput struct {
	HospitalName string `form:"inputHOSP" binding:"required"`
	Pincode      string `form:"inputPIN" binding:"required"`
}

// GetPatientForm serves the registration form data: pincodes plus the
// hospital name/address list.
func GetPatientForm(c *gin.Context) {
	pincodes, err := utils.GetPincodes()
	if err != nil {
		security.SendDatabaseError(c, "Failed to load pincodes")
		return
	}

	rows, err := config.DB.Query(`SELECT h_name, h_address FROM hospital ORDER BY h_name`)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load hospitals")
		return
	}
	defer rows.Close()

	var hospitals []gin.H
	for rows.Next() {
		var name, address string
		if err := rows.Scan(&name, &address); err != nil {
			security.SendDatabaseError(c, "Failed to load hospitals")
			return
		}
		hospitals = append(hospitals, gin.H{"name": name, "address": address})
	}

	c.JSON(http.StatusOK, gin.H{
		"pincodes":  pincodes,
		"hospitals": hospitals,
	})
}

// RegisterPatient inserts the patient and hands off to hospital selection.
func RegisterPatient(c *gin.Context) {
	var input RegisterPatientInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	svc := services.NewRoutingService(services.NewPostgresStore(config.DB))
	patientID, err := svc.RegisterPatient(c.Request.Context(), services.RegisterPatientInput{
		Name:      input.Name,
		Email:     optional(input.Email),
		Pincode:   input.Pincode,
		DOB:       input.DOB,
		ContactNo: optional(input.Contact),
		Gender:    input.Gender,
	})
	if err != nil {
		security.SendDatabaseError(c, "Failed to register patient")
		return
	}

	c.Redirect(http.StatusFound, "/choose_hosp/"+input.Pincode+"/"+patientID)
}

// GetChooseHospitalForm lists the hospitals at the submitted pincode and
// reports whether the pending patient qualifies for age priority.
func GetChooseHospitalForm(c *gin.Context) {
	pin := c.Param("pin")
	patientID := c.Param("pid")

	var dob time.Time
	err := config.DB.QueryRow(`SELECT p_dob FROM person WHERE id = $1`, patientID).Scan(&dob)
	if errors.Is(err, sql.ErrNoRows) {
		security.SendNotFoundError(c, "patient")
		return
	}
	if err != nil {
		security.SendDatabaseError(c, "Failed to load patient")
		return
	}

	rows, err := config.DB.Query(`
		SELECT id, h_name, h_type, h_address, h_vac
		FROM hospital
		WHERE h_address = $1
		ORDER BY h_name
	`, pin)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load hospitals")
		return
	}
	defer rows.Close()

	var hospitals []gin.H
	for rows.Next() {
		var id, name, htype, address, vaccine string
		if err := rows.Scan(&id, &name, &htype, &address, &vaccine); err != nil {
			security.SendDatabaseError(c, "Failed to load hospitals")
			return
		}
		hospitals = append(hospitals, gin.H{
			"id":      id,
			"name":    name,
			"type":    htype,
			"address": address,
			"vaccine": vaccine,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"hospitals":  hospitals,
		"patient_id": patientID,
		"priority":   services.AgePriority(dob, time.Now()),
	})
}

// ChooseHospital resolves a pending registration to a hospital. A missing
// hospital rolls the registration back.
func ChooseHospital(c *gin.Context) {
	patientID := c.Param("id")

	var input ChooseHospitalInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	svc := services.NewRoutingService(services.NewPostgresStore(config.DB))
	outcome, err := svc.AssignHospital(c.Request.Context(), patientID, input.HospitalName, input.Pincode)
	if err != nil {
		security.SendDatabaseError(c, "Failed to assign hospital")
		return
	}

	if outcome == services.OutcomeHospitalNotFound {
		c.String(http.StatusBadRequest, "Hospital not found")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
