package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vaccination-service/config"
	"vaccination-service/security"
	"vaccination-service/utils"
)

// HealthCheck endpoint
func HealthCheck(c *gin.Context) {
	// Test database connection
	err := config.DB.Ping()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "vaccination-service",
		"timestamp": time.Now().Unix(),
	})
}

type RegisterHospitalInput struct {
	Name           string `form:"inputName" binding:"required,min=2,max=100"`
	Email          string `form:"inputEmail" binding:"required,email"`
	Contact        string `form:"inputContact" binding:"omitempty,max=15"`
	Type           string `form:"inputhospitaltype" binding:"required,oneof=P G"`
	Password       string `form:"inputPassword" binding:"required,min=8"`
	RepeatPassword string `form:"reinputPassword" binding:"required"`
	Pincode        string `form:"inputPIN" binding:"required"`
	Vaccine        string `form:"inputVACC" binding:"required"`
}

type HospitalLoginInput struct {
	Email    string `form:"hospid" binding:"required"`
	Password string `form:"hospwd" binding:"required"`
}

// GetHospitalSignupForm serves the signup form data: pincodes and vaccine
// names, queried on demand.
func GetHospitalSignupForm(c *gin.Context) {
	pincodes, err := utils.GetPincodes()
	if err != nil {
		security.SendDatabaseError(c, "Failed to load pincodes")
		return
	}
	vaccines, err := utils.GetVaccineNames()
	if err != nil {
		security.SendDatabaseError(c, "Failed to load vaccines")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pincodes": pincodes,
		"vaccines": vaccines,
		"message":  "Enter details to Register",
		"color":    "success",
	})
}

func RegisterHospital(c *gin.Context) {
	var input RegisterHospitalInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	// Check if the email already has a hospital account
	var emailTaken bool
	err := config.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM hospital WHERE h_email = $1)`, input.Email).Scan(&emailTaken)
	if err != nil {
		security.SendDatabaseError(c, "Failed to verify email")
		return
	}
	if emailTaken {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Please Note That: That email has already been registered! Kindly head over to the login page",
			"color":   "danger",
		})
		return
	}

	if input.Password != input.RepeatPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please Note That: Passwords do not match!",
			"color":   "danger",
		})
		return
	}

	passHash, err := security.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// New hospitals start with an empty stock; supplies build it up.
	_, err = config.DB.Exec(`
		INSERT INTO hospital (id, h_name, h_email, h_contactno, h_type, h_address, h_pwd, h_vac, quantity_remaining)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
	`, uuid.NewString(), input.Name, input.Email, input.Contact, input.Type,
		input.Pincode, passHash, input.Vaccine)
	if err != nil {
		security.SendDatabaseError(c, "Failed to register hospital")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Success! Your Hospital has been registered. Please login to continue.",
		"color":   "success",
	})
}

func HospitalLogin(c *gin.Context) {
	var input HospitalLoginInput
	if err := c.ShouldBind(&input); err != nil {
		security.SendValidationError(c, "Invalid input data", err.Error())
		return
	}

	var hospitalID, passHash string
	err := config.DB.QueryRow(`
		SELECT id, h_pwd FROM hospital WHERE h_email = $1
	`, input.Email).Scan(&hospitalID, &passHash)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Error: Account not found."})
		return
	}
	if err != nil {
		security.SendDatabaseError(c, "Failed to look up account")
		return
	}

	if !security.CheckPasswordHash(input.Password, passHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Error: Email or password does not match."})
		return
	}

	token, err := security.SignSessionToken(hospitalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	security.SetSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/hospitaldata")
}

func Logout(c *gin.Context) {
	security.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
