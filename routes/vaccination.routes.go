package routes

import (
	"github.com/gin-gonic/gin"

	"vaccination-service/config"
	"vaccination-service/controllers"
	"vaccination-service/security"
)

// VaccinationRoutes registers the public and hospital-area route groups.
// The hospital area sits behind the session middleware; public routes
// carry no identity at all.
func VaccinationRoutes(r *gin.Engine) {
	// Health check endpoint (no auth required)
	r.GET("/health", controllers.HealthCheck)

	// Public dashboards and statistics
	r.GET("/", controllers.GetDashboard)
	r.GET("/stat", controllers.GetStatistics)

	// Patient registration and hospital selection
	r.GET("/patient", controllers.GetPatientForm)
	r.POST("/patient", controllers.RegisterPatient)
	r.GET("/choose_hosp/:pin/:pid", controllers.GetChooseHospitalForm)
	r.POST("/choose_hosp/:id", controllers.ChooseHospital)

	// Hospital signup and session
	r.GET("/Registerhospital", controllers.GetHospitalSignupForm)
	r.POST("/Registerhospital", controllers.RegisterHospital)
	r.POST("/hospital_login", controllers.HospitalLogin)
	r.GET("/logout", controllers.Logout)

	// Inventory source registration
	r.GET("/Registerinventory", controllers.GetInventoryForm)
	r.POST("/Registerinventory", controllers.RegisterInventory)

	// Hospital area: every route below requires a valid session cookie
	hospital := r.Group("/")
	hospital.Use(security.HospitalAuth(config.DB))
	{
		hospital.GET("/hospitaldata", controllers.GetHospitalData)

		hospital.GET("/hosp_logindata", controllers.GetAllRecords)
		hospital.GET("/onedose", controllers.GetOneDose)
		hospital.GET("/nodose", controllers.GetNoDose)
		hospital.GET("/bothdose", controllers.GetBothDose)
		hospital.POST("/hosp_logindata", controllers.AdministerDose)

		hospital.GET("/inventory_data", controllers.GetInventoryData)
		hospital.POST("/inventory_data", controllers.RecordSupply)
		hospital.POST("/delete", controllers.DeleteSupply)
	}
}
