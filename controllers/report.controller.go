package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vaccination-service/config"
	"vaccination-service/models"
	"vaccination-service/security"
	"vaccination-service/utils"
)

// GetDashboard serves the public landing counts and the per-vaccine
// assignment aggregate.
func GetDashboard(c *gin.Context) {
	var vaccCount, hospCount, inventCount int
	err := config.DB.QueryRow(`
		SELECT (SELECT COUNT(*) FROM vaccinates),
		       (SELECT COUNT(*) FROM hospital),
		       (SELECT COUNT(*) FROM inventory)
	`).Scan(&vaccCount, &hospCount, &inventCount)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load dashboard counts")
		return
	}

	rows, err := config.DB.Query(`
		SELECT h.h_vac, COUNT(*)
		FROM vaccinates v
		JOIN hospital h ON h.id = v.hospital_id
		GROUP BY h.h_vac
	`)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load vaccine aggregate")
		return
	}
	defer rows.Close()

	var perVaccine []gin.H
	for rows.Next() {
		var vaccine string
		var count int
		if err := rows.Scan(&vaccine, &count); err != nil {
			security.SendDatabaseError(c, "Failed to load vaccine aggregate")
			return
		}
		perVaccine = append(perVaccine, gin.H{"vaccine": vaccine, "count": count})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": gin.H{
			"vaccinations": vaccCount,
			"hospitals":    hospCount,
			"inventories":  inventCount,
		},
		"vaccine": perVaccine,
	})
}

// GetStatistics serves demographic and dose-coverage statistics.
func GetStatistics(c *gin.Context) {
	gender, err := groupedShare(`
		SELECT p_gender, COUNT(*),
		       COUNT(*) * 100.0 / (SELECT GREATEST(COUNT(*), 1) FROM person)
		FROM person GROUP BY p_gender
	`)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load gender statistics")
		return
	}

	hospitalType, err := groupedShare(`
		SELECT h_type, COUNT(*),
		       COUNT(*) * 100.0 / (SELECT GREATEST(COUNT(*), 1) FROM hospital)
		FROM hospital GROUP BY h_type
	`)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load hospital type statistics")
		return
	}

	vaccineShare, err := groupedShare(`
		SELECT h.h_vac, COUNT(*),
		       COUNT(*) * 100.0 / (SELECT GREATEST(COUNT(*), 1) FROM vaccinates)
		FROM vaccinates v
		JOIN hospital h ON h.id = v.hospital_id
		GROUP BY h.h_vac
	`)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load vaccine statistics")
		return
	}

	var oneDose, twoDose, noDose int
	err = config.DB.QueryRow(`
		SELECT (SELECT COUNT(*) FROM vaccinates WHERE date_first IS NOT NULL AND date_second IS NULL),
		       (SELECT COUNT(*) FROM vaccinates WHERE date_first IS NOT NULL AND date_second IS NOT NULL),
		       (SELECT COUNT(*) FROM vaccinates WHERE date_first IS NULL AND date_second IS NULL)
	`).Scan(&oneDose, &twoDose, &noDose)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load dose coverage")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gender": gender,
		"type":   hospitalType,
		"vacc":   vaccineShare,
		"dose": gin.H{
			"onedose": oneDose,
			"twodose": twoDose,
			"nodose":  noDose,
		},
	})
}

// GetHospitalData serves the authenticated hospital's profile view:
// administered-dose count, recent supplies and the inventory source list.
func GetHospitalData(c *gin.Context) {
	hospitalID := c.GetString("hospital_id")

	hospital := models.Hospital{ID: hospitalID}
	err := config.DB.QueryRow(`
		SELECT h_name, h_email, h_contactno, h_type, h_address, h_vac, quantity_remaining, created_at
		FROM hospital WHERE id = $1
	`, hospitalID).Scan(&hospital.Name, &hospital.Email, &hospital.ContactNo,
		&hospital.Type, &hospital.Address, &hospital.Vaccine, &hospital.QuantityRemaining, &hospital.CreatedAt)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load hospital profile")
		return
	}

	var administered int
	err = config.DB.QueryRow(`
		SELECT COUNT(*) FROM vaccinates
		WHERE hospital_id = $1 AND date_first IS NOT NULL
	`, hospitalID).Scan(&administered)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load administered count")
		return
	}

	supplies, err := utils.GetSupplyDetails(hospitalID)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load supply records")
		return
	}

	rows, err := config.DB.Query(`SELECT id, i_name, i_contactno, i_address FROM inventory ORDER BY i_name`)
	if err != nil {
		security.SendDatabaseError(c, "Failed to load inventory sources")
		return
	}
	defer rows.Close()

	var sources []models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.ContactNo, &item.Address); err != nil {
			security.SendDatabaseError(c, "Failed to load inventory sources")
			return
		}
		sources = append(sources, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           hospital,
		"count":          administered,
		"invent_details": supplies,
		"inv":            sources,
	})
}

func groupedShare(query string) ([]gin.H, error) {
	rows, err := config.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []gin.H
	for rows.Next() {
		var label string
		var count int
		var percentage float64
		if err := rows.Scan(&label, &count, &percentage); err != nil {
			return nil, err
		}
		result = append(result, gin.H{
			"label":      label,
			"count":      count,
			"percentage": percentage,
		})
	}
	return result, rows.Err()
}
