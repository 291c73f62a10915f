package utils

import (
	"vaccination-service/config"
	"vaccination-service/models"
)

// SupplyCost is the amount billed to a hospital for one shipment. Private
// hospitals pay per dose; government hospitals are supplied at no cost.
func SupplyCost(hospitalType string, vaccineCost float64, quantity int) float64 {
	if hospitalType == "P" {
		return vaccineCost * float64(quantity)
	}
	return 0
}

// GetSupplyDetails lists a hospital's supply ledger joined with the
// inventory sources, newest first, with the billed cost per shipment.
func GetSupplyDetails(hospitalID string) ([]models.SupplyDetail, error) {
	rows, err := config.DB.Query(`
		SELECT s.id, i.i_name, i.i_contactno, i.i_address, s.s_quantity, s.s_time,
		       h.h_type, COALESCE(v.v_cost, 0)
		FROM supplies s
		JOIN inventory i ON i.id = s.inventory_id
		JOIN hospital h ON h.id = s.hospital_id
		LEFT JOIN vaccine v ON v.v_name = h.h_vac
		WHERE s.hospital_id = $1
		ORDER BY s.s_time DESC
	`, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.SupplyDetail
	for rows.Next() {
		var d models.SupplyDetail
		var hospitalType string
		var vaccineCost float64
		err := rows.Scan(&d.SupplyID, &d.InventoryName, &d.ContactNo, &d.Address,
			&d.Quantity, &d.SuppliedAt, &hospitalType, &vaccineCost)
		if err != nil {
			return nil, err
		}
		d.TotalCost = SupplyCost(hospitalType, vaccineCost, d.Quantity)
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetPincodes lists the registered location pincodes for form data.
func GetPincodes() ([]string, error) {
	return queryStrings(`SELECT pincode FROM location ORDER BY pincode`)
}

// GetVaccineNames lists the known vaccine names for form data.
func GetVaccineNames() ([]string, error) {
	return queryStrings(`SELECT v_name FROM vaccine ORDER BY v_name`)
}

func queryStrings(query string) ([]string, error) {
	rows, err := config.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
