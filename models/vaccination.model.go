package models

import (
	"time"
)

type Patient struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"p_name"`
	Email     *string   `json:"email" db:"p_email"`
	Address   string    `json:"address" db:"p_address"`
	DOB       time.Time `json:"dob" db:"p_dob"`
	ContactNo *string   `json:"contact_no" db:"p_contactno"`
	Gender    string    `json:"gender" db:"p_gender"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Hospital struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"h_name"`
	Email             string    `json:"email" db:"h_email"`
	ContactNo         *string   `json:"contact_no" db:"h_contactno"`
	Type              string    `json:"type" db:"h_type"` // "P" private, "G" government
	Address           string    `json:"address" db:"h_address"`
	PasswordHash      string    `json:"-" db:"h_pwd"`
	Vaccine           string    `json:"vaccine" db:"h_vac"`
	QuantityRemaining int       `json:"quantity_remaining" db:"quantity_remaining"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Assignment links exactly one patient to one hospital. Dose dates stay
// nil until the hospital administers the corresponding dose.
type Assignment struct {
	ID         string     `json:"id" db:"id"`
	PatientID  string     `json:"patient_id" db:"patient_id"`
	HospitalID string     `json:"hospital_id" db:"hospital_id"`
	DateFirst  *time.Time `json:"date_first" db:"date_first"`
	DateSecond *time.Time `json:"date_second" db:"date_second"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

type InventoryItem struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"i_name"`
	ContactNo *string `json:"contact_no" db:"i_contactno"`
	Address   string  `json:"address" db:"i_address"`
}

// Supply is an append-only ledger entry recording a shipment from an
// inventory source to a hospital.
type Supply struct {
	ID          string    `json:"id" db:"id"`
	HospitalID  string    `json:"hospital_id" db:"hospital_id"`
	InventoryID string    `json:"inventory_id" db:"inventory_id"`
	Quantity    int       `json:"quantity" db:"s_quantity"`
	SuppliedAt  time.Time `json:"supplied_at" db:"s_time"`
}

type Vaccine struct {
	Name string  `json:"name" db:"v_name"`
	Cost float64 `json:"cost" db:"v_cost"`
}

type Location struct {
	Pincode string `json:"pincode" db:"pincode"`
}

// RosterEntry is one row of a hospital's joined patient/assignment view.
type RosterEntry struct {
	PatientID   string     `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Gender      string     `json:"gender"`
	DOB         time.Time  `json:"dob"`
	ContactNo   *string    `json:"contact_no"`
	DateFirst   *time.Time `json:"date_first"`
	DateSecond  *time.Time `json:"date_second"`
}

// SupplyDetail is a supply row joined with its inventory source, plus the
// cost billed to the hospital for that shipment.
type SupplyDetail struct {
	SupplyID      string    `json:"supply_id"`
	InventoryName string    `json:"inventory_name"`
	ContactNo     *string   `json:"contact_no"`
	Address       string    `json:"address"`
	Quantity      int       `json:"quantity"`
	SuppliedAt    time.Time `json:"supplied_at"`
	TotalCost     float64   `json:"total_cost"`
}
