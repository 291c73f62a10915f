package services

import (
	"context"

	"vaccination-service/models"
)

// AssignOutcome is the result of the hospital-selection step.
type AssignOutcome int

const (
	// OutcomeAssigned means the assignment was created and the patient
	// record kept.
	OutcomeAssigned AssignOutcome = iota
	// OutcomeHospitalNotFound means no hospital matched; the pending
	// patient registration was rolled back.
	OutcomeHospitalNotFound
)

// RoutingStoreContract is the datastore surface the patient routing
// workflow needs.
type RoutingStoreContract interface {
	// InsertPatient persists a newly registered patient.
	InsertPatient(ctx context.Context, patient models.Patient) error

	// AssignOrRollback resolves a pending registration in one
	// transaction. When a hospital matches (hospitalName, pincode) an
	// assignment with both dose dates unset is created and the patient
	// record kept; otherwise the patient row is deleted. assigned
	// reports which path committed. On error neither path committed,
	// except that a failure to clean up after a failed assignment
	// insert is reported rather than swallowed.
	AssignOrRollback(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (assigned bool, err error)
}
