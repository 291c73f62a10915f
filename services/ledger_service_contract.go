package services

import (
	"context"
	"time"

	"vaccination-service/models"
)

// AdministerOutcome is the result of one dose-administration attempt.
type AdministerOutcome int

const (
	// OutcomeAdministered means the assignment's dose dates were updated
	// and the hospital's remaining quantity was debited.
	OutcomeAdministered AdministerOutcome = iota
	// OutcomeRejected means the gate failed (no first dose submitted, or
	// remaining quantity insufficient). Nothing was written.
	OutcomeRejected
	// OutcomeNoAssignment means no assignment row matched the
	// (hospital, patient) pair. Nothing was committed.
	OutcomeNoAssignment
)

// ApplyReport describes what a committed ApplyDoses call changed.
type ApplyReport struct {
	Matched      bool
	DosesDebited int
}

// LedgerStoreContract is the datastore surface the dose ledger needs.
// Implementations must scope every statement to the given hospital.
type LedgerStoreContract interface {
	// RemainingQuantity reads the hospital's unconsumed dose counter.
	RemainingQuantity(ctx context.Context, hospitalID string) (int, error)

	// ApplyDoses transactionally writes the submitted dose dates onto the
	// assignment matching (hospitalID, patientID) and debits the
	// hospital's remaining quantity by the number of doses newly applied,
	// floored at zero. Already-set dates are never overwritten or
	// cleared. When no row matches, or no stock remains at debit time,
	// the transaction is rolled back.
	ApplyDoses(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error)

	// Roster lists the hospital's joined patient/assignment view.
	Roster(ctx context.Context, hospitalID string) ([]models.RosterEntry, error)
}
