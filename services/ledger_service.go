package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"vaccination-service/models"
)

// ErrInsufficientQuantity is returned by stores when the quantity debit
// would drive the hospital's counter negative.
var ErrInsufficientQuantity = errors.New("insufficient remaining quantity")

// ErrInvalidDoseDate marks a malformed submitted dose date.
var ErrInvalidDoseDate = errors.New("invalid dose date")

// Roster filter categories, numbered as in the legacy filter procedure.
const (
	CategoryOneDose  = 1
	CategoryBothDose = 2
	CategoryNoDose   = 3
	CategoryAll      = 4
)

const doseDateLayout = "2006-01-02"

type LedgerService struct {
	store LedgerStoreContract
}

func NewLedgerService(store LedgerStoreContract) *LedgerService {
	return &LedgerService{store: store}
}

// Decide applies the administration gate: the first dose must be submitted
// and at least one dose must remain. The quantity check is a gate on the
// whole request, not a per-dose precondition.
func Decide(dose1Present, dose2Present bool, remaining int) bool {
	if dose1Present && !dose2Present && remaining >= 1 {
		return true
	}
	if dose1Present && dose2Present && remaining >= 1 {
		return true
	}
	return false
}

// CountNewDoses reports how many of the submitted dose dates land on
// currently unset fields. Dates already set do not consume stock again.
func CountNewDoses(currentFirst, currentSecond, submittedFirst, submittedSecond *time.Time) int {
	n := 0
	if submittedFirst != nil && currentFirst == nil {
		n++
	}
	if submittedSecond != nil && currentSecond == nil {
		n++
	}
	return n
}

// AdministerDoses validates the submitted dose dates against the
// hospital's remaining quantity and conditionally updates the patient's
// assignment. dose1 and dose2 are form date strings; empty means absent.
func (s *LedgerService) AdministerDoses(ctx context.Context, hospitalID, patientID, dose1, dose2 string) (AdministerOutcome, error) {
	d1, err := parseDoseDate(dose1)
	if err != nil {
		return OutcomeRejected, fmt.Errorf("first dose: %w", ErrInvalidDoseDate)
	}
	d2, err := parseDoseDate(dose2)
	if err != nil {
		return OutcomeRejected, fmt.Errorf("second dose: %w", ErrInvalidDoseDate)
	}

	remaining, err := s.store.RemainingQuantity(ctx, hospitalID)
	if err != nil {
		return OutcomeRejected, err
	}

	if !Decide(d1 != nil, d2 != nil, remaining) {
		return OutcomeRejected, nil
	}

	report, err := s.store.ApplyDoses(ctx, hospitalID, patientID, d1, d2)
	if err != nil {
		if errors.Is(err, ErrInsufficientQuantity) {
			// a concurrent request drained the stock between the gate
			// read and the debit
			return OutcomeRejected, nil
		}
		return OutcomeRejected, err
	}
	if !report.Matched {
		return OutcomeNoAssignment, nil
	}

	return OutcomeAdministered, nil
}

// Roster returns the hospital's full patient/assignment view.
func (s *LedgerService) Roster(ctx context.Context, hospitalID string) ([]models.RosterEntry, error) {
	return s.store.Roster(ctx, hospitalID)
}

// RosterBuckets splits a roster by dose progress. The three buckets
// partition the roster: every entry lands in exactly one.
type RosterBuckets struct {
	None []models.RosterEntry
	One  []models.RosterEntry
	Both []models.RosterEntry
}

func PartitionRoster(entries []models.RosterEntry) RosterBuckets {
	return RosterBuckets{
		// a missing first dose counts as no progress, even if a stray
		// second-dose date made it into the row
		None: lo.Filter(entries, func(e models.RosterEntry, _ int) bool {
			return e.DateFirst == nil
		}),
		One: lo.Filter(entries, func(e models.RosterEntry, _ int) bool {
			return e.DateFirst != nil && e.DateSecond == nil
		}),
		Both: lo.Filter(entries, func(e models.RosterEntry, _ int) bool {
			return e.DateFirst != nil && e.DateSecond != nil
		}),
	}
}

// FilterRoster selects one category of a hospital's roster. Unknown
// categories fall back to the full roster.
func FilterRoster(entries []models.RosterEntry, category int) []models.RosterEntry {
	buckets := PartitionRoster(entries)
	switch category {
	case CategoryOneDose:
		return buckets.One
	case CategoryBothDose:
		return buckets.Both
	case CategoryNoDose:
		return buckets.None
	default:
		return entries
	}
}

func parseDoseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(doseDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
