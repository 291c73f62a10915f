package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vaccination-service/models"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name      string
		dose1     bool
		dose2     bool
		remaining int
		want      bool
	}{
		{"first dose with stock", true, false, 1, true},
		{"both doses with stock", true, true, 1, true},
		{"first dose plenty of stock", true, false, 50, true},
		{"no first dose", false, false, 10, false},
		{"second dose without first", false, true, 10, false},
		{"first dose no stock", true, false, 0, false},
		{"both doses no stock", true, true, 0, false},
		{"nothing submitted", false, false, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.dose1, tc.dose2, tc.remaining))
		})
	}
}

func TestCountNewDoses(t *testing.T) {
	d := func(s string) *time.Time {
		t1, _ := time.Parse("2006-01-02", s)
		return &t1
	}

	// both submitted onto an empty row
	assert.Equal(t, 2, CountNewDoses(nil, nil, d("2021-05-01"), d("2021-06-01")))
	// first already set: only the second consumes stock
	assert.Equal(t, 1, CountNewDoses(d("2021-05-01"), nil, d("2021-05-01"), d("2021-06-01")))
	// re-submitting an already complete row consumes nothing
	assert.Equal(t, 0, CountNewDoses(d("2021-05-01"), d("2021-06-01"), d("2021-05-01"), d("2021-06-01")))
	// first dose only onto an empty row
	assert.Equal(t, 1, CountNewDoses(nil, nil, d("2021-05-01"), nil))
}

func TestAdministerDoses_FirstDose(t *testing.T) {
	store := &MockLedgerStore{
		RemainingQuantityFunc: func(ctx context.Context, hospitalID string) (int, error) {
			return 5, nil
		},
		ApplyDosesFunc: func(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error) {
			assert.NotNil(t, dose1)
			assert.Nil(t, dose2)
			return ApplyReport{Matched: true, DosesDebited: 1}, nil
		},
	}
	svc := NewLedgerService(store)

	outcome, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-1", "2021-05-01", "")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeAdministered, outcome)
	assert.EqualValues(t, 1, store.ApplyDosesCallCount)
}

func TestAdministerDoses_BothDoses(t *testing.T) {
	store := &MockLedgerStore{
		RemainingQuantityFunc: func(ctx context.Context, hospitalID string) (int, error) {
			return 1, nil
		},
		ApplyDosesFunc: func(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error) {
			assert.NotNil(t, dose1)
			assert.NotNil(t, dose2)
			return ApplyReport{Matched: true, DosesDebited: 2}, nil
		},
	}
	svc := NewLedgerService(store)

	outcome, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-1", "2021-05-01", "2021-06-01")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeAdministered, outcome)
}

func TestAdministerDoses_RejectedWhenStockEmpty(t *testing.T) {
	store := &MockLedgerStore{
		RemainingQuantityFunc: func(ctx context.Context, hospitalID string) (int, error) {
			return 0, nil
		},
	}
	svc := NewLedgerService(store)

	outcome, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-1", "2021-05-01", "")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)
	// rejection must not touch the store
	assert.EqualValues(t, 0, store.ApplyDosesCallCount)
}

func TestAdministerDoses_RejectedWithoutFirstDose(t *testing.T) {
	store := &MockLedgerStore{
		RemainingQuantityFunc: func(ctx context.Context, hospitalID string) (int, error) {
			return 10, nil
		},
	}
	svc := NewLedgerService(store)

	outcome, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-1", "", "2021-06-01")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)
	assert.EqualValues(t, 0, store.ApplyDosesCallCount)
}

func TestAdministerDoses_NoAssignmentFallback(t *testing.T) {
	store := &MockLedgerStore{
		RemainingQuantityFunc: func(ctx context.Context, hospitalID string) (int, error) {
			return 3, nil
		},
		ApplyDosesFunc: func(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error) {
			return ApplyReport{Matched: false}, nil
		},
	}
	svc := NewLedgerService(store)

	outcome, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-unknown", "2021-05-01", "")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNoAssignment, outcome)
}

func TestAdministerDoses_ConcurrentDrainRejects(t *testing.T) {
	store := &MockLedgerStore{
		RemainingQuantityFunc: func(ctx context.Context, hospitalID string) (int, error) {
			return 1, nil
		},
		ApplyDosesFunc: func(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error) {
			return ApplyReport{}, ErrInsufficientQuantity
		},
	}
	svc := NewLedgerService(store)

	outcome, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-1", "2021-05-01", "2021-06-01")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)
}

func TestAdministerDoses_InvalidDate(t *testing.T) {
	store := &MockLedgerStore{}
	svc := NewLedgerService(store)

	_, err := svc.AdministerDoses(context.Background(), "hosp-1", "pat-1", "not-a-date", "")
	assert.ErrorIs(t, err, ErrInvalidDoseDate)
	assert.EqualValues(t, 0, store.ApplyDosesCallCount)
}

func rosterFixture() []models.RosterEntry {
	d1 := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.RosterEntry{
		{PatientID: "p1"},
		{PatientID: "p2", DateFirst: &d1},
		{PatientID: "p3", DateFirst: &d1, DateSecond: &d2},
		{PatientID: "p4"},
		{PatientID: "p5", DateFirst: &d1},
	}
}

func TestPartitionRoster(t *testing.T) {
	roster := rosterFixture()
	buckets := PartitionRoster(roster)

	assert.Len(t, buckets.None, 2)
	assert.Len(t, buckets.One, 2)
	assert.Len(t, buckets.Both, 1)

	// the buckets partition the roster exactly
	assert.Equal(t, len(roster), len(buckets.None)+len(buckets.One)+len(buckets.Both))

	seen := map[string]int{}
	for _, e := range buckets.None {
		seen[e.PatientID]++
	}
	for _, e := range buckets.One {
		seen[e.PatientID]++
	}
	for _, e := range buckets.Both {
		seen[e.PatientID]++
	}
	for _, e := range roster {
		assert.Equal(t, 1, seen[e.PatientID], "entry %s must land in exactly one bucket", e.PatientID)
	}
}

func TestPartitionRoster_SecondDateWithoutFirst(t *testing.T) {
	d2 := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	roster := []models.RosterEntry{
		{PatientID: "p1", DateSecond: &d2},
	}
	buckets := PartitionRoster(roster)

	// a row with only a second-dose date still shows no progress
	assert.Len(t, buckets.None, 1)
	assert.Empty(t, buckets.One)
	assert.Empty(t, buckets.Both)
	assert.Equal(t, "p1", buckets.None[0].PatientID)
}

func TestFilterRoster(t *testing.T) {
	roster := rosterFixture()

	assert.Len(t, FilterRoster(roster, CategoryNoDose), 2)
	assert.Len(t, FilterRoster(roster, CategoryOneDose), 2)
	assert.Len(t, FilterRoster(roster, CategoryBothDose), 1)
	// "all" equals the union
	assert.Equal(t, roster, FilterRoster(roster, CategoryAll))
}
