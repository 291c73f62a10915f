package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"vaccination-service/models"
)

// --- MockLedgerStore ---
// Compile-time check to ensure MockLedgerStore implements LedgerStoreContract
var _ LedgerStoreContract = (*MockLedgerStore)(nil)

type MockLedgerStore struct {
	RemainingQuantityFunc func(ctx context.Context, hospitalID string) (int, error)
	ApplyDosesFunc        func(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error)
	RosterFunc            func(ctx context.Context, hospitalID string) ([]models.RosterEntry, error)

	ApplyDosesCallCount int32
}

func (m *MockLedgerStore) RemainingQuantity(ctx context.Context, hospitalID string) (int, error) {
	if m.RemainingQuantityFunc != nil {
		return m.RemainingQuantityFunc(ctx, hospitalID)
	}
	return 0, errors.New("RemainingQuantityFunc not implemented in mock")
}

func (m *MockLedgerStore) ApplyDoses(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error) {
	atomic.AddInt32(&m.ApplyDosesCallCount, 1)
	if m.ApplyDosesFunc != nil {
		return m.ApplyDosesFunc(ctx, hospitalID, patientID, dose1, dose2)
	}
	return ApplyReport{}, errors.New("ApplyDosesFunc not implemented in mock")
}

func (m *MockLedgerStore) Roster(ctx context.Context, hospitalID string) ([]models.RosterEntry, error) {
	if m.RosterFunc != nil {
		return m.RosterFunc(ctx, hospitalID)
	}
	return nil, nil
}

// --- MockRoutingStore ---
// Compile-time check to ensure MockRoutingStore implements RoutingStoreContract
var _ RoutingStoreContract = (*MockRoutingStore)(nil)

type MockRoutingStore struct {
	InsertPatientFunc    func(ctx context.Context, patient models.Patient) error
	AssignOrRollbackFunc func(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error)

	InsertPatientCallCount    int32
	AssignOrRollbackCallCount int32
}

func (m *MockRoutingStore) InsertPatient(ctx context.Context, patient models.Patient) error {
	atomic.AddInt32(&m.InsertPatientCallCount, 1)
	if m.InsertPatientFunc != nil {
		return m.InsertPatientFunc(ctx, patient)
	}
	return nil
}

func (m *MockRoutingStore) AssignOrRollback(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error) {
	atomic.AddInt32(&m.AssignOrRollbackCallCount, 1)
	if m.AssignOrRollbackFunc != nil {
		return m.AssignOrRollbackFunc(ctx, assignmentID, patientID, hospitalName, pincode)
	}
	return false, errors.New("AssignOrRollbackFunc not implemented in mock")
}
