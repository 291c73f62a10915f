package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vaccination-service/models"
)

func TestRegisterPatient(t *testing.T) {
	var inserted models.Patient
	store := &MockRoutingStore{
		InsertPatientFunc: func(ctx context.Context, patient models.Patient) error {
			inserted = patient
			return nil
		},
	}
	svc := NewRoutingService(store)

	email := "alice@example.com"
	patientID, err := svc.RegisterPatient(context.Background(), RegisterPatientInput{
		Name:    "Alice",
		Email:   &email,
		Pincode: "500001",
		DOB:     "1990-03-15",
		Gender:  "F",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, patientID)
	assert.Equal(t, patientID, inserted.ID)
	assert.Equal(t, "Alice", inserted.Name)
	assert.Equal(t, "500001", inserted.Address)
	assert.Equal(t, 1990, inserted.DOB.Year())
	assert.EqualValues(t, 1, store.InsertPatientCallCount)
}

func TestRegisterPatient_InvalidDOB(t *testing.T) {
	store := &MockRoutingStore{}
	svc := NewRoutingService(store)

	_, err := svc.RegisterPatient(context.Background(), RegisterPatientInput{
		Name:    "Alice",
		Pincode: "500001",
		DOB:     "15-03-1990",
		Gender:  "F",
	})

	assert.Error(t, err)
	assert.EqualValues(t, 0, store.InsertPatientCallCount)
}

func TestAssignHospital_Found(t *testing.T) {
	var gotPatient string
	store := &MockRoutingStore{
		AssignOrRollbackFunc: func(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error) {
			assert.NotEmpty(t, assignmentID)
			assert.Equal(t, "City Hospital", hospitalName)
			assert.Equal(t, "500001", pincode)
			gotPatient = patientID
			return true, nil
		},
	}
	svc := NewRoutingService(store)

	outcome, err := svc.AssignHospital(context.Background(), "pat-1", "City Hospital", "500001")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAssigned, outcome)
	assert.Equal(t, "pat-1", gotPatient)
	assert.EqualValues(t, 1, store.AssignOrRollbackCallCount)
}

func TestAssignHospital_NotFound(t *testing.T) {
	store := &MockRoutingStore{
		AssignOrRollbackFunc: func(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error) {
			return false, nil
		},
	}
	svc := NewRoutingService(store)

	outcome, err := svc.AssignHospital(context.Background(), "pat-1", "Nowhere Hospital", "500001")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeHospitalNotFound, outcome)
}

func TestAssignHospital_StoreErrorSurfaces(t *testing.T) {
	store := &MockRoutingStore{
		AssignOrRollbackFunc: func(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	svc := NewRoutingService(store)

	_, err := svc.AssignHospital(context.Background(), "pat-1", "City Hospital", "500001")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAssignHospital_CleanupFailureSurfaces(t *testing.T) {
	// when the assignment insert fails and so does the compensating
	// patient delete, both failures must reach the caller: a silently
	// surviving orphan is not an option
	insertErr := errors.New("connection reset")
	cleanupErr := errors.New("delete person failed")
	store := &MockRoutingStore{
		AssignOrRollbackFunc: func(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error) {
			return false, errors.Join(insertErr, cleanupErr)
		},
	}
	svc := NewRoutingService(store)

	_, err := svc.AssignHospital(context.Background(), "pat-1", "City Hospital", "500001")

	assert.Error(t, err)
	assert.ErrorIs(t, err, insertErr)
	assert.ErrorIs(t, err, cleanupErr)
}

func TestAgePriority(t *testing.T) {
	now := time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, AgePriority(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, AgePriority(time.Date(1976, 6, 15, 0, 0, 0, 0, time.UTC), now))
	// turns 45 tomorrow
	assert.False(t, AgePriority(time.Date(1976, 6, 16, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, AgePriority(time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC), now))
}
