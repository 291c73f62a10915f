package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vaccination-service/models"
)

// PriorityAge is the age from which patients get vaccination priority.
const PriorityAge = 45

type RegisterPatientInput struct {
	Name      string
	Email     *string
	Pincode   string
	DOB       string
	ContactNo *string
	Gender    string
}

type RoutingService struct {
	store RoutingStoreContract
}

func NewRoutingService(store RoutingStoreContract) *RoutingService {
	return &RoutingService{store: store}
}

// RegisterPatient inserts the patient and returns the new identity. The
// registration stays pending until AssignHospital resolves it one way or
// the other.
func (s *RoutingService) RegisterPatient(ctx context.Context, input RegisterPatientInput) (string, error) {
	dob, err := time.Parse("2006-01-02", input.DOB)
	if err != nil {
		return "", fmt.Errorf("invalid date of birth: %w", err)
	}

	patient := models.Patient{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Pincode,
		DOB:       dob,
		ContactNo: input.ContactNo,
		Gender:    input.Gender,
	}
	if err := s.store.InsertPatient(ctx, patient); err != nil {
		return "", err
	}
	return patient.ID, nil
}

// AssignHospital resolves a pending registration. A matching hospital gets
// an assignment and the patient record is kept; otherwise the registration
// is rolled back by deleting the patient. The store runs both paths under
// one transaction, so no orphaned patient survives the workflow.
func (s *RoutingService) AssignHospital(ctx context.Context, patientID, hospitalName, pincode string) (AssignOutcome, error) {
	assigned, err := s.store.AssignOrRollback(ctx, uuid.NewString(), patientID, hospitalName, pincode)
	if err != nil {
		return OutcomeHospitalNotFound, err
	}
	if !assigned {
		return OutcomeHospitalNotFound, nil
	}
	return OutcomeAssigned, nil
}

// AgePriority reports whether a patient qualifies for priority scheduling.
func AgePriority(dob, now time.Time) bool {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age >= PriorityAge
}
