package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vaccination-service/models"
)

// Compile-time checks that the Postgres store satisfies both contracts.
var (
	_ LedgerStoreContract  = (*PostgresStore)(nil)
	_ RoutingStoreContract = (*PostgresStore)(nil)
)

// PostgresStore implements the ledger and routing contracts over the
// shared connection pool with parameterized SQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RemainingQuantity(ctx context.Context, hospitalID string) (int, error) {
	var remaining int
	err := s.db.QueryRowContext(ctx,
		`SELECT quantity_remaining FROM hospital WHERE id = $1`, hospitalID).Scan(&remaining)
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (s *PostgresStore) ApplyDoses(ctx context.Context, hospitalID, patientID string, dose1, dose2 *time.Time) (ApplyReport, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApplyReport{}, err
	}
	defer tx.Rollback()

	var assignmentID string
	var currentFirst, currentSecond sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT id, date_first, date_second
		FROM vaccinates
		WHERE hospital_id = $1 AND patient_id = $2
		FOR UPDATE
	`, hospitalID, patientID).Scan(&assignmentID, &currentFirst, &currentSecond)
	if errors.Is(err, sql.ErrNoRows) {
		return ApplyReport{Matched: false}, nil
	}
	if err != nil {
		return ApplyReport{}, err
	}

	// COALESCE keeps dates monotonic: a set dose date is never cleared
	// or overwritten by a later administration.
	_, err = tx.ExecContext(ctx, `
		UPDATE vaccinates
		SET date_first = COALESCE(date_first, $1),
		    date_second = COALESCE(date_second, $2)
		WHERE id = $3
	`, dose1, dose2, assignmentID)
	if err != nil {
		return ApplyReport{}, err
	}

	// The gate is one remaining dose for the whole request, so the debit
	// floors at zero rather than requiring full coverage. The guard keeps
	// the counter from ever going negative under concurrent requests.
	debit := CountNewDoses(nullableTime(currentFirst), nullableTime(currentSecond), dose1, dose2)
	if debit > 0 {
		res, err := tx.ExecContext(ctx, `
			UPDATE hospital
			SET quantity_remaining = GREATEST(quantity_remaining - $1, 0)
			WHERE id = $2 AND quantity_remaining >= 1
		`, debit, hospitalID)
		if err != nil {
			return ApplyReport{}, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return ApplyReport{}, err
		}
		if affected == 0 {
			return ApplyReport{}, ErrInsufficientQuantity
		}
	}

	if err = tx.Commit(); err != nil {
		return ApplyReport{}, err
	}

	return ApplyReport{Matched: true, DosesDebited: debit}, nil
}

func (s *PostgresStore) Roster(ctx context.Context, hospitalID string) ([]models.RosterEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.p_name, p.p_gender, p.p_dob, p.p_contactno,
		       v.date_first, v.date_second
		FROM person p
		JOIN vaccinates v ON v.patient_id = p.id
		WHERE v.hospital_id = $1
		ORDER BY p.p_name
	`, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.RosterEntry
	for rows.Next() {
		var entry models.RosterEntry
		var first, second sql.NullTime
		err := rows.Scan(&entry.PatientID, &entry.PatientName, &entry.Gender,
			&entry.DOB, &entry.ContactNo, &first, &second)
		if err != nil {
			return nil, err
		}
		entry.DateFirst = nullableTime(first)
		entry.DateSecond = nullableTime(second)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) InsertPatient(ctx context.Context, patient models.Patient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO person (id, p_name, p_email, p_address, p_dob, p_contactno, p_gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, patient.ID, patient.Name, patient.Email, patient.Address, patient.DOB,
		patient.ContactNo, patient.Gender)
	return err
}

func (s *PostgresStore) AssignOrRollback(ctx context.Context, assignmentID, patientID, hospitalName, pincode string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var hospitalID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM hospital WHERE h_name = $1 AND h_address = $2`, hospitalName, pincode).Scan(&hospitalID)
	if errors.Is(err, sql.ErrNoRows) {
		// no matching hospital: the pending registration rolls back
		if _, err := tx.ExecContext(ctx, `DELETE FROM person WHERE id = $1`, patientID); err != nil {
			return false, err
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vaccinates (id, patient_id, hospital_id)
		VALUES ($1, $2, $3)
	`, assignmentID, patientID, hospitalID)
	if err != nil {
		// the insert aborted the transaction; the patient row was
		// committed by an earlier request and must not stay orphaned
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return false, errors.Join(err, rbErr)
		}
		if _, delErr := s.db.ExecContext(ctx, `DELETE FROM person WHERE id = $1`, patientID); delErr != nil {
			return false, errors.Join(err, delErr)
		}
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
