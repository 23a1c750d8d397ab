package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"nicu-progress/internal/domain/patients"
	"nicu-progress/internal/domain/progress"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

const patientColumns = `
	id, patient_id,
	name, ga, weight, aga_sga_lga, sex,
	dob, tob,
	created_by, created_at, updated_at`

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	dob, err := parseDOB(p.DOB)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.PatientID,
		p.Name,
		p.GA,
		p.Weight,
		string(p.AgaSgaLga),
		string(p.Sex),
		dob,
		p.TOB,
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return patients.ErrConflict
	}
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	dob, err := parseDOB(p.DOB)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			patient_id = $2,
			name = $3,
			ga = $4,
			weight = $5,
			aga_sga_lga = $6,
			sex = $7,
			dob = $8,
			tob = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.PatientID,
		p.Name,
		p.GA,
		p.Weight,
		string(p.AgaSgaLga),
		string(p.Sex),
		dob,
		p.TOB,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return patients.ErrConflict
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	p, err := scanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, err
}

func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY patient_id ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra el paciente; las entradas caen por ON DELETE CASCADE.
func (r *PatientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPatient(s scanner) (patients.Patient, error) {
	var (
		p     patients.Patient
		class string
		sex   string
		dob   time.Time
	)
	if err := s.Scan(
		&p.ID,
		&p.PatientID,
		&p.Name,
		&p.GA,
		&p.Weight,
		&class,
		&sex,
		&dob,
		&p.TOB,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}
	p.AgaSgaLga = patients.Classification(class)
	p.Sex = patients.Sex(sex)
	// dob es DATE; pgx lo entrega como medianoche UTC
	p.DOB = dob.UTC().Format(progress.DateLayout)
	return p, nil
}

func parseDOB(s string) (time.Time, error) {
	t, err := time.Parse(progress.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, patients.ErrInvalidInput
	}
	return t, nil
}
