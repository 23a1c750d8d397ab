package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nicu-progress/internal/domain/entries"
	"nicu-progress/internal/domain/progress"
)

type EntriesRepo struct {
	db *sql.DB
}

func NewEntriesRepo(db *sql.DB) *EntriesRepo {
	return &EntriesRepo{db: db}
}

// measurementColumns sigue el orden de progress.NumericFields y luego progress.Categories.
var measurementColumns = func() []string {
	cols := make([]string, 0, len(progress.NumericFields)+len(progress.Categories))
	for _, f := range progress.NumericFields {
		cols = append(cols, f.EntryKey())
	}
	for _, c := range progress.Categories {
		cols = append(cols, string(c))
	}
	return cols
}()

var entryColumns = "id, patient_id, date, " + strings.Join(measurementColumns, ", ") + ", created_by, created_at"

func (r *EntriesRepo) Create(ctx context.Context, e entries.Entry) error {
	date, err := time.Parse(progress.DateLayout, e.Date)
	if err != nil {
		return entries.ErrInvalidInput
	}

	args := make([]any, 0, 5+len(measurementColumns))
	args = append(args, e.ID, e.PatientID, date)
	for _, f := range progress.NumericFields {
		args = append(args, nullString(string(e.Numeric[f])))
	}
	for _, c := range progress.Categories {
		args = append(args, nullString(e.Categorical[c]))
	}
	args = append(args, e.CreatedBy, e.CreatedAt)

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (`+strings.Join(placeholders, ",")+`)`,
		args...,
	)
	return err
}

func (r *EntriesRepo) GetByID(ctx context.Context, patientID, id string) (entries.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1 AND patient_id = $2`,
		strings.TrimSpace(id), strings.TrimSpace(patientID),
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entries.Entry{}, entries.ErrNotFound
	}
	return e, err
}

func (r *EntriesRepo) ListByPatient(ctx context.Context, patientID string) ([]entries.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE patient_id = $1
		ORDER BY date ASC, created_at ASC, id ASC
	`, strings.TrimSpace(patientID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entries.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EntriesRepo) Delete(ctx context.Context, patientID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM entries WHERE id = $1 AND patient_id = $2`,
		strings.TrimSpace(id), strings.TrimSpace(patientID),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return entries.ErrNotFound
	}
	return nil
}

// DeleteByPatient es casi siempre un no-op: la FK ya borra en cascada.
func (r *EntriesRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE patient_id = $1`, strings.TrimSpace(patientID))
	return err
}

func scanEntry(s scanner) (entries.Entry, error) {
	var (
		e    entries.Entry
		date time.Time
	)
	values := make([]sql.NullString, len(measurementColumns))

	dest := make([]any, 0, 5+len(values))
	dest = append(dest, &e.ID, &e.PatientID, &date)
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &e.CreatedBy, &e.CreatedAt)

	if err := s.Scan(dest...); err != nil {
		return entries.Entry{}, err
	}

	e.Date = date.UTC().Format(progress.DateLayout)
	e.Numeric = make(map[progress.Field]progress.Value, len(progress.NumericFields))
	e.Categorical = make(map[progress.Category]string, len(progress.Categories))
	for i, f := range progress.NumericFields {
		if v := values[i]; v.Valid && v.String != "" {
			e.Numeric[f] = progress.Value(v.String)
		}
	}
	offset := len(progress.NumericFields)
	for i, c := range progress.Categories {
		if v := values[offset+i]; v.Valid && v.String != "" {
			e.Categorical[c] = v.String
		}
	}
	return e, nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
