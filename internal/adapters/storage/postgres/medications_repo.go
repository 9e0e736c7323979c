package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"health-companion/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	timings, taken, err := marshalMedicationJSON(m)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, owner_user_id,
			name, start_date, end_date,
			timings, frequency, remarks,
			taken, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		m.ID,
		m.OwnerUserID,
		m.Name,
		m.StartDate,
		m.EndDate,
		timings,
		m.Frequency,
		m.Remarks,
		taken,
		m.CreatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	timings, taken, err := marshalMedicationJSON(m)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			start_date = $3,
			end_date = $4,
			timings = $5,
			frequency = $6,
			remarks = $7,
			taken = $8
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.StartDate,
		m.EndDate,
		timings,
		m.Frequency,
		m.Remarks,
		taken,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, start_date, end_date,
			timings, frequency, remarks,
			COALESCE(taken, '{}'::jsonb), created_at
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return medications.Medication{}, ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Medication, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, start_date, end_date,
			timings, frequency, remarks,
			COALESCE(taken, '{}'::jsonb), created_at
		FROM medications
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MedicationsRepo) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT owner_user_id
		FROM medications
		ORDER BY owner_user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, err
		}
		out = append(out, owner)
	}

	return out, rows.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var timingsRaw, takenRaw []byte

	if err := row.Scan(
		&m.ID,
		&m.OwnerUserID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&timingsRaw,
		&m.Frequency,
		&m.Remarks,
		&takenRaw,
		&m.CreatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	if err := json.Unmarshal(timingsRaw, &m.Timings); err != nil {
		return medications.Medication{}, fmt.Errorf("decode timings: %w", err)
	}
	if err := json.Unmarshal(takenRaw, &m.Taken); err != nil {
		return medications.Medication{}, fmt.Errorf("decode taken: %w", err)
	}
	// taken vacío debe volver como mapa vacío, no nil
	if m.Taken == nil {
		m.Taken = map[string]bool{}
	}

	return m, nil
}

// timings y taken se guardan como jsonb.
func marshalMedicationJSON(m medications.Medication) (timings, taken []byte, err error) {
	timings, err = json.Marshal(m.Timings)
	if err != nil {
		return nil, nil, fmt.Errorf("encode timings: %w", err)
	}
	if m.Taken == nil {
		taken = []byte("{}")
	} else {
		taken, err = json.Marshal(m.Taken)
		if err != nil {
			return nil, nil, fmt.Errorf("encode taken: %w", err)
		}
	}
	return timings, taken, nil
}
