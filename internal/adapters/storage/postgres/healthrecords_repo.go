package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"health-companion/internal/domain/healthrecords"
)

type HealthRecordsRepo struct {
	db *sql.DB
}

func NewHealthRecordsRepo(db *sql.DB) *HealthRecordsRepo {
	return &HealthRecordsRepo{db: db}
}

func (r *HealthRecordsRepo) Create(ctx context.Context, rec healthrecords.HealthRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (
			id, owner_user_id,
			title, kind, file_url,
			summary, analysis_status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.OwnerUserID,
		rec.Title,
		rec.Kind,
		rec.FileURL,
		rec.Summary,
		rec.AnalysisStatus,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *HealthRecordsRepo) Update(ctx context.Context, rec healthrecords.HealthRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_records
		SET
			title = $2,
			kind = $3,
			file_url = $4,
			summary = $5,
			analysis_status = $6,
			updated_at = $7
		WHERE id = $1
	`,
		rec.ID,
		rec.Title,
		rec.Kind,
		rec.FileURL,
		rec.Summary,
		rec.AnalysisStatus,
		rec.UpdatedAt,
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

func (r *HealthRecordsRepo) GetByID(ctx context.Context, id string) (healthrecords.HealthRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return healthrecords.HealthRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			title, kind, file_url,
			summary, analysis_status,
			created_at, updated_at
		FROM health_records
		WHERE id = $1
	`, id)

	var rec healthrecords.HealthRecord
	if err := row.Scan(
		&rec.ID,
		&rec.OwnerUserID,
		&rec.Title,
		&rec.Kind,
		&rec.FileURL,
		&rec.Summary,
		&rec.AnalysisStatus,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return healthrecords.HealthRecord{}, ErrNotFound
		}
		return healthrecords.HealthRecord{}, err
	}

	return rec, nil
}

func (r *HealthRecordsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter healthrecords.ListFilter) ([]healthrecords.HealthRecord, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	query := `
		SELECT
			id, owner_user_id,
			title, kind, file_url,
			summary, analysis_status,
			created_at, updated_at
		FROM health_records
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}

	if filter.Kind != "" {
		query += ` AND kind = $2`
		args = append(args, filter.Kind)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]healthrecords.HealthRecord, 0)
	for rows.Next() {
		var rec healthrecords.HealthRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.OwnerUserID,
			&rec.Title,
			&rec.Kind,
			&rec.FileURL,
			&rec.Summary,
			&rec.AnalysisStatus,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func (r *HealthRecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
