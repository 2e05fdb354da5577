package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FooTalentGroup/aura-api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reportCols = `id, patient_id, professional_id, title, content, issued_at, created_at, updated_at`

func scanReport(row pgx.Row) (*ClinicalReport, error) {
	var cr ClinicalReport
	err := row.Scan(&cr.ID, &cr.PatientID, &cr.ProfessionalID, &cr.Title, &cr.Content,
		&cr.IssuedAt, &cr.CreatedAt, &cr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &cr, err
}

func (r *repoPG) Create(ctx context.Context, cr *ClinicalReport) error {
	cr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO clinical_reports (id, patient_id, professional_id, title, content, issued_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		cr.ID, cr.PatientID, cr.ProfessionalID, cr.Title, cr.Content, cr.IssuedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalReport, error) {
	return scanReport(r.conn(ctx).QueryRow(ctx, `SELECT `+reportCols+` FROM clinical_reports WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, cr *ClinicalReport) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_reports SET title=$2, content=$3, issued_at=$4, updated_at=NOW()
		WHERE id = $1`,
		cr.ID, cr.Title, cr.Content, cr.IssuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM clinical_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReport, int, error) {
	qb := db.NewSearchQuery("clinical_reports", reportCols)
	qb.Eq("patient_id", patientID)
	qb.OrderBy("issued_at DESC")

	var total int
	if err := r.conn(ctx).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ClinicalReport
	for rows.Next() {
		cr, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cr)
	}
	return items, total, nil
}
