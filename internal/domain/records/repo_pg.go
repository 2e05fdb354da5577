package records

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

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository {
	return &recordRepoPG{pool: pool}
}

const recordCols = `id, patient_id, created_at, updated_at`

func scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var r MedicalRecord
	err := row.Scan(&r.ID, &r.PatientID, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return &r, err
}

func (r *recordRepoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO medical_records (id, patient_id) VALUES ($1, $2)`, rec.ID, rec.PatientID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrRecordExists
	}
	return err
}

func (r *recordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return scanRecord(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+recordCols+` FROM medical_records WHERE id = $1`, id))
}

func (r *recordRepoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*MedicalRecord, error) {
	return scanRecord(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+recordCols+` FROM medical_records WHERE patient_id = $1`, patientID))
}

func (r *recordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type diagnosisRepoPG struct{ pool *pgxpool.Pool }

func NewDiagnosisRepoPG(pool *pgxpool.Pool) DiagnosisRepository {
	return &diagnosisRepoPG{pool: pool}
}

const diagnosisCols = `id, record_id, code, name, description, diagnosed_at, professional_id, created_at`

func scanDiagnosis(row pgx.Row) (*Diagnosis, error) {
	var d Diagnosis
	err := row.Scan(&d.ID, &d.RecordID, &d.Code, &d.Name, &d.Description,
		&d.DiagnosedAt, &d.ProfessionalID, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDiagnosisNotFound
	}
	return &d, err
}

func (r *diagnosisRepoPG) Create(ctx context.Context, d *Diagnosis) error {
	d.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO diagnoses (id, record_id, code, name, description, diagnosed_at, professional_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.RecordID, d.Code, d.Name, d.Description, d.DiagnosedAt, d.ProfessionalID)
	return err
}

func (r *diagnosisRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	return scanDiagnosis(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+diagnosisCols+` FROM diagnoses WHERE id = $1`, id))
}

func (r *diagnosisRepoPG) Update(ctx context.Context, d *Diagnosis) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE diagnoses SET code=$2, name=$3, description=$4, diagnosed_at=$5
		WHERE id = $1`,
		d.ID, d.Code, d.Name, d.Description, d.DiagnosedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDiagnosisNotFound
	}
	return nil
}

func (r *diagnosisRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM diagnoses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDiagnosisNotFound
	}
	return nil
}

func (r *diagnosisRepoPG) ListByRecord(ctx context.Context, recordID uuid.UUID, limit, offset int) ([]*Diagnosis, int, error) {
	qb := db.NewSearchQuery("diagnoses", diagnosisCols)
	qb.Eq("record_id", recordID)
	qb.OrderBy("diagnosed_at DESC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Diagnosis
	for rows.Next() {
		d, err := scanDiagnosis(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

type followUpRepoPG struct{ pool *pgxpool.Pool }

func NewFollowUpRepoPG(pool *pgxpool.Pool) FollowUpRepository {
	return &followUpRepoPG{pool: pool}
}

const followUpCols = `id, record_id, note, entry_date, professional_id, created_at`

func scanFollowUp(row pgx.Row) (*FollowUpEntry, error) {
	var f FollowUpEntry
	err := row.Scan(&f.ID, &f.RecordID, &f.Note, &f.EntryDate, &f.ProfessionalID, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFollowUpNotFound
	}
	return &f, err
}

func (r *followUpRepoPG) Create(ctx context.Context, f *FollowUpEntry) error {
	f.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO follow_up_entries (id, record_id, note, entry_date, professional_id)
		VALUES ($1,$2,$3,$4,$5)`,
		f.ID, f.RecordID, f.Note, f.EntryDate, f.ProfessionalID)
	return err
}

func (r *followUpRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*FollowUpEntry, error) {
	return scanFollowUp(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+followUpCols+` FROM follow_up_entries WHERE id = $1`, id))
}

func (r *followUpRepoPG) Update(ctx context.Context, f *FollowUpEntry) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE follow_up_entries SET note=$2, entry_date=$3 WHERE id = $1`,
		f.ID, f.Note, f.EntryDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFollowUpNotFound
	}
	return nil
}

func (r *followUpRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM follow_up_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFollowUpNotFound
	}
	return nil
}

func (r *followUpRepoPG) ListByRecord(ctx context.Context, recordID uuid.UUID, filter HistoryFilter, limit, offset int) ([]*FollowUpEntry, int, error) {
	qb := db.NewSearchQuery("follow_up_entries", followUpCols)
	qb.Eq("record_id", recordID)
	if filter.From != nil {
		qb.Gte("entry_date", *filter.From)
	}
	if filter.To != nil {
		qb.Lte("entry_date", *filter.To)
	}
	if filter.ProfessionalID != nil {
		qb.Eq("professional_id", *filter.ProfessionalID)
	}
	qb.OrderBy("entry_date DESC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*FollowUpEntry
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}
