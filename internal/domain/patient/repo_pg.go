package patient

import (
	"context"
	"errors"
	"fmt"

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

const patientCols = `id, first_name, last_name, dni, birth_date, gender, phone, email, address,
	school_id, insurance_provider, insurance_number, user_id, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DNI, &p.BirthDate, &p.Gender,
		&p.Phone, &p.Email, &p.Address,
		&p.SchoolID, &p.InsuranceProvider, &p.InsuranceNumber, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, first_name, last_name, dni, birth_date, gender, phone, email,
			address, school_id, insurance_provider, insurance_number, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.FirstName, p.LastName, p.DNI, p.BirthDate, p.Gender, p.Phone, p.Email,
		p.Address, p.SchoolID, p.InsuranceProvider, p.InsuranceNumber, p.UserID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDNITaken
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) GetByDNI(ctx context.Context, dni string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE dni = $1`, dni))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, dni=$4, birth_date=$5, gender=$6,
			phone=$7, email=$8, address=$9, school_id=$10,
			insurance_provider=$11, insurance_number=$12, user_id=$13, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DNI, p.BirthDate, p.Gender,
		p.Phone, p.Email, p.Address, p.SchoolID,
		p.InsuranceProvider, p.InsuranceNumber, p.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDNITaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Patient, int, error) {
	qb := db.NewSearchQuery("patients", patientCols)
	if filter.Name != "" {
		idx := qb.NextIdx()
		qb.Add(fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", idx, idx), "%"+filter.Name+"%")
	}
	if filter.DNI != "" {
		qb.Eq("dni", filter.DNI)
	}
	qb.OrderBy("last_name ASC, first_name ASC")

	var total int
	if err := r.conn(ctx).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

type backgroundRepoPG struct{ pool *pgxpool.Pool }

func NewBackgroundRepoPG(pool *pgxpool.Pool) BackgroundRepository {
	return &backgroundRepoPG{pool: pool}
}

func (r *backgroundRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const backgroundCols = `id, patient_id, allergies, chronic_conditions, medications, family_history, notes, created_at, updated_at`

func (r *backgroundRepoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*MedicalBackground, error) {
	var b MedicalBackground
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+backgroundCols+` FROM medical_backgrounds WHERE patient_id = $1`, patientID).
		Scan(&b.ID, &b.PatientID, &b.Allergies, &b.ChronicConditions, &b.Medications,
			&b.FamilyHistory, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBackgroundNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *backgroundRepoPG) Upsert(ctx context.Context, b *MedicalBackground) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medical_backgrounds (id, patient_id, allergies, chronic_conditions,
			medications, family_history, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (patient_id) DO UPDATE SET
			allergies = EXCLUDED.allergies,
			chronic_conditions = EXCLUDED.chronic_conditions,
			medications = EXCLUDED.medications,
			family_history = EXCLUDED.family_history,
			notes = EXCLUDED.notes,
			updated_at = NOW()`,
		b.ID, b.PatientID, b.Allergies, b.ChronicConditions, b.Medications, b.FamilyHistory, b.Notes)
	return err
}
