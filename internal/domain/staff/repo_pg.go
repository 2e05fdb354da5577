package staff

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

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

type professionalRepoPG struct{ pool *pgxpool.Pool }

func NewProfessionalRepoPG(pool *pgxpool.Pool) ProfessionalRepository {
	return &professionalRepoPG{pool: pool}
}

const professionalCols = `id, first_name, last_name, dni, specialty, license_number, phone, email, user_id, created_at, updated_at`

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DNI, &p.Specialty, &p.LicenseNumber,
		&p.Phone, &p.Email, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	return &p, err
}

func (r *professionalRepoPG) Create(ctx context.Context, p *Professional) error {
	p.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO professionals (id, first_name, last_name, dni, specialty, license_number, phone, email, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.FirstName, p.LastName, p.DNI, p.Specialty, p.LicenseNumber, p.Phone, p.Email, p.UserID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDNITaken
	}
	return err
}

func (r *professionalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return scanProfessional(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+professionalCols+` FROM professionals WHERE id = $1`, id))
}

func (r *professionalRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Professional, error) {
	return scanProfessional(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+professionalCols+` FROM professionals WHERE user_id = $1`, userID))
}

func (r *professionalRepoPG) Update(ctx context.Context, p *Professional) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE professionals SET first_name=$2, last_name=$3, dni=$4, specialty=$5,
			license_number=$6, phone=$7, email=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DNI, p.Specialty, p.LicenseNumber, p.Phone, p.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

func (r *professionalRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM professionals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

func (r *professionalRepoPG) Search(ctx context.Context, name string, limit, offset int) ([]*Professional, int, error) {
	qb := db.NewSearchQuery("professionals", professionalCols)
	if name != "" {
		idx := qb.NextIdx()
		qb.Add(fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", idx, idx), "%"+name+"%")
	}
	qb.OrderBy("last_name ASC, first_name ASC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

type receptionistRepoPG struct{ pool *pgxpool.Pool }

func NewReceptionistRepoPG(pool *pgxpool.Pool) ReceptionistRepository {
	return &receptionistRepoPG{pool: pool}
}

const receptionistCols = `id, first_name, last_name, dni, phone, email, user_id, created_at, updated_at`

func scanReceptionist(row pgx.Row) (*Receptionist, error) {
	var rc Receptionist
	err := row.Scan(&rc.ID, &rc.FirstName, &rc.LastName, &rc.DNI, &rc.Phone, &rc.Email,
		&rc.UserID, &rc.CreatedAt, &rc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReceptionistNotFound
	}
	return &rc, err
}

func (r *receptionistRepoPG) Create(ctx context.Context, rc *Receptionist) error {
	rc.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO receptionists (id, first_name, last_name, dni, phone, email, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rc.ID, rc.FirstName, rc.LastName, rc.DNI, rc.Phone, rc.Email, rc.UserID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDNITaken
	}
	return err
}

func (r *receptionistRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Receptionist, error) {
	return scanReceptionist(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+receptionistCols+` FROM receptionists WHERE id = $1`, id))
}

func (r *receptionistRepoPG) Update(ctx context.Context, rc *Receptionist) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE receptionists SET first_name=$2, last_name=$3, dni=$4, phone=$5, email=$6, updated_at=NOW()
		WHERE id = $1`,
		rc.ID, rc.FirstName, rc.LastName, rc.DNI, rc.Phone, rc.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReceptionistNotFound
	}
	return nil
}

func (r *receptionistRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM receptionists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReceptionistNotFound
	}
	return nil
}

func (r *receptionistRepoPG) Search(ctx context.Context, name string, limit, offset int) ([]*Receptionist, int, error) {
	qb := db.NewSearchQuery("receptionists", receptionistCols)
	if name != "" {
		idx := qb.NextIdx()
		qb.Add(fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", idx, idx), "%"+name+"%")
	}
	qb.OrderBy("last_name ASC, first_name ASC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Receptionist
	for rows.Next() {
		rc, err := scanReceptionist(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rc)
	}
	return items, total, nil
}
