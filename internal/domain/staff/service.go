package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FooTalentGroup/aura-api/internal/domain/identity"
	"github.com/FooTalentGroup/aura-api/internal/platform/db"
)

type Service struct {
	professionals ProfessionalRepository
	receptionists ReceptionistRepository
	identity      *identity.Service
	tx            func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewService wires the staff repositories with the identity service.
// Registration flows create the staff row and its user account in one
// transaction; pool may be nil in tests, in which case steps run directly.
func NewService(professionals ProfessionalRepository, receptionists ReceptionistRepository,
	identitySvc *identity.Service, pool *pgxpool.Pool) *Service {
	s := &Service{
		professionals: professionals,
		receptionists: receptionists,
		identity:      identitySvc,
	}
	if pool != nil {
		s.tx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		}
	} else {
		s.tx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return s
}

// RegisterProfessional creates the user account and professional row
// together. The account gets the PROFESSIONAL role.
func (s *Service) RegisterProfessional(ctx context.Context, p *Professional, password string) error {
	return s.tx(ctx, func(ctx context.Context) error {
		u, err := s.identity.Register(ctx, p.Email, password, "PROFESSIONAL")
		if err != nil {
			return err
		}
		p.UserID = u.ID
		return s.professionals.Create(ctx, p)
	})
}

// RegisterReceptionist creates the user account and receptionist row
// together. The account gets the RECEPTIONIST role.
func (s *Service) RegisterReceptionist(ctx context.Context, r *Receptionist, password string) error {
	return s.tx(ctx, func(ctx context.Context) error {
		u, err := s.identity.Register(ctx, r.Email, password, "RECEPTIONIST")
		if err != nil {
			return err
		}
		r.UserID = u.ID
		return s.receptionists.Create(ctx, r)
	})
}

func (s *Service) GetProfessional(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return s.professionals.GetByID(ctx, id)
}

func (s *Service) GetProfessionalByUser(ctx context.Context, userID uuid.UUID) (*Professional, error) {
	return s.professionals.GetByUserID(ctx, userID)
}

func (s *Service) UpdateProfessional(ctx context.Context, p *Professional) error {
	return s.professionals.Update(ctx, p)
}

func (s *Service) DeleteProfessional(ctx context.Context, id uuid.UUID) error {
	return s.professionals.Delete(ctx, id)
}

func (s *Service) SearchProfessionals(ctx context.Context, name string, limit, offset int) ([]*Professional, int, error) {
	return s.professionals.Search(ctx, name, limit, offset)
}

func (s *Service) GetReceptionist(ctx context.Context, id uuid.UUID) (*Receptionist, error) {
	return s.receptionists.GetByID(ctx, id)
}

func (s *Service) UpdateReceptionist(ctx context.Context, r *Receptionist) error {
	return s.receptionists.Update(ctx, r)
}

func (s *Service) DeleteReceptionist(ctx context.Context, id uuid.UUID) error {
	return s.receptionists.Delete(ctx, id)
}

func (s *Service) SearchReceptionists(ctx context.Context, name string, limit, offset int) ([]*Receptionist, int, error) {
	return s.receptionists.Search(ctx, name, limit, offset)
}
