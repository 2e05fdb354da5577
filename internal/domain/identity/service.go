package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/FooTalentGroup/aura-api/internal/platform/db"
)

// Clock abstracts time.Now so suspension arithmetic is testable.
type Clock func() time.Time

type Service struct {
	users  UserRepository
	roles  RoleRepository
	logger zerolog.Logger
	now    Clock
	tx     func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewService wires the identity repositories. Registration creates the user
// row and its role assignment in one transaction; pool may be nil in tests,
// in which case steps run directly.
func NewService(users UserRepository, roles RoleRepository, logger zerolog.Logger, pool *pgxpool.Pool) *Service {
	s := &Service{users: users, roles: roles, logger: logger, now: time.Now}
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

// SetClock replaces the time source. Tests use it to pin suspension windows.
func (s *Service) SetClock(now Clock) { s.now = now }

// Register creates an enabled account with the given role and hashed
// password.
func (s *Service) Register(ctx context.Context, email, password, roleName string) (*User, error) {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		PasswordHash: string(hash),
		Enabled:      true,
	}
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
		return s.roles.AssignRole(ctx, u.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", roleName).Msg("user registered")
	return u, nil
}

// Login verifies credentials. Unknown emails and wrong passwords both return
// ErrInvalidCredentials so the response cannot be used to enumerate accounts.
// Suspended accounts return a DisabledError carrying the suspension end,
// reported before the password is checked.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Disabled check precedes credential verification. The state is
	// re-derived from the timestamp: only a suspension end strictly before
	// now admits login, even if the sweeper has not cleared the row yet.
	if !u.Enabled && (u.SuspensionEnd == nil || !u.SuspensionEnd.Before(s.now())) {
		return nil, &DisabledError{SuspensionEnd: u.SuspensionEnd}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// AuthoritiesFor resolves the authority strings for a user: ROLE_-prefixed
// role names plus permission names.
func (s *Service) AuthoritiesFor(ctx context.Context, userID uuid.UUID) ([]string, error) {
	roles, err := s.roles.RolesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	perms, err := s.roles.PermissionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Authorities(roles, perms), nil
}

// Suspend disables the account until now + amount units. A zero amount is
// allowed and produces a suspension that the next sweep lifts.
func (s *Service) Suspend(ctx context.Context, userID uuid.UUID, amount int, unit SuspensionUnit) (*User, error) {
	if amount < 0 {
		return nil, fmt.Errorf("identity: suspension amount must not be negative, got %d", amount)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	end := unit.Add(s.now(), amount)
	u.Enabled = false
	u.SuspensionEnd = &end
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Time("suspension_end", end).
		Msg("user suspended")
	return u, nil
}

// Activate re-enables the account and clears any suspension. Activating an
// already enabled account is a no-op.
func (s *Service) Activate(ctx context.Context, userID uuid.UUID) (*User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Enabled && u.SuspensionEnd == nil {
		return u, nil
	}

	u.Enabled = true
	u.SuspensionEnd = nil
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("user activated")
	return u, nil
}

// ReactivateExpired lifts every suspension whose end has passed. A failure on
// one account does not stop the rest; the number of reactivated accounts is
// returned.
func (s *Service) ReactivateExpired(ctx context.Context) (int, error) {
	expired, err := s.users.ListExpiredSuspensions(ctx, s.now())
	if err != nil {
		return 0, err
	}

	reactivated := 0
	for _, u := range expired {
		u.Enabled = true
		u.SuspensionEnd = nil
		if err := s.users.Update(ctx, u); err != nil {
			s.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("reactivation failed")
			continue
		}
		s.logger.Info().Str("user_id", u.ID.String()).Msg("suspension expired, user reactivated")
		reactivated++
	}
	return reactivated, nil
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers pages through all accounts.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

// EnsureAdmin creates the bootstrap admin account if no account with the
// given email exists. Called once at startup.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	if _, err := s.Register(ctx, email, password, "ADMIN"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
