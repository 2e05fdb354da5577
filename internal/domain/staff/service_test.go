package staff

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/FooTalentGroup/aura-api/internal/domain/identity"
)

type mockUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func (m *mockUserRepo) Create(_ context.Context, u *identity.User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return identity.ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (m *mockUserRepo) Update(_ context.Context, u *identity.User) error { return nil }

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]*identity.User, int, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) ListExpiredSuspensions(_ context.Context, _ time.Time) ([]*identity.User, error) {
	return nil, nil
}

type mockRoleRepo struct {
	roles map[string]*identity.Role
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*identity.Role, error) {
	r, ok := m.roles[name]
	if !ok {
		return nil, identity.ErrRoleNotFound
	}
	return r, nil
}

func (m *mockRoleRepo) RolesForUser(_ context.Context, _ uuid.UUID) ([]identity.Role, error) {
	return nil, nil
}

func (m *mockRoleRepo) PermissionsForUser(_ context.Context, _ uuid.UUID) ([]identity.Permission, error) {
	return nil, nil
}

func (m *mockRoleRepo) AssignRole(_ context.Context, _, _ uuid.UUID) error { return nil }

type mockProfessionalRepo struct {
	items map[uuid.UUID]*Professional
}

func (m *mockProfessionalRepo) Create(_ context.Context, p *Professional) error {
	for _, existing := range m.items {
		if existing.DNI == p.DNI {
			return ErrDNITaken
		}
	}
	p.ID = uuid.New()
	clone := *p
	m.items[p.ID] = &clone
	return nil
}

func (m *mockProfessionalRepo) GetByID(_ context.Context, id uuid.UUID) (*Professional, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, ErrProfessionalNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProfessionalRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Professional, error) {
	for _, p := range m.items {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrProfessionalNotFound
}

func (m *mockProfessionalRepo) Update(_ context.Context, p *Professional) error {
	if _, ok := m.items[p.ID]; !ok {
		return ErrProfessionalNotFound
	}
	clone := *p
	m.items[p.ID] = &clone
	return nil
}

func (m *mockProfessionalRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrProfessionalNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockProfessionalRepo) Search(_ context.Context, name string, limit, offset int) ([]*Professional, int, error) {
	var items []*Professional
	for _, p := range m.items {
		if name == "" || strings.Contains(strings.ToLower(p.LastName), strings.ToLower(name)) {
			clone := *p
			items = append(items, &clone)
		}
	}
	return items, len(items), nil
}

type mockReceptionistRepo struct {
	items map[uuid.UUID]*Receptionist
}

func (m *mockReceptionistRepo) Create(_ context.Context, r *Receptionist) error {
	r.ID = uuid.New()
	clone := *r
	m.items[r.ID] = &clone
	return nil
}

func (m *mockReceptionistRepo) GetByID(_ context.Context, id uuid.UUID) (*Receptionist, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, ErrReceptionistNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *mockReceptionistRepo) Update(_ context.Context, r *Receptionist) error {
	if _, ok := m.items[r.ID]; !ok {
		return ErrReceptionistNotFound
	}
	clone := *r
	m.items[r.ID] = &clone
	return nil
}

func (m *mockReceptionistRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrReceptionistNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockReceptionistRepo) Search(_ context.Context, name string, limit, offset int) ([]*Receptionist, int, error) {
	var items []*Receptionist
	for _, r := range m.items {
		clone := *r
		items = append(items, &clone)
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockUserRepo, *mockProfessionalRepo) {
	users := &mockUserRepo{users: make(map[uuid.UUID]*identity.User)}
	roles := &mockRoleRepo{roles: map[string]*identity.Role{
		"PROFESSIONAL": {ID: uuid.New(), Name: "PROFESSIONAL"},
		"RECEPTIONIST": {ID: uuid.New(), Name: "RECEPTIONIST"},
	}}
	identitySvc := identity.NewService(users, roles, zerolog.Nop(), nil)

	pros := &mockProfessionalRepo{items: make(map[uuid.UUID]*Professional)}
	recs := &mockReceptionistRepo{items: make(map[uuid.UUID]*Receptionist)}
	return NewService(pros, recs, identitySvc, nil), users, pros
}

func TestRegisterProfessionalCreatesUser(t *testing.T) {
	svc, users, pros := newTestService()
	ctx := context.Background()

	p := &Professional{
		FirstName: "Maria", LastName: "Lopez", DNI: "27123456",
		Specialty: "pediatrics", LicenseNumber: "MP-1234",
		Email: "mlopez@clinic.org",
	}
	if err := svc.RegisterProfessional(ctx, p, "s3cretpass"); err != nil {
		t.Fatalf("RegisterProfessional: %v", err)
	}

	if p.UserID == uuid.Nil {
		t.Fatal("professional not linked to a user")
	}
	u, err := users.GetByID(ctx, p.UserID)
	if err != nil {
		t.Fatalf("linked user missing: %v", err)
	}
	if u.Email != "mlopez@clinic.org" {
		t.Errorf("user email = %q", u.Email)
	}
	if len(pros.items) != 1 {
		t.Errorf("expected 1 professional stored")
	}
}

func TestRegisterProfessionalDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p1 := &Professional{FirstName: "Maria", LastName: "Lopez", DNI: "27123456",
		Specialty: "pediatrics", LicenseNumber: "MP-1234", Email: "mlopez@clinic.org"}
	if err := svc.RegisterProfessional(ctx, p1, "s3cretpass"); err != nil {
		t.Fatalf("RegisterProfessional: %v", err)
	}

	p2 := &Professional{FirstName: "Marta", LastName: "Lopez", DNI: "27999999",
		Specialty: "neurology", LicenseNumber: "MP-5678", Email: "mlopez@clinic.org"}
	err := svc.RegisterProfessional(ctx, p2, "otherpass")
	if !errors.Is(err, identity.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterReceptionistCreatesUser(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	r := &Receptionist{FirstName: "Carla", LastName: "Ruiz", DNI: "31222333", Email: "cruiz@clinic.org"}
	if err := svc.RegisterReceptionist(ctx, r, "s3cretpass"); err != nil {
		t.Fatalf("RegisterReceptionist: %v", err)
	}
	if r.UserID == uuid.Nil {
		t.Fatal("receptionist not linked to a user")
	}
	if _, err := users.GetByID(ctx, r.UserID); err != nil {
		t.Errorf("linked user missing: %v", err)
	}
}

func TestGetProfessionalByUser(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p := &Professional{FirstName: "Maria", LastName: "Lopez", DNI: "27123456",
		Specialty: "pediatrics", LicenseNumber: "MP-1234", Email: "mlopez@clinic.org"}
	if err := svc.RegisterProfessional(ctx, p, "s3cretpass"); err != nil {
		t.Fatalf("RegisterProfessional: %v", err)
	}

	got, err := svc.GetProfessionalByUser(ctx, p.UserID)
	if err != nil {
		t.Fatalf("GetProfessionalByUser: %v", err)
	}
	if got.ID != p.ID {
		t.Error("wrong professional returned")
	}
}
