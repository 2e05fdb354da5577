package school

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/FooTalentGroup/aura-api/internal/platform/validation"
	"github.com/FooTalentGroup/aura-api/pkg/pagination"
)

type mockRepo struct {
	items map[uuid.UUID]*School
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*School)}
}

func (m *mockRepo) Create(_ context.Context, s *School) error {
	s.ID = uuid.New()
	clone := *s
	m.items[s.ID] = &clone
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*School, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *mockRepo) Update(_ context.Context, s *School) error {
	if _, ok := m.items[s.ID]; !ok {
		return ErrNotFound
	}
	clone := *s
	m.items[s.ID] = &clone
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) Search(_ context.Context, name string, limit, offset int) ([]*School, int, error) {
	var items []*School
	for _, s := range m.items {
		if name == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			clone := *s
			items = append(items, &clone)
		}
	}
	return items, len(items), nil
}

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))
	e := echo.New()
	e.Validator = validation.New()
	return h, repo, e
}

func TestCreateSchool(t *testing.T) {
	h, repo, e := newTestHandler()

	body := `{"name":"Escuela 12","phone":"555-0101"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 school stored, got %d", len(repo.items))
	}
}

func TestCreateSchoolRequiresName(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schools", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err == nil {
		t.Error("expected validation error for missing name")
	}
}

func TestGetSchoolNotFound(t *testing.T) {
	h, _, e := newTestHandler()

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schools/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := h.Get(c)
	if err == nil || !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListSchoolsFiltersByName(t *testing.T) {
	h, repo, e := newTestHandler()
	ctx := context.Background()
	_ = repo.Create(ctx, &School{Name: "Escuela Norte"})
	_ = repo.Create(ctx, &School{Name: "Colegio Sur"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schools?name=escuela", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	var resp pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestDeleteSchool(t *testing.T) {
	h, repo, e := newTestHandler()
	s := &School{Name: "Escuela 12"}
	_ = repo.Create(context.Background(), s)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schools/"+s.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if len(repo.items) != 0 {
		t.Error("school not deleted")
	}
}
