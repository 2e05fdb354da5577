package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/FooTalentGroup/aura-api/internal/platform/validation"
	"github.com/FooTalentGroup/aura-api/pkg/pagination"
)

type mockRepo struct {
	items map[uuid.UUID]*ClinicalReport
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*ClinicalReport)}
}

func (m *mockRepo) Create(_ context.Context, r *ClinicalReport) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	clone := *r
	m.items[r.ID] = &clone
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*ClinicalReport, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *mockRepo) Update(_ context.Context, r *ClinicalReport) error {
	if _, ok := m.items[r.ID]; !ok {
		return ErrNotFound
	}
	clone := *r
	m.items[r.ID] = &clone
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReport, int, error) {
	var items []*ClinicalReport
	for _, r := range m.items {
		if r.PatientID == patientID {
			clone := *r
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

func TestCreateReportDefaultsIssuedAt(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"patientId":"` + uuid.New().String() + `","professionalId":"` + uuid.New().String() +
		`","title":"Evaluation","content":"Initial evaluation summary."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var got ClinicalReport
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.IssuedAt.IsZero() {
		t.Error("issuedAt not defaulted")
	}
}

func TestCreateReportValidation(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"title":"Missing refs"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err == nil {
		t.Error("expected validation error")
	}
}

func TestListReportsByPatient(t *testing.T) {
	h, repo, e := newTestHandler()
	ctx := context.Background()
	patientID := uuid.New()
	_ = repo.Create(ctx, &ClinicalReport{PatientID: patientID, ProfessionalID: uuid.New(), Title: "A", Content: "x"})
	_ = repo.Create(ctx, &ClinicalReport{PatientID: patientID, ProfessionalID: uuid.New(), Title: "B", Content: "y"})
	_ = repo.Create(ctx, &ClinicalReport{PatientID: uuid.New(), ProfessionalID: uuid.New(), Title: "C", Content: "z"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+patientID.String()+"/reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues(patientID.String())

	if err := h.ListByPatient(c); err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	var resp pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Total)
	}
}

func TestGetReportNotFound(t *testing.T) {
	h, _, e := newTestHandler()
	id := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := h.Get(c)
	if err == nil || !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("expected not found, got %v", err)
	}
}
