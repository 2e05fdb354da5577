package records

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

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	e.Validator = validation.New()
	return h, svc, e
}

func TestOpenRecordEndpoint(t *testing.T) {
	h, _, e := newTestHandler()
	patientID := uuid.New().String()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/"+patientID+"/record", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues(patientID)

	if err := h.OpenRecord(c); err != nil {
		t.Fatalf("OpenRecord: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	// Opening again conflicts
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec2)
	c2.SetParamNames("patientId")
	c2.SetParamValues(patientID)
	err := h.OpenRecord(c2)
	if err == nil || !strings.Contains(err.Error(), "RECORD_EXISTS") {
		t.Errorf("expected RECORD_EXISTS, got %v", err)
	}
}

func TestAddFollowUpEndpoint(t *testing.T) {
	h, svc, e := newTestHandler()
	r, _ := svc.OpenRecord(context.Background(), uuid.New())

	body := `{"note":"control visit","professionalId":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/records/"+r.ID.String()+"/follow-ups", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	if err := h.AddFollowUp(c); err != nil {
		t.Fatalf("AddFollowUp: %v", err)
	}
	var got FollowUpEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.EntryDate.IsZero() {
		t.Error("entryDate not defaulted")
	}
}

func TestHistoryEndpointParsesFilters(t *testing.T) {
	h, svc, e := newTestHandler()
	ctx := context.Background()
	r, _ := svc.OpenRecord(ctx, uuid.New())

	dr := uuid.New()
	for i, day := range []int{5, 15, 25} {
		f := &FollowUpEntry{
			RecordID:       r.ID,
			Note:           "visit",
			EntryDate:      time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC),
			ProfessionalID: dr,
		}
		if i == 1 {
			f.ProfessionalID = uuid.New()
		}
		if err := svc.AddFollowUp(ctx, f); err != nil {
			t.Fatalf("AddFollowUp: %v", err)
		}
	}

	target := "/api/v1/records/" + r.ID.String() + "/follow-ups?from=2026-02-01&to=2026-02-20&professionalId=" + dr.String()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	if err := h.History(c); err != nil {
		t.Fatalf("History: %v", err)
	}
	var resp pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestHistoryEndpointRejectsBadDate(t *testing.T) {
	h, svc, e := newTestHandler()
	r, _ := svc.OpenRecord(context.Background(), uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/"+r.ID.String()+"/follow-ups?from=notadate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	err := h.History(c)
	if err == nil || !strings.Contains(err.Error(), "INVALID_DATE") {
		t.Errorf("expected INVALID_DATE, got %v", err)
	}
}
