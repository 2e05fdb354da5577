package records

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/FooTalentGroup/aura-api/internal/platform/apierror"
	"github.com/FooTalentGroup/aura-api/internal/platform/auth"
	"github.com/FooTalentGroup/aura-api/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_PROFESSIONAL"))
	read.GET("/records/:id", h.GetRecord)
	read.GET("/patients/:patientId/record", h.GetRecordByPatient)
	read.GET("/records/:id/diagnoses", h.ListDiagnoses)
	read.GET("/records/:id/follow-ups", h.History)

	write := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_PROFESSIONAL"))
	write.POST("/patients/:patientId/record", h.OpenRecord)
	write.DELETE("/records/:id", h.DeleteRecord)
	write.POST("/records/:id/diagnoses", h.AddDiagnosis)
	write.PUT("/diagnoses/:id", h.UpdateDiagnosis)
	write.DELETE("/diagnoses/:id", h.DeleteDiagnosis)
	write.POST("/records/:id/follow-ups", h.AddFollowUp)
	write.PUT("/follow-ups/:id", h.UpdateFollowUp)
	write.DELETE("/follow-ups/:id", h.DeleteFollowUp)
}

func (h *Handler) OpenRecord(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	r, err := h.svc.OpenRecord(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrRecordExists) {
			return apierror.Conflict("RECORD_EXISTS", "patient already has a medical record")
		}
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid record id")
	}
	r, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) GetRecordByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	r, err := h.svc.GetRecordByPatient(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid record id")
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type diagnosisRequest struct {
	Code           *string    `json:"code"`
	Name           string     `json:"name" validate:"required"`
	Description    *string    `json:"description"`
	DiagnosedAt    *time.Time `json:"diagnosedAt"`
	ProfessionalID uuid.UUID  `json:"professionalId" validate:"required"`
}

func (h *Handler) AddDiagnosis(c echo.Context) error {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid record id")
	}
	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d := &Diagnosis{
		RecordID:       recordID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		ProfessionalID: req.ProfessionalID,
	}
	if req.DiagnosedAt != nil {
		d.DiagnosedAt = *req.DiagnosedAt
	}
	if err := h.svc.AddDiagnosis(c.Request().Context(), d); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDiagnosis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid diagnosis id")
	}
	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d := &Diagnosis{ID: id, Code: req.Code, Name: req.Name, Description: req.Description}
	if req.DiagnosedAt != nil {
		d.DiagnosedAt = *req.DiagnosedAt
	}
	if err := h.svc.UpdateDiagnosis(c.Request().Context(), d); err != nil {
		if errors.Is(err, ErrDiagnosisNotFound) {
			return apierror.NotFound("diagnosis")
		}
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDiagnosis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid diagnosis id")
	}
	if err := h.svc.DeleteDiagnosis(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrDiagnosisNotFound) {
			return apierror.NotFound("diagnosis")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDiagnoses(c echo.Context) error {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid record id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDiagnoses(c.Request().Context(), recordID, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type followUpRequest struct {
	Note           string     `json:"note" validate:"required"`
	EntryDate      *time.Time `json:"entryDate"`
	ProfessionalID uuid.UUID  `json:"professionalId" validate:"required"`
}

func (h *Handler) AddFollowUp(c echo.Context) error {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid record id")
	}
	var req followUpRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f := &FollowUpEntry{
		RecordID:       recordID,
		Note:           req.Note,
		ProfessionalID: req.ProfessionalID,
	}
	if req.EntryDate != nil {
		f.EntryDate = *req.EntryDate
	}
	if err := h.svc.AddFollowUp(c.Request().Context(), f); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) UpdateFollowUp(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid follow-up id")
	}
	var req followUpRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f := &FollowUpEntry{ID: id, Note: req.Note}
	if req.EntryDate != nil {
		f.EntryDate = *req.EntryDate
	}
	if err := h.svc.UpdateFollowUp(c.Request().Context(), f); err != nil {
		if errors.Is(err, ErrFollowUpNotFound) {
			return apierror.NotFound("follow-up entry")
		}
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) DeleteFollowUp(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid follow-up id")
	}
	if err := h.svc.DeleteFollowUp(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrFollowUpNotFound) {
			return apierror.NotFound("follow-up entry")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// History returns the record's follow-up entries, optionally filtered by
// from/to dates (RFC 3339 or YYYY-MM-DD) and professional id.
func (h *Handler) History(c echo.Context) error {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid record id")
	}

	var filter HistoryFilter
	if v := c.QueryParam("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return apierror.BadRequest("INVALID_DATE", "invalid from date: "+v)
		}
		filter.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return apierror.BadRequest("INVALID_DATE", "invalid to date: "+v)
		}
		filter.To = &t
	}
	if v := c.QueryParam("professionalId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return apierror.BadRequest("INVALID_ID", "invalid professional id")
		}
		filter.ProfessionalID = &id
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), recordID, filter, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return apierror.NotFound("medical record")
		}
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
