package report

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
	read.GET("/reports/:id", h.Get)
	read.GET("/patients/:patientId/reports", h.ListByPatient)

	write := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_PROFESSIONAL"))
	write.POST("/reports", h.Create)
	write.PUT("/reports/:id", h.Update)
	write.DELETE("/reports/:id", h.Delete)
}

type reportRequest struct {
	PatientID      uuid.UUID  `json:"patientId" validate:"required"`
	ProfessionalID uuid.UUID  `json:"professionalId" validate:"required"`
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	IssuedAt       *time.Time `json:"issuedAt"`
}

func (h *Handler) Create(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r := &ClinicalReport{
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		Title:          req.Title,
		Content:        req.Content,
	}
	if req.IssuedAt != nil {
		r.IssuedAt = *req.IssuedAt
	}
	if err := h.svc.Create(c.Request().Context(), r); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid report id")
	}
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("report")
		}
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid report id")
	}
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("report")
		}
		return err
	}

	existing.Title = req.Title
	existing.Content = req.Content
	if req.IssuedAt != nil {
		existing.IssuedAt = *req.IssuedAt
	}
	if err := h.svc.Update(c.Request().Context(), existing); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid report id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("report")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
