package patient

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
	read := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_PROFESSIONAL", "ROLE_RECEPTIONIST"))
	read.GET("/patients", h.List)
	read.GET("/patients/:id", h.Get)
	read.GET("/patients/dni/:dni", h.GetByDNI)
	read.GET("/patients/:id/background", h.GetBackground)

	write := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_RECEPTIONIST"))
	write.POST("/patients", h.Create)
	write.PUT("/patients/:id", h.Update)
	write.DELETE("/patients/:id", h.Delete)

	clinical := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_PROFESSIONAL"))
	clinical.PUT("/patients/:id/background", h.SaveBackground)
}

type patientRequest struct {
	FirstName         string     `json:"firstName" validate:"required"`
	LastName          string     `json:"lastName" validate:"required"`
	DNI               string     `json:"dni" validate:"required"`
	BirthDate         *time.Time `json:"birthDate"`
	Gender            *string    `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	Phone             *string    `json:"phone"`
	Email             *string    `json:"email" validate:"omitempty,email"`
	Address           *string    `json:"address"`
	SchoolID          *uuid.UUID `json:"schoolId"`
	InsuranceProvider *string    `json:"insuranceProvider"`
	InsuranceNumber   *string    `json:"insuranceNumber"`
	UserID            *uuid.UUID `json:"userId"`
}

func (req *patientRequest) toModel() *Patient {
	return &Patient{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DNI:               req.DNI,
		BirthDate:         req.BirthDate,
		Gender:            req.Gender,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		SchoolID:          req.SchoolID,
		InsuranceProvider: req.InsuranceProvider,
		InsuranceNumber:   req.InsuranceNumber,
		UserID:            req.UserID,
	}
}

func (h *Handler) Create(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p := req.toModel()
	if err := h.svc.Create(c.Request().Context(), p); err != nil {
		if errors.Is(err, ErrDNITaken) {
			return apierror.Conflict("DNI_TAKEN", "a patient with this dni already exists")
		}
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("patient")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetByDNI(c echo.Context) error {
	p, err := h.svc.GetByDNI(c.Request().Context(), c.Param("dni"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("patient")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := SearchFilter{
		Name: c.QueryParam("name"),
		DNI:  c.QueryParam("dni"),
	}
	items, total, err := h.svc.Search(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p := req.toModel()
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), p); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return apierror.NotFound("patient")
		case errors.Is(err, ErrDNITaken):
			return apierror.Conflict("DNI_TAKEN", "a patient with this dni already exists")
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("patient")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type backgroundRequest struct {
	Allergies         *string `json:"allergies"`
	ChronicConditions *string `json:"chronicConditions"`
	Medications       *string `json:"medications"`
	FamilyHistory     *string `json:"familyHistory"`
	Notes             *string `json:"notes"`
}

func (h *Handler) GetBackground(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	b, err := h.svc.GetBackground(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return apierror.NotFound("patient")
		case errors.Is(err, ErrBackgroundNotFound):
			return apierror.NotFound("medical background")
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) SaveBackground(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid patient id")
	}
	var req backgroundRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}

	b := &MedicalBackground{
		PatientID:         id,
		Allergies:         req.Allergies,
		ChronicConditions: req.ChronicConditions,
		Medications:       req.Medications,
		FamilyHistory:     req.FamilyHistory,
		Notes:             req.Notes,
	}
	if err := h.svc.SaveBackground(c.Request().Context(), b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("patient")
		}
		return err
	}
	return c.JSON(http.StatusOK, b)
}
