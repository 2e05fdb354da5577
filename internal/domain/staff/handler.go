package staff

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/FooTalentGroup/aura-api/internal/domain/identity"
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
	read := api.Group("", auth.RequireAuth())
	read.GET("/professionals", h.ListProfessionals)
	read.GET("/professionals/:id", h.GetProfessional)
	read.GET("/receptionists", h.ListReceptionists)
	read.GET("/receptionists/:id", h.GetReceptionist)

	admin := api.Group("", auth.RequireAuthority("ROLE_ADMIN"))
	admin.POST("/professionals", h.RegisterProfessional)
	admin.PUT("/professionals/:id", h.UpdateProfessional)
	admin.DELETE("/professionals/:id", h.DeleteProfessional)
	admin.POST("/receptionists", h.RegisterReceptionist)
	admin.PUT("/receptionists/:id", h.UpdateReceptionist)
	admin.DELETE("/receptionists/:id", h.DeleteReceptionist)
}

type professionalRequest struct {
	FirstName     string  `json:"firstName" validate:"required"`
	LastName      string  `json:"lastName" validate:"required"`
	DNI           string  `json:"dni" validate:"required"`
	Specialty     string  `json:"specialty" validate:"required"`
	LicenseNumber string  `json:"licenseNumber" validate:"required"`
	Phone         *string `json:"phone"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
}

func (h *Handler) RegisterProfessional(c echo.Context) error {
	var req professionalRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p := &Professional{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DNI:           req.DNI,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		Email:         req.Email,
	}
	if err := h.svc.RegisterProfessional(c.Request().Context(), p, req.Password); err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			return apierror.Conflict("EMAIL_TAKEN", "email already registered")
		case errors.Is(err, ErrDNITaken):
			return apierror.Conflict("DNI_TAKEN", "a professional with this dni already exists")
		default:
			return err
		}
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid professional id")
	}
	p, err := h.svc.GetProfessional(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return apierror.NotFound("professional")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProfessionals(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.SearchProfessionals(c.Request().Context(), c.QueryParam("name"), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type professionalUpdateRequest struct {
	FirstName     string  `json:"firstName" validate:"required"`
	LastName      string  `json:"lastName" validate:"required"`
	DNI           string  `json:"dni" validate:"required"`
	Specialty     string  `json:"specialty" validate:"required"`
	LicenseNumber string  `json:"licenseNumber" validate:"required"`
	Phone         *string `json:"phone"`
	Email         string  `json:"email" validate:"required,email"`
}

func (h *Handler) UpdateProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid professional id")
	}
	var req professionalUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.svc.GetProfessional(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return apierror.NotFound("professional")
		}
		return err
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.DNI = req.DNI
	existing.Specialty = req.Specialty
	existing.LicenseNumber = req.LicenseNumber
	existing.Phone = req.Phone
	existing.Email = req.Email
	if err := h.svc.UpdateProfessional(c.Request().Context(), existing); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *Handler) DeleteProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid professional id")
	}
	if err := h.svc.DeleteProfessional(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return apierror.NotFound("professional")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type receptionistRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	DNI       string  `json:"dni" validate:"required"`
	Phone     *string `json:"phone"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
}

func (h *Handler) RegisterReceptionist(c echo.Context) error {
	var req receptionistRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r := &Receptionist{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := h.svc.RegisterReceptionist(c.Request().Context(), r, req.Password); err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			return apierror.Conflict("EMAIL_TAKEN", "email already registered")
		case errors.Is(err, ErrDNITaken):
			return apierror.Conflict("DNI_TAKEN", "a receptionist with this dni already exists")
		default:
			return err
		}
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReceptionist(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid receptionist id")
	}
	r, err := h.svc.GetReceptionist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrReceptionistNotFound) {
			return apierror.NotFound("receptionist")
		}
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListReceptionists(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.SearchReceptionists(c.Request().Context(), c.QueryParam("name"), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type receptionistUpdateRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	DNI       string  `json:"dni" validate:"required"`
	Phone     *string `json:"phone"`
	Email     string  `json:"email" validate:"required,email"`
}

func (h *Handler) UpdateReceptionist(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid receptionist id")
	}
	var req receptionistUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.svc.GetReceptionist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrReceptionistNotFound) {
			return apierror.NotFound("receptionist")
		}
		return err
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.DNI = req.DNI
	existing.Phone = req.Phone
	existing.Email = req.Email
	if err := h.svc.UpdateReceptionist(c.Request().Context(), existing); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *Handler) DeleteReceptionist(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid receptionist id")
	}
	if err := h.svc.DeleteReceptionist(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrReceptionistNotFound) {
			return apierror.NotFound("receptionist")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
