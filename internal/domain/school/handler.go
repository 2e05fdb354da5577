package school

import (
	"errors"
	"net/http"

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
	read := api.Group("", auth.RequireAuth())
	read.GET("/schools", h.List)
	read.GET("/schools/:id", h.Get)

	write := api.Group("", auth.RequireAuthority("ROLE_ADMIN", "ROLE_RECEPTIONIST"))
	write.POST("/schools", h.Create)
	write.PUT("/schools/:id", h.Update)
	write.DELETE("/schools/:id", h.Delete)
}

type schoolRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

func (h *Handler) Create(c echo.Context) error {
	var req schoolRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s := &School{Name: req.Name, Phone: req.Phone, Email: req.Email, Address: req.Address}
	if err := h.svc.Create(c.Request().Context(), s); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid school id")
	}
	s, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("school")
		}
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.Search(c.Request().Context(), c.QueryParam("name"), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid school id")
	}
	var req schoolRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s := &School{ID: id, Name: req.Name, Phone: req.Phone, Email: req.Email, Address: req.Address}
	if err := h.svc.Update(c.Request().Context(), s); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("school")
		}
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid school id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierror.NotFound("school")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
