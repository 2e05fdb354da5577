package identity

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
	svc    *Service
	issuer *auth.TokenIssuer
	cookie auth.CookieWriter
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer, cookie auth.CookieWriter) *Handler {
	return &Handler{svc: svc, issuer: issuer, cookie: cookie}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me, auth.RequireAuth())

	admin := api.Group("", auth.RequireAuthority("ROLE_ADMIN"))
	admin.POST("/auth/register", h.Register)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.POST("/users/:id/suspend", h.Suspend)
	admin.POST("/users/:id/activate", h.Activate)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Success bool      `json:"success"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return apierror.Conflict("EMAIL_TAKEN", "email already registered")
		case errors.Is(err, ErrRoleNotFound):
			return apierror.BadRequest("UNKNOWN_ROLE", "unknown role: "+req.Role)
		default:
			return err
		}
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		var disabled *DisabledError
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			return apierror.Unauthorized("invalid email or password")
		case errors.As(err, &disabled):
			apiErr := apierror.Forbidden("ACCOUNT_DISABLED", "account is suspended")
			if disabled.SuspensionEnd != nil {
				apiErr = apiErr.WithDetails("suspended until " + disabled.SuspensionEnd.UTC().Format(time.RFC3339))
			}
			return apiErr
		default:
			return err
		}
	}

	authorities, err := h.svc.AuthoritiesFor(ctx, u.ID)
	if err != nil {
		return err
	}
	token, err := h.issuer.Issue(u.ID, u.Email, authorities)
	if err != nil {
		return err
	}
	h.cookie.Write(c, token)

	return c.JSON(http.StatusOK, loginResponse{
		ID:      u.ID,
		Email:   u.Email,
		Message: "login successful",
		Token:   token,
		Success: true,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	h.cookie.Clear(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "logout successful",
		"success": true,
	})
}

func (h *Handler) Me(c echo.Context) error {
	principal, _ := auth.PrincipalFrom(c.Request().Context())
	u, err := h.svc.GetUser(c.Request().Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apierror.NotFound("user")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"enabled":     u.Enabled,
		"authorities": principal.Authorities,
	})
}

func (h *Handler) ListUsers(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListUsers(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid user id")
	}
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apierror.NotFound("user")
		}
		return err
	}
	return c.JSON(http.StatusOK, u)
}

type suspendRequest struct {
	Duration int    `json:"duration" validate:"gte=0"`
	Unit     string `json:"unit" validate:"required,oneof=HOURS DAYS WEEKS MONTHS"`
}

type suspendResponse struct {
	ID               uuid.UUID `json:"id"`
	Enabled          bool      `json:"enabled"`
	SuspensionEnd    time.Time `json:"suspensionEnd"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

func (h *Handler) Suspend(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid user id")
	}
	var req suspendRequest
	if err := c.Bind(&req); err != nil {
		return apierror.BadRequest("INVALID_BODY", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	unit, err := ParseSuspensionUnit(req.Unit)
	if err != nil {
		return apierror.BadRequest("INVALID_UNIT", err.Error())
	}

	u, err := h.svc.Suspend(c.Request().Context(), id, req.Duration, unit)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apierror.NotFound("user")
		}
		return err
	}

	remaining := int64(time.Until(*u.SuspensionEnd).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return c.JSON(http.StatusOK, suspendResponse{
		ID:               u.ID,
		Enabled:          u.Enabled,
		SuspensionEnd:    u.SuspensionEnd.UTC(),
		RemainingSeconds: remaining,
	})
}

func (h *Handler) Activate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.BadRequest("INVALID_ID", "invalid user id")
	}
	u, err := h.svc.Activate(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apierror.NotFound("user")
		}
		return err
	}
	return c.JSON(http.StatusOK, u)
}
