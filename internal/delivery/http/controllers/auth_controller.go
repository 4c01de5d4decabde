package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/delivery/http/middleware"
	"churchconnect/internal/domain"
)

// LoginRequest is the request body for POST /api/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements validation.Validatable.
func (l LoginRequest) Validate() error {
	if err := domain.Check("username", strings.TrimSpace(l.Username), domain.Required("username")); err != nil {
		return err
	}
	return domain.Check("password", l.Password, domain.Required("password"))
}

// LoginResponse is the response body for POST /api/login
type LoginResponse struct {
	Token string                 `json:"token"`
	User  domain.AdminProjection `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate an admin with username and password. Returns a JWT and the admin profile. Unknown usernames, wrong passwords and inactive accounts all get the same 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginResponse
// @Failure 400 {object} helpers.APIError "code: missing_field"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, LoginResponse{Token: res.Token, User: res.Admin.Projection()})
}

// Me godoc
// @Summary Current admin
// @Description Return the profile of the admin the bearer token was issued to.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AdminProjection
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Router /me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	admin, err := c.Service.Me(r.Context(), claims)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, admin.Projection())
}
