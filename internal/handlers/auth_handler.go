package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// SignUp creates an account and signs it in.
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignUpRequest true "Account"
// @Success 201 {object} dto.Result{data=dto.AuthResponse}
// @Failure 400 {object} dto.Result
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.authService.SignUp(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	h.setSessionCookies(c, resp)
	return ok(c, fiber.StatusCreated, resp)
}

// Login signs in with email and password.
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Result{data=dto.AuthResponse}
// @Failure 401 {object} dto.Result
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.authService.SignIn(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	h.setSessionCookies(c, resp)
	return ok(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	_ = c.BodyParser(&req)
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies(h.refreshCookieName())
	}

	resp, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		h.clearSessionCookies(c)
		return fail(c, err)
	}
	h.setSessionCookies(c, resp)
	return ok(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	_ = c.BodyParser(&req)
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies(h.refreshCookieName())
	}

	if err := h.authService.SignOut(c.UserContext(), req.RefreshToken); err != nil {
		return fail(c, err)
	}
	h.clearSessionCookies(c)
	return ok(c, fiber.StatusOK, fiber.Map{"message": "signed out"})
}

// Me returns the signed-in user.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Result{data=dto.UserResponse}
// @Failure 401 {object} dto.Result
// @Router /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), tenant.GetSession(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.authService.UpdateProfile(c.UserContext(), tenant.GetSession(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, user)
}

func (h *AuthHandler) refreshCookieName() string {
	return h.cfg.SessionCookieName + "_refresh"
}

func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, resp *dto.AuthResponse) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    resp.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWTAccessExpiry),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     h.refreshCookieName(),
		Value:    resp.RefreshToken,
		Path:     "/api/auth",
		Expires:  time.Now().Add(h.cfg.JWTRefreshExpiry),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookies(c *fiber.Ctx) {
	for name, path := range map[string]string{h.cfg.SessionCookieName: "/", h.refreshCookieName(): "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.cfg.CookieSecure,
		})
	}
}
