package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/authz"
	"github.com/iliyamo/pizza-order-service/internal/config"
	"github.com/iliyamo/pizza-order-service/internal/middleware"
	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
	"github.com/iliyamo/pizza-order-service/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints: register,
// login, logout and profile update.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type authResp struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a diner account and logs it straight in: the
// response carries the created user (password cleared) and a recorded
// session token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, email, and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Register(ctx, &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    []model.RoleBinding{{Role: model.RoleDiner}},
	}, h.Cfg.BcryptCost)
	if err != nil {
		return writeError(c, err)
	}

	token, err := h.issueSession(ctx, user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResp{User: user, Token: token})
}

// Login verifies credentials and issues a fresh token. Each login gets
// its own session record; concurrent sessions per user are fine.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	token, err := h.issueSession(ctx, user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResp{User: user, Token: token})
}

// Logout deletes the session record for the presented token. The call
// always reports success: deleting an already-dead session is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.Logout(ctx, middleware.BearerToken(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logout successful"})
}

// UpdateUser changes the email and/or password of the target user.
// Self-service or admin; everyone else is denied. No new token is
// issued and existing sessions stay valid.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	caller := middleware.AuthUser(c)
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	if !authz.Authorized(caller, authz.ActionUpdateUser, authz.Resource{UserID: targetID}) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "unauthorized"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Update(ctx, targetID, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// issueSession signs a token for the user and records it in the
// active-sessions store.
func (h *AuthHandler) issueSession(ctx context.Context, user *model.User) (string, error) {
	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, user, h.Cfg.TokenTTLMin)
	if err != nil {
		return "", err
	}
	if err := h.Sessions.Login(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}
