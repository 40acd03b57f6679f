package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

// AuthHandler handles operator registration and login.
type AuthHandler struct {
	accountService ports.AccountService
}

func NewAuthHandler(accountService ports.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Account *domain.Account `json:"account,omitempty"`
}

// Register creates a new operator account.
//
// @Summary      Register a new operator account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	account, err := h.accountService.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrAccountExists:
			status = http.StatusConflict
		case domain.ErrInvalidCredentials:
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, authResponse{Account: account})
}

// Login authenticates an operator and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, account, err := h.accountService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrAccountNotFound, domain.ErrInvalidCredentials:
			status = http.StatusUnauthorized
		}
		return c.JSON(status, map[string]string{"error": "invalid credentials"})
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, Account: account})
}
