package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request / Response types ---

type createUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

type updateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type userResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth.Format(time.DateOnly),
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be in YYYY-MM-DD format")
	}

	user := domain.NewUser(req.FirstName, req.LastName, req.Email, dob)

	created, err := h.service.CreateUser(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newUserResponse(created))
}

// GetByID handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id (UUID)"
// @Success      200 {object}  userResponse
// @Failure      400 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Failure      500 {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(user))
}

// GetByEmail handles GET /v1/users?email=.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Email address"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	email := c.QueryParam("email")

	user, err := h.service.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Partially update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id (UUID)"
// @Param        body  body      updateUserRequest  true  "Fields to update; absent fields are left unchanged"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := domain.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(time.DateOnly, *req.DateOfBirth)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be in YYYY-MM-DD format")
		}
		update.DateOfBirth = &dob
	}

	updated, err := h.service.UpdateUser(c.Request().Context(), id, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(updated))
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id (UUID)"
// @Success      204
// @Failure      400 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Failure      500 {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
