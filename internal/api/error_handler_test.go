package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/OJOMB/user-registry/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "user not found",
			err:        domain.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "user not found",
		},
		{
			name:       "validation with reason",
			err:        fmt.Errorf("%w: email must be populated", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation error: email must be populated",
		},
		{
			name:       "missing parameters",
			err:        fmt.Errorf("%w: update must contain at least one field", domain.ErrMissingParameters),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "missing parameters: update must contain at least one field",
		},
		{
			name:       "conflicting user",
			err:        fmt.Errorf("%w: jane@example.com", domain.ErrConflictingUser),
			wantStatus: http.StatusConflict,
			wantMsg:    "conflicting user: jane@example.com",
		},
		{
			name:       "invalid credentials",
			err:        domain.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid credentials",
		},
		{
			name:       "account not found",
			err:        domain.ErrAccountNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "account not found",
		},
		{
			name:       "account exists",
			err:        domain.ErrAccountExists,
			wantStatus: http.StatusConflict,
			wantMsg:    "account already exists",
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusBadRequest, "invalid user id"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid user id",
		},
		{
			name:       "unexpected error is masked",
			err:        errors.New("mongo exploded"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "internal taxonomy error is masked",
			err:        fmt.Errorf("%w: rollback failed", domain.ErrInternal),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusNoContent); err != nil {
		t.Fatalf("precommit failed: %v", err)
	}

	handle(errors.New("late failure"), c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
