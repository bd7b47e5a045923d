package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/server/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (s *Server) signup(c echo.Context) error {
	req := &signupRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return httpError(common.ErrorValidation)
	}

	token, user, err := s.users.Signup(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
		}
		s.logger.Error(c.Request().Context(), "signup failed", "error", err.Error())
		return httpError(err)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) login(c echo.Context) error {
	req := &loginRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}
	if req.Email == "" || req.Password == "" {
		return httpError(common.ErrorValidation)
	}

	token, user, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password produce the same response.
		if errors.Is(err, common.ErrorUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		s.logger.Error(c.Request().Context(), "login failed", "error", err.Error())
		return httpError(err)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}
