package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

// signupRequest is the POST /api/auth/signup payload.
type signupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name"`
}

// loginRequest is the POST /api/auth/login payload.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// verifyRequest is the POST /api/auth/verify payload.
type verifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// userData is the identity block returned by the auth endpoints.
type userData struct {
	UserID uint    `json:"userId"`
	Email  string  `json:"email"`
	Name   *string `json:"name"`
	Token  string  `json:"token,omitempty"`
}

func (c *Controller) initAuthRoutes() {
	group := c.Group.Group("/auth")
	if c.Settings.RateLimit.Enabled {
		group.Use(c.authRateLimiter())
	}

	group.POST("/signup", c.Signup)
	group.POST("/login", c.Login)
	group.POST("/verify", c.Verify)
}

// Signup handles POST /api/auth/signup.
func (c *Controller) Signup(ctx echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if _, err := c.DS.GetUserByEmail(req.Email); err == nil {
		return apperrors.NewConflict("User already exists")
	} else if !errors.Is(err, datastore.ErrNotFound) {
		return apperrors.NewInternal(err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return apperrors.NewInternal(err)
	}

	user := &datastore.User{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
	}
	if err := c.DS.CreateUser(user); err != nil {
		return apperrors.NewInternal(err)
	}

	c.apiLogger.Info("User registered", "user_id", user.ID)
	return respondCreated(ctx, "User registered successfully", userData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce identical responses.
func (c *Controller) Login(ctx echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	user, err := c.DS.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewUnauthenticated("Invalid email or password")
		}
		return apperrors.NewInternal(err)
	}

	if !security.CheckPassword(user.Password, req.Password) {
		return apperrors.NewUnauthenticated("Invalid email or password")
	}

	token, err := c.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		return apperrors.NewInternal(err)
	}

	c.apiLogger.Info("User logged in", "user_id", user.ID)
	return respondOK(ctx, "Login successful", userData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	})
}

// Verify handles POST /api/auth/verify. Unlike the request guard this
// confirms the subject still exists.
func (c *Controller) Verify(ctx echo.Context) error {
	var req verifyRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	claims, err := c.Tokens.Validate(req.Token)
	if err != nil {
		return err
	}

	user, err := c.DS.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("User not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Token verified successfully", userData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

// bindAndValidate decodes the JSON body and runs schema validation.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return apperrors.NewValidation("Validation Error",
			apperrors.FieldError{Field: "body", Message: "Malformed request body"})
	}
	return ctx.Validate(req)
}
