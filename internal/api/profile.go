package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// profileData is the GET /api/profile payload.
type profileData struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Controller) initProfileRoutes() {
	c.Group.GET("/profile", c.GetProfile, c.AuthMiddleware)
}

// GetProfile handles GET /api/profile.
func (c *Controller) GetProfile(ctx echo.Context) error {
	claims, err := currentUser(ctx)
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

	return respondOK(ctx, "Profile retrieved successfully", profileData{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	})
}
