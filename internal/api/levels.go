package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// levelRequest is the create/update payload for a level. Description is a
// full replace on update: omitting it clears the stored value.
type levelRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (c *Controller) initLevelRoutes() {
	group := c.Group.Group("/level", c.AuthMiddleware)
	group.POST("", c.CreateLevel)
	group.GET("", c.GetLevels)
	group.PUT("/:id", c.UpdateLevel)
	group.DELETE("/:id", c.DeleteLevel)
}

// CreateLevel handles POST /api/level.
func (c *Controller) CreateLevel(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req levelRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	exists, err := c.DS.LevelNameExists(claims.UserID, req.Name)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if exists {
		return apperrors.NewConflict("Level name already exists")
	}

	level := &datastore.Level{
		Name:        req.Name,
		Description: req.Description,
		UserID:      claims.UserID,
	}
	if err := c.DS.CreateLevel(level); err != nil {
		return apperrors.NewInternal(err)
	}

	return respondCreated(ctx, "New level added successfully", level)
}

// GetLevels handles GET /api/level.
func (c *Controller) GetLevels(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	levels, err := c.DS.GetLevels(claims.UserID)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if levels == nil {
		levels = []datastore.Level{}
	}

	return respondOK(ctx, "Levels retrieved successfully", levels)
}

// UpdateLevel handles PUT /api/level/:id.
func (c *Controller) UpdateLevel(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req levelRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	level := &datastore.Level{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		UserID:      claims.UserID,
	}
	if err := c.DS.UpdateLevel(level); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Level not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Level updated successfully", level)
}

// DeleteLevel handles DELETE /api/level/:id.
func (c *Controller) DeleteLevel(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := c.DS.DeleteLevel(claims.UserID, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Level not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Level deleted successfully", nil)
}
