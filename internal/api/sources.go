package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// sourceRequest is the create/update payload for a source. Author and format
// are full replaces on update.
type sourceRequest struct {
	Title  string  `json:"title" validate:"required,min=1,max=200"`
	Author *string `json:"author" validate:"omitempty,max=200"`
	Format *string `json:"format" validate:"omitempty,max=100"`
}

func (c *Controller) initSourceRoutes() {
	group := c.Group.Group("/source", c.AuthMiddleware)
	group.POST("", c.CreateSource)
	group.GET("", c.GetSources)
	group.GET("/lookup", c.GetSourceLookup)
	group.PUT("/:id", c.UpdateSource)
	group.DELETE("/:id", c.DeleteSource)
}

// CreateSource handles POST /api/source.
func (c *Controller) CreateSource(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req sourceRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	exists, err := c.DS.SourceTitleExists(claims.UserID, req.Title)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if exists {
		return apperrors.NewConflict("Source title already exists")
	}

	source := &datastore.Source{
		Title:  req.Title,
		Author: req.Author,
		Format: req.Format,
		UserID: claims.UserID,
	}
	if err := c.DS.CreateSource(source); err != nil {
		return apperrors.NewInternal(err)
	}

	return respondCreated(ctx, "New source added successfully", source)
}

// GetSources handles GET /api/source with pagination.
func (c *Controller) GetSources(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	page, limit := pageParams(ctx)
	sources, total, err := c.DS.GetSources(claims.UserID, limit, (page-1)*limit)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if clamped := clampPage(page, limit, total); clamped != page {
		page = clamped
		sources, total, err = c.DS.GetSources(claims.UserID, limit, (page-1)*limit)
		if err != nil {
			return apperrors.NewInternal(err)
		}
	}
	if sources == nil {
		sources = []datastore.Source{}
	}

	return respondPage(ctx, "Sources retrieved successfully", sources, newPagination(page, limit, total))
}

// GetSourceLookup handles GET /api/source/lookup: the unpaginated id/title
// list used to populate selection lists.
func (c *Controller) GetSourceLookup(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	options, err := c.DS.GetSourceLookup(claims.UserID)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if options == nil {
		options = []datastore.SourceOption{}
	}

	return respondOK(ctx, "Source lookup retrieved successfully", options)
}

// UpdateSource handles PUT /api/source/:id.
func (c *Controller) UpdateSource(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req sourceRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	source := &datastore.Source{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		Format: req.Format,
		UserID: claims.UserID,
	}
	if err := c.DS.UpdateSource(source); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Source not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Source updated successfully", source)
}

// DeleteSource handles DELETE /api/source/:id.
func (c *Controller) DeleteSource(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := c.DS.DeleteSource(claims.UserID, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Source not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Source deleted successfully", nil)
}
