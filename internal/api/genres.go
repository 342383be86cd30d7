package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// genreRequest is the create/update payload for a genre.
type genreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (c *Controller) initGenreRoutes() {
	group := c.Group.Group("/genre", c.AuthMiddleware)
	group.POST("", c.CreateGenre)
	group.GET("", c.GetGenres)
	group.PUT("/:id", c.UpdateGenre)
	group.DELETE("/:id", c.DeleteGenre)
}

// CreateGenre handles POST /api/genre.
func (c *Controller) CreateGenre(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req genreRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	exists, err := c.DS.GenreNameExists(claims.UserID, req.Name)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if exists {
		return apperrors.NewConflict("Genre name already exists")
	}

	genre := &datastore.Genre{Name: req.Name, UserID: claims.UserID}
	if err := c.DS.CreateGenre(genre); err != nil {
		return apperrors.NewInternal(err)
	}

	return respondCreated(ctx, "New genre added successfully", genre)
}

// GetGenres handles GET /api/genre.
func (c *Controller) GetGenres(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	genres, err := c.DS.GetGenres(claims.UserID)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if genres == nil {
		genres = []datastore.Genre{}
	}

	return respondOK(ctx, "Genres retrieved successfully", genres)
}

// UpdateGenre handles PUT /api/genre/:id.
func (c *Controller) UpdateGenre(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req genreRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	genre := &datastore.Genre{ID: id, Name: req.Name, UserID: claims.UserID}
	if err := c.DS.UpdateGenre(genre); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Genre not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Genre updated successfully", genre)
}

// DeleteGenre handles DELETE /api/genre/:id.
func (c *Controller) DeleteGenre(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := c.DS.DeleteGenre(claims.UserID, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Genre not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Genre deleted successfully", nil)
}

// pathID parses the :id path parameter as a positive integer.
func pathID(ctx echo.Context) (uint, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("Validation Error",
			apperrors.FieldError{Field: "id", Message: "id must be a positive integer"})
	}
	return uint(id), nil
}
