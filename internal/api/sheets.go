package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// sheetRequest is the create/update payload for a sheet. All categorization
// fields are full replaces on update: omitting one clears it.
type sheetRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=200"`
	Key       *string `json:"key" validate:"omitempty,max=20"`
	Composer  *string `json:"composer" validate:"omitempty,max=200"`
	SourceID  *uint   `json:"sourceId" validate:"omitempty,gt=0"`
	LevelID   *uint   `json:"levelId" validate:"omitempty,gt=0"`
	GenreID   *uint   `json:"genreId" validate:"omitempty,gt=0"`
	ExamPiece bool    `json:"examPiece"`
}

func (c *Controller) initSheetRoutes() {
	group := c.Group.Group("/sheet", c.AuthMiddleware)
	group.POST("", c.CreateSheet)
	group.GET("", c.GetSheets)
	group.PUT("/:id", c.UpdateSheet)
	group.DELETE("/:id", c.DeleteSheet)
}

// CreateSheet handles POST /api/sheet.
func (c *Controller) CreateSheet(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req sheetRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	sheet := &datastore.Sheet{
		Title:     req.Title,
		Key:       req.Key,
		Composer:  req.Composer,
		SourceID:  req.SourceID,
		LevelID:   req.LevelID,
		GenreID:   req.GenreID,
		ExamPiece: req.ExamPiece,
		UserID:    claims.UserID,
	}
	if err := c.DS.CreateSheet(sheet); err != nil {
		return apperrors.NewInternal(err)
	}

	return respondCreated(ctx, "New sheet added successfully", sheet)
}

// GetSheets handles GET /api/sheet with filtering and pagination. The
// returned rows are joined with the lookup tables so each carries its
// denormalized source/level/genre names.
func (c *Controller) GetSheets(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	page, limit := pageParams(ctx)
	filter := &datastore.SheetFilter{
		UserID: claims.UserID,
		Search: ctx.QueryParam("searchQuery"),
		Key:    ctx.QueryParam("keyQuery"),
		Level:  ctx.QueryParam("levelQuery"),
		Genre:  ctx.QueryParam("genreQuery"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if raw := ctx.QueryParam("examPieceQuery"); raw != "" {
		examPiece, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidation("Validation Error",
				apperrors.FieldError{Field: "examPieceQuery", Message: "examPieceQuery must be true or false"})
		}
		filter.ExamPiece = &examPiece
	}

	sheets, total, err := c.DS.SearchSheets(filter)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if clamped := clampPage(page, limit, total); clamped != page {
		page = clamped
		filter.Offset = (page - 1) * limit
		sheets, total, err = c.DS.SearchSheets(filter)
		if err != nil {
			return apperrors.NewInternal(err)
		}
	}
	if sheets == nil {
		sheets = []datastore.SheetSummary{}
	}

	return respondPage(ctx, "Sheets retrieved successfully", sheets, newPagination(page, limit, total))
}

// UpdateSheet handles PUT /api/sheet/:id.
func (c *Controller) UpdateSheet(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req sheetRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	sheet := &datastore.Sheet{
		ID:        id,
		Title:     req.Title,
		Key:       req.Key,
		Composer:  req.Composer,
		SourceID:  req.SourceID,
		LevelID:   req.LevelID,
		GenreID:   req.GenreID,
		ExamPiece: req.ExamPiece,
		UserID:    claims.UserID,
	}
	if err := c.DS.UpdateSheet(sheet); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Sheet not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Sheet updated successfully", sheet)
}

// DeleteSheet handles DELETE /api/sheet/:id.
func (c *Controller) DeleteSheet(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := c.DS.DeleteSheet(claims.UserID, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return apperrors.NewNotFound("Sheet not found")
		}
		return apperrors.NewInternal(err)
	}

	return respondOK(ctx, "Sheet deleted successfully", nil)
}
