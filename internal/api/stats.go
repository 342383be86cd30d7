package api

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// statsData summarizes the account's library.
type statsData struct {
	SheetsByLevel       []datastore.LevelCount `json:"sheetsByLevel"`
	SheetsByGenre       []datastore.GenreCount `json:"sheetsByGenre"`
	NeedsCategorization int64                  `json:"needsCategorization"`
}

func (c *Controller) initStatsRoutes() {
	c.Group.GET("/stats", c.GetStats, c.AuthMiddleware)
}

// GetStats handles GET /api/stats. The three aggregates are independent, so
// they run concurrently; the first failure cancels the rest.
func (c *Controller) GetStats(ctx echo.Context) error {
	claims, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var stats statsData
	g, _ := errgroup.WithContext(ctx.Request().Context())
	g.Go(func() error {
		counts, err := c.DS.CountSheetsByLevel(claims.UserID)
		if err != nil {
			return err
		}
		stats.SheetsByLevel = counts
		return nil
	})
	g.Go(func() error {
		counts, err := c.DS.CountSheetsByGenre(claims.UserID)
		if err != nil {
			return err
		}
		stats.SheetsByGenre = counts
		return nil
	})
	g.Go(func() error {
		count, err := c.DS.CountUncategorizedSheets(claims.UserID)
		if err != nil {
			return err
		}
		stats.NeedsCategorization = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return apperrors.NewInternal(err)
	}

	if stats.SheetsByLevel == nil {
		stats.SheetsByLevel = []datastore.LevelCount{}
	}
	if stats.SheetsByGenre == nil {
		stats.SheetsByGenre = []datastore.GenreCount{}
	}

	return respondOK(ctx, "Stats retrieved successfully", stats)
}
