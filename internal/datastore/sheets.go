package datastore

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateSheet inserts a sheet scoped to its owning account.
func (ds *DataStore) CreateSheet(sheet *Sheet) error {
	if err := ds.DB.Create(sheet).Error; err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	return nil
}

// sheetQuery builds the joined base query for a filtered sheet listing. The
// lookup tables are LEFT JOINed so uncategorized sheets still appear, with
// null denormalized names.
func (ds *DataStore) sheetQuery(filter *SheetFilter) *gorm.DB {
	q := ds.DB.Table("sheet").
		Joins("LEFT JOIN source ON source.id = sheet.source_id").
		Joins("LEFT JOIN level ON level.id = sheet.level_id").
		Joins("LEFT JOIN genre ON genre.id = sheet.genre_id").
		Where("sheet.user_id = ?", filter.UserID)

	if filter.Key != "" {
		q = q.Where("sheet.key = ?", filter.Key)
	}
	if filter.Level != "" {
		q = q.Where("LOWER(level.name) = LOWER(?)", filter.Level)
	}
	if filter.Genre != "" {
		q = q.Where("LOWER(genre.name) = LOWER(?)", filter.Genre)
	}
	if filter.ExamPiece != nil {
		q = q.Where("sheet.exam_piece = ?", *filter.ExamPiece)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(sheet.title) LIKE ? OR LOWER(sheet.composer) LIKE ? OR LOWER(source.title) LIKE ?",
			like, like, like,
		)
	}
	return q
}

// SearchSheets returns a page of the account's sheets matching the filter,
// title ascending, joined with the lookup tables, plus the total match count.
func (ds *DataStore) SearchSheets(filter *SheetFilter) ([]SheetSummary, int64, error) {
	var total int64
	if err := ds.sheetQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting sheets: %w", err)
	}

	var sheets []SheetSummary
	err := ds.sheetQuery(filter).
		Select(`sheet.id, sheet.title, sheet.key, sheet.composer, sheet.exam_piece,
			sheet.source_id, source.title AS source_title,
			sheet.level_id, level.name AS level_name,
			sheet.genre_id, genre.name AS genre_name`).
		Order("sheet.title ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&sheets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("searching sheets: %w", err)
	}
	return sheets, total, nil
}

// UpdateSheet replaces every mutable field of a sheet, scoped by id AND
// owner. Nil foreign keys clear the categorization.
func (ds *DataStore) UpdateSheet(sheet *Sheet) error {
	res := ds.DB.Model(&Sheet{}).
		Where("id = ? AND user_id = ?", sheet.ID, sheet.UserID).
		Updates(map[string]any{
			"title":      sheet.Title,
			"key":        sheet.Key,
			"composer":   sheet.Composer,
			"source_id":  sheet.SourceID,
			"level_id":   sheet.LevelID,
			"genre_id":   sheet.GenreID,
			"exam_piece": sheet.ExamPiece,
		})
	if res.Error != nil {
		return fmt.Errorf("updating sheet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSheet removes a sheet, scoped by id AND owner.
func (ds *DataStore) DeleteSheet(userID, id uint) error {
	res := ds.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&Sheet{})
	if res.Error != nil {
		return fmt.Errorf("deleting sheet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
