// internal/datastore/stats.go
package datastore

import "fmt"

// CountSheetsByLevel returns the account's sheet counts grouped by level.
// Uncategorized sheets form a group with a null level.
func (ds *DataStore) CountSheetsByLevel(userID uint) ([]LevelCount, error) {
	var counts []LevelCount
	err := ds.DB.Table("sheet").
		Select("sheet.level_id, level.name AS level_name, COUNT(sheet.id) AS count").
		Joins("LEFT JOIN level ON level.id = sheet.level_id").
		Where("sheet.user_id = ?", userID).
		Group("sheet.level_id, level.name").
		Order("sheet.level_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("counting sheets by level: %w", err)
	}
	return counts, nil
}

// CountSheetsByGenre returns the account's sheet counts grouped by genre.
func (ds *DataStore) CountSheetsByGenre(userID uint) ([]GenreCount, error) {
	var counts []GenreCount
	err := ds.DB.Table("sheet").
		Select("sheet.genre_id, genre.name AS genre_name, COUNT(sheet.id) AS count").
		Joins("LEFT JOIN genre ON genre.id = sheet.genre_id").
		Where("sheet.user_id = ?", userID).
		Group("sheet.genre_id, genre.name").
		Order("genre.name").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("counting sheets by genre: %w", err)
	}
	return counts, nil
}

// CountUncategorizedSheets counts the account's sheets missing any of
// source, level, genre or key.
func (ds *DataStore) CountUncategorizedSheets(userID uint) (int64, error) {
	var count int64
	err := ds.DB.Model(&Sheet{}).
		Where("user_id = ?", userID).
		Where("source_id IS NULL OR level_id IS NULL OR genre_id IS NULL OR key IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting uncategorized sheets: %w", err)
	}
	return count, nil
}
