package datastore

import "fmt"

// CreateSource inserts a source scoped to its owning account.
func (ds *DataStore) CreateSource(source *Source) error {
	if err := ds.DB.Create(source).Error; err != nil {
		return fmt.Errorf("creating source: %w", err)
	}
	return nil
}

// SourceTitleExists reports whether the account already has a source with
// this title.
func (ds *DataStore) SourceTitleExists(userID uint, title string) (bool, error) {
	var count int64
	err := ds.DB.Model(&Source{}).
		Where("user_id = ? AND LOWER(title) = LOWER(?)", userID, title).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking source title: %w", err)
	}
	return count > 0, nil
}

// GetSources returns a page of the account's sources, title ascending, plus
// the total row count for pagination.
func (ds *DataStore) GetSources(userID uint, limit, offset int) ([]Source, int64, error) {
	var total int64
	err := ds.DB.Model(&Source{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("counting sources: %w", err)
	}

	var sources []Source
	err = ds.DB.Where("user_id = ?", userID).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&sources).Error
	if err != nil {
		return nil, 0, fmt.Errorf("getting sources: %w", err)
	}
	return sources, total, nil
}

// GetSourceLookup returns every source the account owns as id/title pairs,
// title ascending. Unpaginated; meant for selection lists.
func (ds *DataStore) GetSourceLookup(userID uint) ([]SourceOption, error) {
	var options []SourceOption
	err := ds.DB.Model(&Source{}).
		Select("id, title").
		Where("user_id = ?", userID).
		Order("title ASC").
		Scan(&options).Error
	if err != nil {
		return nil, fmt.Errorf("getting source lookup: %w", err)
	}
	return options, nil
}

// UpdateSource replaces the mutable fields of a source, scoped by id AND
// owner. Author and format are full replaces: passing nil clears them.
func (ds *DataStore) UpdateSource(source *Source) error {
	res := ds.DB.Model(&Source{}).
		Where("id = ? AND user_id = ?", source.ID, source.UserID).
		Updates(map[string]any{
			"title":  source.Title,
			"author": source.Author,
			"format": source.Format,
		})
	if res.Error != nil {
		return fmt.Errorf("updating source: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSource removes a source, scoped by id AND owner.
func (ds *DataStore) DeleteSource(userID, id uint) error {
	res := ds.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&Source{})
	if res.Error != nil {
		return fmt.Errorf("deleting source: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
