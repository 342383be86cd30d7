package datastore

import "fmt"

// CreateLevel inserts a level scoped to its owning account.
func (ds *DataStore) CreateLevel(level *Level) error {
	if err := ds.DB.Create(level).Error; err != nil {
		return fmt.Errorf("creating level: %w", err)
	}
	return nil
}

// LevelNameExists reports whether the account already has a level with this
// name.
func (ds *DataStore) LevelNameExists(userID uint, name string) (bool, error) {
	var count int64
	err := ds.DB.Model(&Level{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking level name: %w", err)
	}
	return count > 0, nil
}

// GetLevels returns all levels owned by the account, name ascending.
func (ds *DataStore) GetLevels(userID uint) ([]Level, error) {
	var levels []Level
	err := ds.DB.Where("user_id = ?", userID).Order("name ASC").Find(&levels).Error
	if err != nil {
		return nil, fmt.Errorf("getting levels: %w", err)
	}
	return levels, nil
}

// UpdateLevel replaces the mutable fields of a level, scoped by id AND owner.
// Description is a full replace: passing nil clears it.
func (ds *DataStore) UpdateLevel(level *Level) error {
	res := ds.DB.Model(&Level{}).
		Where("id = ? AND user_id = ?", level.ID, level.UserID).
		Updates(map[string]any{
			"name":        level.Name,
			"description": level.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("updating level: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLevel removes a level, scoped by id AND owner.
func (ds *DataStore) DeleteLevel(userID, id uint) error {
	res := ds.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&Level{})
	if res.Error != nil {
		return fmt.Errorf("deleting level: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
