package datastore

import "fmt"

// CreateGenre inserts a genre scoped to its owning account.
func (ds *DataStore) CreateGenre(genre *Genre) error {
	if err := ds.DB.Create(genre).Error; err != nil {
		return fmt.Errorf("creating genre: %w", err)
	}
	return nil
}

// GenreNameExists reports whether the account already has a genre with this
// name. The check happens at write time; it is not DB-enforced.
func (ds *DataStore) GenreNameExists(userID uint, name string) (bool, error) {
	var count int64
	err := ds.DB.Model(&Genre{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking genre name: %w", err)
	}
	return count > 0, nil
}

// GetGenres returns all genres owned by the account, name ascending.
func (ds *DataStore) GetGenres(userID uint) ([]Genre, error) {
	var genres []Genre
	err := ds.DB.Where("user_id = ?", userID).Order("name ASC").Find(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("getting genres: %w", err)
	}
	return genres, nil
}

// UpdateGenre replaces the mutable fields of a genre. The update is scoped by
// id AND owner, so a foreign account sees ErrNotFound rather than a hint that
// the row exists.
func (ds *DataStore) UpdateGenre(genre *Genre) error {
	res := ds.DB.Model(&Genre{}).
		Where("id = ? AND user_id = ?", genre.ID, genre.UserID).
		Update("name", genre.Name)
	if res.Error != nil {
		return fmt.Errorf("updating genre: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGenre removes a genre, scoped by id AND owner.
func (ds *DataStore) DeleteGenre(userID, id uint) error {
	res := ds.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&Genre{})
	if res.Error != nil {
		return fmt.Errorf("deleting genre: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
