package datastore

import (
	"fmt"
	"strings"
)

// CreateUser inserts a new account. The email is case-folded to lowercase so
// the uniqueness check and login are case-insensitive.
func (ds *DataStore) CreateUser(user *User) error {
	user.Email = strings.ToLower(user.Email)
	if err := ds.DB.Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves an account by its (case-insensitive) email.
// Returns ErrNotFound when no account matches.
func (ds *DataStore) GetUserByEmail(email string) (*User, error) {
	var user User
	err := ds.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, notFound(fmt.Errorf("getting user by email: %w", err))
	}
	return &user, nil
}

// GetUserByID retrieves an account by id. Returns ErrNotFound when the
// account no longer exists.
func (ds *DataStore) GetUserByID(id uint) (*User, error) {
	var user User
	if err := ds.DB.First(&user, id).Error; err != nil {
		return nil, notFound(fmt.Errorf("getting user with ID %d: %w", id, err))
	}
	return &user, nil
}
