// model.go this code defines the data model for the application
package datastore

import "time"

// User represents an account. Every other entity is scoped to a user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the table name aligned with the relational schema.
func (User) TableName() string { return "app_user" }

// Genre is a user-defined musical genre, unique by name per account.
type Genre struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	UserID uint   `gorm:"index:genre_user_id_idx;not null" json:"userId"`
}

func (Genre) TableName() string { return "genre" }

// Level is a user-defined difficulty level, unique by name per account.
type Level struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	UserID      uint    `gorm:"index:level_user_id_idx;not null" json:"userId"`
}

func (Level) TableName() string { return "level" }

// Source is a book or collection a sheet comes from, unique by title per
// account.
type Source struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Title  string  `gorm:"not null" json:"title"`
	Author *string `json:"author"`
	Format *string `json:"format"`
	UserID uint    `gorm:"index:source_user_id_idx;not null" json:"userId"`
}

func (Source) TableName() string { return "source" }

// Sheet is a single piece of sheet music. The lookup foreign keys are
// nullable: a sheet may not be categorized yet.
type Sheet struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"not null" json:"title"`
	Key       *string `json:"key"` // musical key, e.g. "C# minor"
	Composer  *string `json:"composer"`
	SourceID  *uint   `json:"sourceId"`
	LevelID   *uint   `json:"levelId"`
	GenreID   *uint   `json:"genreId"`
	ExamPiece bool    `gorm:"default:false" json:"examPiece"`
	UserID    uint    `gorm:"index:sheet_user_id_idx;not null" json:"userId"`
}

func (Sheet) TableName() string { return "sheet" }

// SheetSummary is a sheet row joined with its lookup tables for display.
// The denormalized names are null when the corresponding foreign key is null.
type SheetSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Key         *string `json:"key"`
	Composer    *string `json:"composer"`
	ExamPiece   bool    `json:"examPiece"`
	SourceID    *uint   `json:"sourceId"`
	SourceTitle *string `json:"sourceTitle"`
	LevelID     *uint   `json:"levelId"`
	LevelName   *string `json:"levelName"`
	GenreID     *uint   `json:"genreId"`
	GenreName   *string `json:"genreName"`
}

// SheetFilter narrows a sheet listing. Zero values mean "no filter".
type SheetFilter struct {
	UserID    uint
	Search    string // case-insensitive substring over title/composer/source title
	Key       string
	Level     string // level name
	Genre     string // genre name
	ExamPiece *bool
	Limit     int
	Offset    int
}

// SourceOption is the id/title pair used to populate selection lists.
type SourceOption struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// LevelCount is a sheets-per-level aggregate row.
type LevelCount struct {
	LevelID   *uint   `json:"levelId"`
	LevelName *string `json:"levelName"`
	Count     int64   `json:"count"`
}

// GenreCount is a sheets-per-genre aggregate row.
type GenreCount struct {
	GenreID   *uint   `json:"genreId"`
	GenreName *string `json:"genreName"`
	Count     int64   `json:"count"`
}
