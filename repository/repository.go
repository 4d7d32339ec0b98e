package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked up row does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the GORM backed data store of every table.
type Repository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// escapeLike escapes LIKE wildcards so a slug prefix is matched literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
