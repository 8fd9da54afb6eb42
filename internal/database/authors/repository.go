// Package authors provides database operations for author records.
package authors

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor persists a new author. Both dates are optional.
func (r *Repository) CreateAuthor(name string, birthDate, dateOfDeath *time.Time) (*entities.Author, error) {
	author := &entities.Author{
		Name:        name,
		BirthDate:   birthDate,
		DateOfDeath: dateOfDeath,
	}
	if err := r.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// GetAllAuthors returns every author in insertion order. Used to populate
// the author selection on the add-book form.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id ASC").Find(&authors).Error
	return authors, err
}

// GetAuthorByID returns database.ErrAuthorNotFound for unknown ids.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}
