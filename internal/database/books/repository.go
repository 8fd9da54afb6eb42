// Package books provides database operations for book records, including
// the catalog listing and the cascade delete of authors left without books.
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/entities"
)

// SortKey selects the catalog listing order.
type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByYear   SortKey = "year"
	SortByAuthor SortKey = "author"
)

// ParseSortKey maps a query-string value to a SortKey, defaulting to title.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByYear:
		return SortByYear
	case SortByAuthor:
		return SortByAuthor
	default:
		return SortByTitle
	}
}

// DeleteResult describes the outcome of a cascade delete.
type DeleteResult struct {
	BookTitle     string
	AuthorName    string
	AuthorRemoved bool
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook persists a new book. It returns database.ErrAuthorNotFound when
// the author id does not resolve and database.ErrDuplicateISBN when the ISBN
// is already taken. The UNIQUE constraint on isbn is authoritative, so two
// concurrent creations with the same ISBN leave exactly one winner.
func (r *Repository) CreateBook(title, isbn string, publicationYear *int, authorID uint, coverURL string) (*entities.Book, error) {
	var author entities.Author
	if err := r.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	book := &entities.Book{
		Title:           title,
		ISBN:            isbn,
		PublicationYear: publicationYear,
		AuthorID:        authorID,
		CoverURL:        coverURL,
	}
	if err := r.db.Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, database.ErrDuplicateISBN
		}
		return nil, err
	}
	book.Author = author
	return book, nil
}

// GetBookByID returns database.ErrBookNotFound for unknown ids.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns every book joined with its author. A non-empty search
// keeps only rows whose book title or author name contains the query as a
// case-insensitive substring. Ordering is ascending by the sort key with
// books without a publication year sorting last under SortByYear; ties are
// broken by insertion order.
func (r *Repository) ListBooks(search string, sortBy SortKey) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{}).
		Joins("JOIN authors ON authors.id = books.author_id").
		Preload("Author")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.name) LIKE LOWER(?)", pattern, pattern)
	}

	switch sortBy {
	case SortByYear:
		query = query.Order("books.publication_year IS NULL, books.publication_year ASC, books.id ASC")
	case SortByAuthor:
		query = query.Order("authors.name ASC, books.id ASC")
	default:
		query = query.Order("books.title ASC, books.id ASC")
	}

	var books []entities.Book
	err := query.Find(&books).Error
	return books, err
}

// DeleteBook removes a book and, when that was the author's last book, the
// author as well. Both deletions happen in one transaction so readers never
// see the orphaned author. Returns database.ErrBookNotFound for unknown ids.
func (r *Repository) DeleteBook(id uint) (*DeleteResult, error) {
	var result DeleteResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.Preload("Author").First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.ErrBookNotFound
			}
			return err
		}

		result.BookTitle = book.Title
		result.AuthorName = book.Author.Name

		if err := tx.Delete(&entities.Book{}, book.ID).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", book.AuthorID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&entities.Author{}, book.AuthorID).Error; err != nil {
				return err
			}
			result.AuthorRemoved = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
