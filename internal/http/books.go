package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/entities"
)

// BookCreator defines the book creation operation.
type BookCreator interface {
	CreateBook(title, isbn string, publicationYear *int, authorID uint, coverURL string) (*entities.Book, error)
}

// CoverResolver looks up a cover-image URL for a new book. An empty URL with
// a nil error means no cover was found.
type CoverResolver interface {
	ResolveCover(ctx context.Context, isbn, title, author string) (string, error)
}

type BooksController struct {
	store    BookCreator
	authors  AuthorStore
	resolver CoverResolver
}

func NewBooksController(store BookCreator, authors AuthorStore, resolver CoverResolver) *BooksController {
	return &BooksController{store: store, authors: authors, resolver: resolver}
}

// AddBookPage renders the empty book-entry form with the author selection.
// GET /add_book
func (controller *BooksController) AddBookPage(c *gin.Context) {
	authors, err := controller.authors.GetAllAuthors()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors: %s", err.Error())
		return
	}
	controller.render(c, http.StatusOK, authors, false, "")
}

// AddBook handles the book-entry form submission: validate the form, resolve
// the author, look up a cover and create the book. Every failure kind is
// rendered back on the form; nothing is committed on failure.
// POST /add_book
func (controller *BooksController) AddBook(c *gin.Context) {
	authors, err := controller.authors.GetAllAuthors()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors: %s", err.Error())
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	isbn := strings.TrimSpace(c.PostForm("isbn"))
	yearStr := strings.TrimSpace(c.PostForm("publication_year"))
	authorIDStr := strings.TrimSpace(c.PostForm("author_id"))

	if title == "" || isbn == "" || yearStr == "" || authorIDStr == "" {
		controller.render(c, http.StatusBadRequest, authors, false, "All fields are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		controller.render(c, http.StatusBadRequest, authors, false, "Publication year must be a number.")
		return
	}
	authorID, err := strconv.ParseUint(authorIDStr, 10, 32)
	if err != nil {
		controller.render(c, http.StatusBadRequest, authors, false, "Please choose an author from the list.")
		return
	}

	author, err := controller.authors.GetAuthorByID(uint(authorID))
	if err != nil {
		if errors.Is(err, database.ErrAuthorNotFound) {
			controller.render(c, http.StatusBadRequest, authors, false, "The selected author does not exist.")
			return
		}
		log.Printf("Failed to resolve author %d: %v", authorID, err)
		controller.render(c, http.StatusInternalServerError, authors, false, "The book could not be saved. Please try again.")
		return
	}

	coverURL, err := controller.resolver.ResolveCover(c.Request.Context(), isbn, title, author.Name)
	if err != nil {
		log.Printf("Cover lookup failed for %q: %v", title, err)
		controller.render(c, http.StatusBadGateway, authors, false, "The cover service could not be reached. The book was not saved.")
		return
	}

	if _, err := controller.store.CreateBook(title, isbn, &year, author.ID, coverURL); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateISBN):
			controller.render(c, http.StatusBadRequest, authors, false, "A book with this ISBN already exists.")
		case errors.Is(err, database.ErrAuthorNotFound):
			controller.render(c, http.StatusBadRequest, authors, false, "The selected author does not exist.")
		default:
			log.Printf("Failed to create book %q: %v", title, err)
			controller.render(c, http.StatusInternalServerError, authors, false, "The book could not be saved. Please try again.")
		}
		return
	}

	controller.render(c, http.StatusOK, authors, true, "")
}

func (controller *BooksController) render(c *gin.Context, status int, authors []entities.Author, success bool, errorMessage string) {
	c.HTML(status, "add_book", gin.H{
		"Authors":   authors,
		"Success":   success,
		"Error":     errorMessage,
		"CSRFField": csrfField(c),
	})
}
