package http

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/entities"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	CreateAuthor(name string, birthDate, dateOfDeath *time.Time) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// AddAuthorPage renders the empty author-entry form.
// GET /add_author
func (controller *AuthorsController) AddAuthorPage(c *gin.Context) {
	controller.render(c, http.StatusOK, false, "")
}

// AddAuthor handles the author-entry form submission. Malformed dates are
// reported back on the form instead of failing the request.
// POST /add_author
func (controller *AuthorsController) AddAuthor(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		controller.render(c, http.StatusBadRequest, false, "Author name is required.")
		return
	}

	birthDate, err := parseOptionalDate(c.PostForm("birthdate"))
	if err != nil {
		controller.render(c, http.StatusBadRequest, false, "Birth date must be a valid date (YYYY-MM-DD).")
		return
	}
	dateOfDeath, err := parseOptionalDate(c.PostForm("date_of_death"))
	if err != nil {
		controller.render(c, http.StatusBadRequest, false, "Date of death must be a valid date (YYYY-MM-DD).")
		return
	}

	if _, err := controller.store.CreateAuthor(name, birthDate, dateOfDeath); err != nil {
		log.Printf("Failed to create author: %v", err)
		controller.render(c, http.StatusInternalServerError, false, "The author could not be saved. Please try again.")
		return
	}

	controller.render(c, http.StatusOK, true, "")
}

func (controller *AuthorsController) render(c *gin.Context, status int, success bool, errorMessage string) {
	c.HTML(status, "add_author", gin.H{
		"Success":   success,
		"Error":     errorMessage,
		"CSRFField": csrfField(c),
	})
}
