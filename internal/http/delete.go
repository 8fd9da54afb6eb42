package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/database/books"
	"github.com/KonradTesch/Book-Alchemy/internal/session"
)

// BookDeleter defines the cascade delete operation.
type BookDeleter interface {
	DeleteBook(id uint) (*books.DeleteResult, error)
}

type DeleteController struct {
	store    BookDeleter
	sessions *session.Manager
}

func NewDeleteController(store BookDeleter, sessions *session.Manager) *DeleteController {
	return &DeleteController{store: store, sessions: sessions}
}

// DeleteBook removes a book (and its author, when that was the author's last
// book), records a status message and redirects back to the catalog.
// POST /book/:id/delete
func (controller *DeleteController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := controller.store.DeleteBook(id)
	if err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			controller.flash(c, "The book no longer exists.")
		} else {
			log.Printf("Failed to delete book %d: %v", id, err)
			controller.flash(c, "The book could not be deleted. Please try again.")
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if result.AuthorRemoved {
		controller.flash(c, fmt.Sprintf("'%s' was deleted and author '%s' was removed as well.", result.BookTitle, result.AuthorName))
	} else {
		controller.flash(c, fmt.Sprintf("'%s' was deleted.", result.BookTitle))
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (controller *DeleteController) flash(c *gin.Context, message string) {
	if controller.sessions != nil {
		controller.sessions.Flash(c.Request.Context(), message)
	}
}
