package entities

import (
	"fmt"
	"time"
)

// Author is a book author. Authors are created through the add-author form
// and removed automatically when their last book is deleted; there is no
// edit operation.
type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Book belongs to exactly one author. CoverURL is filled in at creation time
// by the cover resolver; an empty string means no cover was found.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ISBN            string    `gorm:"uniqueIndex;size:17;not null" json:"isbn"` // 17 chars fits a hyphenated ISBN-13
	Title           string    `gorm:"size:200;not null" json:"title"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	AuthorID        uint      `gorm:"index;not null" json:"author_id"`
	Author          Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CoverURL        string    `gorm:"size:200" json:"cover_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Year renders the optional publication year for display.
func (b Book) Year() string {
	if b.PublicationYear == nil {
		return ""
	}
	return fmt.Sprintf("%d", *b.PublicationYear)
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

// Lifetime renders the author's birth/death dates for display,
// e.g. "1920 – 1992" or "born 1965".
func (a Author) Lifetime() string {
	switch {
	case a.BirthDate != nil && a.DateOfDeath != nil:
		return fmt.Sprintf("%d – %d", a.BirthDate.Year(), a.DateOfDeath.Year())
	case a.BirthDate != nil:
		return fmt.Sprintf("born %d", a.BirthDate.Year())
	case a.DateOfDeath != nil:
		return fmt.Sprintf("died %d", a.DateOfDeath.Year())
	default:
		return ""
	}
}
