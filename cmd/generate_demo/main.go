// Command generate_demo creates a demo catalog with public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/KonradTesch/Book-Alchemy/internal/database"
	"github.com/KonradTesch/Book-Alchemy/internal/database/authors"
	"github.com/KonradTesch/Book-Alchemy/internal/database/books"
)

const defaultDemoDatabasePath = "./data/demo.sqlite"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo database directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authorRepository := authors.NewRepository(db.DB)
	bookRepository := books.NewRepository(db.DB)

	for _, entry := range demoAuthors() {
		author, err := authorRepository.CreateAuthor(entry.name, entry.birthDate, entry.dateOfDeath)
		if err != nil {
			log.Printf("Failed to save author %s: %v", entry.name, err)
			continue
		}

		for _, b := range entry.books {
			year := b.year
			if _, err := bookRepository.CreateBook(b.title, b.isbn, &year, author.ID, b.coverURL); err != nil {
				log.Printf("Failed to save book %s: %v", b.title, err)
				continue
			}
			log.Printf("Saved: %s by %s (%d)", b.title, entry.name, b.year)
		}
	}

	log.Println("Demo catalog generated successfully!")
}

type demoBook struct {
	title    string
	isbn     string
	year     int
	coverURL string
}

type demoAuthor struct {
	name        string
	birthDate   *time.Time
	dateOfDeath *time.Time
	books       []demoBook
}

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Invalid demo date %q: %v", value, err)
	}
	return &t
}

func demoAuthors() []demoAuthor {
	return []demoAuthor{
		{
			name:        "Jane Austen",
			birthDate:   date("1775-12-16"),
			dateOfDeath: date("1817-07-18"),
			books: []demoBook{
				{title: "Pride and Prejudice", isbn: "9780141439518", year: 1813, coverURL: "https://covers.openlibrary.org/b/id/14348537-L.jpg"},
				{title: "Sense and Sensibility", isbn: "9780141439662", year: 1811},
				{title: "Emma", isbn: "9780141439587", year: 1815},
			},
		},
		{
			name:        "Leo Tolstoy",
			birthDate:   date("1828-09-09"),
			dateOfDeath: date("1910-11-20"),
			books: []demoBook{
				{title: "War and Peace", isbn: "9780199232765", year: 1869},
				{title: "Anna Karenina", isbn: "9780143035008", year: 1878},
			},
		},
		{
			name:        "Fyodor Dostoevsky",
			birthDate:   date("1821-11-11"),
			dateOfDeath: date("1881-02-09"),
			books: []demoBook{
				{title: "Crime and Punishment", isbn: "9780143058142", year: 1866},
				{title: "The Brothers Karamazov", isbn: "9780374528379", year: 1880},
			},
		},
		{
			name:        "Mary Shelley",
			birthDate:   date("1797-08-30"),
			dateOfDeath: date("1851-02-01"),
			books: []demoBook{
				{title: "Frankenstein", isbn: "9780141439471", year: 1818, coverURL: "https://covers.openlibrary.org/b/id/12356249-L.jpg"},
			},
		},
		{
			name:        "Oscar Wilde",
			birthDate:   date("1854-10-16"),
			dateOfDeath: date("1900-11-30"),
			books: []demoBook{
				{title: "The Picture of Dorian Gray", isbn: "9780141439570", year: 1890},
			},
		},
		{
			name:      "Marcus Aurelius",
			birthDate: date("0121-04-26"),
			books: []demoBook{
				{title: "Meditations", isbn: "9780140449334", year: 180},
			},
		},
	}
}
