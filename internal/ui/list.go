package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/models"
)

var _ list.DefaultItem = bookItem{}

// bookItem wraps [models.Book] to implement [list.DefaultItem].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string {
	return i.book.Title + " " + i.book.Author + " " + strconv.Itoa(i.book.Year)
}

func (i bookItem) Title() string { return fmt.Sprintf("%d: %s", i.book.ID, i.book.Title) }

func (i bookItem) Description() string {
	return fmt.Sprintf("%s • %d • %s", i.book.Author, i.book.Year, i.book.Status)
}

func toItems(books []models.Book) []list.Item {
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = bookItem{book: b}
	}
	return items
}
