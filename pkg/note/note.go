package note

import "errors"

const DefaultTitle = "New Note"

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}
