package background

import "errors"

// NewImageURL is the placeholder shown for uploaded images, which are not
// stored.
const NewImageURL = "https://via.placeholder.com/400x300/ea580c/fb923c?text=New+Background"

var ErrBackgroundNotFound = errors.New("background not found")

type Background struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Size       string `json:"size"`
	UploadDate string `json:"uploadDate"`
}
