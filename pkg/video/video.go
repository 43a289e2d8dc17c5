package video

import "errors"

const (
	NewDuration  = "0:00"
	NewThumbnail = "https://via.placeholder.com/300x200/ea580c/fb923c?text=New+Video"
)

var ErrVideoNotFound = errors.New("video not found")

type Video struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Duration   string `json:"duration"`
	UploadDate string `json:"uploadDate"`
	Thumbnail  string `json:"thumbnail"`
	Size       string `json:"size"`
}
