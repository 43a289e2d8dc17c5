package link

import (
	"errors"
	"fmt"
)

var (
	ErrLinkNotFound    = errors.New("link not found")
	ErrInvalidPlatform = errors.New("invalid platform")
)

type Platform string

const (
	YouTube   Platform = "YouTube"
	Instagram Platform = "Instagram"
	Facebook  Platform = "Facebook"
	TikTok    Platform = "TikTok"
)

var Platforms = []Platform{YouTube, Instagram, Facebook, TikTok}

// ParsePlatform maps a platform name to a Platform. An empty name is YouTube.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case "":
		return YouTube, nil
	case YouTube, Instagram, Facebook, TikTok:
		return Platform(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, s)
}

// Color is the gradient the dashboard paints the platform badge with.
func (p Platform) Color() string {
	switch p {
	case YouTube:
		return "from-red-500 to-red-600"
	case Instagram:
		return "from-pink-500 to-purple-500"
	case Facebook:
		return "from-blue-500 to-blue-600"
	case TikTok:
		return "from-black to-gray-800"
	}
	panic(fmt.Sprintf("link: unknown platform %q", string(p)))
}

func (p Platform) Icon() string {
	switch p {
	case YouTube:
		return "youtube"
	case Instagram:
		return "instagram"
	case Facebook:
		return "facebook"
	case TikTok:
		return "tiktok"
	}
	panic(fmt.Sprintf("link: unknown platform %q", string(p)))
}

type Link struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Platform  Platform `json:"platform"`
	Title     string   `json:"title"`
	DateAdded string   `json:"dateAdded"`
}
