package seed

import (
	"github.com/klokku/creatordash/pkg/account"
	"github.com/klokku/creatordash/pkg/background"
	"github.com/klokku/creatordash/pkg/calendar"
	"github.com/klokku/creatordash/pkg/link"
	"github.com/klokku/creatordash/pkg/note"
	"github.com/klokku/creatordash/pkg/video"
)

// Records are listed newest first, the order the panels show them in.

var videos = []video.Video{
	{Title: "Introduction Video.mp4", Duration: "2:34", UploadDate: "2025-10-20", Thumbnail: "https://via.placeholder.com/300x200/1e40af/60a5fa?text=Video+1", Size: "45 MB"},
	{Title: "Tutorial Part 1.mp4", Duration: "5:12", UploadDate: "2025-10-19", Thumbnail: "https://via.placeholder.com/300x200/7c3aed/a78bfa?text=Video+2", Size: "98 MB"},
	{Title: "Demo Recording.mp4", Duration: "8:45", UploadDate: "2025-10-18", Thumbnail: "https://via.placeholder.com/300x200/059669/34d399?text=Video+3", Size: "156 MB"},
}

var backgrounds = []background.Background{
	{Name: "gradient-bg-1.jpg", URL: "https://via.placeholder.com/400x300/1e40af/60a5fa?text=Background+1", Size: "2.3 MB", UploadDate: "2025-10-20"},
	{Name: "abstract-pattern.png", URL: "https://via.placeholder.com/400x300/7c3aed/a78bfa?text=Background+2", Size: "1.8 MB", UploadDate: "2025-10-19"},
	{Name: "texture-dark.jpg", URL: "https://via.placeholder.com/400x300/059669/34d399?text=Background+3", Size: "3.1 MB", UploadDate: "2025-10-18"},
}

var accounts = []account.Account{
	{Username: "@photomaster_de", Country: account.Germany, Followers: "12.5K", Status: account.Active},
	{Username: "@travel_uk", Country: account.UnitedKingdom, Followers: "8.3K", Status: account.Active},
	{Username: "@foodie_es", Country: account.Spain, Followers: "15.7K", Status: account.Pending},
}

var links = []link.Link{
	{URL: "https://youtube.com/watch?v=example", Platform: link.YouTube, Title: "Tutorial Video", DateAdded: "2025-10-20"},
	{URL: "https://instagram.com/p/example", Platform: link.Instagram, Title: "Instagram Post", DateAdded: "2025-10-19"},
}

var notes = []note.Note{
	{Title: "Meeting Notes", Content: "Discussed project timeline and deliverables...", DateCreated: "2025-10-20", DateModified: "2025-10-20"},
	{Title: "Ideas", Content: "New feature ideas for the app...", DateCreated: "2025-10-19", DateModified: "2025-10-19"},
}

var events = []calendar.Event{
	{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: calendar.Meeting},
	{Title: "Project Deadline", Date: "2025-10-28", Time: "17:00", Category: calendar.Task},
}
