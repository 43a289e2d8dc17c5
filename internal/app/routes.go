package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Auth
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", deps.UserHandler.Logout).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetOverview).Methods("GET")

	// Videos
	r.HandleFunc("/api/videos", deps.VideoHandler.ListVideos).Methods("GET")
	r.HandleFunc("/api/videos", deps.VideoHandler.Upload).Methods("POST")
	r.HandleFunc("/api/videos/{videoId}", deps.VideoHandler.DeleteVideo).Methods("DELETE")

	// Backgrounds
	r.HandleFunc("/api/backgrounds", deps.BackgroundHandler.ListBackgrounds).Methods("GET")
	r.HandleFunc("/api/backgrounds", deps.BackgroundHandler.Upload).Methods("POST")
	r.HandleFunc("/api/backgrounds/{backgroundId}", deps.BackgroundHandler.DeleteBackground).Methods("DELETE")

	// Accounts
	r.HandleFunc("/api/accounts", deps.AccountHandler.ListAccounts).Methods("GET")
	r.HandleFunc("/api/accounts", deps.AccountHandler.AddAccount).Methods("POST")
	r.HandleFunc("/api/accounts/{accountId}", deps.AccountHandler.DeleteAccount).Methods("DELETE")

	// Links
	r.HandleFunc("/api/links", deps.LinkHandler.ListLinks).Methods("GET")
	r.HandleFunc("/api/links", deps.LinkHandler.AddLink).Methods("POST")
	r.HandleFunc("/api/links/{linkId}", deps.LinkHandler.DeleteLink).Methods("DELETE")

	// Notes
	r.HandleFunc("/api/notes", deps.NoteHandler.ListNotes).Methods("GET")
	r.HandleFunc("/api/notes", deps.NoteHandler.CreateNote).Methods("POST")
	r.HandleFunc("/api/notes/{noteId}", deps.NoteHandler.SaveNote).Methods("PUT")
	r.HandleFunc("/api/notes/{noteId}", deps.NoteHandler.DeleteNote).Methods("DELETE")

	// Calendar
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/grid", deps.CalendarHandler.GetGrid).Methods("GET")
	r.HandleFunc("/api/calendar/view", deps.CalendarHandler.GetView).Methods("GET")
	r.HandleFunc("/api/calendar/view/next", deps.CalendarHandler.NextMonth).Methods("POST")
	r.HandleFunc("/api/calendar/view/previous", deps.CalendarHandler.PreviousMonth).Methods("POST")
	r.HandleFunc("/api/calendar/view/selection", deps.CalendarHandler.SelectDate).Methods("PUT")
	r.HandleFunc("/api/calendar/export.ics", deps.CalendarHandler.ExportICS).Methods("GET")
	r.HandleFunc("/api/calendar/export.csv", deps.CalendarHandler.ExportCSV).Methods("GET")
	r.HandleFunc("/api/calendar/import", deps.CalendarHandler.Import).Methods("POST")

	// Automation
	r.HandleFunc("/api/automation", deps.AutomationHandler.GetState).Methods("GET")
	r.HandleFunc("/api/automation/start", deps.AutomationHandler.Start).Methods("POST")
	r.HandleFunc("/api/automation/pause", deps.AutomationHandler.Pause).Methods("POST")
	r.HandleFunc("/api/automation/stop", deps.AutomationHandler.Stop).Methods("POST")

	// Telegram
	r.HandleFunc("/api/telegram", deps.TelegramHandler.GetPanel).Methods("GET")
}

// NewRouter builds the router with middlewares and all routes.
func NewRouter(deps *Dependencies) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)
	return r
}
