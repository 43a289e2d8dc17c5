package event_bus

const (
	UserRegisteredType         EventType = "user.registered"
	VideoUploadedType          EventType = "video.uploaded"
	BackgroundUploadedType     EventType = "background.uploaded"
	AccountAddedType           EventType = "account.added"
	LinkCreatedType            EventType = "link.created"
	NoteCreatedType            EventType = "note.created"
	CalendarEventCreatedType   EventType = "calendar.event.created"
	AutomationRunCompletedType EventType = "automation.run.completed"
)

type UserRegistered struct {
	UserId int
	Uid    string
	Name   string
}

type VideoUploaded struct {
	UserId int
	Id     string
	Title  string
}

type BackgroundUploaded struct {
	UserId int
	Id     string
	Name   string
}

type AccountAdded struct {
	UserId   int
	Id       string
	Username string
}

type LinkCreated struct {
	UserId   int
	Id       string
	Title    string
	Platform string
}

type NoteCreated struct {
	UserId int
	Id     string
	Title  string
}

type CalendarEventCreated struct {
	UserId int
	Id     string
	Title  string
	Date   string
}

type AutomationRunCompleted struct {
	UserId         int
	TasksCompleted int
}
