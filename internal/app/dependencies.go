package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/creatordash/internal/config"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/seed"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/account"
	"github.com/klokku/creatordash/pkg/activity"
	"github.com/klokku/creatordash/pkg/automation"
	"github.com/klokku/creatordash/pkg/background"
	"github.com/klokku/creatordash/pkg/calendar"
	"github.com/klokku/creatordash/pkg/dashboard"
	"github.com/klokku/creatordash/pkg/link"
	"github.com/klokku/creatordash/pkg/note"
	"github.com/klokku/creatordash/pkg/telegram"
	"github.com/klokku/creatordash/pkg/user"
	"github.com/klokku/creatordash/pkg/video"
)

const megabyte = 1024 * 1024

// Repositories is the storage layer, in memory or in Postgres.
type Repositories struct {
	Users       user.Repo
	Videos      video.Repository
	Backgrounds background.Repository
	Accounts    account.Repository
	Links       link.Repository
	Notes       note.Repository
	Calendar    calendar.Repository
}

func MemoryRepositories() Repositories {
	return Repositories{
		Users:       user.NewStubUserRepository(),
		Videos:      video.NewRepositoryStub(),
		Backgrounds: background.NewRepositoryStub(),
		Accounts:    account.NewRepositoryStub(),
		Links:       link.NewRepositoryStub(),
		Notes:       note.NewRepositoryStub(),
		Calendar:    calendar.NewRepositoryStub(),
	}
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Users:       user.NewUserRepo(db),
		Videos:      video.NewRepository(db),
		Backgrounds: background.NewRepository(db),
		Accounts:    account.NewRepository(db),
		Links:       link.NewRepository(db),
		Notes:       note.NewRepository(db),
		Calendar:    calendar.NewRepository(db),
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock     utils.Clock
	EventBus  *event_bus.EventBus
	Validator *validation.Validator

	UserService user.Service
	UserHandler *user.Handler

	VideoService      *video.ServiceImpl
	VideoHandler      *video.Handler
	BackgroundService *background.ServiceImpl
	BackgroundHandler *background.Handler

	AccountService *account.ServiceImpl
	AccountHandler *account.Handler
	LinkService    *link.ServiceImpl
	LinkHandler    *link.Handler
	NoteService    *note.ServiceImpl
	NoteHandler    *note.Handler

	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler

	AutomationService *automation.Service
	AutomationHandler *automation.Handler

	ActivityFeed     *activity.Feed
	DashboardService *dashboard.Service
	DashboardHandler *dashboard.Handler
	TelegramHandler  *telegram.Handler

	Seeder *seed.Seeder
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{
		Clock:     clock,
		EventBus:  event_bus.NewEventBus(),
		Validator: validation.New(),
	}

	deps.ActivityFeed = activity.NewFeed(cfg.Activity.Limit)
	deps.ActivityFeed.Subscribe(deps.EventBus)

	if cfg.Seed.Enabled {
		deps.Seeder = seed.NewSeeder(seed.Repositories{
			Videos:      repos.Videos,
			Backgrounds: repos.Backgrounds,
			Accounts:    repos.Accounts,
			Links:       repos.Links,
			Notes:       repos.Notes,
			Calendar:    repos.Calendar,
		})
		deps.Seeder.Subscribe(deps.EventBus)
	}

	deps.UserService = user.NewUserService(repos.Users, deps.Validator, deps.EventBus, clock)
	deps.UserHandler = user.NewHandler(deps.UserService)

	maxMemory := cfg.Upload.MaxMemoryMB * megabyte
	deps.VideoService = video.NewService(repos.Videos, deps.EventBus, clock)
	deps.VideoHandler = video.NewHandler(deps.VideoService, maxMemory)
	deps.BackgroundService = background.NewService(repos.Backgrounds, deps.EventBus, clock)
	deps.BackgroundHandler = background.NewHandler(deps.BackgroundService, maxMemory)

	deps.AccountService = account.NewService(repos.Accounts, deps.Validator, deps.EventBus, clock)
	deps.AccountHandler = account.NewHandler(deps.AccountService)
	deps.LinkService = link.NewService(repos.Links, deps.Validator, deps.EventBus, clock)
	deps.LinkHandler = link.NewHandler(deps.LinkService)
	deps.NoteService = note.NewService(repos.Notes, deps.Validator, deps.EventBus, clock)
	deps.NoteHandler = note.NewHandler(deps.NoteService)

	deps.CalendarService = calendar.NewService(repos.Calendar, deps.Validator, deps.EventBus, clock, calendar.Settings{
		Location:           cfg.Calendar.Location(),
		ImportWindowMonths: cfg.Calendar.ImportWindowMonths,
		MaxOccurrences:     cfg.Calendar.MaxImportOccurrence,
	})
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	deps.AutomationService = automation.NewService(automation.Settings{
		TickInterval: cfg.Automation.TickInterval,
		Step:         cfg.Automation.Step,
		Schedule:     cfg.Automation.Schedule,
	}, deps.UserService.GetAllUsers, deps.EventBus, clock)
	deps.AutomationHandler = automation.NewHandler(deps.AutomationService)

	deps.DashboardService = dashboard.NewService(
		deps.VideoService,
		deps.BackgroundService,
		deps.AccountService,
		deps.LinkService,
		deps.AutomationService,
		deps.ActivityFeed,
		clock,
		cfg.Dashboard.StorageQuotaMB*megabyte,
	)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)
	deps.TelegramHandler = telegram.NewHandler(cfg.Telegram.ChatUrl)

	return deps
}
