package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "DASH_"

type StorageBackend string

const (
	MemoryStorage   StorageBackend = "memory"
	PostgresStorage StorageBackend = "postgres"
)

type Application struct {
	Host       string     `koanf:"host"`
	Listen     string     `koanf:"listen"`
	Storage    Storage    `koanf:"storage"`
	Database   Database   `koanf:"db"`
	Seed       Seed       `koanf:"seed"`
	Automation Automation `koanf:"automation"`
	Activity   Activity   `koanf:"activity"`
	Calendar   Calendar   `koanf:"calendar"`
	Telegram   Telegram   `koanf:"telegram"`
	Upload     Upload     `koanf:"upload"`
	Dashboard  Dashboard  `koanf:"dashboard"`
}

type Storage struct {
	Backend StorageBackend `koanf:"backend"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`

	// MaxConns caps the pgx pool.
	MaxConns int32 `koanf:"maxconns"`
}

type Seed struct {
	Enabled bool `koanf:"enabled"`
}

type Automation struct {
	TickInterval time.Duration `koanf:"tickinterval"`
	Step         int           `koanf:"step"`
	// Schedule is an optional cron spec ("@every 1h", "0 9 * * *") that starts
	// idle runners.
	Schedule string `koanf:"schedule"`
}

type Activity struct {
	Limit int `koanf:"limit"`
}

type Calendar struct {
	Timezone            string `koanf:"timezone"`
	ImportWindowMonths  int    `koanf:"importwindowmonths"`
	MaxImportOccurrence int    `koanf:"maximportoccurrence"`
}

type Telegram struct {
	ChatUrl string `koanf:"chaturl"`
}

type Upload struct {
	MaxMemoryMB int64 `koanf:"maxmemorymb"`
}

type Dashboard struct {
	StorageQuotaMB int64 `koanf:"storagequotamb"`
}

func Defaults() Application {
	return Application{
		Host:   "http://localhost:3000",
		Listen: ":8181",
		Storage: Storage{
			Backend: MemoryStorage,
		},
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "creatordash",
			Pass:     "",
			Name:     "creatordash",
			Schema:   "creatordash",
			MaxConns: 10,
		},
		Seed: Seed{
			Enabled: true,
		},
		Automation: Automation{
			TickInterval: 500 * time.Millisecond,
			Step:         2,
		},
		Activity: Activity{
			Limit: 20,
		},
		Calendar: Calendar{
			Timezone:            "UTC",
			ImportWindowMonths:  12,
			MaxImportOccurrence: 500,
		},
		Telegram: Telegram{
			ChatUrl: "https://telegram.org",
		},
		Upload: Upload{
			MaxMemoryMB: 32,
		},
		Dashboard: Dashboard{
			StorageQuotaMB: 1024,
		},
	}
}

func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("could not load .env file: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (a Application) validate() error {
	switch a.Storage.Backend {
	case MemoryStorage, PostgresStorage:
	default:
		return errors.New("storage.backend must be one of: memory, postgres")
	}
	if a.Automation.TickInterval <= 0 {
		return errors.New("automation.tickinterval must be positive")
	}
	if a.Automation.Step <= 0 || a.Automation.Step > 100 {
		return errors.New("automation.step must be within 1..100")
	}
	if a.Automation.Schedule != "" {
		if _, err := cron.ParseStandard(a.Automation.Schedule); err != nil {
			return fmt.Errorf("automation.schedule is not a valid cron spec: %w", err)
		}
	}
	if a.Activity.Limit <= 0 {
		return errors.New("activity.limit must be positive")
	}
	if a.Upload.MaxMemoryMB <= 0 {
		return errors.New("upload.maxmemorymb must be positive")
	}
	if _, err := time.LoadLocation(a.Calendar.Timezone); err != nil {
		return errors.New("calendar.timezone is not a valid IANA zone")
	}
	return nil
}

// Location returns the calendar time zone; validate guarantees it loads.
func (c Calendar) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
