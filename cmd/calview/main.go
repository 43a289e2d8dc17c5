package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/klokku/creatordash/internal/tui"
	"github.com/klokku/creatordash/internal/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	eventsFile string
	serverUrl  string
	userUid    string
	timezone   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "calview",
	Short: "Month view of the creator dashboard calendar",
	Long: `calview shows the calendar of the creator dashboard in the terminal.
Events come from a JSON or iCalendar file (reloaded when it changes) or from
a running dashboard server.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&eventsFile, "file", "f", "", "events file (.json or .ics)")
	rootCmd.Flags().StringVar(&serverUrl, "server", "", "dashboard base URL, e.g. http://localhost:8181")
	rootCmd.Flags().StringVar(&userUid, "user", "", "user uid sent as X-User-Id to the server")
	rootCmd.Flags().StringVar(&timezone, "timezone", "Local", "time zone for iCalendar files")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.MarkFlagsMutuallyExclusive("file", "server")
	rootCmd.MarkFlagsRequiredTogether("server", "user")
}

func run(cmd *cobra.Command, args []string) error {
	// the terminal belongs to the UI
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	clock := &utils.SystemClock{}
	var source tui.Source
	switch {
	case eventsFile != "":
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone: %w", err)
		}
		source = tui.FileSource{Path: eventsFile, Location: loc, Clock: clock}
	case serverUrl != "":
		source = tui.ServerSource{BaseURL: serverUrl, Uid: userUid, Client: &http.Client{Timeout: 10 * time.Second}}
	default:
		return errors.New("either --file or --server is required")
	}

	model := tui.NewModel(source, clock)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if eventsFile != "" {
		watcher, err := tui.WatchFile(eventsFile, func() { p.Send(tui.ReloadMsg{}) })
		if err != nil {
			log.Warnf("not watching %s: %v", eventsFile, err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
