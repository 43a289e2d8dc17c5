package tui

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const debounceDelay = 100 * time.Millisecond

// FileWatcher calls onChange after a watched file was written. Bursts of
// writes are collapsed into one call.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	done     chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
}

// WatchFile watches the directory of path so that editors replacing the file
// with a rename are still noticed.
func WatchFile(path string, onChange func()) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		path:     absPath,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go fw.watch()
	return fw, nil
}

func (fw *FileWatcher) watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != fw.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fw.mu.Lock()
			if fw.timer != nil {
				fw.timer.Stop()
			}
			fw.timer = time.AfterFunc(debounceDelay, fw.onChange)
			fw.mu.Unlock()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("file watcher error: %v", err)

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
