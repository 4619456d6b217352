package demo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"perkgrid/internal/eventdata"
	"perkgrid/internal/fetch"
	"perkgrid/pkg/logging"
)

const fixtureExt = ".json"

// Store holds the event data served by the demo app, keyed by event id.
// Fixtures are read from a directory of <event-id>.json files; the built-in
// sample is always available under eventdata.SampleID unless a fixture
// replaces it.
type Store struct {
	dir string

	mu       sync.RWMutex
	fixtures map[string]eventdata.EventData
	revision string
}

var _ fetch.Fetcher = (*Store)(nil)

// NewStore creates a store for dir and loads it. An empty dir serves the
// sample only.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the fixtures directory.
func (s *Store) Dir() string { return s.dir }

// Reload re-reads every fixture. Files that fail validation are skipped and
// logged; a missing directory is an error.
func (s *Store) Reload() error {
	fixtures := map[string]eventdata.EventData{eventdata.SampleID: eventdata.Sample()}

	if s.dir != "" {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			return fmt.Errorf("reading fixtures directory %s: %w", s.dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != fixtureExt {
				continue
			}
			id := strings.TrimSuffix(entry.Name(), fixtureExt)
			data, err := loadFixture(filepath.Join(s.dir, entry.Name()))
			if err != nil {
				logging.Warn(subsystem, "skipping fixture %s: %v", entry.Name(), err)
				continue
			}
			fixtures[id] = data
		}
	}

	s.mu.Lock()
	s.fixtures = fixtures
	s.revision = uuid.NewString()
	s.mu.Unlock()

	logging.Debug(subsystem, "loaded %d fixtures", len(fixtures))
	return nil
}

func loadFixture(path string) (eventdata.EventData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return eventdata.EventData{}, err
	}
	return eventdata.Decode(body)
}

// Get returns the event data for id.
func (s *Store) Get(id string) (eventdata.EventData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.fixtures[id]
	return data, ok
}

// IDs returns the known event ids, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.fixtures))
	for id := range s.fixtures {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Revision identifies the current set of fixtures. It changes on every
// reload.
func (s *Store) Revision() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Fetch serves fixtures to in-process hosts. Unknown ids fail like a 404
// from the API.
func (s *Store) Fetch(ctx context.Context, eventID string) (eventdata.EventData, error) {
	if err := ctx.Err(); err != nil {
		return eventdata.EventData{}, &fetch.FetchError{Message: "request cancelled", Err: err}
	}
	data, ok := s.Get(eventID)
	if !ok {
		return eventdata.EventData{}, &fetch.FetchError{Status: 404, Message: "Not Found"}
	}
	return data, nil
}

// Watch reloads the store whenever a fixture in the directory is written,
// created, removed or renamed. It blocks until ctx is done. reloaded, when
// non-nil, is called after each reload.
func (s *Store) Watch(ctx context.Context, reloaded func()) error {
	if s.dir == "" {
		return errors.New("no fixtures directory to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fixture watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}
	logging.Info(subsystem, "watching fixtures in %s", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != fixtureExt {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug(subsystem, "fixture changed: %s", filepath.Base(event.Name))
			if err := s.Reload(); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return err
				}
				logging.Error(subsystem, err, "reloading fixtures")
				continue
			}
			if reloaded != nil {
				reloaded()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error(subsystem, err, "fixture watcher")
		}
	}
}
