// Package store persists the subscription collection as a local JSON file,
// the Go counterpart of the original browser-local storage document. The
// store owns the records; readers get copies and the metrics engine never
// sees shared mutable state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/exchange"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no subscription matches the requested id.
var ErrNotFound = errors.New("subscription not found")

type document struct {
	Subscriptions []subscription.Subscription `json:"subscriptions"`
	Currency      string                      `json:"currency"`
	Version       int                         `json:"version"`
}

// Store is a mutex-guarded JSON-file collection of subscriptions plus the
// user's display-currency selection.
type Store struct {
	mu       sync.RWMutex
	filePath string
	doc      document
	logger   *zap.Logger

	// injectable for tests
	nowFn func() time.Time
	idFn  func() string
}

// Open loads the store at path, creating an empty document when the file
// does not exist yet.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	s := &Store{
		filePath: path,
		logger:   logger,
		nowFn:    time.Now,
		idFn:     uuid.NewString,
		doc: document{
			Subscriptions: []subscription.Subscription{},
			Currency:      constants.BaseCurrency,
			Version:       constants.StoreVersion,
		},
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse data file %s: %w", s.filePath, err)
	}
	if doc.Subscriptions == nil {
		doc.Subscriptions = []subscription.Subscription{}
	}
	if doc.Currency == "" {
		doc.Currency = constants.BaseCurrency
	}
	if doc.Version == 0 {
		doc.Version = constants.StoreVersion
	}

	s.doc = doc
	s.logger.Debug("loaded subscription data",
		zap.String("path", s.filePath),
		zap.Int("count", len(doc.Subscriptions)),
	)
	return nil
}

// save writes the document to a temp file and renames it into place. Callers
// must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	data = append(data, '\n')

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// List returns a copy of the collection in stored order.
func (s *Store) List() []subscription.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]subscription.Subscription, len(s.doc.Subscriptions))
	copy(out, s.doc.Subscriptions)
	return out
}

// Get returns the subscription with the given id.
func (s *Store) Get(id string) (subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.doc.Subscriptions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return subscription.Subscription{}, ErrNotFound
}

// Add validates in, appends a new subscription, and persists.
func (s *Store) Add(in subscription.Input) (subscription.Subscription, error) {
	if err := in.Validate(); err != nil {
		return subscription.Subscription{}, fmt.Errorf("invalid subscription: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := subscription.New(in, s.idFn(), s.nowFn())
	s.doc.Subscriptions = append(s.doc.Subscriptions, sub)
	if err := s.save(); err != nil {
		s.doc.Subscriptions = s.doc.Subscriptions[:len(s.doc.Subscriptions)-1]
		return subscription.Subscription{}, err
	}

	s.logger.Info("added subscription",
		zap.String("id", sub.ID),
		zap.String("name", sub.Name),
	)
	return sub, nil
}

// Update validates in and overwrites the editable fields of the subscription
// with the given id, refreshing its update timestamp.
func (s *Store) Update(id string, in subscription.Input) (subscription.Subscription, error) {
	if err := in.Validate(); err != nil {
		return subscription.Subscription{}, fmt.Errorf("invalid subscription: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Subscriptions {
		if s.doc.Subscriptions[i].ID != id {
			continue
		}
		previous := s.doc.Subscriptions[i]
		s.doc.Subscriptions[i].Apply(in, s.nowFn())
		if err := s.save(); err != nil {
			s.doc.Subscriptions[i] = previous
			return subscription.Subscription{}, err
		}
		return s.doc.Subscriptions[i], nil
	}
	return subscription.Subscription{}, ErrNotFound
}

// Delete removes the subscription with the given id and persists.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Subscriptions {
		if s.doc.Subscriptions[i].ID != id {
			continue
		}
		removed := s.doc.Subscriptions[i]
		s.doc.Subscriptions = append(s.doc.Subscriptions[:i], s.doc.Subscriptions[i+1:]...)
		if err := s.save(); err != nil {
			return err
		}
		s.logger.Info("deleted subscription",
			zap.String("id", removed.ID),
			zap.String("name", removed.Name),
		)
		return nil
	}
	return ErrNotFound
}

// Clear removes every subscription and persists the empty document.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Subscriptions = []subscription.Subscription{}
	return s.save()
}

// Count returns the number of stored subscriptions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Subscriptions)
}

// DisplayCurrency returns the stored display-currency selection.
func (s *Store) DisplayCurrency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Currency
}

// SetDisplayCurrency stores the display-currency selection. The selection
// only affects formatting at the output boundary; stored amounts keep their
// entry currency.
func (s *Store) SetDisplayCurrency(code string) error {
	if !exchange.Supported(code) {
		return fmt.Errorf("unknown currency %q", code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Currency = code
	return s.save()
}
