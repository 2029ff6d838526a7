package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"go.uber.org/zap"
)

// ExportDocument is the interchange format for backups: the stored
// collection plus the display currency and an export timestamp.
type ExportDocument struct {
	Subscriptions []subscription.Subscription `json:"subscriptions"`
	Currency      string                      `json:"currency"`
	Version       int                         `json:"version"`
	ExportedAt    string                      `json:"exportedAt"`
}

// Export snapshots the collection into an ExportDocument.
func (s *Store) Export() ExportDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]subscription.Subscription, len(s.doc.Subscriptions))
	copy(subs, s.doc.Subscriptions)

	return ExportDocument{
		Subscriptions: subs,
		Currency:      s.doc.Currency,
		Version:       constants.StoreVersion,
		ExportedAt:    s.nowFn().UTC().Format(constants.DateLayout),
	}
}

// WriteExport writes the export document as indented JSON.
func (s *Store) WriteExport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Export()); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Import replaces the collection with the document read from r. A document
// without a subscription array is rejected; a document without a currency
// keeps the current display-currency selection.
func (s *Store) Import(r io.Reader) error {
	var doc ExportDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	if doc.Subscriptions == nil {
		return fmt.Errorf("invalid import: missing subscriptions")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Subscriptions = doc.Subscriptions
	if doc.Currency != "" {
		s.doc.Currency = doc.Currency
	}
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("imported subscriptions",
		zap.Int("count", len(doc.Subscriptions)),
	)
	return nil
}
