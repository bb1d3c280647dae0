package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"snapfind/internal/domain"
	"snapfind/internal/kv"
	applog "snapfind/internal/log"
)

const DefaultHistoryLimit = 20

// StorageReadError means the stored history could not be decoded. Callers
// outside this package never see it; it is logged and treated as empty.
// A failed store read is a plain error and is never treated as empty.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Key, e.Err) }
func (e *StorageReadError) Unwrap() error { return e.Err }

// HistoryService keeps a bounded, most-recent-first product list per session.
// Read-modify-write is not atomic: two tabs of one session writing at once
// can lose an update.
type HistoryService struct {
	Store kv.Store
	Limit int
}

func NewHistoryService(store kv.Store, limit int) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{Store: store, Limit: limit}
}

func historyKey(sid string) string { return kv.HistoryPrefix + sid }

func (s *HistoryService) load(sid string) ([]domain.Product, error) {
	key := historyKey(sid)
	raw, ok, err := s.Store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []domain.Product{}, nil
	}
	var out []domain.Product
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &StorageReadError{Key: key, Err: err}
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

func (s *HistoryService) save(sid string, items []domain.Product) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Store.Set(historyKey(sid), string(b))
}

// Append assigns an id when missing, puts p first and drops anything past
// the limit. A corrupt stored list is replaced; a failed read leaves the
// stored list untouched and returns the error.
func (s *HistoryService) Append(sid string, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	items, err := s.load(sid)
	var corrupt *StorageReadError
	switch {
	case errors.As(err, &corrupt):
		applog.Warn(nil, "history.corrupt", err, map[string]any{"op": "append"})
		items = []domain.Product{}
	case err != nil:
		return p, fmt.Errorf("load history: %w", err)
	}
	items = append([]domain.Product{p}, items...)
	if len(items) > s.Limit {
		items = items[:s.Limit]
	}
	if err := s.save(sid, items); err != nil {
		return p, fmt.Errorf("save history: %w", err)
	}
	return p, nil
}

// List returns the stored history, or an empty list when nothing is stored
// or the stored value is unreadable.
func (s *HistoryService) List(sid string) []domain.Product {
	items, err := s.load(sid)
	if err != nil {
		applog.Warn(nil, "history.read.fail", err, map[string]any{"op": "list"})
		return []domain.Product{}
	}
	return items
}

// Get finds one entry by id.
func (s *HistoryService) Get(sid, id string) (domain.Product, bool) {
	for _, p := range s.List(sid) {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Remove drops the first entry with the given id. Absent ids and empty or
// corrupt history are no-ops; a failed read is returned without writing.
func (s *HistoryService) Remove(sid, id string) error {
	items, err := s.load(sid)
	var corrupt *StorageReadError
	switch {
	case errors.As(err, &corrupt):
		applog.Warn(nil, "history.corrupt", err, map[string]any{"op": "remove"})
		return nil
	case err != nil:
		return fmt.Errorf("load history: %w", err)
	}
	for i, p := range items {
		if p.ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := s.save(sid, items); err != nil {
				return fmt.Errorf("save history: %w", err)
			}
			return nil
		}
	}
	return nil
}
