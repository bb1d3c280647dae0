package services

import (
	"encoding/json"

	"snapfind/internal/domain"
	"snapfind/internal/kv"
	applog "snapfind/internal/log"
)

// HandoffService holds the two transient per-session slots used to move
// between views: the last captured image (as a data URL) and a product picked
// from history.
type HandoffService struct {
	Store kv.Store
}

func NewHandoffService(store kv.Store) *HandoffService { return &HandoffService{Store: store} }

func capturedKey(sid string) string { return "captured:" + sid }
func selectedKey(sid string) string { return "selected:" + sid }

func (s *HandoffService) SetCaptured(sid, dataURL string) error {
	return s.Store.Set(capturedKey(sid), dataURL)
}

func (s *HandoffService) Captured(sid string) (string, bool) {
	v, ok, err := s.Store.Get(capturedKey(sid))
	if err != nil {
		applog.Warn(nil, "handoff.captured.read.fail", err, nil)
		return "", false
	}
	return v, ok && v != ""
}

func (s *HandoffService) ClearCaptured(sid string) error {
	return s.Store.Delete(capturedKey(sid))
}

func (s *HandoffService) Select(sid string, p domain.Product) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Store.Set(selectedKey(sid), string(b))
}

// TakeSelected returns and clears the selected product.
func (s *HandoffService) TakeSelected(sid string) (domain.Product, bool) {
	raw, ok, err := s.Store.Get(selectedKey(sid))
	if err != nil {
		applog.Warn(nil, "handoff.selected.read.fail", err, nil)
		return domain.Product{}, false
	}
	if !ok {
		return domain.Product{}, false
	}
	_ = s.Store.Delete(selectedKey(sid))
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		applog.Warn(nil, "handoff.selected.decode.fail", err, nil)
		return domain.Product{}, false
	}
	return p, true
}
