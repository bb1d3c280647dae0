// Package classify turns image bytes into ranked labels by calling an
// external image-classification service.
package classify

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"snapfind/internal/domain"
)

var ErrEmptyImage = errors.New("classify: empty image")

// Resolver returns labels ordered by descending score.
type Resolver interface {
	Resolve(ctx context.Context, image []byte) ([]domain.Label, error)
}

// ConfigurationError means the resolver cannot run at all, e.g. no
// credential is configured.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "classifier not configured: " + e.Msg }

// ServiceError is a non-success answer from the classification endpoint.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("classifier returned %d: %s", e.Status, truncate(e.Body, 200))
}

// NetworkError wraps a transport failure (DNS, refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "classifier unreachable: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// Kind names the failure class for logs.
func Kind(err error) string {
	var ce *ConfigurationError
	var se *ServiceError
	var ne *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ce):
		return "configuration"
	case errors.As(err, &se):
		return "service"
	case errors.As(err, &ne):
		return "network"
	case errors.Is(err, ErrEmptyImage):
		return "input"
	default:
		return "unknown"
	}
}

func sortByScore(labels []domain.Label) []domain.Label {
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Score > labels[j].Score })
	return labels
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
