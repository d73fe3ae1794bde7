package loader

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"census/internal/models"
)

// Manager manages the registered loaders
type Manager struct {
	loaders map[string]Loader
}

// NewManager creates a manager with the csv and zip loaders registered.
// Relative local paths are resolved against root.
func NewManager(root string) (*Manager, error) {
	m := &Manager{
		loaders: make(map[string]Loader),
	}

	m.RegisterLoader(NewCSVLoader(root))

	zipLoader, err := NewZIPLoader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to create ZIP loader: %w", err)
	}
	m.RegisterLoader(zipLoader)

	return m, nil
}

// RegisterLoader adds a new loader to the manager
func (m *Manager) RegisterLoader(l Loader) {
	m.loaders[l.Method()] = l
}

// GetLoader retrieves a loader by method
func (m *Manager) GetLoader(method string) (Loader, error) {
	l, ok := m.loaders[method]
	if !ok {
		return nil, fmt.Errorf("no loader found for method: %s", method)
	}
	return l, nil
}

// MethodFor picks the loader method from the resource extension
func MethodFor(resource string) string {
	p := resource
	if u, err := url.Parse(resource); err == nil && u.Scheme != "" {
		p = u.Path
	}
	if strings.EqualFold(path.Ext(p), ".zip") {
		return "zip"
	}
	return "csv"
}

// Load reads the resource with the loader matching its extension
func (m *Manager) Load(ctx context.Context, resource string) ([]models.Record, error) {
	method := MethodFor(resource)
	l, err := m.GetLoader(method)
	if err != nil {
		return nil, NewLoadError(StageFetch, resource, err)
	}
	log.Printf("Loading %s with %s loader", resource, method)
	return l.Load(ctx, resource)
}

// Cleanup performs any necessary cleanup
func (m *Manager) Cleanup() {
	for _, l := range m.loaders {
		if err := l.Cleanup(); err != nil {
			log.Printf("Error cleaning up loader: %v", err)
		}
	}
}
