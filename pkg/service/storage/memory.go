package storage

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
)

// DefaultAssetPath is where the memory storage serves its objects
const DefaultAssetPath = "/assets/"

type object struct {
	contentType string
	data        []byte
	storedAt    time.Time
}

// Memory keeps uploaded assets in process memory and serves them over HTTP. It is meant
// for local development where no bucket is available.
type Memory struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]object
}

var (
	_ interfaces.AssetStorage = &Memory{}
	_ http.Handler            = &Memory{}
)

// NewMemory creates a memory storage whose URLs start with baseURL, e.g.
// "http://localhost:8080/assets"
func NewMemory(baseURL string) *Memory {
	return &Memory{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]object),
	}
}

func (m *Memory) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if key == "" {
		return "", goerr.New("object key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = object{
		contentType: contentType,
		data:        bytes.Clone(data),
		storedAt:    time.Now(),
	}
	return m.baseURL + "/" + key, nil
}

// Len returns the number of stored objects
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// ServeHTTP serves a stored object by its key. The handler expects the mount prefix to be
// stripped from the request path.
func (m *Memory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")

	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", obj.contentType)
	http.ServeContent(w, r, key, obj.storedAt, bytes.NewReader(obj.data))
}
