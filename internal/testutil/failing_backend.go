package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/taskboard/internal/storage"
)

// ErrBackendDown is returned by FailingBackend for every disabled operation.
var ErrBackendDown = errors.New("storage backend unavailable")

// FailingBackend is an in-memory storage backend whose reads and writes can
// be switched off, simulating quota errors or disabled storage. It counts
// every write attempt, failed or not.
type FailingBackend struct {
	mu         sync.Mutex
	data       map[string][]byte
	FailReads  bool
	FailWrites bool
	Writes     int
}

var _ storage.Backend = (*FailingBackend)(nil)

func NewFailingBackend() *FailingBackend {
	return &FailingBackend{data: make(map[string][]byte)}
}

func (f *FailingBackend) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailReads {
		return nil, ErrBackendDown
	}
	v, ok := f.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return v, nil
}

func (f *FailingBackend) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if f.FailWrites {
		return ErrBackendDown
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *FailingBackend) SetMany(_ context.Context, values map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if f.FailWrites {
		return ErrBackendDown
	}
	for k, v := range values {
		f.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (f *FailingBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if f.FailWrites {
		return ErrBackendDown
	}
	delete(f.data, key)
	return nil
}

func (f *FailingBackend) Close() error { return nil }

// Raw returns the bytes stored under key.
func (f *FailingBackend) Raw(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Put stores raw bytes under key without counting a write.
func (f *FailingBackend) Put(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// WriteCount returns the number of write attempts so far.
func (f *FailingBackend) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Writes
}
