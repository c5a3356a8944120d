package storage

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

// Adapter stores JSON documents in a Backend. Reads fall back to "absent" and
// writes become no-ops when the backend or the codec fails; callers never see
// a persistence error. Failures are logged and counted.
type Adapter struct {
	backend  Backend
	logger   *log.Logger
	failures atomic.Int64
}

// NewAdapter wraps backend. A nil logger discards failure reports.
func NewAdapter(backend Backend, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New()
		logger.SetOutput(io.Discard)
	}
	return &Adapter{backend: backend, logger: logger}
}

// Read decodes the value stored under key into dst and reports whether it
// did. Absent keys, backend errors and undecodable values all return false.
func (a *Adapter) Read(ctx context.Context, key string, dst any) bool {
	raw, err := a.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.absorb(&PersistenceError{Op: "read", Key: key, Err: err})
		}
		return false
	}
	if err := sonic.ConfigStd.Unmarshal(raw, dst); err != nil {
		a.absorb(&PersistenceError{Op: "decode", Key: key, Err: err})
		return false
	}
	return true
}

// Write encodes value and stores it under key.
func (a *Adapter) Write(ctx context.Context, key string, value any) {
	raw, err := sonic.ConfigStd.Marshal(value)
	if err != nil {
		a.absorb(&PersistenceError{Op: "encode", Key: key, Err: err})
		return
	}
	if err := a.backend.Set(ctx, key, raw); err != nil {
		a.absorb(&PersistenceError{Op: "write", Key: key, Err: err})
	}
}

// WriteAll stores several documents in one backend call. If any value fails
// to encode nothing is written.
func (a *Adapter) WriteAll(ctx context.Context, values map[string]any) {
	encoded := make(map[string][]byte, len(values))
	for key, value := range values {
		raw, err := sonic.ConfigStd.Marshal(value)
		if err != nil {
			a.absorb(&PersistenceError{Op: "encode", Key: key, Err: err})
			return
		}
		encoded[key] = raw
	}
	if err := a.backend.SetMany(ctx, encoded); err != nil {
		a.absorb(&PersistenceError{Op: "write", Key: joinKeys(values), Err: err})
	}
}

// Remove deletes key. Removing an absent key is not an error.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrKeyNotFound) {
		a.absorb(&PersistenceError{Op: "remove", Key: key, Err: err})
	}
}

// Failures returns how many backend or codec failures have been absorbed.
func (a *Adapter) Failures() int {
	return int(a.failures.Load())
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.backend.Close()
}

func (a *Adapter) absorb(err *PersistenceError) {
	a.failures.Add(1)
	a.logger.WithFields(log.Fields{
		"op":  err.Op,
		"key": err.Key,
	}).WithError(err.Err).Warn("storage unavailable, continuing without durability")
}

// ReadOr returns the document stored under key, or def when Read fails.
func ReadOr[T any](ctx context.Context, a *Adapter, key string, def T) T {
	var v T
	if !a.Read(ctx, key, &v) {
		return def
	}
	return v
}

func joinKeys(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
