// Package store defines the document store consumed by the engine and the
// helpers shared by every backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"syscall"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// Record is a flat document. Values are strings, numbers, bools, lists or nested maps.
type Record map[string]any

// Document is a record together with the key it is stored under
type Document struct {
	Key    string
	Record Record
}

// Filter narrows a Query. The zero value matches every document.
type Filter struct {
	// Field and Equals select documents whose top-level Field equals Equals.
	// Comparison is done on the JSON encoding so 3 and 3.0 compare equal.
	Field  string
	Equals any
	// Limit caps the number of documents returned; 0 means no limit
	Limit int
}

// Store is the remote document store. Implementations return *domain.RemoteError
// for transport or permission failures.
type Store interface {
	Exists(ctx context.Context, collection, key string) (bool, error)
	Get(ctx context.Context, collection, key string) (Record, bool, error)
	// Query returns matching documents ordered by key
	Query(ctx context.Context, collection string, filter Filter) ([]Document, error)
	// Set replaces the whole document stored under key
	Set(ctx context.Context, collection, key string, rec Record) error
	Delete(ctx context.Context, collection, key string) error
}

// ErrPermissionDenied is returned by backends when the store rejects the caller
var ErrPermissionDenied = errors.New("permission denied")

// ErrUnavailable is returned by backends when the store cannot be reached
var ErrUnavailable = errors.New("store unavailable")

// Well-known record fields
const (
	FieldCreatedAt = "created_at"
	FieldOrdinal   = "ordinal"
)

// MainKey is the fixed key of single-document aggregates
const MainKey = "main"

// OrdinalKeyWidth is the zero-padded width of ordinal document keys
const OrdinalKeyWidth = 2

// OrdinalKey encodes an ordinal as a fixed-width, zero-padded decimal key so
// lexical order matches numeric order (7 -> "07").
func OrdinalKey(ordinal int) string {
	return fmt.Sprintf("%0*d", OrdinalKeyWidth, ordinal)
}

// ParseOrdinalKey decodes a padded or unpadded ordinal key
func ParseOrdinalKey(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsCanonicalOrdinalKey reports whether key is already in padded form
func IsCanonicalOrdinalKey(key string) bool {
	n, ok := ParseOrdinalKey(key)
	return ok && OrdinalKey(n) == key
}

// Encode converts a typed value into a Record through its JSON form
func Encode(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return rec, nil
}

// Decode converts a Record into a typed value through its JSON form
func Decode(rec Record, v any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// Equal compares two records by their canonical JSON encoding
func Equal(a, b Record) bool {
	ea, errA := json.Marshal(a)
	eb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ea) == string(eb)
}

// Clone returns a deep copy of rec
func Clone(rec Record) Record {
	if rec == nil {
		return nil
	}
	var out Record
	if err := Decode(rec, &out); err != nil {
		// Records only ever hold JSON-compatible values, fall back to a shallow copy
		out = make(Record, len(rec))
		for k, v := range rec {
			out[k] = v
		}
	}
	return out
}

// Matches reports whether rec satisfies filter
func Matches(rec Record, filter Filter) bool {
	if filter.Field == "" {
		return true
	}
	v, ok := rec[filter.Field]
	if !ok {
		return false
	}
	a, errA := json.Marshal(v)
	b, errB := json.Marshal(filter.Equals)
	if errA != nil || errB != nil {
		return false
	}
	if string(a) == string(b) {
		return true
	}
	// Numbers may round-trip as float64
	fa, okA := toFloat(v)
	fb, okB := toFloat(filter.Equals)
	return okA && okB && fa == fb
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// NewRemoteError wraps a backend failure and classifies it as a permission or
// connectivity problem when possible.
func NewRemoteError(op, collection, key string, err error) *domain.RemoteError {
	var remote *domain.RemoteError
	if errors.As(err, &remote) {
		return remote
	}
	return &domain.RemoteError{
		Op:         op,
		Collection: collection,
		Key:        key,
		Kind:       classifyRemote(err),
		Err:        err,
	}
}

func classifyRemote(err error) domain.RemoteKind {
	var netErr net.Error
	switch {
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, os.ErrPermission), errors.Is(err, syscall.EACCES):
		return domain.RemotePermission
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.As(err, &netErr):
		return domain.RemoteConnectivity
	default:
		return domain.RemoteUnknown
	}
}
