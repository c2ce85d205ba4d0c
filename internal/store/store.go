// Package store defines the document store the admin console reads storefront
// data from, with firebase, mongo and in-memory drivers.
package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidPath = errors.New("invalid store path")

// Document is one child of a collection path. Key is the child key, Data its fields.
type Document struct {
	Key  string
	Data map[string]interface{}
}

// Unsubscribe stops a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// DocumentStore is a hierarchical key/document service addressed by slash paths.
//
// Subscribe pushes the full current collection on every change, starting with
// the state at subscription time. There are no delta notifications.
type DocumentStore interface {
	FetchAll(ctx context.Context, path string) ([]Document, error)
	Subscribe(ctx context.Context, path string, onChange func([]Document)) (Unsubscribe, error)
	WriteField(ctx context.Context, path string, fields map[string]interface{}) error
	Remove(ctx context.Context, path string) error
}

// Join builds a store path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func splitPath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, ErrInvalidPath
	}
	segments := strings.Split(trimmed, "/")
	for _, s := range segments {
		if s == "" || strings.ContainsAny(s, ".$#[]") {
			return nil, ErrInvalidPath
		}
	}
	return segments, nil
}

// childrenOf lists the object children of a node. Arrays are keyed by index,
// which is how the realtime database returns sequential keys. Scalar children
// are not documents and are left out.
func childrenOf(node interface{}) []Document {
	docs := make([]Document, 0)
	switch v := node.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if data, ok := v[k].(map[string]interface{}); ok {
				docs = append(docs, Document{Key: k, Data: data})
			}
		}
	case []interface{}:
		for i, child := range v {
			if data, ok := child.(map[string]interface{}); ok {
				docs = append(docs, Document{Key: strconv.Itoa(i), Data: data})
			}
		}
	}
	return docs
}
