package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

var ErrNotFound = errors.New("record not found")

// documentCollection is a typed view over one collection path of the document store.
type documentCollection[T any] struct {
	store  store.DocumentStore
	path   string
	setKey func(*T, string)
}

func newCollection[T any](s store.DocumentStore, path string, setKey func(*T, string)) documentCollection[T] {
	return documentCollection[T]{store: s, path: path, setKey: setKey}
}

func (c documentCollection[T]) list(ctx context.Context) ([]T, error) {
	docs, err := c.store.FetchAll(ctx, c.path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.path, err)
	}
	return decodeDocuments(docs, c.path, c.setKey), nil
}

func (c documentCollection[T]) get(ctx context.Context, key string) (*T, error) {
	docs, err := c.store.FetchAll(ctx, c.path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.path, err)
	}
	for _, doc := range docs {
		if doc.Key != key {
			continue
		}
		var item T
		if err := decodeDocument(doc.Data, &item); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.path, key, err)
		}
		c.setKey(&item, key)
		return &item, nil
	}
	return nil, ErrNotFound
}

func (c documentCollection[T]) write(ctx context.Context, key string, fields map[string]interface{}) error {
	if err := c.store.WriteField(ctx, store.Join(c.path, key), fields); err != nil {
		return fmt.Errorf("write %s/%s: %w", c.path, key, err)
	}
	return nil
}

func (c documentCollection[T]) remove(ctx context.Context, key string) error {
	if err := c.store.Remove(ctx, store.Join(c.path, key)); err != nil {
		return fmt.Errorf("remove %s/%s: %w", c.path, key, err)
	}
	return nil
}

func (c documentCollection[T]) subscribe(ctx context.Context, onChange func([]T)) (store.Unsubscribe, error) {
	return c.store.Subscribe(ctx, c.path, func(docs []store.Document) {
		onChange(decodeDocuments(docs, c.path, c.setKey))
	})
}

// decodeDocuments decodes every document it can. Broken documents are logged
// and skipped so one bad record does not hide the rest of the collection.
func decodeDocuments[T any](docs []store.Document, path string, setKey func(*T, string)) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := decodeDocument(doc.Data, &item); err != nil {
			logger.WithCollection(path).WithError(err).WithField("key", doc.Key).Warn("skipping malformed document")
			continue
		}
		setKey(&item, doc.Key)
		out = append(out, item)
	}
	return out
}

func decodeDocument(data map[string]interface{}, v interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// toFields converts an entity into the field map written to the store. The
// key is not stored inside the document and empty values are dropped.
func toFields(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "id")
	for k, val := range fields {
		if val == nil {
			delete(fields, k)
		}
	}
	return fields, nil
}
