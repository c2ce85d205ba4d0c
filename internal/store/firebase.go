package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"firebase.google.com/go/v4/db"

	"github.com/Vileyy/admin-halora-app/internal/logger"
)

// FirebaseStore reads and writes the Firebase Realtime Database. Subscriptions
// poll the path with ETags, so an unchanged collection costs one conditional
// request per interval and triggers no callback.
type FirebaseStore struct {
	client       *db.Client
	pollInterval time.Duration
}

func NewFirebaseStore(client *db.Client, pollInterval time.Duration) *FirebaseStore {
	return &FirebaseStore{client: client, pollInterval: pollInterval}
}

func (s *FirebaseStore) ref(path string) (*db.Ref, error) {
	if _, err := splitPath(path); err != nil {
		return nil, err
	}
	return s.client.NewRef(path), nil
}

func (s *FirebaseStore) FetchAll(ctx context.Context, path string) ([]Document, error) {
	ref, err := s.ref(path)
	if err != nil {
		return nil, err
	}
	var raw interface{}
	if err := ref.Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("firebase get %s: %w", path, err)
	}
	return childrenOf(raw), nil
}

func (s *FirebaseStore) Subscribe(ctx context.Context, path string, onChange func([]Document)) (Unsubscribe, error) {
	ref, err := s.ref(path)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	etag, err := ref.GetWithETag(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("firebase subscribe %s: %w", path, err)
	}
	onChange(childrenOf(raw))

	subCtx, cancel := context.WithCancel(ctx)
	log := logger.WithCollection(path)

	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-subCtx.Done():
				return
			case <-ticker.C:
			}

			var next interface{}
			changed, newETag, err := ref.GetIfChanged(subCtx, etag, &next)
			if err != nil {
				if subCtx.Err() != nil {
					return
				}
				log.WithError(err).Warn("poll failed")
				continue
			}
			if !changed || subCtx.Err() != nil {
				continue
			}
			etag = newETag
			onChange(childrenOf(next))
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (s *FirebaseStore) WriteField(ctx context.Context, path string, fields map[string]interface{}) error {
	ref, err := s.ref(path)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if err := ref.Update(ctx, fields); err != nil {
		return fmt.Errorf("firebase update %s: %w", path, err)
	}
	return nil
}

func (s *FirebaseStore) Remove(ctx context.Context, path string) error {
	ref, err := s.ref(path)
	if err != nil {
		return err
	}
	if err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("firebase delete %s: %w", path, err)
	}
	return nil
}
