package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

type memorySubscription struct {
	path     string
	onChange func([]Document)
}

// MemoryStore keeps the whole tree in process. Values are normalized through
// JSON on write so readers see the same shapes a remote store would return.
type MemoryStore struct {
	mu     sync.RWMutex
	root   map[string]interface{}
	subsMu sync.Mutex
	subs   map[int]*memorySubscription
	nextID int
	// serializes notifications so subscribers observe writes in order
	notifyMu sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: make(map[string]interface{}),
		subs: make(map[int]*memorySubscription),
	}
}

// Seed replaces the node at path with value.
func (s *MemoryStore) Seed(path string, value interface{}) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	normalized, err := normalize(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	parent := s.ensure(segments[:len(segments)-1])
	parent[segments[len(segments)-1]] = normalized
	s.mu.Unlock()

	s.notify(path)
	return nil
}

func (s *MemoryStore) FetchAll(ctx context.Context, path string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return s.snapshot(segments)
}

func (s *MemoryStore) snapshot(segments []string) ([]Document, error) {
	s.mu.RLock()
	node := lookup(s.root, segments)
	copied, err := normalize(node)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return childrenOf(copied), nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, path string, onChange func([]Document)) (Unsubscribe, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	// Hold notifyMu so no write notification overtakes the initial snapshot.
	// Callbacks therefore must not write to the store synchronously.
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = &memorySubscription{path: strings.Join(segments, "/"), onChange: onChange}
	s.subsMu.Unlock()

	var once sync.Once
	stop := make(chan struct{})
	unsubscribe := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(stop)
		})
	}

	docs, err := s.snapshot(segments)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	onChange(docs)

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-stop:
		}
	}()
	return unsubscribe, nil
}

func (s *MemoryStore) WriteField(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	normalized := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if strings.Contains(k, "/") {
			return fmt.Errorf("field %q: %w", k, ErrInvalidPath)
		}
		n, err := normalize(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		normalized[k] = n
	}

	s.mu.Lock()
	node := s.ensure(segments)
	for k, v := range normalized {
		if v == nil {
			delete(node, k)
			continue
		}
		node[k] = v
	}
	s.mu.Unlock()

	s.notify(path)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	segments, err := splitPath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	parent, ok := lookup(s.root, segments[:len(segments)-1]).(map[string]interface{})
	if ok {
		delete(parent, segments[len(segments)-1])
	}
	s.mu.Unlock()

	s.notify(path)
	return nil
}

// ensure walks to segments, creating intermediate objects. Callers hold mu.
func (s *MemoryStore) ensure(segments []string) map[string]interface{} {
	node := s.root
	for _, seg := range segments {
		child, ok := node[seg].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			node[seg] = child
		}
		node = child
	}
	return node
}

func (s *MemoryStore) notify(changed string) {
	changed = strings.Trim(changed, "/")

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.subsMu.Lock()
	targets := make([]*memorySubscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if related(sub.path, changed) {
			targets = append(targets, sub)
		}
	}
	s.subsMu.Unlock()

	for _, sub := range targets {
		docs, err := s.snapshot(strings.Split(sub.path, "/"))
		if err != nil {
			continue
		}
		sub.onChange(docs)
	}
}

// related reports whether a change at b is visible from a subscription at a.
func related(a, b string) bool {
	return a == b || strings.HasPrefix(b, a+"/") || strings.HasPrefix(a, b+"/")
}

func lookup(node interface{}, segments []string) interface{} {
	for _, seg := range segments {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node = m[seg]
	}
	return node
}

func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
