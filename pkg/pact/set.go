package pact

import "encoding/json"

// orderedSet keeps the first occurrence order of its members and rejects
// members whose key is already present.
type orderedSet[T any] struct {
	key   func(T) string
	items []T
	seen  map[string]struct{}
}

func newOrderedSet[T any](key func(T) string, items []T) (orderedSet[T], error) {
	s := orderedSet[T]{key: key, seen: make(map[string]struct{}, len(items))}
	for i, it := range items {
		if err := s.add(it); err != nil {
			return orderedSet[T]{}, Prefix(indexField(i), err)
		}
	}
	return s, nil
}

func (s *orderedSet[T]) add(it T) error {
	k := s.key(it)
	if _, dup := s.seen[k]; dup {
		return &ValidationError{Kind: ErrDuplicateID, Value: k, Message: "duplicate entry " + k}
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[k] = struct{}{}
	s.items = append(s.items, it)
	return nil
}

func (s orderedSet[T]) len() int { return len(s.items) }

func (s orderedSet[T]) contains(it T) bool {
	if s.key == nil {
		return false
	}
	_, ok := s.seen[s.key(it)]
	return ok
}

func (s orderedSet[T]) values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s orderedSet[T]) clone() orderedSet[T] {
	c, _ := newOrderedSet(s.key, s.items)
	return c
}

func (s orderedSet[T]) marshal() ([]byte, error) {
	items := s.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
