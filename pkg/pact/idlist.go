package pact

import (
	"encoding/json"

	"github.com/google/uuid"
)

// IDList is an ordered sequence of identifiers in which every member is
// unique. Insertion order is preserved and members are index addressable.
// The zero value is an empty list ready to use. An IDList is not safe for
// concurrent mutation.
type IDList[T comparable] struct {
	field string
	items []T
	index map[T]struct{}
}

// CompanyIDList holds the identifiers of the company owning a footprint.
type CompanyIDList = IDList[CompanyID]

// ProductIDList holds the identifiers of the product a footprint is for.
type ProductIDList = IDList[ProductID]

// PrecedingPfIDs holds the ids of footprints a footprint supersedes.
type PrecedingPfIDs = IDList[uuid.UUID]

func NewCompanyIDList(ids ...CompanyID) (*CompanyIDList, error) {
	return newIDList("companyIds", ids)
}

func NewProductIDList(ids ...ProductID) (*ProductIDList, error) {
	return newIDList("productIds", ids)
}

func NewPrecedingPfIDs(ids ...uuid.UUID) (*PrecedingPfIDs, error) {
	return newIDList("precedingPfIds", ids)
}

func newIDList[T comparable](field string, ids []T) (*IDList[T], error) {
	l := &IDList[T]{field: field, index: make(map[T]struct{}, len(ids))}
	for _, id := range ids {
		if err := l.Append(id); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append adds id at the end of the list.
func (l *IDList[T]) Append(id T) error {
	return l.Insert(len(l.items), id)
}

// Insert places id at position i, shifting later members right.
func (l *IDList[T]) Insert(i int, id T) error {
	if i < 0 || i > len(l.items) {
		return rangeErr(l.field, i, "index %d out of range [0, %d]", i, len(l.items))
	}
	if l.Contains(id) {
		return duplicateErr(l.field, id)
	}
	if l.index == nil {
		l.index = make(map[T]struct{})
	}
	l.items = append(l.items, id)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = id
	l.index[id] = struct{}{}
	return nil
}

// Set replaces the member at position i.
func (l *IDList[T]) Set(i int, id T) error {
	if i < 0 || i >= len(l.items) {
		return rangeErr(l.field, i, "index %d out of range [0, %d)", i, len(l.items))
	}
	old := l.items[i]
	if old == id {
		return nil
	}
	if l.Contains(id) {
		return duplicateErr(l.field, id)
	}
	delete(l.index, old)
	l.items[i] = id
	l.index[id] = struct{}{}
	return nil
}

// Remove deletes id from the list.
func (l *IDList[T]) Remove(id T) error {
	i := l.Index(id)
	if i < 0 {
		return &ValidationError{Kind: ErrInconsistent, Field: l.field, Message: "identifier not in list"}
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	delete(l.index, id)
	return nil
}

// Index returns the position of id, or -1.
func (l *IDList[T]) Index(id T) int {
	if !l.Contains(id) {
		return -1
	}
	for i, v := range l.items {
		if v == id {
			return i
		}
	}
	return -1
}

func (l *IDList[T]) Contains(id T) bool {
	if l == nil {
		return false
	}
	_, ok := l.index[id]
	return ok
}

// At returns the member at position i. Like a slice index, it panics when i
// is out of range; check Len first.
func (l *IDList[T]) At(i int) T { return l.items[i] }

func (l *IDList[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Values returns a copy of the members in order.
func (l *IDList[T]) Values() []T {
	if l == nil {
		return nil
	}
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Clone returns an independent copy of the list.
func (l *IDList[T]) Clone() *IDList[T] {
	if l == nil {
		return nil
	}
	c, _ := newIDList(l.field, l.items)
	return c
}

func (l *IDList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	items := l.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
