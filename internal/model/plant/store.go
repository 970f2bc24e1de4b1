package plant

import "strings"

// Store exposes plant retrieval for HTTP handlers.
type Store interface {
	List() []Plant
	FindByID(id string) (Plant, bool)
	FindByName(name string) (Plant, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Plant
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied plants.
func NewMemoryStore(items []Plant) *MemoryStore {
	return &MemoryStore{items: append([]Plant(nil), items...)}
}

// List returns the catalog in its configured order.
func (s *MemoryStore) List() []Plant {
	return append([]Plant(nil), s.items...)
}

// FindByID looks up a plant by identifier.
func (s *MemoryStore) FindByID(id string) (Plant, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Plant{}, false
}

// FindByName looks up a plant by display name, ignoring case and
// surrounding whitespace.
func (s *MemoryStore) FindByName(name string) (Plant, bool) {
	name = strings.TrimSpace(name)
	for _, item := range s.items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return Plant{}, false
}
