package discovery

import "sync"

// Store holds the enriched events in fetch order. Readers get copies.
type Store struct {
	mu     sync.RWMutex
	order  []int64
	events map[int64]*Event
}

func NewStore() *Store {
	return &Store{events: make(map[int64]*Event)}
}

// Replace swaps the whole contents, keeping the order of events.
func (s *Store) Replace(events []*Event) {
	order := make([]int64, 0, len(events))
	byID := make(map[int64]*Event, len(events))
	for _, e := range events {
		if _, ok := byID[e.ID]; ok {
			continue
		}
		cp := e.clone()
		byID[e.ID] = &cp
		order = append(order, e.ID)
	}

	s.mu.Lock()
	s.order = order
	s.events = byID
	s.mu.Unlock()
}

func (s *Store) Get(id int64) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return Event{}, false
	}
	return e.clone(), true
}

func (s *Store) List() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]Event, 0, len(s.order))
	for _, id := range s.order {
		res = append(res, s.events[id].clone())
	}
	return res
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Update applies fn to the stored event under the write lock.
// It reports false when the event is not in the store.
func (s *Store) Update(id int64, fn func(e *Event)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return false
	}
	fn(e)
	return true
}
