package quote

import "sync"

// Store keeps one working quotation per account in memory.
type Store struct {
	mu     sync.RWMutex
	quotes map[int]*Quote
}

func NewStore() *Store {
	return &Store{quotes: make(map[int]*Quote)}
}

// Get returns a copy of the user's quote, starting an empty one if needed.
func (s *Store) Get(userID int) *Quote {
	s.mu.RLock()
	q, ok := s.quotes[userID]
	s.mu.RUnlock()
	if ok {
		return q.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok = s.quotes[userID]; !ok {
		q = New()
		s.quotes[userID] = q
	}
	return q.Clone()
}

// Update runs fn on the user's quote under the write lock and returns a copy
// of the result. The quote is left untouched when fn fails.
func (s *Store) Update(userID int, fn func(q *Quote) error) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[userID]
	if !ok {
		q = New()
	}
	work := q.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	s.quotes[userID] = work
	return work.Clone(), nil
}

// Reset discards the user's quote.
func (s *Store) Reset(userID int) {
	s.mu.Lock()
	delete(s.quotes, userID)
	s.mu.Unlock()
}
