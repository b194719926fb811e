package tracker

// MemoryStore is a SeenStore backed by a map.
type MemoryStore struct {
	texts map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{texts: make(map[string]struct{})}
}

func (s *MemoryStore) Contains(text string) (bool, error) {
	_, ok := s.texts[text]
	return ok, nil
}

func (s *MemoryStore) Insert(text, _ string) error {
	s.texts[text] = struct{}{}
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	return len(s.texts), nil
}
