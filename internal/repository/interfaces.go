package repository

// SeenRepository defines the interface for seen-set storage.
type SeenRepository interface {
	// Create operations
	Insert(text, symbology string) error

	// Read operations
	Contains(text string) (bool, error)
	Count() (int, error)
	CountBySymbology() (map[string]int, error)
}
