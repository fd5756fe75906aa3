package storage

// LoadState tracks a store's one-shot read from local storage.
type LoadState int

const (
	Unloaded LoadState = iota
	Loaded
)

func (s LoadState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}
