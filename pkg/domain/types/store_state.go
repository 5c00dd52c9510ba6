package types

// StoreState represents the lifecycle state of the knowledge store.
// Transitions: UNLOADED -> LOADING -> LOADED, and LOADING -> UNLOADED when a
// load fails as a unit.
type StoreState string

const (
	StoreUnloaded StoreState = "unloaded"
	StoreLoading  StoreState = "loading"
	StoreLoaded   StoreState = "loaded"
)

// IsValid checks if the store state is valid
func (s StoreState) IsValid() bool {
	switch s {
	case StoreUnloaded, StoreLoading, StoreLoaded:
		return true
	default:
		return false
	}
}

// String returns the string representation of the store state
func (s StoreState) String() string {
	return string(s)
}
