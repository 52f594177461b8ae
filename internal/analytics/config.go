package analytics

// Config carries the engine's named constants so tests and callers can
// override them instead of relying on magic literals.
type Config struct {
	// DefaultAccountSize substitutes for a missing per-trade account-size
	// snapshot in percentage-of-account calculations.
	DefaultAccountSize float64

	// InfiniteProfitFactor is the sentinel reported when there are winning
	// trades but zero gross loss. Division would otherwise be undefined.
	InfiniteProfitFactor float64
}

// DefaultConfig returns the engine defaults used by the dashboard.
func DefaultConfig() Config {
	return Config{
		DefaultAccountSize:   10000,
		InfiniteProfitFactor: 999,
	}
}
