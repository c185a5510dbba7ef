package leitner

import "fmt"

// Default bounds of a learner's active set.
const (
	DefaultMinCapacity = 29
	DefaultMaxCapacity = 30
)

// Capacity bounds the size of a learner's active set. A refill is triggered
// once the set drops below Min and tops it back up to Max.
type Capacity struct {
	Min int
	Max int
}

// DefaultCapacity returns the standard 29/30 bounds.
func DefaultCapacity() Capacity {
	return Capacity{Min: DefaultMinCapacity, Max: DefaultMaxCapacity}
}

// Validate checks 0 <= Min < Max.
func (c Capacity) Validate() error {
	if c.Min < 0 || c.Max <= 0 {
		return fmt.Errorf("%w: bounds must be positive (min=%d, max=%d)", ErrInvalidCapacity, c.Min, c.Max)
	}
	if c.Min >= c.Max {
		return fmt.Errorf("%w: min %d must be below max %d", ErrInvalidCapacity, c.Min, c.Max)
	}
	return nil
}

// NeedsRefill reports whether an active set of the given size is below the floor.
func (c Capacity) NeedsRefill(active int) bool {
	return active < c.Min
}

// Deficit returns how many phrases are missing to fill the active set to Max.
func (c Capacity) Deficit(active int) (int, error) {
	deficit := c.Max - active
	if deficit < 0 {
		return 0, fmt.Errorf("%w: %d active phrases exceed max %d", ErrInvalidCapacity, active, c.Max)
	}
	if deficit > c.Max {
		return 0, fmt.Errorf("%w: deficit %d exceeds max %d", ErrInvalidCapacity, deficit, c.Max)
	}
	return deficit, nil
}
