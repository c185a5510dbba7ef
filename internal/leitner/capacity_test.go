package leitner

import (
	"errors"
	"testing"
)

func TestCapacity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cap     Capacity
		wantErr bool
	}{
		{"default", DefaultCapacity(), false},
		{"zero floor", Capacity{Min: 0, Max: 1}, false},
		{"equal bounds", Capacity{Min: 3, Max: 3}, true},
		{"inverted", Capacity{Min: 5, Max: 2}, true},
		{"negative min", Capacity{Min: -1, Max: 2}, true},
		{"zero max", Capacity{Min: 0, Max: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cap.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCapacity) {
				t.Errorf("error %v does not wrap ErrInvalidCapacity", err)
			}
		})
	}
}

func TestCapacity_NeedsRefill(t *testing.T) {
	c := DefaultCapacity()
	if !c.NeedsRefill(28) {
		t.Error("28 active should need a refill")
	}
	if c.NeedsRefill(29) {
		t.Error("29 active should not need a refill")
	}
	if c.NeedsRefill(30) {
		t.Error("30 active should not need a refill")
	}
}

func TestCapacity_Deficit(t *testing.T) {
	c := DefaultCapacity()
	got, err := c.Deficit(0)
	if err != nil || got != 30 {
		t.Fatalf("Deficit(0) = %d, %v; want 30", got, err)
	}
	got, err = c.Deficit(28)
	if err != nil || got != 2 {
		t.Fatalf("Deficit(28) = %d, %v; want 2", got, err)
	}
	if _, err := c.Deficit(31); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("Deficit(31) error = %v, want ErrInvalidCapacity", err)
	}
	if _, err := c.Deficit(-1); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("Deficit(-1) error = %v, want ErrInvalidCapacity", err)
	}
}

// A refill triggered at any size below the floor always lands exactly on Max.
func TestCapacity_DeficitFillsToMax(t *testing.T) {
	for maxCap := 1; maxCap <= 40; maxCap++ {
		for minCap := 0; minCap < maxCap; minCap++ {
			c := Capacity{Min: minCap, Max: maxCap}
			for active := 0; active < minCap; active++ {
				d, err := c.Deficit(active)
				if err != nil {
					t.Fatalf("%+v Deficit(%d): %v", c, active, err)
				}
				if d < 1 || d > maxCap {
					t.Fatalf("%+v Deficit(%d) = %d out of [1,%d]", c, active, d, maxCap)
				}
				if active+d != maxCap {
					t.Fatalf("%+v Deficit(%d) = %d does not fill to max", c, active, d)
				}
			}
		}
	}
}
