package attribute

import (
	"errors"
	"testing"
)

func TestNewSetStartsAtMinimum(t *testing.T) {
	set := NewSet()
	for _, name := range Names() {
		if got := set.Get(name); got != MinDots {
			t.Fatalf("%s = %d, want %d", name, got, MinDots)
		}
	}
	if err := set.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestSetRoundTripsEveryValidRating(t *testing.T) {
	for _, name := range Names() {
		for dots := MinDots; dots <= MaxDots; dots++ {
			set := NewSet()
			if err := set.CheckSet(name, dots); err != nil {
				t.Fatalf("check %s=%d: %v", name, dots, err)
			}
			set.Set(name, dots)
			if got := set.Get(name); got != dots {
				t.Fatalf("%s = %d, want %d", name, got, dots)
			}
		}
	}
}

func TestCheckSetRejectsOutOfRange(t *testing.T) {
	set := NewSet()
	for _, dots := range []int{-1, 0, 6, 10} {
		err := set.CheckSet(Strength, dots)
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("dots %d: err = %v, want ErrInvalidRating", dots, err)
		}
	}
	if err := set.CheckSet(Name("luck"), 3); !errors.Is(err, ErrUnknown) {
		t.Fatalf("err = %v, want ErrUnknown", err)
	}
}

func TestParse(t *testing.T) {
	name, err := Parse("  Wits ")
	if err != nil || name != Wits {
		t.Fatalf("Parse = %q, %v", name, err)
	}
	if _, err := Parse("luck"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("err = %v, want ErrUnknown", err)
	}
}
