package chart

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyLabel     = errors.New("segment label is empty")
	ErrDuplicateLabel = errors.New("duplicate segment label")
	ErrInvalidValue   = errors.New("segment value must be finite and non-negative")
)

// Validate reports the first segment that would render ambiguously:
// empty or repeated labels, negative, NaN or infinite values, and values
// whose sum overflows to infinity.
func (s Spec) Validate() error {
	seen := make(map[string]int, len(s.Segments))
	total := 0.0
	for i, seg := range s.Segments {
		if seg.Label == "" {
			return fmt.Errorf("segment %d: %w", i, ErrEmptyLabel)
		}
		if j, ok := seen[seg.Label]; ok {
			return fmt.Errorf("segment %d %q (first at %d): %w", i, seg.Label, j, ErrDuplicateLabel)
		}
		seen[seg.Label] = i
		if math.IsNaN(seg.Value) || math.IsInf(seg.Value, 0) || seg.Value < 0 {
			return fmt.Errorf("segment %d %q = %v: %w", i, seg.Label, seg.Value, ErrInvalidValue)
		}
		total += seg.Value
		if math.IsInf(total, 0) {
			return fmt.Errorf("segment %d %q: total overflows: %w", i, seg.Label, ErrInvalidValue)
		}
	}
	return nil
}
