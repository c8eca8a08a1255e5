package core

import (
	"golang.org/x/exp/constraints"
)

// Series is an ordered list of values observed in one bucket
type Series[T constraints.Ordered] []T

// Values returns the underlying slice of values
func (s Series[T]) Values() []T {
	return s
}

// Length returns the number of values in the series
func (s Series[T]) Length() int {
	return len(s)
}

// Between returns a new series holding the values within [low, high]
func (s Series[T]) Between(low, high T) Series[T] {
	result := make(Series[T], 0, len(s))
	for _, v := range s {
		if InRange(v, low, high) {
			result = append(result, v)
		}
	}
	return result
}

// InRange reports whether v lies within [low, high]
func InRange[T constraints.Ordered](v, low, high T) bool {
	return v >= low && v <= high
}
