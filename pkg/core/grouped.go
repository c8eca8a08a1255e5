package core

import (
	"github.com/tidwall/btree"
)

// GroupedSeries maps bucket keys to the raw values observed in each bucket.
// Buckets are always traversed in ascending key order, which for 4-digit
// years equals chronological order.
type GroupedSeries struct {
	buckets btree.Map[string, Series[float64]]
}

// NewGroupedSeries creates an empty grouped series
func NewGroupedSeries() *GroupedSeries {
	return &GroupedSeries{}
}

// Append adds values to a bucket, creating it when absent
func (g *GroupedSeries) Append(bucket string, values ...float64) {
	current, _ := g.buckets.Get(bucket)
	g.buckets.Set(bucket, append(current, values...))
}

// Set replaces the values of a bucket
func (g *GroupedSeries) Set(bucket string, values Series[float64]) {
	g.buckets.Set(bucket, values)
}

// Get returns the values stored for a bucket
func (g *GroupedSeries) Get(bucket string) (Series[float64], bool) {
	return g.buckets.Get(bucket)
}

// Len returns the number of buckets
func (g *GroupedSeries) Len() int {
	if g == nil {
		return 0
	}
	return g.buckets.Len()
}

// Ascend calls iter for every bucket in ascending key order until iter returns false
func (g *GroupedSeries) Ascend(iter func(bucket string, values Series[float64]) bool) {
	if g == nil {
		return
	}
	g.buckets.Scan(iter)
}

// Buckets returns the bucket keys in ascending order
func (g *GroupedSeries) Buckets() []string {
	keys := make([]string, 0, g.Len())
	g.Ascend(func(bucket string, _ Series[float64]) bool {
		keys = append(keys, bucket)
		return true
	})
	return keys
}

// Values returns every value of the series, bucket by bucket
func (g *GroupedSeries) Values() []float64 {
	values := make([]float64, 0, g.Len())
	g.Ascend(func(_ string, bucket Series[float64]) bool {
		values = append(values, bucket...)
		return true
	})
	return values
}
