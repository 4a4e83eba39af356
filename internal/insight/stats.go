// Package insight computes the statistical summaries and narrative text
// shown alongside each scene. All functions are pure; the statistical
// ones require non-empty input, which callers must check first.
package insight

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Mean returns the arithmetic mean of xs. xs must be non-empty; the
// caller performs the emptiness check.
func Mean(xs []float64) float64 {
	return stats.Mean(xs)
}

// Extent returns the (min, max) of xs. xs must be non-empty.
func Extent(xs []float64) (min, max float64) {
	return stats.Bounds(xs)
}

// Rollup counts occurrences per key, remembering first-seen key order so
// that ties among equal counts resolve deterministically.
type Rollup struct {
	keys   []string
	counts map[string]int
}

// RollupCount builds a Rollup over the key sequence.
func RollupCount(keys []string) *Rollup {
	r := &Rollup{counts: make(map[string]int)}
	for _, k := range keys {
		if _, seen := r.counts[k]; !seen {
			r.keys = append(r.keys, k)
		}
		r.counts[k]++
	}
	return r
}

// Count returns the number of occurrences of key.
func (r *Rollup) Count(key string) int {
	return r.counts[key]
}

// Keys returns the distinct keys in first-seen order.
func (r *Rollup) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of distinct keys.
func (r *Rollup) Len() int {
	return len(r.keys)
}

// Top returns the most frequent key and its count. Among equal counts the
// key that appeared first in the input wins; the result never depends on
// map iteration order. Returns ("", 0) on an empty rollup.
func (r *Rollup) Top() (string, int) {
	best, bestCount := "", 0
	for _, k := range r.keys {
		if c := r.counts[k]; c > bestCount {
			best, bestCount = k, c
		}
	}
	return best, bestCount
}

// PearsonCorrelation computes the Pearson correlation coefficient
//
//	r = (nΣxy − ΣxΣy) / sqrt((nΣx² − (Σx)²)(nΣy² − (Σy)²))
//
// over the paired sequences. When either axis has zero variance the
// denominator is zero and the function returns 0; the degenerate case is
// a defined fallback, not NaN. xs and ys must have equal non-zero length.
func PearsonCorrelation(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}

	denom := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
