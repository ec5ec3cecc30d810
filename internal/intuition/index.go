// Package intuition folds per-game scores into the 0-100 intuition index.
package intuition

import "math"

// Raw score bounds calibrated against the mini-game scoring ranges. A run
// scoring ScoreMin maps to 0 and one scoring ScoreMax maps to 100.
const (
	ScoreMin = 200.0
	ScoreMax = 2000.0
)

// Normalize maps a raw score linearly onto [0, 100].
func Normalize(score float64) float64 {
	normalized := (score - ScoreMin) / (ScoreMax - ScoreMin) * 100
	return clamp(normalized, 0, 100)
}

// ComputeIndex returns the weighted mean of the normalized scores, rounded
// to an integer. Weights are matched by position and any missing weight
// counts as 1. Empty input, a non-positive weight total or weights too
// large to sum to a finite total yield 0.
func ComputeIndex(scores []float64, weights []float64) int {
	if len(scores) == 0 {
		return 0
	}

	var weightedSum, weightTotal float64
	for i, score := range scores {
		weight := 1.0
		if i < len(weights) {
			weight = weights[i]
		}
		weightedSum += Normalize(score) * weight
		weightTotal += weight
	}

	if weightTotal <= 0 || math.IsInf(weightTotal, 0) {
		return 0
	}
	mean := weightedSum / weightTotal
	if math.IsNaN(mean) {
		return 0
	}
	return int(math.Floor(clamp(mean, 0, 100) + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
