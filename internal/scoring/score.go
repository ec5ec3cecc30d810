package scoring

import (
	"math"
	"time"
)

const (
	basePerLevel      = 40
	comboBonusPerHit  = 8
	speedBonusScale   = 30
	speedRatioCap     = 1.2
	speedRatioNeutral = 0.5
	penaltyPerLevel   = -5
	maxPenalty        = -25
)

// Input is the outcome of one answered round.
type Input struct {
	Correct      bool
	ResponseTime time.Duration
	TargetTime   time.Duration
	Difficulty   int
	Combo        int
}

// Result is the score delta for the round and the combo to carry forward.
type Result struct {
	Delta int
	Combo int
}

// Score computes the point delta for a single round. Wrong answers cost
// 5 points per difficulty level, capped at 25, and break the combo.
// Correct answers earn 40 per level plus combo and speed bonuses; the
// speed ratio is capped at 1.2 and response times under 1ms count as 1ms.
func Score(in Input) Result {
	if !in.Correct {
		return Result{
			Delta: max(maxPenalty, penaltyPerLevel*in.Difficulty),
			Combo: 0,
		}
	}

	responseMs := math.Max(millis(in.ResponseTime), 1)
	speedRatio := math.Min(speedRatioCap, millis(in.TargetTime)/responseMs)

	base := float64(basePerLevel * in.Difficulty)
	comboBonus := float64(in.Combo * comboBonusPerHit)
	speedBonus := roundHalfUp((speedRatio - speedRatioNeutral) * speedBonusScale)

	return Result{
		Delta: int(roundHalfUp(base + speedBonus + comboBonus)),
		Combo: in.Combo + 1,
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// roundHalfUp rounds .5 toward positive infinity, so -7.5 becomes -7.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
