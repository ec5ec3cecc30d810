package difficulty

import "github.com/vytor/intuition/internal/models"

const (
	promoteAccuracy = 0.85
	demoteAccuracy  = 0.65
)

// Next proposes the difficulty for the following run. Accurate and fast
// runs step up one level, inaccurate runs step down one level, anything
// else keeps the level. The result always lies in [1, 10].
func Next(previous models.Difficulty, accuracy, averageResponseMs, targetResponseMs float64) models.Difficulty {
	adjusted := int(previous)

	switch {
	case accuracy >= promoteAccuracy && averageResponseMs <= targetResponseMs:
		adjusted++
	case accuracy < demoteAccuracy:
		adjusted--
	}

	return Clamp(adjusted)
}

// Clamp forces an arbitrary level into the supported range.
func Clamp(level int) models.Difficulty {
	return models.Difficulty(min(int(models.MaxDifficulty), max(int(models.MinDifficulty), level)))
}
