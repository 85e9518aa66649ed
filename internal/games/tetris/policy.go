package tetris

import "time"

// Policy turns cleared rows into score and score into fall speed.
//
//	level         = score / ScorePerLevel
//	fall interval = max(MinInterval, BaseInterval - LevelStep*level)
type Policy struct {
	PointsPerRow  int
	ScorePerLevel int
	BaseInterval  time.Duration
	LevelStep     time.Duration
	MinInterval   time.Duration
}

// DefaultPolicy returns the classic settings: 100 points per row,
// a level every 1000 points, 600ms falling 50ms faster per level down to 100ms.
func DefaultPolicy() Policy {
	return Policy{
		PointsPerRow:  100,
		ScorePerLevel: 1000,
		BaseInterval:  600 * time.Millisecond,
		LevelStep:     50 * time.Millisecond,
		MinInterval:   100 * time.Millisecond,
	}
}

// RowScore returns the score for clearing n rows at once.
// Scoring is flat per row, there is no bonus for multi-row clears.
func (p Policy) RowScore(n int) int {
	return n * p.PointsPerRow
}

// Level returns the speed level reached at score.
func (p Policy) Level(score int) int {
	if p.ScorePerLevel <= 0 {
		return 0
	}
	return score / p.ScorePerLevel
}

// FallInterval returns the gravity interval for score.
func (p Policy) FallInterval(score int) time.Duration {
	return max(p.MinInterval, p.BaseInterval-p.LevelStep*time.Duration(p.Level(score)))
}
