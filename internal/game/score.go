package game

import "math"

// TotalTiles is the number of cells in the obscuring grid (6x4).
const TotalTiles = 24

// Score maps a correct guess to points. Revealing a single tile is worth
// close to the 950-point tile maximum; revealing all 24 drives the tile
// component to zero. Answering within the first 3 seconds earns the full
// 50-point time bonus, after which the bonus decays linearly with the
// time remaining. The result is always within [50, 1000]; incorrect
// rounds never reach this function and score zero.
func Score(tilesRevealed, timeLeft, totalTime int) int {
	tileScore := int(math.Round(950 * math.Max(0, 1-float64(tilesRevealed-1)/float64(TotalTiles-1))))

	timeElapsed := totalTime - timeLeft
	var timeBonus int
	if timeElapsed <= 3 {
		timeBonus = 50
	} else {
		timeBonus = int(math.Round(50 * math.Max(0, float64(timeLeft)/float64(totalTime-3))))
	}

	total := tileScore + timeBonus
	if total > 1000 {
		return 1000
	}
	if total < 50 {
		return 50
	}
	return total
}
