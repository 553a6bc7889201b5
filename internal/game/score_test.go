package game

import "testing"

func TestScoreScenarios(t *testing.T) {
	tests := []struct {
		name          string
		tilesRevealed int
		timeLeft      int
		expected      int
	}{
		{
			name:          "one tile instant answer scores maximum",
			tilesRevealed: 1,
			timeLeft:      60,
			expected:      1000,
		},
		{
			name:          "all tiles at the buzzer scores the floor",
			tilesRevealed: 24,
			timeLeft:      0,
			expected:      50,
		},
		{
			name:          "one tile answered late keeps tile score",
			tilesRevealed: 1,
			timeLeft:      0,
			expected:      950,
		},
		{
			name:          "answer within first three seconds gets full bonus",
			tilesRevealed: 12,
			timeLeft:      57,
			expected:      496 + 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.tilesRevealed, tt.timeLeft, RoundTime)
			if got != tt.expected {
				t.Errorf("Score(%d, %d) = %d, want %d", tt.tilesRevealed, tt.timeLeft, got, tt.expected)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	for tiles := 1; tiles <= TotalTiles; tiles++ {
		for timeLeft := 0; timeLeft <= RoundTime; timeLeft++ {
			got := Score(tiles, timeLeft, RoundTime)
			if got < 50 || got > 1000 {
				t.Fatalf("Score(%d, %d) = %d, outside [50, 1000]", tiles, timeLeft, got)
			}
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	// More tiles revealed never scores higher, holding time fixed.
	for timeLeft := 0; timeLeft <= RoundTime; timeLeft += 5 {
		prev := Score(1, timeLeft, RoundTime)
		for tiles := 2; tiles <= TotalTiles; tiles++ {
			got := Score(tiles, timeLeft, RoundTime)
			if got > prev {
				t.Fatalf("Score(%d, %d) = %d increased from %d", tiles, timeLeft, got, prev)
			}
			prev = got
		}
	}

	// More time remaining never scores lower, holding tiles fixed.
	for tiles := 1; tiles <= TotalTiles; tiles += 3 {
		prev := Score(tiles, 0, RoundTime)
		for timeLeft := 1; timeLeft <= RoundTime; timeLeft++ {
			got := Score(tiles, timeLeft, RoundTime)
			if got < prev {
				t.Fatalf("Score(%d, %d) = %d decreased from %d", tiles, timeLeft, got, prev)
			}
			prev = got
		}
	}
}
