package game

// Stats counts what happened during one run (from Start or Reset until the
// next Reset).
type Stats struct {
	Ticks        int
	ElapsedMs    float64
	PlayerShots  int
	EnemyShots   int
	Kills        int
	EnemySpawns  int
	GameOverTick int // -1 while the player is alive
}

func newStats() Stats {
	return Stats{GameOverTick: -1}
}

// Accuracy is kills per player shot, or 0 before the first shot.
func (s Stats) Accuracy() float64 {
	if s.PlayerShots == 0 {
		return 0
	}
	return float64(s.Kills) / float64(s.PlayerShots)
}

// Survived reports whether the run has not ended in defeat.
func (s Stats) Survived() bool {
	return s.GameOverTick < 0
}
