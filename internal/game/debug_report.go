package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// reportEventTail is how many trailing events RunReport lists.
const reportEventTail = 12

// RunReport summarizes a run as plain text, suitable for pasting into a bug
// report.
func RunReport(seed int64, s Snapshot, st Stats, events []SimLogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Tank Arena run report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d phase=%s score=%d\n", seed, s.Tick, s.Phase, s.Score)
	fmt.Fprintf(&b, "arena=%.0fx%.0f enemies=%d projectiles=%d (friendly=%d) explosions=%d\n",
		s.World.Width, s.World.Height, len(s.Enemies), len(s.Projectiles), s.FriendlyCount(), len(s.Explosions))
	fmt.Fprintf(&b, "player pos=(%.1f,%.1f) angle=%.2f cooldown=%.0fms\n",
		s.Player.Pos.X(), s.Player.Pos.Y(), s.Player.Angle, s.Player.CooldownMs)
	fmt.Fprintf(&b, "run ticks=%d elapsed=%.0fms shots=%d/%d kills=%d accuracy=%.2f spawns=%d",
		st.Ticks, st.ElapsedMs, st.PlayerShots, st.EnemyShots, st.Kills, st.Accuracy(), st.EnemySpawns)
	fmt.Fprintf(&b, " %s\n", outcome(st))
	if s.Status != "" {
		fmt.Fprintf(&b, "status=%q\n", s.Status)
	}
	if s.HasLastRun() {
		lr := s.LastRun
		fmt.Fprintf(&b, "previous run (%d of %d): ticks=%d shots=%d kills=%d accuracy=%.2f %s\n",
			s.Runs-1, s.Runs, lr.Ticks, lr.PlayerShots, lr.Kills, lr.Accuracy(), outcome(lr))
	}

	if len(events) > 0 {
		from := max(0, len(events)-reportEventTail)
		fmt.Fprintf(&b, "\nevents (last %d of %d):\n", len(events)-from, len(events))
		for _, e := range events[from:] {
			b.WriteString("  ")
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func outcome(st Stats) string {
	if st.Survived() {
		return "survived"
	}
	return fmt.Sprintf("died@T=%d", st.GameOverTick)
}

// copyReport puts text on the system clipboard.
func copyReport(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
