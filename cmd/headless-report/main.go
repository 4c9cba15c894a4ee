package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/Garsondee/tank-arena/internal/config"
	"github.com/Garsondee/tank-arena/internal/game"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var scenarios = []string{"autopilot", "idle"}

// deathContextTicks is how far back the event log is printed for a lost run.
const deathContextTicks = 60

type runStats struct {
	runIndex int
	seed     int64

	ticks         int
	score         int
	kills         int
	playerShots   int
	enemyShots    int
	spawns        int
	accuracy      float64
	survived      bool
	deathTick     int
	firstKillTick int
	deathContext  []game.SimLogEntry
}

func main() {
	fs := pflag.NewFlagSet("headless-report", pflag.ExitOnError)
	runs := fs.Int("runs", 5, "number of headless runs")
	ticks := fs.Int("ticks", 3600, "maximum ticks per run")
	seedBase := fs.Int64("seed-base", 42, "base RNG seed for run 1")
	seedStep := fs.Int64("seed-step", 1, "seed increment between runs")
	scenario := fs.String("scenario", "autopilot", "scenario name ("+strings.Join(scenarios, ", ")+")")
	cfgPath := fs.String("config", "", "optional config file with rule overrides")
	verbose := fs.Bool("verbose", false, "print the full run report after each run")
	metrics := fs.Bool("metrics", false, "dump the engine OTel counters as JSON after the aggregate")
	_ = fs.Parse(os.Args[1:])

	if err := validateArgs(*runs, *ticks, *scenario); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	if err := config.Load(*cfgPath); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	rules := config.Rules()

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		*scenario, *runs, *ticks, *seedBase, *seedStep)

	var extra []game.SimOption
	var mp *sdkmetric.MeterProvider
	if *metrics {
		p, err := setupMetrics(os.Stdout)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		mp = p
		extra = append(extra, game.WithSimMeterProvider(mp))
	}

	all := make([]runStats, 0, *runs)
	for i := 0; i < *runs; i++ {
		seed := *seedBase + int64(i)**seedStep
		ts, err := newSession(*scenario, seed, rules, extra...)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		ts.RunUntil(game.GameOver, *ticks)
		rs := collectRun(i+1, ts)
		all = append(all, rs)
		printRun(rs)
		if *verbose {
			fmt.Println(ts.Report())
		}
	}

	printAggregate(all)

	if mp != nil {
		fmt.Println("\n=== Metrics ===")
		if err := mp.Shutdown(context.Background()); err != nil {
			fmt.Printf("error: flushing metrics: %v\n", err)
			os.Exit(1)
		}
	}
}

// setupMetrics builds a meter provider that writes every counter to w when
// it is shut down.
func setupMetrics(w io.Writer) (*sdkmetric.MeterProvider, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("creating metrics exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp))), nil
}

func validateArgs(runs, ticks int, scenario string) error {
	if runs <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}
	if ticks <= 0 {
		return fmt.Errorf("--ticks must be > 0")
	}
	if !slices.Contains(scenarios, scenario) {
		return fmt.Errorf("unsupported scenario %q (supported: %s)", scenario, strings.Join(scenarios, ", "))
	}
	return nil
}

func newSession(scenario string, seed int64, rules game.Rules, extra ...game.SimOption) (*game.TestSim, error) {
	opts := []game.SimOption{
		game.WithRules(rules),
		game.WithSeed(seed),
		game.WithSimLogger(zerolog.Nop()),
	}
	if scenario == "autopilot" {
		opts = append(opts, game.WithAutopilot())
	}
	opts = append(opts, extra...)
	return game.NewTestSim(opts...)
}

func collectRun(runIndex int, ts *game.TestSim) runStats {
	st := ts.Engine.Stats()
	var deathContext []game.SimLogEntry
	if !st.Survived() {
		deathContext = ts.SimLog.Before(st.GameOverTick, deathContextTicks)
	}
	return runStats{
		runIndex:      runIndex,
		seed:          ts.Seed(),
		ticks:         st.Ticks,
		score:         ts.Engine.Score(),
		kills:         st.Kills,
		playerShots:   st.PlayerShots,
		enemyShots:    st.EnemyShots,
		spawns:        st.EnemySpawns,
		accuracy:      st.Accuracy(),
		survived:      st.Survived(),
		deathTick:     st.GameOverTick,
		firstKillTick: ts.SimLog.FirstTick(game.CatCombat, game.KeyKill),
		deathContext:  deathContext,
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	outcome := "survived"
	if !rs.survived {
		outcome = fmt.Sprintf("destroyed@T=%d", rs.deathTick)
	}
	fmt.Printf("outcome=%s ticks=%d score=%d kills=%d first_kill=%s\n",
		outcome, rs.ticks, rs.score, rs.kills, tickString(rs.firstKillTick))
	fmt.Printf("shots: player=%d enemy=%d accuracy=%.2f spawns=%d\n",
		rs.playerShots, rs.enemyShots, rs.accuracy, rs.spawns)
	for _, e := range rs.deathContext {
		fmt.Printf("  %s\n", e.String())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalKills := 0
	totalTicks := 0
	totalShots := 0
	deathTicks := make([]int, 0, len(all))
	firstKills := make([]int, 0, len(all))
	for _, rs := range all {
		totalScore += rs.score
		totalKills += rs.kills
		totalTicks += rs.ticks
		totalShots += rs.playerShots
		if !rs.survived {
			deathTicks = append(deathTicks, rs.deathTick)
		}
		if rs.firstKillTick >= 0 {
			firstKills = append(firstKills, rs.firstKillTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d survival_rate=%.0f%%\n", len(all), survivalRate(all)*100)
	fmt.Printf("avg_per_run: score=%.1f kills=%.1f ticks=%.1f player_shots=%.1f\n",
		avg(totalScore, len(all)), avg(totalKills, len(all)), avg(totalTicks, len(all)), avg(totalShots, len(all)))
	fmt.Printf("avg_ticks: death=%s first_kill=%s\n", avgTickString(deathTicks), avgTickString(firstKills))
}

func survivalRate(all []runStats) float64 {
	if len(all) == 0 {
		return 0
	}
	n := 0
	for _, rs := range all {
		if rs.survived {
			n++
		}
	}
	return float64(n) / float64(len(all))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func tickString(t int) string {
	if t < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", t)
}
