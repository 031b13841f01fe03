package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/game"
	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// restartDelayTicks is how long the drill waits on the death screen.
const restartDelayTicks = 30

type runStats struct {
	runIndex int
	seed     int64

	firstHitTick   int
	firstDeathTick int

	shots     int
	bounces   int
	burnedOut int
	expired   int
	hits      int
	deaths    int
	restarts  int

	// bounceHist[n] counts hits that landed after n bounces.
	bounceHist map[int]int

	longestLifeSec float64
}

func main() {
	var runs int
	var seconds int
	var seedBase int64
	var seedStep int64
	var fireEvery int
	var cfgPath string

	flag.IntVar(&runs, "runs", 5, "number of headless drill runs")
	flag.IntVar(&seconds, "seconds", 60, "game seconds per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&fireEvery, "fire-every", 20, "ticks between random-angle shots")
	flag.StringVar(&cfgPath, "config", "", "YAML tuning file (built-in defaults when empty)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}
	if fireEvery <= 1 {
		fmt.Println("error: -fire-every must be > 1")
		return
	}
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}

	ticks := seconds * cfg.Window.TPS
	fmt.Printf("=== Headless Ricochet Drill Report ===\n")
	fmt.Printf("runs=%d seconds=%d ticks=%d fire_every=%d seed_base=%d seed_step=%d\n\n",
		runs, seconds, ticks, fireEvery, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runDrill(cfg, i+1, seed, ticks, fireEvery)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runDrill keeps the tank still and fires at a random angle every fireEvery
// ticks, restarting shortly after each death.
func runDrill(cfg *config.Config, runIndex int, seed int64, ticks, fireEvery int) runStats {
	ts := game.NewTestSim(
		game.WithConfig(cfg),
		game.WithSeed(seed),
	)

	deadFor := 0
	for i := 0; i < ticks; i++ {
		switch i % fireEvery {
		case 0:
			ts.AimRandom()
		case 1:
			ts.Fire()
		}
		if ts.Session.State() == session.Dead {
			deadFor++
			if deadFor == restartDelayTicks {
				ts.PressRestart()
				deadFor = 0
			}
		}
		ts.RunTicks(1)
	}

	entries := ts.SimLog.Entries()
	hist := map[int]int{}
	for _, e := range ts.SimLog.Select(game.LogQuery{Category: "tank", Key: "hit"}) {
		if b, ok := hitBounces(e.Value); ok {
			hist[b]++
		}
	}

	st := ts.Arena.Stats
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		firstHitTick:   firstTick(entries, "tank", "hit", ""),
		firstDeathTick: firstTick(entries, "session", "game_over", ""),
		shots:          st.Shots,
		bounces:        st.Bounces,
		burnedOut:      st.BurnedOut,
		expired:        st.Expired,
		hits:           st.Hits,
		deaths:         st.Deaths,
		restarts:       st.Restarts,
		bounceHist:     hist,
		longestLifeSec: st.LongestLife.Seconds(),
	}
}

// hitBounces extracts the bounce count from a tank hit entry value.
func hitBounces(value string) (int, bool) {
	var hp, bounces int
	var label string
	if _, err := fmt.Sscanf(value, "hp %d by %s after %d bounces", &hp, &label, &bounces); err != nil {
		return 0, false
	}
	return bounces, true
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_hit=%d first_death=%d\n", rs.firstHitTick, rs.firstDeathTick)
	fmt.Printf("shot_totals: fired=%d bounces=%d burned_out=%d expired=%d\n",
		rs.shots, rs.bounces, rs.burnedOut, rs.expired)
	fmt.Printf("tank_totals: hits=%d deaths=%d restarts=%d longest_life=%.1fs\n",
		rs.hits, rs.deaths, rs.restarts, rs.longestLifeSec)
	fmt.Printf("hits_by_bounce: %s\n", formatHist(rs.bounceHist))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalShots := 0
	totalBounces := 0
	totalBurned := 0
	totalExpired := 0
	totalHits := 0
	totalDeaths := 0
	hitTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	hist := map[int]int{}
	bestLife := 0.0

	for _, rs := range all {
		totalShots += rs.shots
		totalBounces += rs.bounces
		totalBurned += rs.burnedOut
		totalExpired += rs.expired
		totalHits += rs.hits
		totalDeaths += rs.deaths
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		for b, n := range rs.bounceHist {
			hist[b] += n
		}
		bestLife = max(bestLife, rs.longestLifeSec)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: fired=%.1f bounces=%.1f burned_out=%.1f expired=%.1f hits=%.1f deaths=%.1f\n",
		avg(totalShots, len(all)), avg(totalBounces, len(all)), avg(totalBurned, len(all)),
		avg(totalExpired, len(all)), avg(totalHits, len(all)), avg(totalDeaths, len(all)))
	fmt.Printf("self_hit_rate=%.1f%%\n", pct(totalHits, totalShots))
	fmt.Printf("phase_marker_avg_ticks: first_hit=%s first_death=%s\n",
		avgTickString(hitTicks), avgTickString(deathTicks))
	fmt.Printf("hits_by_bounce: %s\n", formatHist(hist))
	fmt.Printf("longest_life=%.1fs\n", bestLife)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
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

// formatHist renders bounce counts in ascending order, e.g. "0=1 2=3".
func formatHist(h map[int]int) string {
	if len(h) == 0 {
		return "none"
	}
	maxB := 0
	for b := range h {
		maxB = max(maxB, b)
	}
	parts := make([]string, 0, len(h))
	for b := 0; b <= maxB; b++ {
		if n := h[b]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d=%d", b, n))
		}
	}
	return strings.Join(parts, " ")
}
