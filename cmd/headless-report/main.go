package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/jigsaw/internal/jigsaw"
)

type runStats struct {
	runIndex int
	seed     int64
	pieces   int

	// Gesture markers, -1 when never reached.
	finishGesture    int
	firstLockGesture int
	halfDoneGesture  int

	lockedDrops    int
	connectedDrops int
	looseDrops     int
	missedGrabs    int
	locks          int
	connections    int // joined edges; one drop can join several
	largestGroup   int

	// lockOrder lists piece labels in the order they locked.
	lockOrder []string
	corners   map[string]struct{}
}

func main() {
	var runs int
	var rows int
	var cols int
	var maxGestures int
	var seedBase int64
	var seedStep int64
	var skill float64

	flag.IntVar(&runs, "runs", 5, "number of headless solve runs")
	flag.IntVar(&rows, "rows", 4, "rows of pieces")
	flag.IntVar(&cols, "cols", 6, "columns of pieces")
	flag.IntVar(&maxGestures, "max-gestures", 20000, "gesture budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&skill, "skill", 0.5, "scripted player accuracy in [0,1]")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxGestures <= 0 {
		fmt.Println("error: -max-gestures must be > 0")
		return
	}
	if skill < 0 || skill > 1 {
		fmt.Println("error: -skill must be within [0,1]")
		return
	}

	fmt.Printf("=== Headless Solve Report ===\n")
	fmt.Printf("grid=%dx%d runs=%d max_gestures=%d skill=%.2f seed_base=%d seed_step=%d\n\n",
		rows, cols, runs, maxGestures, skill, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runSolve(i+1, seed, rows, cols, skill, maxGestures)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runSolve(runIndex int, seed int64, rows, cols int, skill float64, maxGestures int) (runStats, error) {
	s, err := jigsaw.NewSim(
		jigsaw.WithGrid(rows, cols),
		jigsaw.WithImageSize(float64(cols)*120, float64(rows)*120),
		jigsaw.WithViewport(1280, 720),
		jigsaw.WithSimSeed(seed),
		jigsaw.WithSkill(skill),
	)
	if err != nil {
		return runStats{}, fmt.Errorf("run %d: %w", runIndex, err)
	}
	finish := s.RunUntilComplete(maxGestures)
	return collectStats(runIndex, seed, s.Board.Len(), finish, s.SimLog.Entries(), cornerLabels(rows, cols)), nil
}

func collectStats(runIndex int, seed int64, pieces, finish int, entries []jigsaw.SimLogEntry, corners map[string]struct{}) runStats {
	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		pieces:           pieces,
		finishGesture:    finish,
		firstLockGesture: firstGesture(entries, "lock", "piece", 0),
		halfDoneGesture:  firstGesture(entries, "lock", "piece", 50),
		corners:          corners,
	}
	for _, e := range entries {
		switch e.Category {
		case "drop":
			switch e.Key {
			case "missed":
				rs.missedGrabs++
			case "result":
				switch e.Value {
				case "locked":
					rs.lockedDrops++
				case "connected":
					rs.connectedDrops++
				case "loose":
					rs.looseDrops++
				}
				if n := int(e.NumVal); n > rs.largestGroup {
					rs.largestGroup = n
				}
			}
		case "connect":
			if e.Key == "edge" {
				rs.connections++
			}
		case "lock":
			rs.locks++
			rs.lockOrder = append(rs.lockOrder, e.Piece)
		}
	}
	return rs
}

// firstGesture returns the gesture of the first matching entry whose NumVal
// is at least minVal, or -1.
func firstGesture(entries []jigsaw.SimLogEntry, category, key string, minVal float64) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key && e.NumVal >= minVal {
			return e.Gesture
		}
	}
	return -1
}

func cornerLabels(rows, cols int) map[string]struct{} {
	out := map[string]struct{}{}
	for _, r := range []int{0, rows - 1} {
		for _, c := range []int{0, cols - 1} {
			out[fmt.Sprintf("(%d,%d)", r, c)] = struct{}{}
		}
	}
	return out
}

// cornersFirst reports how many corner pieces locked before any other piece.
func cornersFirst(rs runStats) int {
	n := 0
	for _, label := range rs.lockOrder {
		if _, ok := rs.corners[label]; !ok {
			break
		}
		n++
	}
	return n
}

// detectStall flags runs that did not finish, or needed far more loose drops
// than there are pieces.
func detectStall(rs runStats) (bool, string) {
	if rs.finishGesture < 0 {
		return true, fmt.Sprintf("unfinished locks=%d/%d", rs.locks, rs.pieces)
	}
	if rs.pieces > 0 && rs.looseDrops > 10*rs.pieces {
		return true, fmt.Sprintf("excess_loose_drops=%d pieces=%d", rs.looseDrops, rs.pieces)
	}
	return false, "finished"
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("gesture_markers: first_lock=%d half_done=%d finish=%d\n",
		rs.firstLockGesture, rs.halfDoneGesture, rs.finishGesture)
	fmt.Printf("drop_totals: locked=%d connected=%d loose=%d missed=%d\n",
		rs.lockedDrops, rs.connectedDrops, rs.looseDrops, rs.missedGrabs)
	fmt.Printf("board_events: locks=%d/%d connections=%d largest_group=%d corners_first=%d\n",
		rs.locks, rs.pieces, rs.connections, rs.largestGroup, cornersFirst(rs))
	stalled, reason := detectStall(rs)
	fmt.Printf("stalled=%t reason=%s\n", stalled, reason)
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalLocked := 0
	totalConnected := 0
	totalLoose := 0
	totalMissed := 0
	totalConnections := 0

	finishGestures := make([]int, 0, len(all))
	firstLockGestures := make([]int, 0, len(all))
	halfDoneGestures := make([]int, 0, len(all))
	stalled := map[string]struct{}{}

	for _, rs := range all {
		totalLocked += rs.lockedDrops
		totalConnected += rs.connectedDrops
		totalLoose += rs.looseDrops
		totalMissed += rs.missedGrabs
		totalConnections += rs.connections
		if rs.finishGesture >= 0 {
			finishGestures = append(finishGestures, rs.finishGesture)
		}
		if rs.firstLockGesture >= 0 {
			firstLockGestures = append(firstLockGestures, rs.firstLockGesture)
		}
		if rs.halfDoneGesture >= 0 {
			halfDoneGestures = append(halfDoneGestures, rs.halfDoneGesture)
		}
		if ok, _ := detectStall(rs); ok {
			stalled[fmt.Sprintf("run%d", rs.runIndex)] = struct{}{}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d finished=%d\n", len(all), len(finishGestures))
	fmt.Printf("avg_drops_per_run: locked=%.1f connected=%.1f loose=%.1f missed=%.1f\n",
		avg(totalLocked, len(all)), avg(totalConnected, len(all)), avg(totalLoose, len(all)), avg(totalMissed, len(all)))
	fmt.Printf("avg_connections_per_run=%.1f\n", avg(totalConnections, len(all)))
	fmt.Printf("gesture_marker_avg: first_lock=%s half_done=%s finish=%s\n",
		avgGestureString(firstLockGestures), avgGestureString(halfDoneGestures), avgGestureString(finishGestures))
	fmt.Printf("finish_spread: %s\n", spreadString(finishGestures))
	fmt.Printf("stalled_runs=%d [%s]\n", len(stalled), joinSet(stalled))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgGestureString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// spreadString formats min/median/max of vals.
func spreadString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	return fmt.Sprintf("min=%d median=%d max=%d", sorted[0], sorted[len(sorted)/2], sorted[len(sorted)-1])
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
