package stats

import (
	"math/rand"
	"slices"
	"strings"
	"time"

	"hoopstats/outcome"
	"hoopstats/utils"
)

const DefaultSimulations = 10000

// Row is one game from a player's game log. Nil fields were missing upstream.
type Row struct {
	GameID   string
	GameDate time.Time
	Matchup  string
	MIN      *float64
	FGM      *float64
	FGA      *float64
	FG3M     *float64
	REB      *float64
	AST      *float64
	STL      *float64
	BLK      *float64
	TOV      *float64
	PTS      *float64
}

type Column int

const (
	PTS Column = iota
	REB
	AST
)

func (c Column) value(r Row) float64 {
	switch c {
	case PTS:
		return utils.DerefFloat64(r.PTS)
	case REB:
		return utils.DerefFloat64(r.REB)
	case AST:
		return utils.DerefFloat64(r.AST)
	}
	return 0
}

type selector struct {
	label   string
	columns []Column
}

var selectors = []selector{
	{"Points", []Column{PTS}},
	{"Rebounds", []Column{REB}},
	{"Assists", []Column{AST}},
	{"P + R", []Column{PTS, REB}},
	{"P + A", []Column{PTS, AST}},
	{"R + A", []Column{REB, AST}},
	{"P + R + A", []Column{PTS, REB, AST}},
}

// Selectors returns the stat labels in the order the UI offers them.
func Selectors() []string {
	labels := make([]string, len(selectors))
	for i, s := range selectors {
		labels[i] = s.label
	}
	return labels
}

func selectorKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// ParseSelector maps a label such as "P + R", "p+r" or "Points" to its
// canonical label and columns.
func ParseSelector(s string) (string, []Column, error) {
	key := selectorKey(s)
	for _, sel := range selectors {
		if selectorKey(sel.label) == key {
			return sel.label, sel.columns, nil
		}
	}
	return "", nil, outcome.Errorf(outcome.InvalidSelector, "stats", "unknown statistic %q", s)
}

type Options struct {
	// Threshold is ignored unless it is non-nil and greater than zero.
	Threshold   *float64
	Simulations int
	// Rand drives the fair line draws. Seed it for reproducible output.
	Rand *rand.Rand
}

type Result struct {
	Selector  string    `json:"selector"`
	Threshold *float64  `json:"threshold,omitempty"`
	Games     int       `json:"games"`
	FirstGame time.Time `json:"first_game"`
	LastGame  time.Time `json:"last_game"`
	Series    []float64 `json:"series"`

	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	HighCeiling float64 `json:"high_ceiling"`
	LowCeiling  float64 `json:"low_ceiling"`
	Mode        float64 `json:"mode"`

	HighCeilingPct float64 `json:"high_ceiling_pct"`
	LowCeilingPct  float64 `json:"low_ceiling_pct"`
	ModePct        float64 `json:"mode_pct"`
	NearMeanPct    float64 `json:"near_mean_pct"`
	NearMedianPct  float64 `json:"near_median_pct"`

	AbovePct *float64 `json:"above_pct,omitempty"`
	BelowPct *float64 `json:"below_pct,omitempty"`

	Simulations int     `json:"simulations"`
	FairLine    float64 `json:"fair_line"`
}

// Compute summarizes a player's game log for one statistic. It returns a
// NoData error for an empty log and an InvalidSelector error for an unknown
// selector; it never returns a partial result.
func Compute(rows []Row, sel string, opts Options) (*Result, error) {
	if len(rows) == 0 {
		return nil, outcome.New(outcome.NoData, "stats", "No game data available for the selected player.")
	}
	label, columns, err := ParseSelector(sel)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b Row) int {
		return a.GameDate.Compare(b.GameDate)
	})

	series := Series(sorted, columns)
	if len(series) == 0 {
		return nil, outcome.New(outcome.NoData, "stats", "No game data available for the selected player.")
	}

	res := &Result{
		Selector:    label,
		Threshold:   opts.Threshold,
		Games:       len(series),
		FirstGame:   sorted[0].GameDate,
		LastGame:    sorted[len(sorted)-1].GameDate,
		Series:      series,
		Mean:        Mean(series),
		Median:      Median(series),
		HighCeiling: slices.Max(series),
		LowCeiling:  slices.Min(series),
		Mode:        Mode(series),
	}

	res.HighCeilingPct = Percent(series, func(v float64) bool { return v == res.HighCeiling })
	res.LowCeilingPct = Percent(series, func(v float64) bool { return v == res.LowCeiling })
	res.ModePct = Percent(series, func(v float64) bool { return v == res.Mode })
	res.NearMeanPct = Percent(series, within(res.Mean, 0.10))
	res.NearMedianPct = Percent(series, within(res.Median, 0.10))

	if t := opts.Threshold; t != nil && *t > 0 {
		above := Percent(series, func(v float64) bool { return v > *t })
		below := Percent(series, func(v float64) bool { return v < *t })
		res.AbovePct, res.BelowPct = &above, &below
	}

	res.Simulations = opts.Simulations
	if res.Simulations <= 0 {
		res.Simulations = DefaultSimulations
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	res.FairLine = FairLine(series, res.Simulations, rng)

	return res, nil
}

// Series sums the selected columns per row, treating missing values as 0.
func Series(rows []Row, columns []Column) []float64 {
	series := make([]float64, len(rows))
	for i, r := range rows {
		for _, c := range columns {
			series[i] += c.value(r)
		}
	}
	return series
}

func Mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

func Median(s []float64) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(s)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mode returns the most frequent value. Ties go to whichever value appears
// first in s.
func Mode(s []float64) float64 {
	counts := make(map[float64]int, len(s))
	var mode float64
	best := 0
	for _, v := range s {
		counts[v]++
	}
	for _, v := range s {
		if counts[v] > best {
			mode, best = v, counts[v]
		}
	}
	return mode
}

// Percent is the share of s matching pred, 0..100.
func Percent(s []float64, pred func(float64) bool) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for _, v := range s {
		if pred(v) {
			n++
		}
	}
	return float64(n) / float64(len(s)) * 100
}

func within(center, frac float64) func(float64) bool {
	lo, hi := center*(1-frac), center*(1+frac)
	if lo > hi {
		lo, hi = hi, lo
	}
	return func(v float64) bool { return v >= lo && v <= hi }
}

// FairLine averages n draws taken uniformly, with replacement, from s.
func FairLine(s []float64, n int, rng *rand.Rand) float64 {
	if len(s) == 0 || n <= 0 {
		return 0
	}
	var sum float64
	for range n {
		sum += s[rng.Intn(len(s))]
	}
	return sum / float64(n)
}
