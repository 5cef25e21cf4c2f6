package teams

import (
	"slices"
	"strings"
)

// canonical full team names, lowercase, keyed to their display form
var canonical = map[string]string{
	"atlanta hawks":          "Atlanta Hawks",
	"boston celtics":         "Boston Celtics",
	"brooklyn nets":          "Brooklyn Nets",
	"charlotte hornets":      "Charlotte Hornets",
	"chicago bulls":          "Chicago Bulls",
	"cleveland cavaliers":    "Cleveland Cavaliers",
	"dallas mavericks":       "Dallas Mavericks",
	"denver nuggets":         "Denver Nuggets",
	"detroit pistons":        "Detroit Pistons",
	"golden state warriors":  "Golden State Warriors",
	"houston rockets":        "Houston Rockets",
	"indiana pacers":         "Indiana Pacers",
	"los angeles clippers":   "Los Angeles Clippers",
	"los angeles lakers":     "Los Angeles Lakers",
	"memphis grizzlies":      "Memphis Grizzlies",
	"miami heat":             "Miami Heat",
	"milwaukee bucks":        "Milwaukee Bucks",
	"minnesota timberwolves": "Minnesota Timberwolves",
	"new orleans pelicans":   "New Orleans Pelicans",
	"new york knicks":        "New York Knicks",
	"oklahoma city thunder":  "Oklahoma City Thunder",
	"orlando magic":          "Orlando Magic",
	"philadelphia 76ers":     "Philadelphia 76ers",
	"phoenix suns":           "Phoenix Suns",
	"portland trail blazers": "Portland Trail Blazers",
	"sacramento kings":       "Sacramento Kings",
	"san antonio spurs":      "San Antonio Spurs",
	"toronto raptors":        "Toronto Raptors",
	"utah jazz":              "Utah Jazz",
	"washington wizards":     "Washington Wizards",
}

// The roster feed reports teams by nickname ("Knicks"), so every nickname
// is an alias along with the usual shorthand and tricodes.
var aliases = map[string]string{
	"hawks":         "atlanta hawks",
	"atl":           "atlanta hawks",
	"celtics":       "boston celtics",
	"bos":           "boston celtics",
	"nets":          "brooklyn nets",
	"bkn":           "brooklyn nets",
	"hornets":       "charlotte hornets",
	"cha":           "charlotte hornets",
	"bulls":         "chicago bulls",
	"chi":           "chicago bulls",
	"cavaliers":     "cleveland cavaliers",
	"cavs":          "cleveland cavaliers",
	"cle":           "cleveland cavaliers",
	"mavericks":     "dallas mavericks",
	"mavs":          "dallas mavericks",
	"dal":           "dallas mavericks",
	"nuggets":       "denver nuggets",
	"den":           "denver nuggets",
	"pistons":       "detroit pistons",
	"det":           "detroit pistons",
	"warriors":      "golden state warriors",
	"dubs":          "golden state warriors",
	"gsw":           "golden state warriors",
	"rockets":       "houston rockets",
	"hou":           "houston rockets",
	"pacers":        "indiana pacers",
	"ind":           "indiana pacers",
	"clippers":      "los angeles clippers",
	"la clippers":   "los angeles clippers",
	"lac":           "los angeles clippers",
	"lakers":        "los angeles lakers",
	"la lakers":     "los angeles lakers",
	"lal":           "los angeles lakers",
	"grizzlies":     "memphis grizzlies",
	"grizz":         "memphis grizzlies",
	"mem":           "memphis grizzlies",
	"heat":          "miami heat",
	"mia":           "miami heat",
	"bucks":         "milwaukee bucks",
	"mil":           "milwaukee bucks",
	"timberwolves":  "minnesota timberwolves",
	"wolves":        "minnesota timberwolves",
	"min":           "minnesota timberwolves",
	"pelicans":      "new orleans pelicans",
	"pels":          "new orleans pelicans",
	"nop":           "new orleans pelicans",
	"knicks":        "new york knicks",
	"nyk":           "new york knicks",
	"thunder":       "oklahoma city thunder",
	"okc":           "oklahoma city thunder",
	"magic":         "orlando magic",
	"orl":           "orlando magic",
	"76ers":         "philadelphia 76ers",
	"sixers":        "philadelphia 76ers",
	"phi":           "philadelphia 76ers",
	"suns":          "phoenix suns",
	"phx":           "phoenix suns",
	"trail blazers": "portland trail blazers",
	"blazers":       "portland trail blazers",
	"por":           "portland trail blazers",
	"kings":         "sacramento kings",
	"sac":           "sacramento kings",
	"spurs":         "san antonio spurs",
	"sas":           "san antonio spurs",
	"raptors":       "toronto raptors",
	"raps":          "toronto raptors",
	"tor":           "toronto raptors",
	"jazz":          "utah jazz",
	"uta":           "utah jazz",
	"wizards":       "washington wizards",
	"wiz":           "washington wizards",
	"was":           "washington wizards",
}

// Resolve maps a raw team name to its canonical lowercase form. Names with
// no alias fall through lowercased, so Resolve never fails and
// Resolve(Resolve(x)) == Resolve(x).
func Resolve(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

func IsCanonical(name string) bool {
	_, ok := canonical[name]
	return ok
}

// Display returns the title-cased name for a canonical team, or name itself.
func Display(name string) string {
	if d, ok := canonical[Resolve(name)]; ok {
		return d
	}
	return name
}

// DisplayNames lists every team's display name, sorted.
func DisplayNames() []string {
	names := make([]string, 0, len(canonical))
	for _, d := range canonical {
		names = append(names, d)
	}
	slices.Sort(names)
	return names
}
