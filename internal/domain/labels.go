package domain

import "strings"

// TeamNames is the canonical set of full team names. Filters match
// case-insensitively but rows always store the canonical casing.
var TeamNames = []string{
	"Arizona Cardinals", "Atlanta Falcons", "Baltimore Ravens", "Buffalo Bills",
	"Carolina Panthers", "Chicago Bears", "Cincinnati Bengals", "Cleveland Browns",
	"Dallas Cowboys", "Denver Broncos", "Detroit Lions", "Green Bay Packers",
	"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars", "Kansas City Chiefs",
	"Las Vegas Raiders", "Los Angeles Chargers", "Los Angeles Rams", "Miami Dolphins",
	"Minnesota Vikings", "New England Patriots", "New Orleans Saints", "New York Giants",
	"New York Jets", "Philadelphia Eagles", "Pittsburgh Steelers", "San Francisco 49ers",
	"Seattle Seahawks", "Tampa Bay Buccaneers", "Tennessee Titans", "Washington Commanders",
}

// TeamAbbreviations is the canonical set of team abbreviations (upper case).
var TeamAbbreviations = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LV", "LAC", "LAR", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SF", "SEA", "TB", "TEN", "WAS",
}

// Divisions is the canonical set of division labels (upper case).
var Divisions = []string{
	"AFC EAST", "AFC NORTH", "AFC SOUTH", "AFC WEST",
	"NFC EAST", "NFC NORTH", "NFC SOUTH", "NFC WEST",
}

// TrendCategories is the canonical set of trend categories (lower case).
var TrendCategories = []string{
	"home outright", "away outright",
	"favorite outright", "underdog outright",
	"home favorite outright", "away underdog outright",
	"away favorite outright", "home underdog outright",
	"home ats", "away ats",
	"favorite ats", "underdog ats",
	"home favorite ats", "away underdog ats",
	"away favorite ats", "home underdog ats",
	"over", "under",
}

var teamByFold = buildFoldIndex(TeamNames)

func buildFoldIndex(labels []string) map[string]string {
	m := make(map[string]string, len(labels))
	for _, l := range labels {
		m[strings.ToLower(l)] = l
	}
	return m
}

// CanonicalTeam resolves a team name case-insensitively (surrounding
// whitespace ignored) to its canonical casing.
func CanonicalTeam(name string) (string, bool) {
	canonical, ok := teamByFold[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// Member reports whether v is in the label set.
func Member(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
