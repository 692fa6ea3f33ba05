package store

// Game is one completed game row.
type Game struct {
	IDString         string  `json:"id_string"`
	Date             string  `json:"date"`
	Month            string  `json:"month"`
	Day              int     `json:"day"`
	Year             int     `json:"year"`
	Season           string  `json:"season"`
	DayOfWeek        string  `json:"day_of_week"`
	HomeTeam         string  `json:"home_team"`
	AwayTeam         string  `json:"away_team"`
	HomeAbbreviation string  `json:"home_abbreviation"`
	AwayAbbreviation string  `json:"away_abbreviation"`
	HomeDivision     string  `json:"home_division"`
	AwayDivision     string  `json:"away_division"`
	Divisional       bool    `json:"divisional"`
	HomeScore        int     `json:"home_score"`
	AwayScore        int     `json:"away_score"`
	CombinedScore    int     `json:"combined_score"`
	Tie              bool    `json:"tie"`
	Winner           *string `json:"winner"`
	Loser            *string `json:"loser"`
	Spread           float64 `json:"spread"`
	HomeSpread       float64 `json:"home_spread"`
	HomeSpreadResult int     `json:"home_spread_result"`
	AwaySpread       float64 `json:"away_spread"`
	AwaySpreadResult int     `json:"away_spread_result"`
	SpreadPush       bool    `json:"spread_push"`
	PK               bool    `json:"pk"`
	Total            float64 `json:"total"`
	TotalPush        bool    `json:"total_push"`

	HomeFavorite bool `json:"home_favorite"`
	AwayFavorite bool `json:"away_favorite"`
	HomeUnderdog bool `json:"home_underdog"`
	AwayUnderdog bool `json:"away_underdog"`

	HomeWin         bool `json:"home_win"`
	AwayWin         bool `json:"away_win"`
	FavoriteWin     bool `json:"favorite_win"`
	UnderdogWin     bool `json:"underdog_win"`
	HomeFavoriteWin bool `json:"home_favorite_win"`
	AwayFavoriteWin bool `json:"away_favorite_win"`
	HomeUnderdogWin bool `json:"home_underdog_win"`
	AwayUnderdogWin bool `json:"away_underdog_win"`

	HomeCover         bool `json:"home_cover"`
	AwayCover         bool `json:"away_cover"`
	FavoriteCover     bool `json:"favorite_cover"`
	UnderdogCover     bool `json:"underdog_cover"`
	HomeFavoriteCover bool `json:"home_favorite_cover"`
	AwayFavoriteCover bool `json:"away_favorite_cover"`
	HomeUnderdogCover bool `json:"home_underdog_cover"`
	AwayUnderdogCover bool `json:"away_underdog_cover"`

	OverHit  bool `json:"over_hit"`
	UnderHit bool `json:"under_hit"`
}

// Trend is one aggregated trend row. Nil dimension fields mean the trend
// does not condition on that dimension.
type Trend struct {
	IDString        string  `json:"id_string"`
	Category        string  `json:"category"`
	Month           *string `json:"month"`
	DayOfWeek       *string `json:"day_of_week"`
	Divisional      *bool   `json:"divisional"`
	Spread          *string `json:"spread"`
	Total           *string `json:"total"`
	Seasons         string  `json:"seasons"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	Pushes          int     `json:"pushes"`
	TotalGames      int     `json:"total_games"`
	WinPercentage   float64 `json:"win_percentage"`
	GamesApplicable string  `json:"games_applicable"`
}

// UpcomingGame is one scheduled game row. Betting lines are nil until the
// books post them.
type UpcomingGame struct {
	IDString         string   `json:"id_string"`
	Date             string   `json:"date"`
	Month            string   `json:"month"`
	Day              int      `json:"day"`
	Year             int      `json:"year"`
	Season           string   `json:"season"`
	DayOfWeek        string   `json:"day_of_week"`
	HomeTeam         string   `json:"home_team"`
	AwayTeam         string   `json:"away_team"`
	HomeAbbreviation string   `json:"home_abbreviation"`
	AwayAbbreviation string   `json:"away_abbreviation"`
	HomeDivision     string   `json:"home_division"`
	AwayDivision     string   `json:"away_division"`
	Divisional       bool     `json:"divisional"`
	Spread           *float64 `json:"spread"`
	HomeSpread       *float64 `json:"home_spread"`
	AwaySpread       *float64 `json:"away_spread"`
	Total            *float64 `json:"total"`
}
