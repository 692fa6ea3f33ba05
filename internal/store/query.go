package store

import (
	"context"
	"fmt"

	"github.com/dmfalke/trendline/internal/predicate"
	"github.com/dmfalke/trendline/internal/predsql"
)

const gameColumns = `id_string, date, month, day, year, season, day_of_week,
	home_team, away_team, home_abbreviation, away_abbreviation,
	home_division, away_division, divisional,
	home_score, away_score, combined_score, tie, winner, loser,
	spread, home_spread, home_spread_result, away_spread, away_spread_result,
	spread_push, pk, total, total_push,
	home_favorite, away_favorite, home_underdog, away_underdog,
	home_win, away_win, favorite_win, underdog_win,
	home_favorite_win, away_favorite_win, home_underdog_win, away_underdog_win,
	home_cover, away_cover, favorite_cover, underdog_cover,
	home_favorite_cover, away_favorite_cover, home_underdog_cover, away_underdog_cover,
	over_hit, under_hit`

// Games runs a compiled game query and returns one page of rows plus the
// total match count before pagination.
func (s *Store) Games(ctx context.Context, frag predicate.Fragment, keys []predicate.SortKey, limit, offset int) ([]Game, int, error) {
	whereSQL, params, err := predsql.Where(frag)
	if err != nil {
		return nil, 0, fmt.Errorf("games query: %w", err)
	}

	total, err := s.count(ctx, "games", whereSQL, params)
	if err != nil {
		return nil, 0, err
	}

	q := "SELECT " + gameColumns + " FROM games"
	if whereSQL != "" {
		q += " WHERE " + whereSQL
	}
	q += " ORDER BY " + predsql.OrderBy(keys) + " LIMIT ? OFFSET ?"
	args := append(append([]any(nil), params...), limit, offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("games query: %w", err)
	}
	defer rows.Close()

	games := make([]Game, 0, limit)
	for rows.Next() {
		var g Game
		if err := rows.Scan(
			&g.IDString, &g.Date, &g.Month, &g.Day, &g.Year, &g.Season, &g.DayOfWeek,
			&g.HomeTeam, &g.AwayTeam, &g.HomeAbbreviation, &g.AwayAbbreviation,
			&g.HomeDivision, &g.AwayDivision, &g.Divisional,
			&g.HomeScore, &g.AwayScore, &g.CombinedScore, &g.Tie, &g.Winner, &g.Loser,
			&g.Spread, &g.HomeSpread, &g.HomeSpreadResult, &g.AwaySpread, &g.AwaySpreadResult,
			&g.SpreadPush, &g.PK, &g.Total, &g.TotalPush,
			&g.HomeFavorite, &g.AwayFavorite, &g.HomeUnderdog, &g.AwayUnderdog,
			&g.HomeWin, &g.AwayWin, &g.FavoriteWin, &g.UnderdogWin,
			&g.HomeFavoriteWin, &g.AwayFavoriteWin, &g.HomeUnderdogWin, &g.AwayUnderdogWin,
			&g.HomeCover, &g.AwayCover, &g.FavoriteCover, &g.UnderdogCover,
			&g.HomeFavoriteCover, &g.AwayFavoriteCover, &g.HomeUnderdogCover, &g.AwayUnderdogCover,
			&g.OverHit, &g.UnderHit,
		); err != nil {
			return nil, 0, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("games query: %w", err)
	}

	return games, total, nil
}

const trendColumns = `id_string, category, month, day_of_week, divisional,
	spread, total, seasons, wins, losses, pushes, total_games,
	win_percentage, games_applicable`

// Trends runs a compiled trend query and returns one page of rows plus the
// total match count before pagination.
func (s *Store) Trends(ctx context.Context, frag predicate.Fragment, keys []predicate.SortKey, limit, offset int) ([]Trend, int, error) {
	whereSQL, params, err := predsql.Where(frag)
	if err != nil {
		return nil, 0, fmt.Errorf("trends query: %w", err)
	}

	total, err := s.count(ctx, "trends", whereSQL, params)
	if err != nil {
		return nil, 0, err
	}

	q := "SELECT " + trendColumns + " FROM trends"
	if whereSQL != "" {
		q += " WHERE " + whereSQL
	}
	q += " ORDER BY " + predsql.OrderBy(keys) + " LIMIT ? OFFSET ?"
	args := append(append([]any(nil), params...), limit, offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("trends query: %w", err)
	}
	defer rows.Close()

	var trends []Trend
	for rows.Next() {
		var tr Trend
		if err := rows.Scan(
			&tr.IDString, &tr.Category, &tr.Month, &tr.DayOfWeek, &tr.Divisional,
			&tr.Spread, &tr.Total, &tr.Seasons, &tr.Wins, &tr.Losses, &tr.Pushes,
			&tr.TotalGames, &tr.WinPercentage, &tr.GamesApplicable,
		); err != nil {
			return nil, 0, fmt.Errorf("scan trend: %w", err)
		}
		trends = append(trends, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("trends query: %w", err)
	}

	return trends, total, nil
}

// UpcomingGames returns every scheduled game, soonest first.
func (s *Store) UpcomingGames(ctx context.Context) ([]UpcomingGame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id_string, date, month, day, year, season, day_of_week,
		       home_team, away_team, home_abbreviation, away_abbreviation,
		       home_division, away_division, divisional,
		       spread, home_spread, away_spread, total
		FROM upcoming_games
		ORDER BY date ASC, id_string ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("upcoming games query: %w", err)
	}
	defer rows.Close()

	var games []UpcomingGame
	for rows.Next() {
		var g UpcomingGame
		if err := rows.Scan(
			&g.IDString, &g.Date, &g.Month, &g.Day, &g.Year, &g.Season, &g.DayOfWeek,
			&g.HomeTeam, &g.AwayTeam, &g.HomeAbbreviation, &g.AwayAbbreviation,
			&g.HomeDivision, &g.AwayDivision, &g.Divisional,
			&g.Spread, &g.HomeSpread, &g.AwaySpread, &g.Total,
		); err != nil {
			return nil, fmt.Errorf("scan upcoming game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("upcoming games query: %w", err)
	}

	return games, nil
}
