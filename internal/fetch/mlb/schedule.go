package mlb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/ballparks"
	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

// ScheduledGame is one schedule entry with its announced starters.
type ScheduledGame struct {
	Game     models.Game
	Pitchers models.ProbablePitchers
}

type scheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk   int    `json:"gamePk"`
			GameDate string `json:"gameDate"`
			Teams    struct {
				Home scheduleTeam `json:"home"`
				Away scheduleTeam `json:"away"`
			} `json:"teams"`
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleTeam struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	ProbablePitcher struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
}

// Schedule fetches the slate for a date (YYYY-MM-DD) with probable pitchers
// hydrated. Park data is attached from the static ballpark table; games at
// venues that do not resolve to a known park get a neutral factor.
func (c *Client) Schedule(ctx context.Context, date string) ([]ScheduledGame, error) {
	var resp scheduleResponse
	params := url.Values{
		"sportId": {"1"},
		"date":    {date},
		"hydrate": {"probablePitcher"},
	}
	if err := c.getJSON(ctx, "/schedule", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch schedule for %s: %w", date, err)
	}

	var games []ScheduledGame
	for _, d := range resp.Dates {
		if d.Date != date {
			continue
		}
		for _, g := range d.Games {
			homeCode, ok := ballparks.TeamCode(g.Teams.Home.Team.Name)
			if !ok {
				slog.Warn("Unknown home team, park data unavailable", "team", g.Teams.Home.Team.Name)
			}
			awayCode, ok := ballparks.TeamCode(g.Teams.Away.Team.Name)
			if !ok {
				slog.Warn("Unknown away team", "team", g.Teams.Away.Team.Name)
			}

			game := models.Game{
				ID:       fmt.Sprintf("%s@%s-%s", awayCode, homeCode, date),
				GamePk:   g.GamePk,
				Date:     date,
				HomeTeam: homeCode,
				AwayTeam: awayCode,
				HomeName: g.Teams.Home.Team.Name,
				AwayName: g.Teams.Away.Team.Name,
				HomeID:   g.Teams.Home.Team.ID,
				AwayID:   g.Teams.Away.Team.ID,
				Venue:    g.Venue.Name,
			}
			if t, err := time.Parse(time.RFC3339, g.GameDate); err == nil {
				game.StartTime = t
			}

			if park, ok := ballparks.ByCode(homeCode); ok {
				game.ParkFactor = park.Factor
				game.ParkLat = park.Lat
				game.ParkLon = park.Lon
				game.ParkOrient = park.Orient
			} else {
				game.ParkFactor = 1.0
			}

			games = append(games, ScheduledGame{
				Game:     game,
				Pitchers: probablePitchers(g.Teams.Home, g.Teams.Away),
			})
		}
	}
	return games, nil
}

func probablePitchers(home, away scheduleTeam) models.ProbablePitchers {
	p := models.ProbablePitchers{
		Home: models.Pitcher{Name: models.PitcherTBD},
		Away: models.Pitcher{Name: models.PitcherTBD},
	}
	if home.ProbablePitcher.FullName != "" {
		p.Home = models.Pitcher{PersonID: home.ProbablePitcher.ID, Name: home.ProbablePitcher.FullName}
	}
	if away.ProbablePitcher.FullName != "" {
		p.Away = models.Pitcher{PersonID: away.ProbablePitcher.ID, Name: away.ProbablePitcher.FullName}
	}
	return p
}
