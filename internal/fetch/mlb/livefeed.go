package mlb

import (
	"context"
	"fmt"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

type liveFeedResponse struct {
	LiveData struct {
		Boxscore boxscore `json:"boxscore"`
	} `json:"liveData"`
}

type boxscore struct {
	Teams struct {
		Home boxscoreTeam `json:"home"`
		Away boxscoreTeam `json:"away"`
	} `json:"teams"`
}

type boxscoreTeam struct {
	BattingOrder []int                     `json:"battingOrder"`
	Players      map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Stats struct {
		Batting struct {
			HomeRuns int `json:"homeRuns"`
		} `json:"batting"`
	} `json:"stats"`
}

// LiveLineup fetches the confirmed batting orders from the live game feed.
// Sides without a posted battingOrder come back empty.
func (c *Client) LiveLineup(ctx context.Context, gamePk int) (models.Lineup, error) {
	var resp liveFeedResponse
	if err := c.getJSONv11(ctx, fmt.Sprintf("/game/%d/feed/live", gamePk), &resp); err != nil {
		return models.Lineup{}, fmt.Errorf("fetch live feed for game %d: %w", gamePk, err)
	}

	lineup := models.Lineup{
		Home: battersFromOrder(resp.LiveData.Boxscore.Teams.Home),
		Away: battersFromOrder(resp.LiveData.Boxscore.Teams.Away),
	}
	lineup.Sanitize()
	return lineup, nil
}

func battersFromOrder(team boxscoreTeam) []models.Batter {
	if len(team.BattingOrder) == 0 {
		return nil
	}
	batters := make([]models.Batter, 0, len(team.BattingOrder))
	for _, id := range team.BattingOrder {
		player, ok := team.Players[fmt.Sprintf("ID%d", id)]
		if !ok {
			continue
		}
		batters = append(batters, models.Batter{
			PersonID: player.Person.ID,
			Name:     player.Person.FullName,
		})
	}
	return batters
}

// HomeRunHitters fetches the final boxscore and returns the person IDs of
// every batter credited with at least one home run, with display names.
func (c *Client) HomeRunHitters(ctx context.Context, gamePk int) (map[int]string, error) {
	var box boxscore
	if err := c.getJSON(ctx, fmt.Sprintf("/game/%d/boxscore", gamePk), nil, &box); err != nil {
		return nil, fmt.Errorf("fetch boxscore for game %d: %w", gamePk, err)
	}

	hitters := make(map[int]string)
	for _, team := range []boxscoreTeam{box.Teams.Home, box.Teams.Away} {
		for _, p := range team.Players {
			if p.Stats.Batting.HomeRuns > 0 {
				hitters[p.Person.ID] = p.Person.FullName
			}
		}
	}
	return hitters, nil
}
