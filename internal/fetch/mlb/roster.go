package mlb

import (
	"context"
	"fmt"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

type rosterResponse struct {
	Roster []struct {
		Person struct {
			ID       int    `json:"id"`
			FullName string `json:"fullName"`
		} `json:"person"`
		Position struct {
			Code string `json:"code"`
		} `json:"position"`
	} `json:"roster"`
}

// Position codes that never bat in a projected lineup: pitchers and
// two-way players listed as pitchers.
func isPitcherCode(code string) bool {
	return code == "1" || code == "10"
}

// Roster fetches a team's active roster.
func (c *Client) Roster(ctx context.Context, teamID int) ([]models.Batter, []string, error) {
	var resp rosterResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/teams/%d/roster", teamID), nil, &resp); err != nil {
		return nil, nil, fmt.Errorf("fetch roster for team %d: %w", teamID, err)
	}

	players := make([]models.Batter, 0, len(resp.Roster))
	codes := make([]string, 0, len(resp.Roster))
	for _, r := range resp.Roster {
		players = append(players, models.Batter{PersonID: r.Person.ID, Name: r.Person.FullName})
		codes = append(codes, r.Position.Code)
	}
	return players, codes, nil
}

// ProjectedLineup builds an expected batting order from a roster: the first
// nine position players, in roster order. Used before lineups are confirmed.
func ProjectedLineup(players []models.Batter, positionCodes []string) []models.Batter {
	lineup := make([]models.Batter, 0, 9)
	for i, p := range players {
		if i < len(positionCodes) && isPitcherCode(positionCodes[i]) {
			continue
		}
		lineup = append(lineup, p)
		if len(lineup) == 9 {
			break
		}
	}
	return lineup
}
