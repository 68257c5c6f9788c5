// Package rotowire scrapes expected lineups from the Rotowire daily-lineups
// page. The page is JS-rendered, so scraping goes through a headless
// browser. This is a last-resort source for games where the MLB feed has no
// confirmed or projected lineup.
package rotowire

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/dingerbot/dingerbot/internal/pkg/performance"
)

// GameLineups is one game's expected lineups as published by Rotowire.
type GameLineups struct {
	AwayTeam    string   `json:"away_team"`
	HomeTeam    string   `json:"home_team"`
	AwayPitcher string   `json:"away_pitcher"`
	HomePitcher string   `json:"home_pitcher"`
	AwayBatters []string `json:"away_batters"`
	HomeBatters []string `json:"home_batters"`
}

type Scraper struct {
	lineupsURL string
	timeout    time.Duration
}

func NewScraper(lineupsURL string) *Scraper {
	if lineupsURL == "" {
		lineupsURL = "https://www.rotowire.com/baseball/daily-lineups.php"
	}
	return &Scraper{lineupsURL: lineupsURL, timeout: 60 * time.Second}
}

// extractScript walks the lineup boxes in the rendered DOM and returns them
// as JSON. Pitchers are the highlighted names; batters are the lineup list
// entries whose position is not P.
const extractScript = `
(() => {
	const text = el => el ? el.textContent.trim() : "";
	const boxes = document.querySelectorAll("div.lineup__box");
	const games = [];
	for (const box of boxes) {
		const abbrs = box.querySelectorAll("div.lineup__abbr");
		if (abbrs.length < 2) continue;
		const pitchers = box.querySelectorAll("div.lineup__player-highlight-name");
		const batters = side => {
			const list = box.querySelector("ul.lineup__list." + side);
			if (!list) return [];
			const out = [];
			for (const li of list.querySelectorAll("li.lineup__player")) {
				const pos = text(li.querySelector("div.lineup__pos"));
				const name = text(li.querySelector("a"));
				if (name && pos !== "P") out.push(name);
			}
			return out;
		};
		games.push({
			away_team: text(abbrs[0]),
			home_team: text(abbrs[1]),
			away_pitcher: pitchers.length > 0 ? text(pitchers[0]) : "",
			home_pitcher: pitchers.length > 1 ? text(pitchers[1]) : "",
			away_batters: batters("is-visit"),
			home_batters: batters("is-home"),
		});
	}
	return JSON.stringify(games);
})()
`

// Fetch renders the daily-lineups page and extracts every game's expected
// lineups.
func (s *Scraper) Fetch(ctx context.Context) ([]GameLineups, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	start := time.Now()
	var raw string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(s.lineupsURL),
		chromedp.WaitVisible("div.lineup__box", chromedp.ByQuery),
		chromedp.Evaluate(extractScript, &raw),
	)
	performance.GetTracker().RecordFetch("rotowire", time.Since(start), err == nil, err)
	if err != nil {
		return nil, fmt.Errorf("scrape rotowire lineups: %w", err)
	}

	var games []GameLineups
	if err := json.Unmarshal([]byte(raw), &games); err != nil {
		return nil, fmt.Errorf("decode rotowire lineups: %w", err)
	}

	slog.Info("Scraped Rotowire lineups", "games", len(games))
	return games, nil
}

// Find returns the scraped lineups for a matchup, matched on team
// abbreviations.
func Find(games []GameLineups, awayTeam, homeTeam string) (GameLineups, bool) {
	for _, g := range games {
		if g.AwayTeam == awayTeam && g.HomeTeam == homeTeam {
			return g, true
		}
	}
	return GameLineups{}, false
}
