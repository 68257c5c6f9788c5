package ballparks

import "strings"

// Park describes one MLB ballpark: its HR factor, location for weather
// lookups, and the compass bearing from home plate to center field.
type Park struct {
	Code   string
	Name   string
	Lat    float64
	Lon    float64
	Factor float64
	Orient float64

	// Dome parks get controlled conditions instead of a weather lookup.
	Dome        bool
	Retractable bool

	// Dimension quirks that amplify specific batter profiles.
	Altitude    bool // Coors Field
	ShortPorch  bool // Yankee Stadium right field
	CrawfordBox bool // Minute Maid left field
	Bandbox     bool // Great American Ball Park
}

var parks = map[string]Park{
	"NYY": {Code: "NYY", Name: "Yankee Stadium", Lat: 40.8296, Lon: -73.9262, Factor: 1.15, Orient: 75.0, ShortPorch: true},
	"BOS": {Code: "BOS", Name: "Fenway Park", Lat: 42.3467, Lon: -71.0972, Factor: 1.03, Orient: 45.0},
	"TOR": {Code: "TOR", Name: "Rogers Centre", Lat: 43.6418, Lon: -79.3891, Factor: 1.02, Orient: 345.0, Retractable: true},
	"BAL": {Code: "BAL", Name: "Oriole Park at Camden Yards", Lat: 39.2838, Lon: -76.6215, Factor: 1.02, Orient: 31.0},
	"TB":  {Code: "TB", Name: "Tropicana Field", Lat: 27.7682, Lon: -82.6534, Factor: 0.95, Orient: 359.0, Dome: true},
	"CLE": {Code: "CLE", Name: "Progressive Field", Lat: 41.4962, Lon: -81.6852, Factor: 0.98, Orient: 0.0},
	"DET": {Code: "DET", Name: "Comerica Park", Lat: 42.3390, Lon: -83.0485, Factor: 0.92, Orient: 150.0},
	"CWS": {Code: "CWS", Name: "Guaranteed Rate Field", Lat: 41.8299, Lon: -87.6338, Factor: 1.12, Orient: 127.0},
	"KC":  {Code: "KC", Name: "Kauffman Stadium", Lat: 39.0517, Lon: -94.4803, Factor: 0.85, Orient: 46.0},
	"MIN": {Code: "MIN", Name: "Target Field", Lat: 44.9817, Lon: -93.2776, Factor: 1.01, Orient: 129.0},
	"HOU": {Code: "HOU", Name: "Minute Maid Park", Lat: 29.7572, Lon: -95.3556, Factor: 1.18, Orient: 343.0, Retractable: true, CrawfordBox: true},
	"LAA": {Code: "LAA", Name: "Angel Stadium", Lat: 33.8003, Lon: -117.8827, Factor: 1.05, Orient: 44.0},
	"OAK": {Code: "OAK", Name: "Oakland Coliseum", Lat: 37.7516, Lon: -122.2005, Factor: 0.90, Orient: 55.0},
	"SEA": {Code: "SEA", Name: "T-Mobile Park", Lat: 47.5914, Lon: -122.3325, Factor: 0.94, Orient: 49.0, Retractable: true},
	"TEX": {Code: "TEX", Name: "Globe Life Field", Lat: 32.7473, Lon: -97.0832, Factor: 1.00, Orient: 30.0, Retractable: true},
	"ATL": {Code: "ATL", Name: "Truist Park", Lat: 33.8907, Lon: -84.4676, Factor: 1.05, Orient: 145.0},
	"MIA": {Code: "MIA", Name: "loanDepot Park", Lat: 25.7784, Lon: -80.2197, Factor: 0.87, Orient: 128.0, Retractable: true},
	"NYM": {Code: "NYM", Name: "Citi Field", Lat: 40.7571, Lon: -73.8458, Factor: 0.97, Orient: 13.0},
	"PHI": {Code: "PHI", Name: "Citizens Bank Park", Lat: 39.9058, Lon: -75.1666, Factor: 1.10, Orient: 9.0},
	"WSH": {Code: "WSH", Name: "Nationals Park", Lat: 38.8730, Lon: -77.0074, Factor: 1.02, Orient: 28.0},
	"CHC": {Code: "CHC", Name: "Wrigley Field", Lat: 41.9483, Lon: -87.6555, Factor: 1.08, Orient: 37.0},
	"CIN": {Code: "CIN", Name: "Great American Ball Park", Lat: 39.0970, Lon: -84.5066, Factor: 1.18, Orient: 122.0, Bandbox: true},
	"MIL": {Code: "MIL", Name: "American Family Field", Lat: 43.0280, Lon: -87.9712, Factor: 1.08, Orient: 129.0, Retractable: true},
	"PIT": {Code: "PIT", Name: "PNC Park", Lat: 40.4468, Lon: -80.0061, Factor: 0.93, Orient: 116.0},
	"STL": {Code: "STL", Name: "Busch Stadium", Lat: 38.6226, Lon: -90.1928, Factor: 0.95, Orient: 62.0},
	"ARI": {Code: "ARI", Name: "Chase Field", Lat: 33.4452, Lon: -112.0667, Factor: 1.04, Orient: 0.0, Retractable: true},
	"COL": {Code: "COL", Name: "Coors Field", Lat: 39.7561, Lon: -104.9941, Factor: 1.35, Orient: 4.0, Altitude: true},
	"LAD": {Code: "LAD", Name: "Dodger Stadium", Lat: 34.0739, Lon: -118.2400, Factor: 0.98, Orient: 26.0},
	"SD":  {Code: "SD", Name: "Petco Park", Lat: 32.7076, Lon: -117.1569, Factor: 0.94, Orient: 0.0},
	"SF":  {Code: "SF", Name: "Oracle Park", Lat: 37.7786, Lon: -122.3893, Factor: 0.90, Orient: 85.0},
}

var teamCodes = map[string]string{
	"Angels": "LAA", "Astros": "HOU", "Athletics": "OAK", "Blue Jays": "TOR",
	"Braves": "ATL", "Brewers": "MIL", "Cardinals": "STL", "Cubs": "CHC",
	"D-backs": "ARI", "Diamondbacks": "ARI", "Dodgers": "LAD", "Giants": "SF",
	"Guardians": "CLE", "Indians": "CLE", "Mariners": "SEA", "Marlins": "MIA",
	"Mets": "NYM", "Nationals": "WSH", "Orioles": "BAL", "Padres": "SD",
	"Phillies": "PHI", "Pirates": "PIT", "Rangers": "TEX", "Rays": "TB",
	"Red Sox": "BOS", "Reds": "CIN", "Rockies": "COL", "Royals": "KC",
	"Tigers": "DET", "Twins": "MIN", "White Sox": "CWS", "Yankees": "NYY",
}

// ByCode returns the park for a team code.
func ByCode(code string) (Park, bool) {
	p, ok := parks[code]
	return p, ok
}

// TeamCode converts an MLB API team name ("New York Yankees", "Yankees")
// to the three-letter code. Falls back to a partial match in either
// direction so schedule names and nickname-only names both resolve.
func TeamCode(teamName string) (string, bool) {
	if code, ok := teamCodes[teamName]; ok {
		return code, true
	}
	lower := strings.ToLower(teamName)
	for name, code := range teamCodes {
		n := strings.ToLower(name)
		if strings.Contains(lower, n) || strings.Contains(n, lower) {
			return code, true
		}
	}
	return "", false
}

// TeamName converts a team code back to its nickname. Codes with several
// historical names resolve to the current one.
func TeamName(code string) string {
	if name, ok := teamNames[code]; ok {
		return name
	}
	return "Unknown"
}

var teamNames = map[string]string{
	"LAA": "Angels", "HOU": "Astros", "OAK": "Athletics", "TOR": "Blue Jays",
	"ATL": "Braves", "MIL": "Brewers", "STL": "Cardinals", "CHC": "Cubs",
	"ARI": "Diamondbacks", "LAD": "Dodgers", "SF": "Giants", "CLE": "Guardians",
	"SEA": "Mariners", "MIA": "Marlins", "NYM": "Mets", "WSH": "Nationals",
	"BAL": "Orioles", "SD": "Padres", "PHI": "Phillies", "PIT": "Pirates",
	"TEX": "Rangers", "TB": "Rays", "BOS": "Red Sox", "CIN": "Reds",
	"COL": "Rockies", "KC": "Royals", "DET": "Tigers", "MIN": "Twins",
	"CWS": "White Sox", "NYY": "Yankees",
}

// Parks where pulled balls leave easily, by batter handedness.
var (
	rhbPullFriendly = map[string]bool{"NYY": true, "HOU": true, "BOS": true, "CIN": true, "CHC": true, "COL": true}
	lhbPullFriendly = map[string]bool{"NYY": true, "BAL": true, "HOU": true, "TEX": true, "CIN": true, "MIL": true, "COL": true, "PHI": true}
)

// PullFriendly reports whether the park favors pull power for a batter
// of the given handedness. Switch hitters qualify if either side does.
func PullFriendly(code, batterHand string) bool {
	switch batterHand {
	case "R":
		return rhbPullFriendly[code]
	case "L":
		return lhbPullFriendly[code]
	case "S":
		return rhbPullFriendly[code] || lhbPullFriendly[code]
	}
	return false
}

// Controlled reports whether weather lookups should be skipped for the park.
func (p Park) Controlled() bool {
	return p.Dome
}
