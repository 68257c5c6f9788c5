package ballparks

import "testing"

func TestTeamCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantOK   bool
	}{
		{"exact nickname", "Yankees", "NYY", true},
		{"full schedule name", "New York Yankees", "NYY", true},
		{"alias", "Diamondbacks", "ARI", true},
		{"short alias", "D-backs", "ARI", true},
		{"legacy name", "Indians", "CLE", true},
		{"unknown", "Expos", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := TeamCode(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("TeamCode(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if code != tt.wantCode {
				t.Errorf("TeamCode(%q) = %q, want %q", tt.input, code, tt.wantCode)
			}
		})
	}
}

func TestByCodeCoversAllThirtyParks(t *testing.T) {
	if len(parks) != 30 {
		t.Fatalf("parks table has %d entries, want 30", len(parks))
	}
	for code, p := range parks {
		if p.Factor <= 0 {
			t.Errorf("%s: factor %v must be positive", code, p.Factor)
		}
		if p.Lat == 0 || p.Lon == 0 {
			t.Errorf("%s: missing coordinates", code)
		}
	}
}

func TestTropicanaIsDome(t *testing.T) {
	p, ok := ByCode("TB")
	if !ok {
		t.Fatal("TB not found")
	}
	if !p.Controlled() {
		t.Error("Tropicana Field should have controlled conditions")
	}
	if p2, _ := ByCode("NYY"); p2.Controlled() {
		t.Error("Yankee Stadium is open air")
	}
}

func TestPullFriendly(t *testing.T) {
	tests := []struct {
		code, hand string
		want       bool
	}{
		{"NYY", "L", true}, // short porch
		{"NYY", "R", true},
		{"PHI", "L", true},
		{"PHI", "R", false},
		{"SF", "R", false},
		{"TEX", "S", true}, // switch qualifies via LHB list
		{"SF", "S", false},
		{"NYY", "Unknown", false},
	}
	for _, tt := range tests {
		if got := PullFriendly(tt.code, tt.hand); got != tt.want {
			t.Errorf("PullFriendly(%s, %s) = %v, want %v", tt.code, tt.hand, got, tt.want)
		}
	}
}

func TestTeamNameRoundTrip(t *testing.T) {
	if got := TeamName("COL"); got != "Rockies" {
		t.Errorf("TeamName(COL) = %q, want Rockies", got)
	}
	if got := TeamName("XXX"); got != "Unknown" {
		t.Errorf("TeamName(XXX) = %q, want Unknown", got)
	}
}
