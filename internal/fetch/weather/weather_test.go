package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
)

func TestForGameDome(t *testing.T) {
	c := NewClient("", "key", nil, time.Second)

	w := c.ForGame(context.Background(), models.Game{
		HomeTeam: "TB",
		Date:     "2025-06-15",
		ParkLat:  27.7683,
		ParkLon:  -82.6534,
	})

	if w.Source != models.WeatherFromDome {
		t.Fatalf("Source = %q, want dome", w.Source)
	}
	if w.TempF != 72 || w.Humidity != 50 || w.WindSpeed != 0 {
		t.Errorf("dome conditions = %+v", w)
	}
}

func TestForGameFromAPI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("units") != "imperial" {
			t.Errorf("units = %q, want imperial", r.URL.Query().Get("units"))
		}
		w.Write([]byte(`{"main":{"temp":84.2,"humidity":38},"wind":{"speed":12.5,"deg":220}}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "key", nil, time.Second)
	w := c.ForGame(context.Background(), models.Game{
		HomeTeam: "NYY",
		Date:     "2025-06-15",
		ParkLat:  40.8296,
		ParkLon:  -73.9262,
	})

	if w.Source != models.WeatherFromAPI {
		t.Fatalf("Source = %q, want api", w.Source)
	}
	if w.TempF != 84.2 || w.WindSpeed != 12.5 || w.WindDeg != 220 {
		t.Errorf("conditions = %+v", w)
	}
}

func TestForGameAPIFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "bad-key", nil, time.Second)
	game := models.Game{HomeTeam: "NYY", Date: "2025-06-15", ParkLat: 40.8, ParkLon: -73.9}

	w1 := c.ForGame(context.Background(), game)
	w2 := c.ForGame(context.Background(), game)

	if w1.Source != models.WeatherFromDefault {
		t.Fatalf("Source = %q, want default", w1.Source)
	}
	if w1 != w2 {
		t.Errorf("defaults not deterministic: %+v vs %+v", w1, w2)
	}
	if w1.TempF < 70 || w1.TempF > 89 {
		t.Errorf("default temp %v out of range [70,89]", w1.TempF)
	}
	if w1.Humidity < 45 || w1.Humidity > 64 {
		t.Errorf("default humidity %v out of range [45,64]", w1.Humidity)
	}
	if w1.WindSpeed < 0 || w1.WindSpeed > 9 {
		t.Errorf("default wind %v out of range [0,9]", w1.WindSpeed)
	}
}

func TestForGameMissingCoordinates(t *testing.T) {
	c := NewClient("", "key", nil, time.Second)
	w := c.ForGame(context.Background(), models.Game{HomeTeam: "PHI", Date: "2025-06-15"})
	if w.Source != models.WeatherFromDefault {
		t.Errorf("Source = %q, want default for missing coordinates", w.Source)
	}
}
