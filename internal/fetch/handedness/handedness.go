// Package handedness loads fallback batter/pitcher handedness tables from
// CSV files. The MLB people endpoint is the primary source; these tables
// cover players the API lookup misses.
package handedness

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dingerbot/dingerbot/internal/pkg/models"
	"github.com/dingerbot/dingerbot/internal/pkg/names"
)

// Lookup maps normalized player names to handedness codes. Construct it
// explicitly and pass it where needed; there is no package-level table.
type Lookup struct {
	bats   map[string]string
	throws map[string]string
}

// Load reads the batter and pitcher tables. Either path may be empty; the
// corresponding lookups then always return HandUnknown.
func Load(battersPath, pitchersPath string) (*Lookup, error) {
	l := &Lookup{
		bats:   make(map[string]string),
		throws: make(map[string]string),
	}

	if battersPath != "" {
		if err := loadCSV(battersPath, l.bats, true); err != nil {
			return nil, fmt.Errorf("load batter handedness: %w", err)
		}
	}
	if pitchersPath != "" {
		if err := loadCSV(pitchersPath, l.throws, false); err != nil {
			return nil, fmt.Errorf("load pitcher handedness: %w", err)
		}
	}
	return l, nil
}

// loadCSV reads rows of "name,hand". A header row is skipped when its hand
// column is not a valid code.
func loadCSV(path string, dest map[string]string, allowSwitch bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(record) < 2 {
			continue
		}
		hand := normalizeHand(strings.TrimSpace(record[1]), allowSwitch)
		if hand == models.HandUnknown {
			continue
		}
		dest[names.Normalize(record[0])] = hand
	}
}

func normalizeHand(code string, allowSwitch bool) string {
	switch strings.ToUpper(code) {
	case "R":
		return models.HandRight
	case "L":
		return models.HandLeft
	case "S", "B":
		if allowSwitch {
			return models.HandSwitch
		}
	}
	return models.HandUnknown
}

// Bats returns the batting side for a player name, HandUnknown if the
// player is not in the table.
func (l *Lookup) Bats(name string) string {
	if h, ok := l.bats[names.Normalize(name)]; ok {
		return h
	}
	return models.HandUnknown
}

// Throws returns the throwing hand for a pitcher name, HandUnknown if the
// pitcher is not in the table.
func (l *Lookup) Throws(name string) string {
	if h, ok := l.throws[names.Normalize(name)]; ok {
		return h
	}
	return models.HandUnknown
}
