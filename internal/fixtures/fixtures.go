// Package fixtures provides recorded hand landmark sequences for tests.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/ayusman/gridshot/internal/detector"
)

//go:embed sequences/*.json
var sequencesFS embed.FS

// Frame is one recorded detection. Hand is nil when no hand was tracked.
type Frame struct {
	Hand *detector.HandLandmarks `json:"hand"`
}

// Sequence is a recorded run of detections at a fixed frame interval.
type Sequence struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	IntervalMS  int     `json:"interval_ms"`
	Frames      []Frame `json:"frames"`
}

// Interval returns the time between frames.
func (s *Sequence) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Hands returns the detector output for frame i, as the detector would report it.
func (s *Sequence) Hands(i int) []detector.HandLandmarks {
	if i < 0 || i >= len(s.Frames) || s.Frames[i].Hand == nil {
		return nil
	}
	return []detector.HandLandmarks{*s.Frames[i].Hand}
}

// LoadSequence loads a recorded sequence by name, without the .json suffix.
func LoadSequence(name string) (*Sequence, error) {
	data, err := sequencesFS.ReadFile(path.Join("sequences", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("load sequence %s: %w", name, err)
	}

	var seq Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("decode sequence %s: %w", name, err)
	}
	return &seq, nil
}

// Names lists the available sequences.
func Names() ([]string, error) {
	entries, err := sequencesFS.ReadDir("sequences")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
