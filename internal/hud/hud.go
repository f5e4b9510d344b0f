// Package hud builds the heads-up display text and the overlay geometry
// shared by the window and terminal front-ends.
package hud

import (
	"fmt"

	"github.com/ayusman/gridshot/internal/game"
)

// Info is everything the HUD shows.
type Info struct {
	Snapshot      game.Snapshot
	GestureActive bool
	Tracked       bool
	Aiming        bool
	Direction     string
}

// HelpLines is the key reference shown by the help overlay.
var HelpLines = []string{
	"CONTROLS",
	"",
	"Arrows / WASD   move one cell",
	"Mouse drag      aim",
	"Mouse release   fire (further = faster)",
	"G               toggle gesture control",
	"R               respawn monsters",
	"H               show / hide this help",
	"Esc / Q         quit",
	"",
	"GESTURE CONTROL",
	"",
	"Point your index finger with the thumb",
	"held out to aim. Fold the hand to fire.",
	"Move the hand away from the centre of",
	"the camera view to walk.",
}

// Lines returns the status lines drawn in the corner of the board.
func Lines(info Info) []string {
	s := info.Snapshot
	lines := []string{
		fmt.Sprintf("Round %d  Monsters %d/%d", s.Round, s.Stats.Remaining, s.Stats.Spawned),
		fmt.Sprintf("Shots %d  Hits %d  Kills %d", s.Stats.Shots, s.Stats.Hits, s.Stats.Kills),
	}

	switch {
	case !info.GestureActive:
		lines = append(lines, "Gesture: off (G)")
	case !info.Tracked:
		lines = append(lines, "Gesture: no hand")
	case info.Aiming:
		lines = append(lines, "Gesture: READY TO SHOOT!")
	default:
		line := "Gesture: AIM..."
		if info.Direction != "" && info.Direction != "idle" {
			line += " move " + info.Direction
		}
		lines = append(lines, line)
	}

	return append(lines, "H: help")
}

// Banner returns the level-complete message, if the level is complete.
func Banner(s game.Snapshot) (string, bool) {
	if !s.LevelCompleted {
		return "", false
	}
	return "LEVEL COMPLETE! Press R to respawn", true
}

// Bar is a health bar in screen pixels. Fill is the width of the
// coloured part.
type Bar struct {
	X, Y, W, H float64
	Fill       float64
}

// Health bar proportions relative to the tile.
const (
	barInset  = 0.1
	barHeight = 0.08
)

// HealthBar places a monster's health bar along the top of its cell.
func HealthBar(m game.MonsterView, tile int) Bar {
	t := float64(tile)
	w := t * (1 - 2*barInset)
	ratio := m.HealthRatio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return Bar{
		X:    float64(m.Pos.X)*t + t*barInset,
		Y:    float64(m.Pos.Y)*t + t*barInset/2,
		W:    w,
		H:    t * barHeight,
		Fill: w * ratio,
	}
}

// MaxMarkerAlpha is the opacity of a fresh hit marker.
const MaxMarkerAlpha = 100

// MarkerAlpha fades a hit marker linearly with its remaining ttl.
func MarkerAlpha(ttl, maxTTL int) uint8 {
	if ttl <= 0 || maxTTL <= 0 {
		return 0
	}
	if ttl >= maxTTL {
		return MaxMarkerAlpha
	}
	return uint8(MaxMarkerAlpha * ttl / maxTTL)
}

// SpriteScale returns the factors that stretch a w x h image over one tile.
func SpriteScale(w, h, tile int) (sx, sy float64) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	return float64(tile) / float64(w), float64(tile) / float64(h)
}
