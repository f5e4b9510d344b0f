// Package render draws the board in a window with Ebitengine and turns
// keyboard and mouse input into game commands.
package render

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ayusman/gridshot/internal/app"
	"github.com/ayusman/gridshot/internal/assets"
	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/hud"
)

// Controller is the game surface the window drives.
type Controller interface {
	Tick() game.StepReport
	Snapshot() game.Snapshot
	Status() app.Status
	Move(dx, dy int) bool
	FireAt(x, y float64) bool
	AimAt(x, y float64)
	ClearAim()
	Respawn() int
	RequestGestureToggle()
}

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	gridColor       = color.RGBA{128, 128, 128, 255}
	aimColor        = color.RGBA{255, 0, 0, 255}
	projectileColor = color.RGBA{0, 0, 0, 255}
	barBackColor    = color.RGBA{60, 0, 0, 255}
	barFillColor    = color.RGBA{0, 200, 0, 255}
	panelColor      = color.RGBA{20, 20, 30, 180}
)

const (
	projectileRadius = 3
	aimWidth         = 2
	lineHeight       = 16
)

// Config holds window settings.
type Config struct {
	Title        string
	Sprites      assets.Set
	HitMarkerTTL int

	// Done closes the window when it is closed.
	Done <-chan struct{}
}

// Game implements ebiten.Game. Each Update applies input and advances
// the simulation one tick, so the window's TPS is the game tick rate.
type Game struct {
	ctrl     Controller
	config   Config
	player   *ebiten.Image
	monsters []*ebiten.Image

	help     bool
	dragging bool
	snap     game.Snapshot
	status   app.Status
}

// New creates a Game drawing with the given sprites.
func New(ctrl Controller, config Config) *Game {
	if config.HitMarkerTTL <= 0 {
		config.HitMarkerTTL = game.DefaultHitMarkerTTL
	}

	g := &Game{
		ctrl:   ctrl,
		config: config,
	}
	if config.Sprites.Player != nil {
		g.player = ebiten.NewImageFromImage(config.Sprites.Player)
	}
	for _, img := range config.Sprites.Monsters {
		g.monsters = append(g.monsters, ebiten.NewImageFromImage(img))
	}
	g.snap = ctrl.Snapshot()
	return g
}

// Run opens the window and blocks until it is closed.
func Run(ctrl Controller, config Config, tickRate int) error {
	g := New(ctrl, config)

	ebiten.SetWindowSize(g.snap.ScreenWidth, g.snap.ScreenHeight)
	ebiten.SetWindowTitle(config.Title)
	if tickRate > 0 {
		ebiten.SetTPS(tickRate)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	select {
	case <-g.config.Done:
		return ebiten.Termination
	default:
	}

	g.handleKeys()
	g.handleMouse()

	g.ctrl.Tick()
	g.snap = g.ctrl.Snapshot()
	g.status = g.ctrl.Status()
	return nil
}

func (g *Game) handleKeys() {
	moves := []struct {
		keys   []ebiten.Key
		dx, dy int
	}{
		{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, 0, -1},
		{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, 0, 1},
		{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, -1, 0},
		{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, 1, 0},
	}
	for _, m := range moves {
		for _, k := range m.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.ctrl.Move(m.dx, m.dy)
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.help = !g.help
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.ctrl.RequestGestureToggle()
	}
}

// handleMouse shows the aim line while the left button is held and fires
// toward the cursor when it is released.
func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ctrl.AimAt(float64(x), float64(y))
		g.dragging = true
		return
	}

	if g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.ctrl.FireAt(float64(x), float64(y))
	}
	if g.dragging {
		g.ctrl.ClearAim()
		g.dragging = false
	}
}

// Draw renders the board, entities and overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.snap
	screen.Fill(backgroundColor)

	g.drawGrid(screen, s)
	g.drawHitMarkers(screen, s)
	g.drawMonsters(screen, s)
	g.drawPlayer(screen, s)

	if s.Aim != nil {
		vector.StrokeLine(screen,
			float32(s.Aim.From.X), float32(s.Aim.From.Y),
			float32(s.Aim.To.X), float32(s.Aim.To.Y),
			aimWidth, aimColor, true)
	}
	for _, p := range s.Projectiles {
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), projectileRadius, projectileColor, true)
	}

	g.drawHUD(screen, s)

	if msg, ok := hud.Banner(s); ok {
		drawPanelText(screen, []string{msg}, s.ScreenWidth, s.ScreenHeight)
	}
	if g.help {
		drawPanelText(screen, hud.HelpLines, s.ScreenWidth, s.ScreenHeight)
	}
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.snap.ScreenWidth, g.snap.ScreenHeight
}

func (g *Game) drawGrid(screen *ebiten.Image, s game.Snapshot) {
	for x := 0; x <= s.ScreenWidth; x += s.TileSize {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(s.ScreenHeight), 1, gridColor, false)
	}
	for y := 0; y <= s.ScreenHeight; y += s.TileSize {
		vector.StrokeLine(screen, 0, float32(y), float32(s.ScreenWidth), float32(y), 1, gridColor, false)
	}
}

func (g *Game) drawHitMarkers(screen *ebiten.Image, s game.Snapshot) {
	tile := float32(s.TileSize)
	for _, m := range s.HitMarkers {
		alpha := hud.MarkerAlpha(m.TTL, g.config.HitMarkerTTL)
		// Premultiplied red.
		clr := color.RGBA{R: alpha, A: alpha}
		vector.DrawFilledRect(screen, float32(m.Cell.X)*tile, float32(m.Cell.Y)*tile, tile, tile, clr, false)
	}
}

func (g *Game) drawMonsters(screen *ebiten.Image, s game.Snapshot) {
	tile := float32(s.TileSize)
	for _, m := range s.Monsters {
		if img := g.sprite(m.Sprite); img != nil {
			drawSprite(screen, img, m.Pos, s.TileSize)
		} else {
			vector.DrawFilledRect(screen, float32(m.Pos.X)*tile, float32(m.Pos.Y)*tile, tile, tile, assets.MonsterColor, false)
		}

		bar := hud.HealthBar(m, s.TileSize)
		vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), barBackColor, false)
		vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.Fill), float32(bar.H), barFillColor, false)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, s game.Snapshot) {
	if g.player != nil {
		drawSprite(screen, g.player, s.Player, s.TileSize)
		return
	}
	tile := float32(s.TileSize)
	vector.DrawFilledRect(screen, float32(s.Player.X)*tile, float32(s.Player.Y)*tile, tile, tile, assets.PlayerColor, false)
}

func (g *Game) drawHUD(screen *ebiten.Image, s game.Snapshot) {
	lines := hud.Lines(hud.Info{
		Snapshot:      s,
		GestureActive: g.status.GestureActive,
		Tracked:       g.status.Intent.Tracked,
		Aiming:        g.status.Intent.Aiming,
		Direction:     g.status.Intent.Direction.String(),
	})

	width := 0
	for _, l := range lines {
		if w := len(l) * 6; w > width {
			width = w
		}
	}
	vector.DrawFilledRect(screen, 4, 4, float32(width+8), float32(len(lines)*lineHeight+4), panelColor, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8, 6+i*lineHeight)
	}
}

// sprite picks the image for a monster's sprite index.
func (g *Game) sprite(index int) *ebiten.Image {
	if len(g.monsters) == 0 {
		return nil
	}
	if index < 0 || index >= len(g.monsters) {
		index = 0
	}
	return g.monsters[index]
}

func drawSprite(screen, img *ebiten.Image, cell game.GridPosition, tile int) {
	b := img.Bounds()
	sx, sy := hud.SpriteScale(b.Dx(), b.Dy(), tile)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(float64(cell.X*tile), float64(cell.Y*tile))
	screen.DrawImage(img, op)
}

// drawPanelText centres lines on a translucent panel.
func drawPanelText(screen *ebiten.Image, lines []string, width, height int) {
	w := 0
	for _, l := range lines {
		if len(l)*6 > w {
			w = len(l) * 6
		}
	}
	h := len(lines) * lineHeight

	x := (width - w) / 2
	y := (height - h) / 2
	vector.DrawFilledRect(screen, float32(x-12), float32(y-12), float32(w+24), float32(h+24), panelColor, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*lineHeight)
	}
}
