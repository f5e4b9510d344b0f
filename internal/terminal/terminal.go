// Package terminal draws the board in a terminal with tcell and turns key
// presses and mouse clicks into game commands.
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ayusman/gridshot/internal/app"
	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/hud"
)

// Controller is the game surface the terminal drives.
type Controller interface {
	Snapshot() game.Snapshot
	Status() app.Status
	Move(dx, dy int) bool
	FireAt(x, y float64) bool
	AimAt(x, y float64)
	ClearAim()
	Respawn() int
	RequestGestureToggle()
}

// Each grid cell is drawn as CellWidth x CellHeight characters.
const (
	CellWidth  = 6
	CellHeight = 3
)

// FrameInterval is the redraw period.
const FrameInterval = 33 * time.Millisecond

// monsterGlyphs are picked by sprite index.
var monsterGlyphs = []rune{'M', 'W', 'X', 'O', '&', '%'}

var (
	styleLight      = tcell.StyleDefault.Background(tcell.NewRGBColor(235, 235, 235)).Foreground(tcell.ColorBlack)
	styleDark       = tcell.StyleDefault.Background(tcell.NewRGBColor(210, 210, 210)).Foreground(tcell.ColorBlack)
	styleHit        = tcell.StyleDefault.Background(tcell.NewRGBColor(255, 120, 120)).Foreground(tcell.ColorBlack)
	stylePlayer     = tcell.StyleDefault.Background(tcell.NewRGBColor(255, 0, 0)).Foreground(tcell.ColorWhite).Bold(true)
	styleMonster    = tcell.StyleDefault.Background(tcell.NewRGBColor(0, 0, 255)).Foreground(tcell.ColorWhite).Bold(true)
	styleAim        = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText       = tcell.StyleDefault
	stylePanel      = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.ColorWhite)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorBlack)
)

// Terminal is the tcell front-end.
type Terminal struct {
	screen tcell.Screen
	ctrl   Controller

	help     bool
	dragging bool
}

// New creates a Terminal drawing on an initialised screen.
func New(screen tcell.Screen, ctrl Controller) *Terminal {
	screen.EnableMouse()
	return &Terminal{screen: screen, ctrl: ctrl}
}

// Run opens the terminal, draws until ctx is cancelled or the user quits,
// and restores the terminal on return.
func Run(ctx context.Context, ctrl Controller) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return New(screen, ctrl).Loop(ctx)
}

// Loop processes events and redraws until ctx is cancelled or the user quits.
func (t *Terminal) Loop(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(t.screen, events, done)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Draw()
			t.screen.Show()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed. events is closed when the screen stops delivering.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		t.ctrl.Move(0, -1)
	case tcell.KeyDown:
		t.ctrl.Move(0, 1)
	case tcell.KeyLeft:
		t.ctrl.Move(-1, 0)
	case tcell.KeyRight:
		t.ctrl.Move(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'w', 'W':
			t.ctrl.Move(0, -1)
		case 's', 'S':
			t.ctrl.Move(0, 1)
		case 'a', 'A':
			t.ctrl.Move(-1, 0)
		case 'd', 'D':
			t.ctrl.Move(1, 0)
		case 'r', 'R':
			t.ctrl.Respawn()
		case 'h', 'H':
			t.help = !t.help
		case 'g', 'G':
			t.ctrl.RequestGestureToggle()
		}
	}
	return true
}

// handleMouse aims while the left button is held and fires on release.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := ToPixel(col, row, t.ctrl.Snapshot().TileSize)

	if ev.Buttons()&tcell.Button1 != 0 {
		t.ctrl.AimAt(x, y)
		t.dragging = true
		return
	}
	if t.dragging {
		t.ctrl.FireAt(x, y)
		t.ctrl.ClearAim()
		t.dragging = false
	}
}

// ToPixel maps a character cell to the screen pixel at its centre, for a
// board with the given tile size.
func ToPixel(col, row, tile int) (x, y float64) {
	x = (float64(col) + 0.5) * float64(tile) / CellWidth
	y = (float64(row) + 0.5) * float64(tile) / CellHeight
	return x, y
}

// ToCell maps a screen pixel to the character cell containing it.
func ToCell(x, y float64, tile int) (col, row int) {
	col = int(math.Floor(x * CellWidth / float64(tile)))
	row = int(math.Floor(y * CellHeight / float64(tile)))
	return col, row
}

// Draw renders the board, entities and overlays to the screen buffer.
func (t *Terminal) Draw() {
	s := t.ctrl.Snapshot()
	status := t.ctrl.Status()

	t.screen.Clear()

	hit := make(map[game.GridPosition]bool, len(s.HitMarkers))
	for _, m := range s.HitMarkers {
		hit[m.Cell] = true
	}

	for gy := 0; gy < s.GridHeight; gy++ {
		for gx := 0; gx < s.GridWidth; gx++ {
			style := styleLight
			if (gx+gy)%2 == 1 {
				style = styleDark
			}
			if hit[game.GridPosition{X: gx, Y: gy}] {
				style = styleHit
			}
			t.fillCell(gx, gy, style)
		}
	}

	for _, m := range s.Monsters {
		t.fillCell(m.Pos.X, m.Pos.Y, styleMonster)
		glyph := monsterGlyphs[abs(m.Sprite)%len(monsterGlyphs)]
		col, row := m.Pos.X*CellWidth+CellWidth/2-1, m.Pos.Y*CellHeight+CellHeight/2
		t.screen.SetContent(col, row, glyph, nil, styleMonster)
		t.putString(col+1, row, fmt.Sprintf("%d", m.Health), styleMonster)
	}

	t.fillCell(s.Player.X, s.Player.Y, stylePlayer)
	t.screen.SetContent(s.Player.X*CellWidth+CellWidth/2, s.Player.Y*CellHeight+CellHeight/2, '@', nil, stylePlayer)

	if s.Aim != nil {
		t.drawAim(s)
	}
	for _, p := range s.Projectiles {
		col, row := ToCell(p.Pos.X, p.Pos.Y, s.TileSize)
		t.setRune(col, row, '•', styleProjectile)
	}

	lines := hud.Lines(hud.Info{
		Snapshot:      s,
		GestureActive: status.GestureActive,
		Tracked:       status.Intent.Tracked,
		Aiming:        status.Intent.Aiming,
		Direction:     status.Intent.Direction.String(),
	})
	top := s.GridHeight*CellHeight + 1
	for i, l := range lines {
		t.putString(0, top+i, l, styleText)
	}

	boardW, boardH := s.GridWidth*CellWidth, s.GridHeight*CellHeight
	if msg, ok := hud.Banner(s); ok {
		t.drawPanel([]string{msg}, boardW, boardH)
	}
	if t.help {
		t.drawPanel(hud.HelpLines, boardW, boardH)
	}
}

// drawAim marks the aim line every half cell.
func (t *Terminal) drawAim(s game.Snapshot) {
	from, to := s.Aim.From, s.Aim.To
	length := math.Hypot(to.X-from.X, to.Y-from.Y)
	step := float64(s.TileSize) / CellWidth

	for d := step; d <= length; d += step {
		x := from.X + (to.X-from.X)*d/length
		y := from.Y + (to.Y-from.Y)*d/length
		col, row := ToCell(x, y, s.TileSize)
		t.setRune(col, row, '·', styleAim)
	}
}

// setRune changes a character but keeps the cell's background.
func (t *Terminal) setRune(col, row int, r rune, fg tcell.Style) {
	_, _, style, _ := t.screen.GetContent(col, row)
	fgColor, _, _ := fg.Decompose()
	t.screen.SetContent(col, row, r, nil, style.Foreground(fgColor))
}

func (t *Terminal) fillCell(gx, gy int, style tcell.Style) {
	for row := 0; row < CellHeight; row++ {
		for col := 0; col < CellWidth; col++ {
			t.screen.SetContent(gx*CellWidth+col, gy*CellHeight+row, ' ', nil, style)
		}
	}
}

func (t *Terminal) putString(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(col+i, row, r, nil, style)
	}
}

// drawPanel centres lines on a filled box over the board.
func (t *Terminal) drawPanel(lines []string, width, height int) {
	w := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	w += 4
	h := len(lines) + 2

	left := (width - w) / 2
	if left < 0 {
		left = 0
	}
	top := (height - h) / 2
	if top < 0 {
		top = 0
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			t.screen.SetContent(left+col, top+row, ' ', nil, stylePanel)
		}
	}
	for i, l := range lines {
		t.putString(left+2, top+1+i, l, stylePanel)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
