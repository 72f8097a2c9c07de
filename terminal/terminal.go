package terminal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
)

const (
	cellWidth  = 10
	cellHeight = 3
	headerRows = 4
	footerRows = 4

	lowTimeWarning = 10
	tableRows      = 5
)

// Game runs one player at a terminal. The goroutine inside Run is the only
// one that touches the engine, so key presses and clock ticks are serialized.
type Game struct {
	screen       tcell.Screen
	config       *engine.GameConfig
	playerName   string
	board        *leaderboard.Store
	tickInterval time.Duration
	engineOpts   []engine.Option

	engine    *engine.GameEngine
	newRecord bool
	rank      int
	lastError string
}

// Option customizes a Game
type Option func(*Game)

// WithPlayerName sets the name recorded on the leaderboard
func WithPlayerName(name string) Option {
	return func(g *Game) {
		g.playerName = strings.TrimSpace(name)
	}
}

// WithLeaderboard sets the table final scores are submitted to
func WithLeaderboard(board *leaderboard.Store) Option {
	return func(g *Game) {
		g.board = board
	}
}

// WithTickInterval overrides the one second countdown step
func WithTickInterval(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.tickInterval = d
		}
	}
}

// WithEngineOptions passes extra options to every engine the game creates
func WithEngineOptions(opts ...engine.Option) Option {
	return func(g *Game) {
		g.engineOpts = append(g.engineOpts, opts...)
	}
}

// New prepares a game on an initialized screen and starts the first round
func New(screen tcell.Screen, config *engine.GameConfig, opts ...Option) (*Game, error) {
	if screen == nil {
		return nil, fmt.Errorf("screen is required")
	}
	if config == nil {
		config = engine.DefaultConfig()
	}
	game := &Game{
		screen:       screen,
		config:       config,
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(game)
	}
	if game.playerName != "" {
		name, err := leaderboard.ValidateName(game.playerName)
		if err != nil {
			return nil, err
		}
		game.playerName = name
	}

	if err := game.newRound(); err != nil {
		return nil, err
	}
	return game, nil
}

// newRound replaces the engine with a fresh, running one
func (g *Game) newRound() error {
	opts := []engine.Option{engine.WithPlayerName(g.playerName)}
	if g.playerName != "" && g.board != nil {
		opts = append(opts, engine.WithScoreSink(engine.ScoreSinkFunc(g.submit)))
	}
	opts = append(opts, g.engineOpts...)

	eng, err := engine.NewEngine(g.config, opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	eng.Start()

	g.engine = eng
	g.newRecord = false
	g.rank = 0
	g.lastError = ""
	return nil
}

// submit is the engine's score sink
func (g *Game) submit(score engine.FinalScore) error {
	entry := leaderboard.Entry{Name: score.Name, Score: score.Score, Date: score.Date}
	table, accepted, err := g.board.Submit(entry)
	if err != nil {
		g.lastError = err.Error()
		return err
	}
	g.newRecord = accepted
	for i, e := range table {
		if e.Name == entry.Name && e.Score == entry.Score && e.Date.Equal(entry.Date) {
			g.rank = i + 1
			break
		}
	}
	return nil
}

// Engine returns the engine of the current round
func (g *Game) Engine() *engine.GameEngine {
	return g.engine
}

// Run draws the game and processes keys and clock ticks until the player
// quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.tickInterval)
	defer ticker.Stop()

	g.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if g.handleEvent(ev) {
				return nil
			}
			g.render()
		case <-ticker.C:
			g.engine.Tick()
			g.render()
		}
	}
}

// handleEvent applies one terminal event and reports whether to quit
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		if isQuit(e) {
			return true
		}
		if g.engine.IsGameOver() {
			if isNewGame(e) {
				if err := g.newRound(); err != nil {
					g.lastError = err.Error()
				}
			}
			return false
		}
		if dir, ok := keyToDirection(e); ok {
			g.engine.ApplyDirection(dir)
		}
	}
	return false
}

// keyToDirection maps arrows, WASD, and hjkl to a slide direction
func keyToDirection(ev *tcell.EventKey) (engine.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.Up, true
	case tcell.KeyDown:
		return engine.Down, true
	case tcell.KeyLeft:
		return engine.Left, true
	case tcell.KeyRight:
		return engine.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W', 'k':
			return engine.Up, true
		case 's', 'S', 'j':
			return engine.Down, true
		case 'a', 'A', 'h':
			return engine.Left, true
		case 'd', 'D', 'l':
			return engine.Right, true
		}
	}
	return "", false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func isNewGame(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'n' || ev.Rune() == 'N'
	}
	return false
}

// boardLayout is where the grid lands on screen
type boardLayout struct {
	originX, originY int
	width, height    int
	fits             bool
}

// layoutBoard centers a size x size grid, leaving room for the header and
// footer. fits is false when the screen is too small to draw it.
func layoutBoard(screenW, screenH, size int) boardLayout {
	w := size*(cellWidth+1) + 1
	h := size*(cellHeight+1) + 1
	l := boardLayout{width: w, height: h}
	total := headerRows + h + footerRows
	if screenW < w || screenH < total {
		return l
	}
	l.fits = true
	l.originX = (screenW - w) / 2
	l.originY = (screenH-total)/2 + headerRows
	return l
}

// formatClock renders seconds as m:ss
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// tileLabel returns the two centered lines drawn inside a tile
func tileLabel(value int, theme engine.Theme) (string, string) {
	if value == 0 {
		return "", ""
	}
	return theme.Lookup(value).Emoji, strconv.Itoa(value)
}

// tileStyle colors a tile from its theme entry
func tileStyle(value int, theme engine.Theme) tcell.Style {
	if value == 0 {
		return tcell.StyleDefault.Background(tcell.ColorDimGray)
	}
	bg := tcell.GetColor(theme.Lookup(value).Color)
	fg := tcell.ColorWhite
	if value <= 4 {
		fg = tcell.ColorBlack
	}
	return tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true)
}

func (g *Game) render() {
	s := g.screen
	s.Clear()
	w, h := s.Size()
	state := g.engine.GetState()
	l := layoutBoard(w, h, state.GridSize)

	if !l.fits {
		drawCentered(s, w, h/2, tcell.StyleDefault, fmt.Sprintf("Terminal too small (need %dx%d)", l.width, headerRows+l.height+footerRows))
		s.Show()
		return
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	drawCentered(s, w, l.originY-headerRows, title, "EcoMerge Blitz")

	timeStyle := tcell.StyleDefault
	if state.TimeRemaining <= lowTimeWarning {
		timeStyle = timeStyle.Foreground(tcell.ColorRed).Bold(true)
	}
	status := fmt.Sprintf("Score: %d   Time: %s   Moves: %d", state.Score, formatClock(state.TimeRemaining), state.TotalMoves)
	drawCentered(s, w, l.originY-headerRows+2, timeStyle, status)

	g.drawGrid(l, state)

	y := l.originY + l.height + 1
	drawCentered(s, w, y, tcell.StyleDefault.Foreground(tcell.ColorYellow), state.Message)
	help := "arrows/wasd/hjkl: move   q: quit"
	if state.Phase == engine.PhaseEnded {
		help = "n: new game   q: quit"
	}
	drawCentered(s, w, y+2, tcell.StyleDefault.Foreground(tcell.ColorGray), help)

	if state.Phase == engine.PhaseEnded {
		g.drawResults(w, h, state)
	}
	s.Show()
}

func (g *Game) drawGrid(l boardLayout, state *engine.GameState) {
	theme := g.config.Theme
	for row := 0; row < state.GridSize; row++ {
		for col := 0; col < state.GridSize; col++ {
			value := 0
			if tile := state.Grid[row][col]; tile != nil {
				value = tile.Value
			}
			x := l.originX + 1 + col*(cellWidth+1)
			y := l.originY + 1 + row*(cellHeight+1)
			st := tileStyle(value, theme)
			fill(g.screen, x, y, cellWidth, cellHeight, st)
			emoji, number := tileLabel(value, theme)
			drawText(g.screen, x+(cellWidth-runewidth.StringWidth(emoji))/2, y, st, emoji)
			drawText(g.screen, x+(cellWidth-runewidth.StringWidth(number))/2, y+1, st, number)
		}
	}
}

// drawResults overlays the final score and the leaderboard
func (g *Game) drawResults(w, h int, state *engine.GameState) {
	lines := []string{"GAME OVER", fmt.Sprintf("Final score: %d", state.Score)}
	if g.newRecord {
		lines = append(lines, fmt.Sprintf("New leaderboard entry! Rank #%d", g.rank))
	}
	if g.lastError != "" {
		lines = append(lines, "Leaderboard error: "+g.lastError)
	}
	if g.board != nil {
		lines = append(lines, "", "Leaderboard")
		entries := g.board.Top(tableRows)
		if len(entries) == 0 {
			lines = append(lines, "(empty)")
		}
		for i, e := range entries {
			lines = append(lines, formatEntry(i+1, e))
		}
	}

	boxW := 0
	for _, line := range lines {
		if lw := runewidth.StringWidth(line); lw > boxW {
			boxW = lw
		}
	}
	boxW += 4
	boxH := len(lines) + 2
	x := (w - boxW) / 2
	y := (h - boxH) / 2
	st := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	fill(g.screen, x, y, boxW, boxH, st)
	for i, line := range lines {
		ls := st
		if i == 0 {
			ls = ls.Bold(true)
		}
		drawCentered(g.screen, w, y+1+i, ls, line)
	}
}

func formatEntry(rank int, e leaderboard.Entry) string {
	return fmt.Sprintf("%2d. %-20s %6d", rank, runewidth.Truncate(e.Name, 20, ""), e.Score)
}

func fill(s tcell.Screen, x, y, w, h int, st tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.SetContent(x+dx, y+dy, ' ', nil, st)
		}
	}
}

// drawText writes text at x,y and returns the column after it. Zero-width
// runes such as variation selectors ride along with the preceding rune.
func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) int {
	runes := []rune(text)
	for i := 0; i < len(runes); {
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		s.SetContent(x, y, mainc, combc, st)
		rw := runewidth.RuneWidth(mainc)
		if rw < 1 {
			rw = 1
		}
		x += rw
	}
	return x
}

func drawCentered(s tcell.Screen, screenW, y int, st tcell.Style, text string) {
	x := (screenW - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	drawText(s, x, y, st, text)
}
