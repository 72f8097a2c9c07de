package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// screenText returns every row of the screen joined by newlines
func screenText(s tcell.SimulationScreen) string {
	w, h := s.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func shortConfig() *engine.GameConfig {
	config := engine.DefaultConfig()
	config.TimeLimit = engine.MinTimeLimit
	return config
}

func TestKeyToDirection(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want engine.Direction
		ok   bool
	}{
		{"arrow up", tcell.KeyUp, 0, engine.Up, true},
		{"arrow down", tcell.KeyDown, 0, engine.Down, true},
		{"arrow left", tcell.KeyLeft, 0, engine.Left, true},
		{"arrow right", tcell.KeyRight, 0, engine.Right, true},
		{"w", tcell.KeyRune, 'w', engine.Up, true},
		{"A", tcell.KeyRune, 'A', engine.Left, true},
		{"j", tcell.KeyRune, 'j', engine.Down, true},
		{"l", tcell.KeyRune, 'l', engine.Right, true},
		{"unmapped rune", tcell.KeyRune, 'x', "", false},
		{"enter", tcell.KeyEnter, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
			got, ok := keyToDirection(ev)
			if ok != tt.ok || got != tt.want {
				t.Errorf("keyToDirection() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsQuit(t *testing.T) {
	quits := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	}
	for _, ev := range quits {
		if !isQuit(ev) {
			t.Errorf("expected %s to quit", ev.Name())
		}
	}
	if isQuit(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)) {
		t.Error("'a' should not quit")
	}
}

func TestLayoutBoard(t *testing.T) {
	l := layoutBoard(80, 30, 4)
	if !l.fits {
		t.Fatal("4x4 board should fit on 80x30")
	}
	if l.width != 45 || l.height != 17 {
		t.Errorf("size = %dx%d, want 45x17", l.width, l.height)
	}
	if l.originX != 17 {
		t.Errorf("originX = %d, want 17", l.originX)
	}
	if l.originY < headerRows {
		t.Errorf("originY = %d leaves no room for the header", l.originY)
	}

	if small := layoutBoard(20, 10, 4); small.fits {
		t.Error("4x4 board should not fit on 20x10")
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{0: "0:00", 5: "0:05", 60: "1:00", 125: "2:05", -3: "0:00"}
	for in, want := range tests {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTileLabel(t *testing.T) {
	emoji, number := tileLabel(0, engine.DefaultTheme)
	if emoji != "" || number != "" {
		t.Errorf("empty cell label = %q %q", emoji, number)
	}

	emoji, number = tileLabel(2, engine.DefaultTheme)
	if emoji != "🌿" || number != "2" {
		t.Errorf("tileLabel(2) = %q %q", emoji, number)
	}

	custom := engine.Theme{2: {Emoji: "A", Name: "Custom"}}
	if emoji, _ := tileLabel(2, custom); emoji != "A" {
		t.Errorf("custom theme emoji = %q, want A", emoji)
	}
	if emoji, _ := tileLabel(4, custom); emoji != "🪴" {
		t.Errorf("fallback emoji = %q, want default theme", emoji)
	}
}

func TestNewRejectsLongName(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	_, err := New(s, nil, WithPlayerName(strings.Repeat("x", leaderboard.MaxNameLength+1)))
	if err == nil {
		t.Fatal("expected an error for a name over the limit")
	}
}

func TestHandleEventMovesAndQuits(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	g, err := New(s, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	moves := g.Engine().PossibleMoves()
	if len(moves) == 0 {
		t.Fatal("a fresh board should have a legal move")
	}
	keys := map[engine.Direction]tcell.Key{
		engine.Up:    tcell.KeyUp,
		engine.Down:  tcell.KeyDown,
		engine.Left:  tcell.KeyLeft,
		engine.Right: tcell.KeyRight,
	}

	if quit := g.handleEvent(tcell.NewEventKey(keys[moves[0]], 0, tcell.ModNone)); quit {
		t.Fatal("a direction key should not quit")
	}
	if got := g.Engine().GetState().TotalMoves; got != 1 {
		t.Errorf("TotalMoves = %d, want 1", got)
	}

	if !g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
}

func TestTimeoutShowsLeaderboardAndNewGame(t *testing.T) {
	s := newSimScreen(t, 80, 40)
	board, err := leaderboard.NewStore(leaderboard.NewMemoryBackend(
		leaderboard.Entry{Name: "ada", Score: 512, Date: time.Now()},
	), 10)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	g, err := New(s, shortConfig(), WithPlayerName("grace"), WithLeaderboard(board))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < engine.MinTimeLimit; i++ {
		g.Engine().Tick()
	}
	if !g.Engine().IsGameOver() {
		t.Fatal("game should end when the clock runs out")
	}

	// Keys other than quit and new game are ignored once the round is over
	g.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	g.render()
	text := screenText(s)
	for _, want := range []string{"GAME OVER", "Leaderboard", "ada", "512", "n: new game"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}

	first := g.Engine()
	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if g.Engine() == first {
		t.Fatal("n should start a new round")
	}
	if g.Engine().Phase() != engine.PhaseRunning {
		t.Errorf("new round phase = %s, want running", g.Engine().Phase())
	}
}

func TestSubmitRecordsRank(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	board, err := leaderboard.NewStore(leaderboard.NewMemoryBackend(), 10)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	g, err := New(s, nil, WithPlayerName("grace"), WithLeaderboard(board))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := g.submit(engine.FinalScore{Name: "grace", Score: 64, Date: time.Now()}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !g.newRecord || g.rank != 1 {
		t.Errorf("newRecord = %v, rank = %d, want true, 1", g.newRecord, g.rank)
	}
	if board.Len() != 1 {
		t.Errorf("board has %d entries, want 1", board.Len())
	}
}

func TestRenderTooSmall(t *testing.T) {
	s := newSimScreen(t, 20, 8)
	g, err := New(s, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.render()
	if !strings.Contains(screenText(s), "too small") {
		t.Error("expected a too small notice")
	}
}

func TestRenderShowsStatus(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	g, err := New(s, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.render()
	text := screenText(s)
	for _, want := range []string{"EcoMerge Blitz", "Score: 0", "Time: 1:00", "q: quit"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	g, err := New(s, nil, WithTickInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Run(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if g.Engine().TimeRemaining() >= engine.DefaultTimeLimit {
		t.Error("the clock should have ticked while running")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newSimScreen(t, 80, 30)
	g, err := New(s, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- g.Run(ctx)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
