package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// fakeStore records saved results in memory.
type fakeStore struct {
	high    map[string]int
	results []storage.GameResult
	failHi  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{high: map[string]int{}}
}

func (f *fakeStore) SaveResult(r storage.GameResult) (int64, error) {
	f.results = append(f.results, r)
	f.high[r.GameID] = max(f.high[r.GameID], r.Score)
	return int64(len(f.results)), nil
}

func (f *fakeStore) HighScore(gameID string) (int, error) {
	if f.failHi {
		return 0, errors.New("unavailable")
	}
	return f.high[gameID], nil
}

func (f *fakeStore) TopScores(gameID string, _ int) ([]storage.ScoreEntry, error) {
	var entries []storage.ScoreEntry
	for i, r := range f.results {
		if r.GameID == gameID {
			entries = append(entries, storage.ScoreEntry{ID: int64(i + 1), GameID: r.GameID, Score: r.Score})
		}
	}
	return entries, nil
}

func (f *fakeStore) GetGameStats(gameID string) (*storage.GameStats, error) {
	return &storage.GameStats{GameID: gameID, HighScore: f.high[gameID]}, nil
}

// stuckRows is a full board with no legal move.
var stuckRows = [][]int{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

// openRows still allows moves.
var openRows = [][]int{
	{2, 2, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 4, 0},
	{0, 0, 0, 0},
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
}

func newTestModel(t *testing.T, store ScoreStore) (Model, *t2048.Game) {
	t.Helper()
	v, ok := t2048.VariantByID(t2048.ClassicID)
	require.True(t, ok)
	game := t2048.New(v)

	m := NewModel(game, store, testRuntime())
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModelSeedsBestScore(t *testing.T) {
	store := newFakeStore()
	store.high[t2048.ClassicID] = 500

	_, game := newTestModel(t, store)
	assert.Equal(t, 500, game.State().BestScore)
}

func TestModelIgnoresHighScoreError(t *testing.T) {
	store := newFakeStore()
	store.failHi = true

	_, game := newTestModel(t, store)
	assert.Equal(t, 0, game.State().BestScore)
}

func TestModelSavesResultOnceOnGameOver(t *testing.T) {
	store := newFakeStore()
	m, game := newTestModel(t, store)
	require.NoError(t, game.Engine().Load(stuckRows, 120))

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	assert.True(t, m.GameState().GameOver)
	require.Len(t, store.results, 1)
	assert.Equal(t, storage.GameResult{GameID: t2048.ClassicID, Score: 120, MaxTile: 4}, store.results[0])
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := newFakeStore()
	m, game := newTestModel(t, store)
	require.NoError(t, game.Engine().Load(stuckRows, 0))

	update(t, m, TickMsg{})
	assert.Empty(t, store.results)
}

func TestModelRestartAfterGameOver(t *testing.T) {
	store := newFakeStore()
	m, game := newTestModel(t, store)
	require.NoError(t, game.Engine().Load(stuckRows, 64))

	m, _ = update(t, m, TickMsg{})
	require.True(t, m.GameState().GameOver)

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	assert.False(t, m.GameState().GameOver)
	assert.Equal(t, 0, m.GameState().Score)
	assert.Equal(t, 64, m.GameState().BestScore, "best carries over the restart")

	// The next game's result is saved again
	require.NoError(t, game.Engine().Load(stuckRows, 32))
	update(t, m, TickMsg{})
	assert.Len(t, store.results, 2)
}

func TestModelRestartMidGame(t *testing.T) {
	store := newFakeStore()
	m, game := newTestModel(t, store)
	require.NoError(t, game.Engine().Load(openRows, 40))

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})

	assert.False(t, m.GameState().GameOver)
	assert.Equal(t, 0, m.GameState().Score)
	assert.Equal(t, 2, game.Engine().Grid().TileCount())
	require.Len(t, store.results, 1)
	assert.Equal(t, storage.GameResult{GameID: t2048.ClassicID, Score: 40, MaxTile: 4}, store.results[0])

	// The new game is saved on its own
	require.NoError(t, game.Engine().Load(stuckRows, 16))
	update(t, m, TickMsg{})
	require.Len(t, store.results, 2)
	assert.Equal(t, 16, store.results[1].Score)
}

func TestModelSavesAutoRestartedGame(t *testing.T) {
	prev := t2048.CurrentSettings()
	require.NoError(t, t2048.Configure(t2048.Settings{Size: 2, Spawn4Prob: 0, AutoRestart: true}))
	t.Cleanup(func() { _ = t2048.Configure(prev) })

	store := newFakeStore()
	m, game := newTestModel(t, store)
	require.NoError(t, game.Engine().Load([][]int{
		{2, 0},
		{4, 8},
	}, 100))

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, TickMsg{})

	assert.False(t, m.GameState().GameOver)
	require.Len(t, store.results, 1)
	assert.Equal(t, storage.GameResult{GameID: t2048.ClassicID, Score: 100, MaxTile: 8}, store.results[0])
}

func TestModelQuitSavesUnfinishedGame(t *testing.T) {
	store := newFakeStore()
	m, game := newTestModel(t, store)
	require.NoError(t, game.Engine().Load(openRows, 40))

	m, cmd := update(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.IsQuitting())
	require.Len(t, store.results, 1)
	assert.Equal(t, 40, store.results[0].Score)

	// A second quit does not save twice
	update(t, m, runeKey('q'))
	assert.Len(t, store.results, 1)
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m, _ := newTestModel(t, newFakeStore())

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu(), "esc during play is ignored")

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	require.True(t, m.GameState().Paused)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	assert.Nil(t, cmd)
}

func TestModelStandaloneBackQuits(t *testing.T) {
	m, game := newTestModel(t, nil)
	m.standalone = true
	require.NoError(t, game.Engine().Load(stuckRows, 8))

	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.True(t, m.IsQuitting())
	require.NotNil(t, cmd)
}

func TestModelMoveThroughTicks(t *testing.T) {
	m, game := newTestModel(t, nil)
	require.NoError(t, game.Engine().Load(openRows, 0))

	m, _ = update(t, m, runeKey('a'))
	m, _ = update(t, m, TickMsg{})

	v, err := game.Engine().Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 4, m.GameState().Score)
}

func TestModelResizeKeepsBoard(t *testing.T) {
	m, game := newTestModel(t, nil)
	require.NoError(t, game.Engine().Load(openRows, 12))
	before := game.Engine().Grid()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, before, game.Engine().Grid())
	assert.Equal(t, 12, game.State().Score)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 40-helpHeight, m.screen.Height())
}

func TestModelViewShowsBoardAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, TickMsg{})

	view := m.View()
	assert.Contains(t, view, "Score:")
	assert.Contains(t, view, "q quit")
	assert.NotContains(t, view, "…")
}

func TestModelHelpFitsDefaultWidth(t *testing.T) {
	m, _ := newTestModel(t, nil)
	line := m.help.View(m.keyMapper.Keys())

	assert.LessOrEqual(t, lipgloss.Width(line), testRuntime().ScreenW)
	for _, want := range []string{"move", "pause", "restart", "menu", "quit"} {
		assert.Contains(t, line, want)
	}
}

func TestMenuListsVariantsWithBest(t *testing.T) {
	store := newFakeStore()
	store.high[t2048.ClassicID] = 2400

	m := NewMenuModel(store, testRuntime())
	items := m.Items()
	require.Len(t, items, len(t2048.Variants))

	var classic *MenuItem
	for i := range items {
		if items[i].GameID == t2048.ClassicID {
			classic = &items[i]
		}
	}
	require.NotNil(t, classic)
	assert.Equal(t, 2400, classic.Best)
	assert.NotEmpty(t, classic.Description)
	assert.Contains(t, m.View(), "best 2400")
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)

	require.NotNil(t, cmd)
	require.NotNil(t, menu.Selected())
	res := menu.result()
	assert.Equal(t, m.Items()[1].GameID, res.GameID)
	assert.False(t, res.Quit)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, next.(MenuModel).result().WantsScoreboard)

	next, _ = m.Update(runeKey('q'))
	assert.True(t, next.(MenuModel).result().Quit)
}

func TestScoreboardOpensOnVariant(t *testing.T) {
	store := newFakeStore()
	store.SaveResult(storage.GameResult{GameID: "2048_quick", Score: 30})

	sb := NewScoreboardModel(store, "2048_quick", 100, 30)
	require.Len(t, sb.scores, 1)
	assert.Equal(t, 30, sb.scores[0].Score)
	assert.Contains(t, sb.View(), "HIGH SCORES")

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
}

func TestSessionFlow(t *testing.T) {
	store := newFakeStore()
	s := NewSessionModel(store, testRuntime(), "alice")
	assert.Equal(t, "alice", s.Username())

	// Menu -> game
	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	assert.Equal(t, screenGame, s.screen)
	assert.NotNil(t, cmd)

	// Pause, then back to the menu
	next, _ = s.Update(runeKey('p'))
	next, _ = next.Update(TickMsg{})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	assert.Equal(t, screenMenu, s.screen)

	// Menu -> scoreboard -> menu
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	assert.Equal(t, screenScoreboard, s.screen)
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	assert.Equal(t, screenMenu, s.screen)

	// Quit from the menu ends the session
	next, cmd = s.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
