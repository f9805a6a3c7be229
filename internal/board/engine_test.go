package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, size int, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithSeed(42)}, opts...)
	e, err := New(size, opts...)
	require.NoError(t, err)
	return e
}

func TestNewStartsWithTwoTiles(t *testing.T) {
	for _, size := range []int{2, 4, 6} {
		e := newTestEngine(t, size)

		grid := e.Grid()
		assert.Equal(t, InitialTiles, grid.TileCount(), "size %d", size)
		for _, row := range grid.Rows() {
			for _, v := range row {
				assert.Contains(t, []int{0, 2, 4}, v)
			}
		}
		assert.Equal(t, 0, e.Score())
		assert.Equal(t, StatusInProgress, e.Status())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		size int
		opts []Option
	}{
		{"size too small", 1, nil},
		{"win target not power of two", 4, []Option{WithWinTarget(100)}},
		{"win target too low", 4, []Option{WithWinTarget(2)}},
		{"negative probability", 4, []Option{WithSpawn4Prob(-0.1)}},
		{"probability above one", 4, []Option{WithSpawn4Prob(1.5)}},
		{"negative best", 4, []Option{WithBestScore(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMoveNoOpDoesNotSpawn(t *testing.T) {
	// Given: a fully compacted, non-mergeable row
	e := newTestEngine(t, 4)
	require.NoError(t, e.Load([][]int{
		{2, 4, 8, 16},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))

	// When: sliding left through Play
	turn, err := e.Play(DirLeft)

	// Then: nothing changed and no tile appeared
	require.NoError(t, err)
	assert.False(t, turn.Changed)
	assert.Nil(t, turn.Spawned)
	assert.Equal(t, 4, e.Grid().TileCount())
}

func TestMoveAddsScoreWithoutSpawning(t *testing.T) {
	e := newTestEngine(t, 4)
	require.NoError(t, e.Load([][]int{
		{0, 2, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))

	res, err := e.Move(DirLeft)
	require.NoError(t, err)

	assert.Equal(t, MoveResult{Changed: true, ScoreDelta: 4}, res)
	assert.Equal(t, 4, e.Score())
	assert.Equal(t, [][]int{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, e.Grid().Rows())
}

func TestPlaySpawnsAfterChange(t *testing.T) {
	e := newTestEngine(t, 4)
	require.NoError(t, e.Load([][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))

	turn, err := e.Play(DirLeft)
	require.NoError(t, err)

	require.True(t, turn.Changed)
	require.NotNil(t, turn.Spawned)
	assert.Contains(t, []int{2, 4}, turn.Spawned.Value)

	v, err := e.Cell(turn.Spawned.Row, turn.Spawned.Col)
	require.NoError(t, err)
	assert.Equal(t, turn.Spawned.Value, v)
	assert.Equal(t, 2, e.Grid().TileCount())
}

func TestMoveInvalidDirection(t *testing.T) {
	e := newTestEngine(t, 4)
	before := e.Grid()

	_, err := e.Move(Direction(-1))
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = e.Play(Direction(4))
	assert.ErrorIs(t, err, ErrInvalidDirection)

	assert.True(t, e.Grid().Equal(before))
}

func TestCellOutOfBounds(t *testing.T) {
	e := newTestEngine(t, 4)

	_, err := e.Cell(4, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = e.Cell(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSpawnTileOnFullBoard(t *testing.T) {
	e := newTestEngine(t, 2)
	require.NoError(t, e.Load([][]int{
		{2, 4},
		{4, 2},
	}, 0))

	_, ok := e.SpawnTile()
	assert.False(t, ok)
	assert.Equal(t, [][]int{{2, 4}, {4, 2}}, e.Grid().Rows())
}

func TestSpawnDistribution(t *testing.T) {
	e := newTestEngine(t, 4, WithRand(rand.New(rand.NewSource(1))))

	fours := 0
	const trials = 5000
	for range trials {
		e.NewGame()
		for _, row := range e.Grid().Rows() {
			for _, v := range row {
				if v == 4 {
					fours++
				}
			}
		}
	}

	ratio := float64(fours) / float64(trials*InitialTiles)
	assert.InDelta(t, DefaultSpawn4Prob, ratio, 0.02)
}

func TestSpawnProbabilityOverride(t *testing.T) {
	e := newTestEngine(t, 4, WithSpawn4Prob(1))
	for _, row := range e.Grid().Rows() {
		for _, v := range row {
			assert.Contains(t, []int{0, 4}, v)
		}
	}
}

func TestDeterministicSeed(t *testing.T) {
	e1 := newTestEngine(t, 4, WithSeed(12345))
	e2 := newTestEngine(t, 4, WithSeed(12345))

	assert.Equal(t, e1.Grid().Rows(), e2.Grid().Rows())

	for _, dir := range []Direction{DirLeft, DirUp, DirRight, DirDown, DirLeft} {
		t1, err1 := e1.Play(dir)
		t2, err2 := e2.Play(dir)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, t1, t2)
	}
	assert.Equal(t, e1.Snapshot(), e2.Snapshot())
}

func TestUnmovableBoardIsLost(t *testing.T) {
	e := newTestEngine(t, 2)
	require.NoError(t, e.Load([][]int{
		{2, 4},
		{4, 2},
	}, 12))

	assert.False(t, e.CanMove())
	assert.Equal(t, StatusLost, e.Status())

	for _, dir := range Directions {
		res, err := e.Move(dir)
		require.NoError(t, err)
		assert.False(t, res.Changed, "direction %v", dir)
	}
}

func TestPlayFillsLastCellWithoutLosing(t *testing.T) {
	// Given: a 2x2 board with one empty cell
	e := newTestEngine(t, 2, WithSpawn4Prob(0))
	require.NoError(t, e.Load([][]int{
		{2, 4},
		{0, 8},
	}, 0))

	// When: sliding down leaves only the top-left cell empty, filled by a 2
	turn, err := e.Play(DirDown)

	// Then: the board is full but the left column can still merge
	require.NoError(t, err)
	require.True(t, turn.Changed)
	assert.Equal(t, [][]int{{2, 4}, {2, 8}}, e.Grid().Rows())
	assert.False(t, turn.Lost)

	turn, err = e.Play(DirUp)
	require.NoError(t, err)
	assert.Equal(t, 4, turn.ScoreDelta)
	assert.Equal(t, [][]int{{4, 4}, {2, 8}}, e.Grid().Rows())
	assert.False(t, turn.Lost)
}

func TestPlayLossWithAutoRestart(t *testing.T) {
	e := newTestEngine(t, 2, WithSpawn4Prob(0), WithAutoRestart(true))
	require.NoError(t, e.Load([][]int{
		{2, 0},
		{4, 8},
	}, 100))

	// The 8 slides up and the spawned 2 fills (1, 1): no equal neighbours remain.
	turn, err := e.Play(DirUp)
	require.NoError(t, err)
	require.True(t, turn.Changed)

	assert.True(t, turn.Lost)
	assert.True(t, turn.Restarted)
	assert.Equal(t, 100, turn.Final)
	assert.Equal(t, 8, turn.FinalTile)
	assert.False(t, turn.FinalWon)
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 100, e.BestScore())
	assert.Equal(t, InitialTiles, e.Grid().TileCount())
}

func TestPlayLossWithoutAutoRestart(t *testing.T) {
	e := newTestEngine(t, 2, WithSpawn4Prob(0))
	require.NoError(t, e.Load([][]int{
		{2, 0},
		{4, 8},
	}, 100))

	turn, err := e.Play(DirUp)
	require.NoError(t, err)

	assert.True(t, turn.Lost)
	assert.False(t, turn.Restarted)
	assert.Equal(t, 100, turn.Final)
	assert.Equal(t, 8, turn.FinalTile)
	assert.Equal(t, StatusLost, e.Status())
	assert.Equal(t, [][]int{{2, 8}, {4, 2}}, e.Grid().Rows())
}

func TestWinNotifiesOnce(t *testing.T) {
	e := newTestEngine(t, 4, WithWinTarget(16), WithSpawn4Prob(0))
	require.NoError(t, e.Load([][]int{
		{8, 8, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0))
	assert.False(t, e.HasWon())

	turn, err := e.Play(DirLeft)
	require.NoError(t, err)
	assert.True(t, turn.Won)
	assert.True(t, e.HasWon())
	assert.Equal(t, StatusWon, e.Status())

	// Play continues after a win without a second notification.
	turn, err = e.Play(DirRight)
	require.NoError(t, err)
	require.True(t, turn.Changed)
	assert.False(t, turn.Won)
	assert.True(t, e.HasWon())

	e.NewGame()
	assert.False(t, e.HasWon())
}

func TestResetKeepsBestScore(t *testing.T) {
	e := newTestEngine(t, 4, WithBestScore(50))
	require.NoError(t, e.Load([][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 10))

	_, err := e.Move(DirLeft)
	require.NoError(t, err)
	assert.Equal(t, 138, e.Score())
	assert.Equal(t, 138, e.BestScore())

	e.NewGame()
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 138, e.BestScore())
	assert.Equal(t, InitialTiles, e.Grid().TileCount())
}

func TestLoadRejectsMismatchedSize(t *testing.T) {
	e := newTestEngine(t, 4)
	err := e.Load([][]int{{2, 0}, {0, 0}}, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = e.Load([][]int{{3, 0}, {0, 0}}, 0)
	assert.ErrorIs(t, err, ErrInvalidTile)
}

func TestScoreNeverDecreasesDuringPlay(t *testing.T) {
	e := newTestEngine(t, 4, WithSeed(99))
	rng := rand.New(rand.NewSource(3))

	prev := e.Score()
	for range 2000 {
		if e.Status() == StatusLost {
			break
		}
		turn, err := e.Play(Directions[rng.Intn(len(Directions))])
		require.NoError(t, err)
		assert.Equal(t, prev+turn.ScoreDelta, e.Score())
		prev = e.Score()

		for _, row := range e.Grid().Rows() {
			for _, v := range row {
				assert.True(t, IsTileValue(v), "tile %d", v)
			}
		}
	}
}
