package heist

import (
	"testing"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/core"
)

func TestResolveMove(t *testing.T) {
	const size = 20

	tests := []struct {
		name   string
		walls  []Wall
		dx, dy float64
		want   Point
	}{
		{
			name: "free move",
			dx:   4, dy: 0,
			want: core.V(54, 50),
		},
		{
			name:  "x blocked",
			walls: []Wall{core.NewRect(62, 0, 10, 200)},
			dx:    4, dy: 0,
			want: core.V(50, 50),
		},
		{
			name:  "x blocked slides along y",
			walls: []Wall{core.NewRect(62, 0, 10, 200)},
			dx:    4, dy: 4,
			want: core.V(50, 54),
		},
		{
			name:  "y blocked slides along x",
			walls: []Wall{core.NewRect(0, 62, 200, 10)},
			dx:    4, dy: 4,
			want: core.V(54, 50),
		},
		{
			name:  "corner only hit by combined move",
			walls: []Wall{core.NewRect(62, 62, 20, 20)},
			dx:    4, dy: 4,
			want: core.V(50, 50),
		},
		{
			name:  "touching edge is not a collision",
			walls: []Wall{core.NewRect(64, 0, 10, 200)},
			dx:    4, dy: 0,
			want: core.V(54, 50),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveMove(core.V(50, 50), tc.dx, tc.dy, size, tc.walls)
			if got != tc.want {
				t.Errorf("resolveMove() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestClampInterior(t *testing.T) {
	cfg := config.DefaultHeistConfig()

	tests := []struct {
		in, want Point
	}{
		{core.V(5, 700), core.V(20, 580)},
		{core.V(900, -3), core.V(780, 20)},
		{core.V(300, 300), core.V(300, 300)},
	}

	for _, tc := range tests {
		if got := clampInterior(tc.in, cfg); got != tc.want {
			t.Errorf("clampInterior(%+v) = %+v, expected %+v", tc.in, got, tc.want)
		}
	}
}

func TestMovePlayerOpposingIntentsCancel(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	start := core.V(100, 100)

	got := movePlayer(start, Intent{Left: true, Right: true, Up: true, Down: true}, cfg, nil)
	if got != start {
		t.Errorf("movePlayer() with opposing intents = %+v, expected %+v", got, start)
	}
}

func TestMovePlayerDiagonal(t *testing.T) {
	cfg := config.DefaultHeistConfig()

	got := movePlayer(core.V(100, 100), Intent{Down: true, Right: true}, cfg, BoundaryWalls(cfg))
	if got != core.V(104, 104) {
		t.Errorf("diagonal move = %+v, expected (104,104)", got)
	}
}

func TestMovePlayerStopsAtBoundary(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	walls := BoundaryWalls(cfg)

	pos := core.V(50, 50)
	for i := 0; i < 50; i++ {
		pos = movePlayer(pos, Intent{Up: true, Left: true}, cfg, walls)
	}
	if pos != core.V(22, 22) {
		t.Errorf("after pushing into the corner player is at %+v, expected (22,22)", pos)
	}
	if blocked(pos, cfg.Player.Size, walls) {
		t.Error("player overlaps a boundary wall")
	}
}
