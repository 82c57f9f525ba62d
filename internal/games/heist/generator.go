package heist

import (
	"fmt"
	"math/rand"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/core"
)

// Obstacle layout constants. The arithmetic is carried over exactly so that
// layouts are reproducible from the floor number alone.
const (
	obstacleOrigin  = 50  // Obstacles start this far from the top-left corner
	obstacleSpan    = 150 // Canvas dimension minus this bounds the position modulus
	obstacleStepX   = 150 // Per-index x stride
	obstacleStepY   = 100 // Per-index y stride
	obstacleMinSize = 20
	obstacleSizeMod = 100

	// Re-derivation of obstacles that land on a keep-out zone.
	obstacleSalts = 16
	saltStepX     = 37
	saltStepY     = 53
)

// Level is everything the generator derives for one floor.
type Level struct {
	Floor     int
	Walls     []Wall
	Money     []Money
	Guards    []Guard
	Password  string
	Door      Point
	Station   Point
	Spawn     Point
	Fallbacks int // Money items placed after exhausting rejection sampling
}

// Generator derives floors. Wall layout depends only on the floor number;
// guard, money and password placement come from rng and differ per call.
type Generator struct {
	cfg config.HeistConfig
	rng *rand.Rand
}

// NewGenerator creates a generator drawing randomness from rng.
func NewGenerator(cfg config.HeistConfig, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Generate builds a fresh layout for floor (values below 1 are treated as 1).
func (g *Generator) Generate(floor int) Level {
	if floor < 1 {
		floor = 1
	}

	lvl := Level{
		Floor:   floor,
		Door:    DoorPosition(g.cfg),
		Station: StationPosition(g.cfg),
		Spawn:   core.V(g.cfg.Player.StartX, g.cfg.Player.StartY),
	}

	lvl.Walls = append(BoundaryWalls(g.cfg), Obstacles(g.cfg, floor)...)
	lvl.Guards = g.placeGuards(floor)
	lvl.Money, lvl.Fallbacks = g.placeMoney(floor, lvl.Walls)
	lvl.Password = fmt.Sprintf("%04d", 1000+g.rng.Intn(9000))

	return lvl
}

// BoundaryWalls returns the four rectangles framing the canvas.
func BoundaryWalls(cfg config.HeistConfig) []Wall {
	w, h, t := cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.WallThickness
	return []Wall{
		core.NewRect(0, 0, w, t),   // top
		core.NewRect(0, h-t, w, t), // bottom
		core.NewRect(0, 0, t, h),   // left
		core.NewRect(w-t, 0, t, h), // right
	}
}

// ObstacleCount returns min(base+floor, max).
func ObstacleCount(cfg config.HeistConfig, floor int) int {
	return min(cfg.Generation.BaseObstacles+floor, cfg.Generation.MaxObstacles)
}

// Obstacles returns the interior obstacles for floor.
//
// For obstacle i with seed = floor*obstacle_seed:
//
//	x = 50 + (seed + i*150) mod (W-150)
//	y = 50 + (seed + i*100) mod (H-150)
//	w = 20 + (seed*(i+1)) mod 100
//	h = 20 + (seed*(i+2)) mod 100
//
// An obstacle covering the spawn, door or code station is re-derived with a
// salted offset so every floor stays completable; it is dropped only if all
// salts conflict.
func Obstacles(cfg config.HeistConfig, floor int) []Wall {
	n := ObstacleCount(cfg, floor)
	seed := floor * cfg.Generation.ObstacleSeed
	modX := int(cfg.Canvas.Width) - obstacleSpan
	modY := int(cfg.Canvas.Height) - obstacleSpan
	keepOut := keepOutZones(cfg)

	walls := make([]Wall, 0, n)
	for i := 0; i < n; i++ {
		w := obstacleMinSize + (seed*(i+1))%obstacleSizeMod
		h := obstacleMinSize + (seed*(i+2))%obstacleSizeMod

		for salt := 0; salt <= obstacleSalts; salt++ {
			x := obstacleOrigin + (seed+i*obstacleStepX+salt*saltStepX)%modX
			y := obstacleOrigin + (seed+i*obstacleStepY+salt*saltStepY)%modY
			r := core.NewRect(float64(x), float64(y), float64(w), float64(h))
			if !intersectsAny(r, keepOut) {
				walls = append(walls, r)
				break
			}
		}
	}
	return walls
}

// DoorPosition is the exit, a fixed offset from the bottom-right corner.
func DoorPosition(cfg config.HeistConfig) Point {
	off := cfg.Interaction.CornerOffset
	return core.V(cfg.Canvas.Width-off, cfg.Canvas.Height-off)
}

// StationPosition is the code station, a fixed offset from the top-right corner.
func StationPosition(cfg config.HeistConfig) Point {
	off := cfg.Interaction.CornerOffset
	return core.V(cfg.Canvas.Width-off, off)
}

// keepOutZones are the regions obstacles must leave free: the player spawn
// and the full reach of the door and code station.
func keepOutZones(cfg config.HeistConfig) []core.Rect {
	half := cfg.Player.Size / 2
	spawn := core.V(cfg.Player.StartX, cfg.Player.StartY)
	return []core.Rect{
		core.RectAround(spawn, half+cfg.Generation.MoneyMargin),
		core.RectAround(DoorPosition(cfg), cfg.Interaction.DoorRange+cfg.Player.Size),
		core.RectAround(StationPosition(cfg), cfg.Interaction.StationRange+cfg.Player.Size),
	}
}

func intersectsAny(r core.Rect, zones []core.Rect) bool {
	for _, z := range zones {
		if r.Intersects(z) {
			return true
		}
	}
	return false
}

// GuardCount returns min(1 + floor/2, max).
func GuardCount(cfg config.HeistConfig, floor int) int {
	return min(1+floor/2, cfg.Guards.MaxCount)
}

// GuardSpeed returns base + perFloor*floor.
func GuardSpeed(cfg config.HeistConfig, floor int) float64 {
	return cfg.Guards.BaseSpeed + cfg.Guards.SpeedPerFloor*float64(floor)
}

// placeGuards spawns guards uniformly inside the inset region, each with a
// two-point horizontal patrol [start, start+width].
func (g *Generator) placeGuards(floor int) []Guard {
	gc := g.cfg.Guards
	n := GuardCount(g.cfg, floor)
	spanX := g.cfg.Canvas.Width - 2*gc.Inset - gc.PatrolMax
	spanY := g.cfg.Canvas.Height - 2*gc.Inset

	guards := make([]Guard, n)
	for i := range guards {
		start := core.V(gc.Inset+g.rng.Float64()*spanX, gc.Inset+g.rng.Float64()*spanY)
		width := gc.PatrolMin + g.rng.Float64()*(gc.PatrolMax-gc.PatrolMin)
		guards[i] = Guard{
			ID:        i,
			Pos:       start,
			Path:      []Point{start, core.V(start.X+width, start.Y)},
			PathIndex: 0,
			Speed:     GuardSpeed(g.cfg, floor),
		}
	}
	return guards
}

// MoneyCount returns base + perFloor*floor.
func MoneyCount(cfg config.HeistConfig, floor int) int {
	return cfg.Generation.MoneyBase + cfg.Generation.MoneyPerFloor*floor
}

// placeMoney scatters collectibles by bounded rejection sampling: a point is
// redrawn while it lies inside any wall expanded by the margin. After
// max_placement_attempts the last candidate is kept and counted as a fallback.
func (g *Generator) placeMoney(floor int, walls []Wall) ([]Money, int) {
	gen := g.cfg.Generation
	inset := g.cfg.Canvas.WallThickness + gen.MoneyMargin
	spanX := g.cfg.Canvas.Width - 2*inset
	spanY := g.cfg.Canvas.Height - 2*inset

	n := MoneyCount(g.cfg, floor)
	money := make([]Money, n)
	fallbacks := 0
	for i := range money {
		var p Point
		placed := false
		for attempt := 0; attempt < gen.MaxPlacementAttempts; attempt++ {
			p = core.V(inset+g.rng.Float64()*spanX, inset+g.rng.Float64()*spanY)
			if !insideAnyWall(p, walls, gen.MoneyMargin) {
				placed = true
				break
			}
		}
		if !placed {
			fallbacks++
		}
		money[i] = Money{ID: i, Pos: p, Value: gen.ValuePerFloor * floor}
	}
	return money, fallbacks
}

func insideAnyWall(p Point, walls []Wall, margin float64) bool {
	for _, w := range walls {
		if w.Expand(margin).Contains(p) {
			return true
		}
	}
	return false
}
