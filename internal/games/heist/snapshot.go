package heist

import "math"

// Snapshot contains the dynamic simulation state in primitive form for
// determinism checks and headless reports.
type Snapshot struct {
	Tick          uint64
	Floor         int
	Score         int
	TimeLeft      float64
	PlayerX       float64
	PlayerY       float64
	Phase         string
	EndReason     string
	FoundPassword bool
	Password      string
	Timeouts      int
	FloorsCleared int
	MoneyLeft     int

	// Guard state (each guard is 3 values: X, Y, PathIndex)
	GuardData []float64

	// Collected flags, one per money item in ID order
	CollectedData []bool
}

// TakeSnapshot flattens s.
func TakeSnapshot(s GameState) Snapshot {
	guardData := make([]float64, 0, len(s.Guards)*3)
	for _, g := range s.Guards {
		guardData = append(guardData, g.Pos.X, g.Pos.Y, float64(g.PathIndex))
	}

	collected := make([]bool, len(s.Money))
	for i, m := range s.Money {
		collected[i] = m.Collected
	}

	return Snapshot{
		Tick:          s.Ticks,
		Floor:         s.Floor,
		Score:         s.Score,
		TimeLeft:      s.TimeLeft,
		PlayerX:       s.Player.X,
		PlayerY:       s.Player.Y,
		Phase:         string(s.Phase()),
		EndReason:     string(s.EndReason),
		FoundPassword: s.FoundPassword,
		Password:      s.Password,
		Timeouts:      s.Timeouts,
		FloorsCleared: s.FloorsCleared,
		MoneyLeft:     s.MoneyLeft(),
		GuardData:     guardData,
		CollectedData: collected,
	}
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	return TakeSnapshot(g.state)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Floor)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Timeouts)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FloorsCleared) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MoneyLeft)     //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.TimeLeft)
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + hashString(snap.Phase)
	h = h*31 + hashString(snap.EndReason)
	h = h*31 + hashString(snap.Password)
	if snap.FoundPassword {
		h = h*31 + 1
	}

	for _, v := range snap.GuardData {
		h = h*31 + math.Float64bits(v)
	}

	for _, c := range snap.CollectedData {
		if c {
			h = h*31 + 1
		} else {
			h = h * 31
		}
	}

	return h
}

func hashString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}
