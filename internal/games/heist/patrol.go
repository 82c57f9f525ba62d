package heist

// stepGuard advances one guard by a single tick.
//
// Within threshold of its target the guard switches to the next waypoint
// and stays put for the tick. Otherwise it walks speed units toward the
// target, stopping on it if the target is closer than speed.
func stepGuard(g Guard, threshold float64) Guard {
	if len(g.Path) == 0 {
		return g
	}
	if g.PathIndex < 0 || g.PathIndex >= len(g.Path) {
		g.PathIndex = 0
	}

	target := g.Target()
	delta := target.Sub(g.Pos)
	dist := delta.Len()

	switch {
	case dist < threshold:
		g.PathIndex = (g.PathIndex + 1) % len(g.Path)
	case g.Speed >= dist:
		g.Pos = target
	default:
		g.Pos = g.Pos.Add(delta.Scale(g.Speed / dist))
	}
	return g
}

// stepGuards advances every guard in place.
func stepGuards(guards []Guard, threshold float64) {
	for i := range guards {
		guards[i] = stepGuard(guards[i], threshold)
	}
}
