package heist

import "github.com/goldnoam/great-heist/internal/config"

// collectMoney marks every uncollected item within range of the player as
// collected and credits its value. Collected items are skipped for good.
func collectMoney(s *GameState, within float64) []Event {
	var events []Event
	for i := range s.Money {
		m := &s.Money[i]
		if m.Collected || !s.Player.Near(m.Pos, within) {
			continue
		}
		m.Collected = true
		s.Score += m.Value
		events = append(events, Event{Kind: EventCollect, MoneyID: m.ID, Value: m.Value})
	}
	return events
}

// capturingGuard returns the first guard within range of the player.
func capturingGuard(s *GameState, within float64) (Guard, bool) {
	for _, g := range s.Guards {
		if s.Player.Near(g.Pos, within) {
			return g, true
		}
	}
	return Guard{}, false
}

// checkStation reveals the password the first time the player reaches
// the code station.
func checkStation(s *GameState, cfg config.HeistConfig) []Event {
	if s.FoundPassword || !s.Player.Near(s.Station, cfg.Interaction.StationRange) {
		return nil
	}
	s.FoundPassword = true
	return []Event{{Kind: EventCodeFound}}
}

// checkDoor opens the terminal when the player steps into the door zone.
// Standing in the zone does not reopen it; the player must leave first.
func checkDoor(s *GameState, cfg config.HeistConfig) []Event {
	inside := s.Player.Near(s.Door, cfg.Interaction.DoorRange)
	entered := inside && !s.InDoorZone
	s.InDoorZone = inside
	if !entered {
		return nil
	}
	s.ShowTerminal = true
	return []Event{{Kind: EventTerminalOpened}}
}
