package core

// Color is the role of a screen cell. Games pick roles; the driver decides
// how each role looks on the terminal.
type Color uint8

// Cell roles.
const (
	ColorDefault Color = iota
	ColorWall
	ColorCash
	ColorDoor
	ColorStation
	ColorSpent // An interactable that has been used up
	ColorGuard
	ColorPlayer
	ColorBanner  // Titles of message boxes
	ColorWarning // HUD values that need attention
)
