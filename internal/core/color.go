package core

// Color is the foreground of a screen cell. The terminal shell maps each
// value to an ANSI 256-colour code.
type Color uint8

const (
	ColorDefault      Color = iota // terminal default
	ColorRed                       // chairs
	ColorBlue                      // walls
	ColorBrightRed                 // lives, fatality banner
	ColorBrightYellow              // player
	ColorBrightBlue                // ambulances
	ColorBrightWhite               // medicine, HUD text
	ColorDarkRed                   // fatality frame
	ColorGray                      // hints
)
