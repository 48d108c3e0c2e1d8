package core

// Color is the role of a screen cell. Hosts map roles to real colors,
// so the simulation side never deals with terminal palettes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorShip
	ColorThrust // Engine trail particles
	ColorBullet
	ColorChaser  // Enemies homing on the ship
	ColorDrifter // Enemies on a fixed course
	ColorSpark   // Young explosion particles
	ColorEmber   // Fading explosion particles
	ColorHUD
	ColorDim
	ColorAlert
)
