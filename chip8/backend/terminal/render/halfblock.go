package render

// HalfBlock returns the glyph for two vertically stacked pixels drawn in
// one terminal cell, foreground on, background off.
func HalfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
