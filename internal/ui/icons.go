package ui

import "os"

// asciiOnly is opted into with AIUP_ASCII=1 for terminals without
// Unicode glyph support.
func asciiOnly() bool {
	return os.Getenv("AIUP_ASCII") == "1"
}

func glyph(icon, fallback string) string {
	if asciiOnly() {
		return fallback
	}
	return icon
}

func IconOK() string    { return glyph("✓", "ok") }
func IconSkip() string  { return glyph("•", "--") }
func IconFail() string  { return glyph("×", "x") }
func IconArrow() string { return glyph("→", "->") }
