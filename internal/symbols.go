// Package internal provides Unicode symbol definitions with fallback support for cross-platform compatibility.
//
// This module ensures consistent visual representation across different terminals
// by providing ASCII fallbacks for Unicode symbols that may not render properly everywhere.
package internal

import (
	"os"
	"strings"
)

// SymbolSet defines the symbols used throughout the UI
type SymbolSet struct {
	// Status indicators
	Success    string
	Error      string
	Warning    string
	Processing string

	// Payment icons
	Card string
	Link string

	// Progress indicators
	Progress []string // Animation frames
	Bullet   string
	Arrow    string
}

// UnicodeSymbols provides rich Unicode symbols for modern terminals
var UnicodeSymbols = SymbolSet{
	Success:    "✓",
	Error:      "✗",
	Warning:    "⚠️",
	Processing: "🔄",

	Card: "💳",
	Link: "🔗",

	Progress: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	Bullet:   "•",
	Arrow:    "➜",
}

// ASCIISymbols provides ASCII-only fallbacks for compatibility
var ASCIISymbols = SymbolSet{
	Success:    "[OK]",
	Error:      "[X]",
	Warning:    "[!]",
	Processing: "[~]",

	Card: "[CC]",
	Link: "[->]",

	Progress: []string{"|", "/", "-", "\\"},
	Bullet:   "*",
	Arrow:    "->",
}

// CurrentSymbols holds the active symbol set based on terminal capabilities
var CurrentSymbols SymbolSet

func init() {
	CurrentSymbols = detectSymbolSet()
}

// detectSymbolSet determines the appropriate symbol set based on environment
func detectSymbolSet() SymbolSet {
	// Check for explicit ASCII mode via environment variable
	if os.Getenv("PAYFLOW_ASCII") == "1" || os.Getenv("PAYFLOW_ASCII") == "true" {
		return ASCIISymbols
	}

	// Check TERM environment variable for known problematic terminals
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" || term == "vt100" || strings.HasPrefix(term, "xterm-mono") {
		return ASCIISymbols
	}

	// SSH sessions without a UTF-8 locale tend to mangle Unicode
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" {
		locale := strings.ToLower(os.Getenv("LANG"))
		if !strings.Contains(locale, "utf-8") && !strings.Contains(locale, "utf8") {
			return ASCIISymbols
		}
	}

	// Default to Unicode for modern terminals
	return UnicodeSymbols
}

// GetProgressFrame returns the progress animation frame for the given tick
func GetProgressFrame(tick int) string {
	frames := CurrentSymbols.Progress
	if len(frames) == 0 {
		return ""
	}
	return frames[tick%len(frames)]
}

// FormatSuccess formats a success message with the appropriate symbol
func FormatSuccess(message string) string {
	return CurrentSymbols.Success + " " + message
}

// FormatError formats an error message with the appropriate symbol
func FormatError(message string) string {
	return CurrentSymbols.Error + " " + message
}
