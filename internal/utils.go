// Package internal provides shared utilities for the PayFlow console.
//
// This module contains formatting helpers for currency amounts and the
// log-file path resolution used by the entry point.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// currencySymbols maps lowercase ISO currency codes to display symbols.
var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

// FormatAmount renders an amount in the smallest currency unit as a
// human-readable price. Unknown currencies fall back to "CODE 12.34".
func FormatAmount(amount int64, currency string) string {
	code := strings.ToLower(currency)
	whole := amount / 100
	cents := amount % 100
	if cents < 0 {
		cents = -cents
	}

	if sym, ok := currencySymbols[code]; ok {
		return fmt.Sprintf("%s%d.%02d", sym, whole, cents)
	}
	return fmt.Sprintf("%s %d.%02d", strings.ToUpper(currency), whole, cents)
}

// GetLogFilePath returns where the console writes its log. A TUI owns the
// terminal, so logs always go to a file.
func GetLogFilePath() string {
	if p := os.Getenv("PAYFLOW_LOG"); p != "" {
		return p
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "payflow.log")
	}
	return filepath.Join(cacheDir, "payflow", "payflow.log")
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
