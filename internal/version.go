// Package internal provides version information and build metadata for the PayFlow console.
//
// This module centralizes all version-related constants and provides formatted strings
// for consistent display across the application. To update the version, change
// the AppVersion constant - all other version strings follow automatically.
package internal

// Application metadata constants.
const (
	// AppName is the official name of the application
	AppName = "PayFlow"

	// AppVersion follows semantic versioning (major.minor.patch)
	AppVersion = "0.4.2"

	// AppDesc is the tagline used in UI headers
	AppDesc = "Cloud Plan Purchase Confirmation"
)

// GetVersionString returns just the version number for programmatic use.
func GetVersionString() string {
	return AppVersion
}

// GetFullVersionString returns the application name with version for display.
// Example: "PayFlow v0.4.2"
func GetFullVersionString() string {
	return AppName + " v" + AppVersion
}

// GetSubtitle returns a compact version string for UI footers.
func GetSubtitle() string {
	return GetFullVersionString()
}
