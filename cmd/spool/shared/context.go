// Package shared holds the context passed to all CLI commands.
package shared

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Root overrides the profile data root.
	// When empty, resolution falls through to SPOOL_ROOT env var → persisted config → ~/.spool.
	Root string

	// Verbose enables debug logging (locator probe trace).
	Verbose bool
}
