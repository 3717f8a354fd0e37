// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Interactive stepper, Prometheus outcome counters, stdout span export
// 0.2.0 - Controlled altitude manoeuvre, configurable disturbance constants, JSON export
// 0.1.0 - Initial release: craft record, subsystem checks, seeded random crafts
