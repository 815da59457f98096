// Package build holds build-time information.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the VCS revision the binary was built from.
var Commit = "none"

// Date is the build timestamp.
var Date = "unknown"

// RuntimeVersion is the artifact runtime version this tool provides.
// Artifacts declare the range of runtime versions they accept.
var RuntimeVersion = "1.4.0"
