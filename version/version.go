// Package version holds the build version, set with -ldflags at release time.
package version

// Version is the version of the snake binary.
var Version = "dev"
