// Package version exposes the build version stamped in at link time.
package version

var version = "dev"

// GetInfo returns the version string shown in banners and version output.
func GetInfo() string {
	return version
}
