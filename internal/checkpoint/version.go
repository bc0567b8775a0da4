package checkpoint

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// FormatVersion is the on-disk layout version written to new stores.
const FormatVersion = "v1.0.0"

// IsCompatibleVersion reports whether a store written with storeVersion can
// be read by code at currentVersion. Only the major versions must match.
func IsCompatibleVersion(storeVersion, currentVersion string) (bool, error) {
	if !semver.IsValid(storeVersion) {
		return false, fmt.Errorf("invalid store version: %s", storeVersion)
	}
	if !semver.IsValid(currentVersion) {
		return false, fmt.Errorf("invalid current version: %s", currentVersion)
	}

	return semver.Major(storeVersion) == semver.Major(currentVersion), nil
}

// CompatibilityError describes why a store cannot be opened.
func CompatibilityError(storeVersion, currentVersion string) string {
	return fmt.Sprintf(
		"store version %s is incompatible with format %s, required version: %s.x.x",
		storeVersion, currentVersion, semver.Major(currentVersion),
	)
}
