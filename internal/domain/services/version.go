package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
)

// ErrInvalidVersion matches every InvalidVersionError via errors.Is
var ErrInvalidVersion = errors.New("invalid version")

var semverRegex = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

// InvalidVersionError reports a version outside the accepted grammar
type InvalidVersionError struct {
	Input string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("Invalid version: %s. Please use 'v.major.minor.patch' or 'latest'.", e.Input)
}

// Is makes errors.Is(err, ErrInvalidVersion) hold
func (e *InvalidVersionError) Is(target error) bool {
	return target == ErrInvalidVersion
}

// ValidateVersion parses "latest" or a major.minor.patch triple. Inputs that
// start with a digit get the leading "v" added.
func ValidateVersion(raw string) (entities.Version, error) {
	if raw == entities.LatestVersion {
		return entities.Latest(), nil
	}

	tag := raw
	if startsWithDigit(raw) {
		tag = "v" + raw
	}

	m := semverRegex.FindStringSubmatch(tag)
	if m == nil {
		return entities.Version{}, &InvalidVersionError{Input: raw}
	}

	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return entities.Version{}, &InvalidVersionError{Input: raw}
		}
		parts[i] = n
	}
	return entities.SemVer(tag, parts[0], parts[1], parts[2]), nil
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
