package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version of sprout
const (
	Major = 0
	Minor = 3
	Patch = 0
)

var ErrInvalidConstraint = errors.New("invalid version constraint")

// Current returns the running version.
func Current() *semver.Version {
	return semver.New(Major, Minor, Patch, "", "")
}

// String gives you the string representation of the version
func String() string {
	return Current().String()
}

// Satisfies reports whether v matches the constraint expression, e.g. ">= 0.2, < 1".
// An empty constraint matches every version.
func Satisfies(v *semver.Version, constraint string) (bool, error) {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return true, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrInvalidConstraint, constraint, err)
	}

	return c.Check(v), nil
}

// CurrentSatisfies is Satisfies for the running version.
func CurrentSatisfies(constraint string) (bool, error) {
	return Satisfies(Current(), constraint)
}
