// Package rfi implements the second pipeline stage: combination of
// per-polarization SK flags into good-channel masks and masked
// integration of block power into coarser frequency blocks.
package rfi

import (
	"fmt"

	"skpipe/internal/spectral"
)

// Policy selects how the two polarizations' flags are combined into
// good masks. The set is closed; ParsePolicy rejects anything else.
type Policy int

const (
	// PolicySeparate gives each polarization its own mask from its own
	// flags; the polarizations never influence each other.
	PolicySeparate Policy = iota
	// PolicyOr marks a cell flagged when either polarization flagged
	// it; both polarizations share the resulting mask.
	PolicyOr
	// PolicyAnd marks a cell flagged only when both polarizations
	// flagged it; both polarizations share the resulting mask.
	PolicyAnd
)

// ParsePolicy maps the on-disk/CLI spelling to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "separate":
		return PolicySeparate, nil
	case "or":
		return PolicyOr, nil
	case "and":
		return PolicyAnd, nil
	default:
		return 0, fmt.Errorf("%w: flag mode %q must be one of separate, or, and",
			spectral.ErrConfig, s)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicySeparate:
		return "separate"
	case PolicyOr:
		return "or"
	case PolicyAnd:
		return "and"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}
