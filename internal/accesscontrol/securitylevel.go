package accesscontrol

// SecurityLevel is a clearance tier, totally ordered limited < standard < high.
type SecurityLevel string

const (
	SecurityLimited  SecurityLevel = "limited"
	SecurityStandard SecurityLevel = "standard"
	SecurityHigh     SecurityLevel = "high"
)

func (l SecurityLevel) Valid() bool {
	switch l {
	case SecurityLimited, SecurityStandard, SecurityHigh:
		return true
	}
	return false
}

// Rank maps the tier onto the total order. Unknown or empty levels rank as
// standard so a missing column value does not silently grant high clearance.
func (l SecurityLevel) Rank() int {
	switch l {
	case SecurityLimited:
		return 0
	case SecurityHigh:
		return 2
	default:
		return 1
	}
}

// AtLeast reports whether the tier satisfies the required tier.
func (l SecurityLevel) AtLeast(required SecurityLevel) bool {
	return l.Rank() >= required.Rank()
}
