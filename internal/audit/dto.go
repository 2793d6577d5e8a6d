package audit

import "errors"

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListFilter narrows an audit query. Zero values mean "no filter".
type ListFilter struct {
	UserID   *int64
	Action   string
	Severity Severity
	Limit    int
}

// Normalize applies the default and maximum result limits.
func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
}

func (f ListFilter) Validate() error {
	if f.Severity != "" && !f.Severity.Valid() {
		return errors.New("invalid severity filter")
	}
	return nil
}
