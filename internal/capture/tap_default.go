//go:build !darwin

package capture

import "context"

// NewSource returns the platform capture source. Only darwin has a real
// backend; other platforms fail once at startup.
func NewSource() Source {
	return SourceFunc(func(ctx context.Context, emit func(RawEvent)) error {
		return ErrUnsupported
	})
}
