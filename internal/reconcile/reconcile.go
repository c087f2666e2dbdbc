package reconcile

import (
	"fmt"

	"TickVault/internal/model"
)

// IntegrityError marks an application-level fatal condition: a zero-value
// point, or the live and historical paths disagreeing about the same
// range. Never tolerated silently.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "data integrity violation: " + e.Reason
}

// CheckPoint rejects a decoded point whose Value is exactly zero. Zero
// closing values mean a corrupt dataset, not a parser fault.
func CheckPoint(p model.TimeSeriesPoint) error {
	if p.Value == 0 {
		return &IntegrityError{Reason: fmt.Sprintf("zero value at %s for %s", p.Timestamp, p.Symbol)}
	}
	return nil
}

// Compare verifies that the sequence accumulated from the streaming feed
// equals the historical query result element-for-element, field-for-field.
func Compare(live, historical []model.TimeSeriesPoint) error {
	if len(live) != len(historical) {
		return &IntegrityError{Reason: fmt.Sprintf("live emitted %d points, history returned %d", len(live), len(historical))}
	}
	for i := range live {
		if !live[i].Equal(historical[i]) {
			return &IntegrityError{Reason: fmt.Sprintf("point %d differs: live=%+v history=%+v", i, live[i], historical[i])}
		}
	}
	return nil
}
