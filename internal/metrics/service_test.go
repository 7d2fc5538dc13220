package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncBookingAttempts()
	svc.IncBookingAttempts()
	svc.IncBookingConflicts()
	svc.IncBookingCancellations()
	svc.ObserveConflictCheckDuration(0.002)
	svc.SetStartupTime(1.5)

	assert.Equal(t, float64(2), testutil.ToFloat64(svc.BookingAttempts))
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.BookingConflicts))
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.BookingCancellations))
	assert.Equal(t, float64(1.5), testutil.ToFloat64(svc.StartupTimeSeconds))
}
