package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackValidation(t *testing.T) {
	before := testutil.ToFloat64(ticketValidations.WithLabelValues("already used"))

	TrackValidation("already used")
	TrackValidation("already used")

	assert.Equal(t, before+2, testutil.ToFloat64(ticketValidations.WithLabelValues("already used")))
}

func TestTrackTicketsCreated(t *testing.T) {
	before := testutil.ToFloat64(ticketsCreated.WithLabelValues("available"))

	TrackTicketsCreated("available", 3)

	assert.Equal(t, before+3, testutil.ToFloat64(ticketsCreated.WithLabelValues("available")))
}

func TestTrackEventCache(t *testing.T) {
	hits := testutil.ToFloat64(eventCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(eventCacheLookups.WithLabelValues("miss"))

	TrackEventCache(true)
	TrackEventCache(false)
	TrackEventCache(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(eventCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(eventCacheLookups.WithLabelValues("miss")))
}
