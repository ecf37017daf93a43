package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMetrics(t *testing.T) {
	before := GetMetrics()
	IncrCloudRequests()
	IncrSamplesSaved()
	IncrSamplesSaved()

	after := GetMetrics()
	assert.Equal(t, before["cloud_requests"]+1, after["cloud_requests"])
	assert.Equal(t, before["samples_saved"]+2, after["samples_saved"])

	lines := strings.Split(strings.TrimSpace(FormatMetrics()), "\n")
	assert.Len(t, lines, len(metricKeys))
	assert.True(t, strings.HasPrefix(lines[0], "cloud_requests "))
}

func TestTrackOperationPassesError(t *testing.T) {
	err := TrackOperation(context.Background(), "op", func(context.Context) error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
}
