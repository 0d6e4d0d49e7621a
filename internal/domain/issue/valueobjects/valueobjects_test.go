package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from IssueStatus
		to   IssueStatus
		want bool
	}{
		{StatusReported, StatusApproved, true},
		{StatusReported, StatusResolved, true},
		{StatusApproved, StatusInProgress, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusReported, false},
		{StatusResolved, StatusReported, false},
		{StatusApproved, StatusReported, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewIssueStatus(t *testing.T) {
	status, err := NewIssueStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = NewIssueStatus("closed")
	assert.Error(t, err)
}

func TestSeverity(t *testing.T) {
	assert.True(t, SeverityCritical.IsHighUrgency())
	assert.True(t, SeverityHigh.IsHighUrgency())
	assert.False(t, SeverityMedium.IsHighUrgency())
	assert.False(t, SeverityLow.IsHighUrgency())

	_, err := NewSeverity("urgent")
	assert.Error(t, err)
}
