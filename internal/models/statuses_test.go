package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(UserRoleTalent))
	assert.True(t, ValidRole(UserRoleDirector))
	assert.False(t, ValidRole(UserRole("admin")))
	assert.False(t, ValidRole(UserRole("")))
}

func TestCanTransitionApplicationStatus(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{ApplicationStatusPending, ApplicationStatusShortlisted, true},
		{ApplicationStatusPending, ApplicationStatusRejected, true},
		{ApplicationStatusPending, ApplicationStatusPending, false},
		{ApplicationStatusShortlisted, ApplicationStatusRejected, false},
		{ApplicationStatusRejected, ApplicationStatusShortlisted, false},
		{ApplicationStatusShortlisted, ApplicationStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionApplicationStatus(tt.from, tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestTerminalApplicationStatus(t *testing.T) {
	assert.False(t, TerminalApplicationStatus(ApplicationStatusPending))
	assert.True(t, TerminalApplicationStatus(ApplicationStatusShortlisted))
	assert.True(t, TerminalApplicationStatus(ApplicationStatusRejected))
}

func TestValidReviewStatus(t *testing.T) {
	assert.True(t, ValidReviewStatus(ApplicationStatusShortlisted))
	assert.True(t, ValidReviewStatus(ApplicationStatusRejected))
	assert.False(t, ValidReviewStatus(ApplicationStatusPending))
	assert.False(t, ValidReviewStatus(ApplicationStatus("accepted")))
}
