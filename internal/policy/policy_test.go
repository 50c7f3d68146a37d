package policy

import (
	"testing"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func activeCasting(ownerID string) *models.Casting {
	return &models.Casting{
		BaseModel: models.BaseModel{ID: "c1"},
		PostedBy:  ownerID,
		IsActive:  true,
	}
}

func deletedCasting(ownerID string) *models.Casting {
	now := time.Now()
	return &models.Casting{
		BaseModel: models.BaseModel{ID: "c1"},
		PostedBy:  ownerID,
		IsActive:  false,
		DeletedAt: &now,
	}
}

func TestCanViewCasting(t *testing.T) {
	owner := Actor{ID: "d1", Role: models.UserRoleDirector}
	stranger := Actor{ID: "t1", Role: models.UserRoleTalent}

	tests := []struct {
		name    string
		casting *models.Casting
		actor   Actor
		wantErr error
	}{
		{"active casting visible to anyone", activeCasting("d1"), stranger, nil},
		{"deleted casting hidden from public", deletedCasting("d1"), stranger, appErrors.ErrCastingNotFound},
		{"deleted casting visible to owner", deletedCasting("d1"), owner, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanViewCasting(tt.casting, tt.actor)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanMutateCasting(t *testing.T) {
	owner := Actor{ID: "d1", Role: models.UserRoleDirector}
	otherDirector := Actor{ID: "d2", Role: models.UserRoleDirector}

	tests := []struct {
		name    string
		casting *models.Casting
		actor   Actor
		wantErr error
	}{
		{"owner mutates active casting", activeCasting("d1"), owner, nil},
		{"non-owner rejected", activeCasting("d1"), otherDirector, appErrors.ErrNotAuthorized},
		{"deleted casting immutable even for owner", deletedCasting("d1"), owner, appErrors.ErrCastingDeleted},
		{"non-owner of deleted casting sees authz error first", deletedCasting("d1"), otherDirector, appErrors.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanMutateCasting(tt.casting, tt.actor)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanApply(t *testing.T) {
	talent := Actor{ID: "t1", Role: models.UserRoleTalent}
	director := Actor{ID: "d2", Role: models.UserRoleDirector}

	tests := []struct {
		name    string
		casting *models.Casting
		actor   Actor
		wantErr error
	}{
		{"talent applies to active casting", activeCasting("d1"), talent, nil},
		{"director cannot apply", activeCasting("d1"), director, appErrors.ErrNotAuthorized},
		{"deleted casting rejects applications", deletedCasting("d1"), talent, appErrors.ErrCastingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanApply(tt.casting, tt.actor)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanListCastingApplications(t *testing.T) {
	owner := Actor{ID: "d1", Role: models.UserRoleDirector}
	otherDirector := Actor{ID: "d2", Role: models.UserRoleDirector}

	assert.NoError(t, CanListCastingApplications(activeCasting("d1"), owner))
	assert.ErrorIs(t, CanListCastingApplications(activeCasting("d1"), otherDirector), appErrors.ErrNotAuthorized)
	// После удаления кастинга путь к его заявкам закрыт и для владельца.
	assert.ErrorIs(t, CanListCastingApplications(deletedCasting("d1"), owner), appErrors.ErrCastingNotFound)
}

func TestCanEditApplication(t *testing.T) {
	applicant := Actor{ID: "t1", Role: models.UserRoleTalent}
	otherTalent := Actor{ID: "t2", Role: models.UserRoleTalent}

	pendingApp := &models.Application{
		BaseModel:   models.BaseModel{ID: "a1"},
		ApplicantID: "t1",
		Status:      models.ApplicationStatusPending,
	}
	reviewedApp := &models.Application{
		BaseModel:   models.BaseModel{ID: "a1"},
		ApplicantID: "t1",
		Status:      models.ApplicationStatusShortlisted,
	}

	tests := []struct {
		name    string
		app     *models.Application
		casting *models.Casting
		actor   Actor
		wantErr error
	}{
		{"pending application editable by applicant", pendingApp, activeCasting("d1"), applicant, nil},
		{"other talent rejected", pendingApp, activeCasting("d1"), otherTalent, appErrors.ErrNotAuthorized},
		{"reviewed application frozen", reviewedApp, activeCasting("d1"), applicant, appErrors.ErrApplicationReviewed},
		{"deleted casting freezes application", pendingApp, deletedCasting("d1"), applicant, appErrors.ErrCastingDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanEditApplication(tt.app, tt.casting, tt.actor)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanWithdrawApplication(t *testing.T) {
	applicant := Actor{ID: "t1", Role: models.UserRoleTalent}

	pendingApp := &models.Application{ApplicantID: "t1", Status: models.ApplicationStatusPending}
	rejectedApp := &models.Application{ApplicantID: "t1", Status: models.ApplicationStatusRejected}

	assert.NoError(t, CanWithdrawApplication(pendingApp, applicant))
	assert.ErrorIs(t, CanWithdrawApplication(rejectedApp, applicant), appErrors.ErrApplicationNotPending)
	assert.ErrorIs(t, CanWithdrawApplication(pendingApp, Actor{ID: "t2", Role: models.UserRoleTalent}), appErrors.ErrNotAuthorized)
}

func TestCanChangeApplicationStatus(t *testing.T) {
	owner := Actor{ID: "d1", Role: models.UserRoleDirector}
	otherDirector := Actor{ID: "d2", Role: models.UserRoleDirector}

	pendingApp := &models.Application{ApplicantID: "t1", Status: models.ApplicationStatusPending}
	shortlistedApp := &models.Application{ApplicantID: "t1", Status: models.ApplicationStatusShortlisted}

	tests := []struct {
		name      string
		app       *models.Application
		casting   *models.Casting
		actor     Actor
		newStatus models.ApplicationStatus
		wantErr   error
	}{
		{"owner shortlists pending", pendingApp, activeCasting("d1"), owner, models.ApplicationStatusShortlisted, nil},
		{"owner rejects pending", pendingApp, activeCasting("d1"), owner, models.ApplicationStatusRejected, nil},
		{"pending is not a valid target", pendingApp, activeCasting("d1"), owner, models.ApplicationStatusPending, appErrors.ErrInvalidStatusValue},
		{"unknown status rejected", pendingApp, activeCasting("d1"), owner, models.ApplicationStatus("accepted"), appErrors.ErrInvalidStatusValue},
		{"terminal status frozen", shortlistedApp, activeCasting("d1"), owner, models.ApplicationStatusRejected, appErrors.ErrApplicationReviewed},
		{"non-owner rejected", pendingApp, activeCasting("d1"), otherDirector, models.ApplicationStatusShortlisted, appErrors.ErrNotAuthorized},
		{"deleted casting blocks review", pendingApp, deletedCasting("d1"), owner, models.ApplicationStatusShortlisted, appErrors.ErrCastingDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanChangeApplicationStatus(tt.app, tt.casting, tt.actor, tt.newStatus)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCastingChangedSinceApplied(t *testing.T) {
	applied := time.Now()
	before := applied.Add(-time.Hour)
	after := applied.Add(time.Hour)

	app := &models.Application{BaseModel: models.BaseModel{CreatedAt: applied}}

	assert.False(t, CastingChangedSinceApplied(nil, app))
	assert.False(t, CastingChangedSinceApplied(&models.Casting{IsUpdated: false}, app))
	assert.False(t, CastingChangedSinceApplied(&models.Casting{IsUpdated: true, LastUpdatedAt: &before}, app))
	assert.True(t, CastingChangedSinceApplied(&models.Casting{IsUpdated: true, LastUpdatedAt: &after}, app))
}
