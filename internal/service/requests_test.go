package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/model"
)

func TestRequestActions(t *testing.T) {
	svc := NewRequestService(testCatalog(t), testLogger)
	ctx := context.Background()

	type action func(context.Context, string) (*RequestOutcome, error)

	tests := []struct {
		name       string
		act        action
		id         string
		wantStatus model.SwapStatus
		wantTitle  string
		wantErr    error
	}{
		{"accept incoming", svc.Accept, "1", model.SwapAccepted, "Request Accepted!", nil},
		{"reject incoming", svc.Reject, "2", model.SwapRejected, "Request Rejected", nil},
		{"cancel outgoing", svc.Cancel, "3", model.SwapCancelled, "Request Deleted", nil},
		{"accept outgoing", svc.Accept, "3", "", "", apperror.ErrConflict},
		{"cancel incoming", svc.Cancel, "1", "", "", apperror.ErrConflict},
		{"accept a scheduled swap", svc.Accept, "5", "", "", apperror.ErrConflict},
		{"unknown id", svc.Reject, "99", "", "", apperror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.act(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, out.Request.ID)
			assert.Equal(t, tt.wantStatus, out.Request.Status)
			assert.Equal(t, tt.wantTitle, out.Notice.Title)
		})
	}
}

func TestRequestActions_LeaveCatalogUnchanged(t *testing.T) {
	svc := NewRequestService(testCatalog(t), testLogger)

	_, err := svc.Accept(context.Background(), "1")
	require.NoError(t, err)

	lists := svc.List()
	assert.Equal(t, model.SwapPending, lists.Incoming[0].Status)
	assert.Len(t, lists.Incoming, 2)
	assert.Len(t, lists.Outgoing, 2)
	assert.Len(t, lists.Accepted, 2)

	// Accepting again is still legal because nothing was stored.
	_, err = svc.Accept(context.Background(), "1")
	assert.NoError(t, err)
}

func TestPropose(t *testing.T) {
	svc := NewRequestService(testCatalog(t), testLogger)
	ctx := context.Background()

	out, err := svc.Propose(ctx, model.SwapDraft{
		MemberID: "2", SkillOffered: "Python", SkillWanted: "React", Message: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mike Chen", out.Request.Counterpart.Name)
	assert.Equal(t, "New York, NY", out.Request.Counterpart.Location)
	assert.Equal(t, model.SwapPending, out.Request.Status)
	assert.Equal(t, "Request Sent!", out.Notice.Title)
	assert.Contains(t, out.Notice.Description, "Mike Chen")

	_, err = svc.Propose(ctx, model.SwapDraft{MemberID: "2", SkillWanted: "React"})
	assert.Equal(t, "skillOffered", apperror.FieldOf(err))

	_, err = svc.Propose(ctx, model.SwapDraft{MemberID: "42", SkillOffered: "a", SkillWanted: "b"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
