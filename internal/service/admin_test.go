package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/model"
)

// newAdminService returns the service plus the buffer its moderation log
// writes to, so tests can check what was recorded.
func newAdminService(t *testing.T) (*AdminService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewAdminService(testCatalog(t), logger), &buf
}

func TestAdminUsers(t *testing.T) {
	svc, _ := newAdminService(t)

	all, err := svc.Users("", "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	banned, err := svc.Users("", "banned")
	require.NoError(t, err)
	require.Len(t, banned, 1)
	assert.Equal(t, "Robert Johnson", banned[0].Name)

	active, err := svc.Users("", "active")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	byEmail, err := svc.Users("MARIA@", "")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "2", byEmail[0].ID)

	_, err = svc.Users("", "suspended")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAdminSwaps(t *testing.T) {
	svc, _ := newAdminService(t)

	pending, err := svc.Swaps("", string(model.SwapPending))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].ID)

	bySkill, err := svc.Swaps("photo", "all")
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, "3", bySkill[0].ID)

	_, err = svc.Swaps("", "archived")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestBanAndUnban(t *testing.T) {
	svc, log := newAdminService(t)
	ctx := context.Background()

	u, err := svc.Ban(ctx, "1")
	require.NoError(t, err)
	assert.True(t, u.Banned)
	assert.Equal(t, "banned", u.Status)
	assert.Contains(t, log.String(), `"component":"moderation"`)
	assert.Contains(t, log.String(), "user banned")

	_, err = svc.Ban(ctx, "3")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	u, err = svc.Unban(ctx, "3")
	require.NoError(t, err)
	assert.False(t, u.Banned)
	assert.Equal(t, "active", u.Status)

	_, err = svc.Unban(ctx, "2")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.Ban(ctx, "9")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The table itself is unchanged.
	banned, err := svc.Users("", "banned")
	require.NoError(t, err)
	assert.Len(t, banned, 1)
}

func TestSwapAction(t *testing.T) {
	svc, _ := newAdminService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		id, action string
		wantStatus model.SwapStatus
		wantErr    error
	}{
		{"view", "1", "view", model.SwapPending, nil},
		{"approve pending", "1", "approve", model.SwapAccepted, nil},
		{"cancel pending", "1", "cancel", model.SwapCancelled, nil},
		{"approve accepted", "2", "approve", "", apperror.ErrConflict},
		{"cancel cancelled", "3", "cancel", "", apperror.ErrConflict},
		{"view terminal", "3", "view", model.SwapCancelled, nil},
		{"unknown action", "1", "delete", "", apperror.ErrValidation},
		{"unknown swap", "9", "view", "", apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swap, err := svc.SwapAction(ctx, tt.id, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, swap.Status)
		})
	}
}

func TestReportActionAndSpam(t *testing.T) {
	svc, log := newAdminService(t)
	ctx := context.Background()

	r, err := svc.ReportAction(ctx, "3", "escalate")
	require.NoError(t, err)
	assert.Equal(t, "escalated", r.Status)
	assert.Contains(t, log.String(), `"severity":"high"`)

	r, err = svc.ReportAction(ctx, "1", "resolve")
	require.NoError(t, err)
	assert.Equal(t, "resolved", r.Status)

	r, err = svc.ReportAction(ctx, "1", "view")
	require.NoError(t, err)
	assert.Equal(t, "pending", r.Status)

	_, err = svc.ReportAction(ctx, "1", "ignore")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = svc.ReportAction(ctx, "7", "resolve")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	spam, err := svc.RejectSpam(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "rejected", spam.Status)
	assert.Equal(t, "pending", svc.Spam()[1].Status)

	_, err = svc.RejectSpam(ctx, "5")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBroadcast(t *testing.T) {
	svc, log := newAdminService(t)
	ctx := context.Background()

	_, err := svc.Broadcast(ctx, " ", "body")
	assert.Equal(t, "title", apperror.FieldOf(err))

	_, err = svc.Broadcast(ctx, "Maintenance", "")
	assert.Equal(t, "message", apperror.FieldOf(err))
	assert.Empty(t, log.String())

	notice, err := svc.Broadcast(ctx, "Maintenance", "Down at noon")
	require.NoError(t, err)
	assert.Equal(t, "Message Sent", notice.Title)
	assert.Contains(t, log.String(), "broadcast queued")
}

func TestExport(t *testing.T) {
	svc, _ := newAdminService(t)
	ctx := context.Background()

	tests := []struct {
		kind     string
		rows     int
		firstCol string
	}{
		{"users", 4, "id"},
		{"swaps", 4, "id"},
		{"feedback", 6, "id"},
		{"reports", 4, "id"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			var out strings.Builder
			require.NoError(t, svc.Export(ctx, tt.kind, &out))

			records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
			require.NoError(t, err)
			assert.Len(t, records, tt.rows)
			assert.Equal(t, tt.firstCol, records[0][0])
		})
	}

	t.Run("values survive quoting", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, svc.Export(ctx, "users", &out))
		records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
		require.NoError(t, err)

		robert := records[3]
		assert.Equal(t, "Robert Johnson", robert[1])
		assert.Equal(t, "2.1", robert[6])
		assert.Equal(t, "true", robert[8])
	})

	t.Run("unknown kind", func(t *testing.T) {
		var out strings.Builder
		err := svc.Export(ctx, "passwords", &out)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Empty(t, out.String())
	})

	assert.ElementsMatch(t, []string{"users", "swaps", "feedback", "reports"}, ExportKinds)
}
