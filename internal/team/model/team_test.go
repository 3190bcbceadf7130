package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "teams", Team{}.TableName())
	assert.Equal(t, "review_events", ReviewEvent{}.TableName())
}

func TestTeam_BeforeUpdate(t *testing.T) {
	team := &Team{UpdatedAt: time.Now().Add(-time.Hour)}
	old := team.UpdatedAt

	require.NoError(t, team.BeforeUpdate(nil))
	assert.True(t, team.UpdatedAt.After(old))
}

func TestTeam_LeaderAndSize(t *testing.T) {
	assert.Equal(t, Member{}, (&Team{}).Leader())

	team := &Team{MembersData: datatypes.JSONSlice[Member]{{Name: "Alice"}, {Name: "Bob"}}}
	assert.Equal(t, "Alice", team.Leader().Name)
	assert.Equal(t, 2, team.Size())
}

func TestPaymentStatus(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusVerified.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, PaymentStatus("approved").Valid())

	assert.Equal(t, StatePending, StateFor(StatusPending))
	assert.Equal(t, StateVerified, StateFor(StatusVerified))
	assert.Equal(t, StateRejected, StateFor(StatusRejected))
}

func TestNewApplicationResponse(t *testing.T) {
	id := uuid.New()
	url := "/uploads/payment-proofs/u1/x.png"
	team := &Team{
		ID:                   id,
		LeaderUserID:         "u1",
		TeamName:             "Null Pointers",
		Track:                "AI",
		MembersData:          datatypes.JSONSlice[Member]{{Name: "Alice"}, {Name: "Bob"}},
		TransactionID:        "UTR123",
		PaymentScreenshotURL: &url,
		PaymentStatus:        StatusVerified,
	}

	resp := NewApplicationResponse(team)
	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, 2, resp.TeamSize)
	assert.Equal(t, StateVerified, resp.State)
	assert.Equal(t, &url, resp.PaymentScreenshotURL)

	empty := NewApplicationResponse(&Team{ID: id})
	assert.NotNil(t, empty.MembersData)
	assert.NotNil(t, NewApplicationList(nil))
}

func TestNewApplicationDetail(t *testing.T) {
	reason := "blurry"
	detail := NewApplicationDetail(&Team{ID: uuid.New(), PaymentStatus: StatusRejected}, []ReviewEvent{
		{ActorEmail: "admin@example.com", FromStatus: StatusPending, ToStatus: StatusRejected, Reason: &reason},
	})
	require.Len(t, detail.ReviewEvents, 1)
	assert.Equal(t, "admin@example.com", detail.ReviewEvents[0].ActorEmail)
	assert.Equal(t, &reason, detail.ReviewEvents[0].Reason)

	assert.NotNil(t, NewApplicationDetail(&Team{}, nil).ReviewEvents)
}
