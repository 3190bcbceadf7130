package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/mail"
	"github.com/festy23/hacksavvy/internal/storage"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
)

var pngProof = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}, bytes.Repeat([]byte{0}, 128)...)

var (
	alice = &auth.Identity{UserID: "user-alice", Email: "alice@example.com", Name: "Alice"}
	admin = &auth.Identity{UserID: "user-admin", Email: "admin@example.com", Name: "Admin"}
)

func testPolicy() auth.Policy {
	return auth.NewPolicy([]string{"admin@example.com"})
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&teamModel.Team{}, &teamModel.ReviewEvent{}))
	return db
}

func countTeams(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&teamModel.Team{}).Count(&n).Error)
	return n
}

// memoryStore is an in-memory object store.
type memoryStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleted   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

var _ storage.ObjectStore = (*memoryStore)(nil)

func (m *memoryStore) Upload(_ context.Context, objectPath, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.objects[objectPath] = data
	return m.PublicURL(objectPath), nil
}

func (m *memoryStore) PublicURL(objectPath string) string {
	return "/uploads/" + objectPath
}

func (m *memoryStore) Delete(_ context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectPath)
	m.deleted = append(m.deleted, objectPath)
	return nil
}

func (m *memoryStore) HealthCheck(context.Context) error { return nil }

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type mockNotifier struct {
	mock.Mock
}

var _ Notifier = (*mockNotifier)(nil)

func (m *mockNotifier) ApplicationReceived(ctx context.Context, team mail.TeamSummary, members []mail.Recipient) error {
	return m.Called(ctx, team, members).Error(0)
}

func (m *mockNotifier) RegistrationConfirmed(ctx context.Context, team mail.TeamSummary, leader mail.Recipient) error {
	return m.Called(ctx, team, leader).Error(0)
}

func (m *mockNotifier) PaymentRejected(ctx context.Context, team mail.TeamSummary, leader mail.Recipient, reason string) error {
	return m.Called(ctx, team, leader, reason).Error(0)
}

var errSMTPDown = errors.New("dial tcp: connection refused")

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func member(name string) teamModel.MemberInput {
	return teamModel.MemberInput{
		Name:           name,
		Email:          name + "@example.com",
		Phone:          "9876543210",
		College:        "MGIT",
		DietPreference: "Vegetarian",
	}
}

// registerRequest builds a valid request with the given number of extra members.
func registerRequest(teamName string, extra int) *teamModel.RegisterRequest {
	members := make([]teamModel.MemberInput, 0, extra)
	names := []string{"bob", "carol", "dave", "erin", "frank", "grace"}
	for i := 0; i < extra; i++ {
		members = append(members, member(names[i%len(names)]))
	}
	return &teamModel.RegisterRequest{
		TeamName: teamName,
		Track:    "AI",
		Leader: teamModel.MemberInput{
			Name:           "Alice",
			Email:          "alice@example.com",
			Phone:          "9876543210",
			College:        "MGIT",
			RollNo:         "22A91A0501",
			DietPreference: "Vegetarian",
		},
		Members:       members,
		TransactionID: "UTR123",
	}
}

func proof() *teamModel.ProofFile {
	return &teamModel.ProofFile{Filename: "valid.png", Data: pngProof}
}

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
