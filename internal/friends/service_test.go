package friends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trovehq/trove/internal/domain"
)

// MockRepository implements repository.Friendship for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFriendship(ctx context.Context, friendship *domain.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *MockRepository) GetFriendship(ctx context.Context, friendshipID string) (*domain.Friendship, error) {
	args := m.Called(ctx, friendshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Friendship), args.Error(1)
}

func (m *MockRepository) UpdateFriendshipStatus(ctx context.Context, friendshipID string, status domain.FriendshipStatus) error {
	args := m.Called(ctx, friendshipID, status)
	return args.Error(0)
}

func (m *MockRepository) DeleteFriendship(ctx context.Context, friendshipID string) error {
	args := m.Called(ctx, friendshipID)
	return args.Error(0)
}

func (m *MockRepository) ListFriendEntries(ctx context.Context, accountID string) ([]domain.FriendEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendEntry), args.Error(1)
}

// MockAccountRepository implements repository.Account for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountName(ctx context.Context, accountID, name string) error {
	args := m.Called(ctx, accountID, name)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func pendingFriendship(id, requester, recipient string) *domain.Friendship {
	return &domain.Friendship{
		ID:          id,
		RequesterID: requester,
		RecipientID: recipient,
		Status:      domain.FriendshipPending,
	}
}

func TestRequest_Success(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockAccounts.On("GetAccountByName", ctx, "BoldRanger7").
		Return(&domain.Account{ID: "bob", Name: "BoldRanger7"}, nil)
	mockRepo.On("CreateFriendship", ctx, mock.MatchedBy(func(f *domain.Friendship) bool {
		return f.RequesterID == "alice" && f.RecipientID == "bob" && f.Status == domain.FriendshipPending
	})).Return(nil)

	friendship, err := svc.Request(ctx, "alice", "BoldRanger7")

	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipPending, friendship.Status)
	mockRepo.AssertExpectations(t)
}

func TestRequest_RecipientUnknown(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockAccounts.On("GetAccountByName", ctx, "Nobody").Return(nil, domain.ErrAccountNotFound)

	_, err := svc.Request(ctx, "alice", "Nobody")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRequest_SelfTarget(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockAccounts.On("GetAccountByName", ctx, "MyOwnName").
		Return(&domain.Account{ID: "alice", Name: "MyOwnName"}, nil)

	_, err := svc.Request(ctx, "alice", "MyOwnName")

	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	mockRepo.AssertNotCalled(t, "CreateFriendship", mock.Anything, mock.Anything)
}

func TestRequest_DuplicatePair(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockAccounts.On("GetAccountByName", ctx, "BoldRanger7").
		Return(&domain.Account{ID: "bob", Name: "BoldRanger7"}, nil)
	mockRepo.On("CreateFriendship", ctx, mock.Anything).Return(domain.ErrDuplicateRequest)

	_, err := svc.Request(ctx, "alice", "BoldRanger7")

	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestAccept_ByRecipient(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "f-1").Return(pendingFriendship("f-1", "alice", "bob"), nil)
	mockRepo.On("UpdateFriendshipStatus", ctx, "f-1", domain.FriendshipAccepted).Return(nil)

	friendship, err := svc.Accept(ctx, "bob", "f-1")

	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipAccepted, friendship.Status)
}

func TestAccept_RequesterCannotAccept(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "f-1").Return(pendingFriendship("f-1", "alice", "bob"), nil)

	_, err := svc.Accept(ctx, "alice", "f-1")

	assert.ErrorIs(t, err, domain.ErrNotRequestRecipient)
	mockRepo.AssertNotCalled(t, "UpdateFriendshipStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_OutsiderCannotAccept(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "f-1").Return(pendingFriendship("f-1", "alice", "bob"), nil)

	_, err := svc.Accept(ctx, "mallory", "f-1")

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestAccept_AlreadyAnswered(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	accepted := pendingFriendship("f-1", "alice", "bob")
	accepted.Status = domain.FriendshipAccepted
	mockRepo.On("GetFriendship", ctx, "f-1").Return(accepted, nil)

	_, err := svc.Accept(ctx, "bob", "f-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReject_DeletesRequest(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "f-1").Return(pendingFriendship("f-1", "alice", "bob"), nil)
	mockRepo.On("DeleteFriendship", ctx, "f-1").Return(nil)

	require.NoError(t, svc.Reject(ctx, "bob", "f-1"))
	mockRepo.AssertExpectations(t)
}

func TestCancelRequest_RequesterOnly(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "f-1").Return(pendingFriendship("f-1", "alice", "bob"), nil)
	mockRepo.On("DeleteFriendship", ctx, "f-1").Return(nil)

	require.NoError(t, svc.CancelRequest(ctx, "alice", "f-1"))

	assert.ErrorIs(t, svc.CancelRequest(ctx, "bob", "f-1"), domain.ErrNotParticipant)
}

func TestCancelRequest_AlreadyAccepted(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	accepted := pendingFriendship("f-1", "alice", "bob")
	accepted.Status = domain.FriendshipAccepted
	mockRepo.On("GetFriendship", ctx, "f-1").Return(accepted, nil)

	assert.ErrorIs(t, svc.CancelRequest(ctx, "alice", "f-1"), domain.ErrInvalidInput)
}

func TestRemove_EitherParticipant(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	accepted := pendingFriendship("f-1", "alice", "bob")
	accepted.Status = domain.FriendshipAccepted
	mockRepo.On("GetFriendship", ctx, "f-1").Return(accepted, nil)
	mockRepo.On("DeleteFriendship", ctx, "f-1").Return(nil)

	require.NoError(t, svc.Remove(ctx, "alice", "f-1"))
	require.NoError(t, svc.Remove(ctx, "bob", "f-1"))
}

func TestRemove_PendingNotRemovable(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "f-1").Return(pendingFriendship("f-1", "alice", "bob"), nil)

	assert.ErrorIs(t, svc.Remove(ctx, "bob", "f-1"), domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "DeleteFriendship", mock.Anything, mock.Anything)
}

func TestRemove_NotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	mockRepo.On("GetFriendship", ctx, "ghost").Return(nil, domain.ErrFriendshipNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, "alice", "ghost"), domain.ErrFriendshipNotFound)
}

func TestList_ReturnsEntries(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	svc := NewService(mockRepo, mockAccounts)
	ctx := context.Background()

	entries := []domain.FriendEntry{
		{FriendshipID: "f-1", AccountID: "bob", Name: "BoldRanger7", Status: domain.FriendshipAccepted, Outgoing: true},
		{FriendshipID: "f-2", AccountID: "carol", Name: "WiseMage3", Status: domain.FriendshipPending, Outgoing: false},
	}
	mockRepo.On("ListFriendEntries", ctx, "alice").Return(entries, nil)

	got, err := svc.List(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
