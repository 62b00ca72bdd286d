package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trovehq/trove/internal/domain"
	"github.com/trovehq/trove/internal/repository"
)

// MockRepository implements repository.Inventory for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetInventory(ctx context.Context, accountID string) (*domain.Inventory, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockRepository) UpdateInventory(ctx context.Context, accountID string, inventory domain.Inventory) error {
	args := m.Called(ctx, accountID, inventory)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.InventoryTx), args.Error(1)
}

// MockTx implements repository.InventoryTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTx) UpdateAccountMoney(ctx context.Context, accountID string, money int64) error {
	args := m.Called(ctx, accountID, money)
	return args.Error(0)
}

func (m *MockTx) GetInventoryForUpdate(ctx context.Context, accountID string) (*domain.Inventory, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockTx) UpdateInventory(ctx context.Context, accountID string, inventory domain.Inventory) error {
	args := m.Called(ctx, accountID, inventory)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
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

// MockCatalog implements catalog.Service for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetItemByName(ctx context.Context, itemName string) (*domain.Item, error) {
	args := m.Called(ctx, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockCatalog) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockCatalog) GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockCatalog) GetItemsByRarity(ctx context.Context, r domain.Rarity) ([]domain.Item, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockCatalog) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func testAccount(id string) *domain.Account {
	return &domain.Account{ID: id, Name: id}
}

func TestGetInventory_JoinsCatalogSorted(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockAccounts.On("GetAccount", ctx, "acct-1").Return(testAccount("acct-1"), nil)
	mockRepo.On("GetInventory", ctx, "acct-1").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 9, Quantity: 2}, {ItemID: 3, Quantity: 5}},
	}, nil)
	mockCatalog.On("GetItemsByIDs", ctx, []int{9, 3}).Return([]domain.Item{
		{ID: 9, InternalName: "moonstone", DisplayName: "Moonstone", Rarity: domain.RarityEpic},
		{ID: 3, InternalName: "acorn", DisplayName: "Acorn", Rarity: domain.RarityCommon},
	}, nil)

	entries, err := svc.GetInventory(ctx, "acct-1")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].ItemID) // sorted by item ID
	assert.Equal(t, "acorn", entries[0].InternalName)
	assert.Equal(t, 5, entries[0].Quantity)
	assert.Equal(t, 9, entries[1].ItemID)
}

func TestGetInventory_SkipsUnknownItems(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockAccounts.On("GetAccount", ctx, "acct-1").Return(testAccount("acct-1"), nil)
	mockRepo.On("GetInventory", ctx, "acct-1").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 3, Quantity: 5}, {ItemID: 404, Quantity: 1}},
	}, nil)
	mockCatalog.On("GetItemsByIDs", ctx, []int{3, 404}).Return([]domain.Item{
		{ID: 3, InternalName: "acorn"},
	}, nil)

	entries, err := svc.GetInventory(ctx, "acct-1")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].ItemID)
}

func TestGetInventory_AccountNotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockAccounts.On("GetAccount", ctx, "ghost").Return(nil, domain.ErrAccountNotFound)

	_, err := svc.GetInventory(ctx, "ghost")

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddQuantity_MergesSlot(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	mockTx := &MockTx{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "acct-1").Return(testAccount("acct-1"), nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "acct-1").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 3, Quantity: 2}},
	}, nil)
	mockTx.On("UpdateInventory", ctx, "acct-1", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Slots) == 1 && inv.Slots[0].Quantity == 5
	})).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockTx.On("Rollback", ctx).Return(nil)

	require.NoError(t, svc.AddQuantity(ctx, "acct-1", "acorn", 3))
	mockTx.AssertExpectations(t)
}

func TestAddQuantity_UnknownItem(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "unobtainium").Return(nil, domain.ErrItemNotFound)

	err := svc.AddQuantity(ctx, "acct-1", "unobtainium", 1)

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestAddQuantity_QuantityBounds(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddQuantity(ctx, "acct-1", "acorn", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.AddQuantity(ctx, "acct-1", "acorn", domain.MaxTransactionQuantity+1), domain.ErrInvalidInput)
}

func TestRemoveQuantity_DrainsSlotCompletely(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	mockTx := &MockTx{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "acct-1").Return(testAccount("acct-1"), nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "acct-1").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 3, Quantity: 4}},
	}, nil)
	// Slot drained to zero disappears instead of persisting empty.
	mockTx.On("UpdateInventory", ctx, "acct-1", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Slots) == 0
	})).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockTx.On("Rollback", ctx).Return(nil)

	require.NoError(t, svc.RemoveQuantity(ctx, "acct-1", "acorn", 4))
	mockTx.AssertExpectations(t)
}

func TestRemoveQuantity_InsufficientQuantity(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	mockTx := &MockTx{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "acct-1").Return(testAccount("acct-1"), nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "acct-1").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 3, Quantity: 2}},
	}, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	err := svc.RemoveQuantity(ctx, "acct-1", "acorn", 5)

	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	mockTx.AssertNotCalled(t, "UpdateInventory", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveQuantity_NotInInventory(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	mockTx := &MockTx{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "acct-1").Return(testAccount("acct-1"), nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "acct-1").Return(&domain.Inventory{}, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	err := svc.RemoveQuantity(ctx, "acct-1", "acorn", 1)

	assert.ErrorIs(t, err, domain.ErrNotInInventory)
}

func TestTransfer_MovesItemsAtomically(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	mockTx := &MockTx{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "alice").Return(testAccount("alice"), nil)
	mockAccounts.On("GetAccount", ctx, "bob").Return(testAccount("bob"), nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "alice").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 3, Quantity: 5}},
	}, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "bob").Return(&domain.Inventory{}, nil)
	mockTx.On("UpdateInventory", ctx, "alice", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Slots) == 1 && inv.Slots[0].Quantity == 3
	})).Return(nil)
	mockTx.On("UpdateInventory", ctx, "bob", mock.MatchedBy(func(inv domain.Inventory) bool {
		return len(inv.Slots) == 1 && inv.Slots[0].ItemID == 3 && inv.Slots[0].Quantity == 2
	})).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockTx.On("Rollback", ctx).Return(nil)

	require.NoError(t, svc.Transfer(ctx, "alice", "bob", "acorn", 2))
	mockTx.AssertExpectations(t)
}

func TestTransfer_SelfTransfer(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	err := svc.Transfer(ctx, "alice", "alice", "acorn", 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockCatalog.AssertNotCalled(t, "GetItemByName", mock.Anything, mock.Anything)
}

func TestTransfer_RecipientNotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "alice").Return(testAccount("alice"), nil)
	mockAccounts.On("GetAccount", ctx, "ghost").Return(nil, domain.ErrAccountNotFound)

	err := svc.Transfer(ctx, "alice", "ghost", "acorn", 1)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestTransfer_SenderLacksQuantity(t *testing.T) {
	mockRepo := &MockRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalog{}
	mockTx := &MockTx{}
	svc := NewService(mockRepo, mockAccounts, mockCatalog)
	ctx := context.Background()

	mockCatalog.On("GetItemByName", ctx, "acorn").Return(&domain.Item{ID: 3, InternalName: "acorn"}, nil)
	mockAccounts.On("GetAccount", ctx, "alice").Return(testAccount("alice"), nil)
	mockAccounts.On("GetAccount", ctx, "bob").Return(testAccount("bob"), nil)
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "alice").Return(&domain.Inventory{
		Slots: []domain.InventorySlot{{ItemID: 3, Quantity: 1}},
	}, nil)
	mockTx.On("GetInventoryForUpdate", ctx, "bob").Return(&domain.Inventory{}, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	err := svc.Transfer(ctx, "alice", "bob", "acorn", 2)

	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	mockTx.AssertNotCalled(t, "Commit", mock.Anything)
}
