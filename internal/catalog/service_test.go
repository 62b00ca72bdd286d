package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trovehq/trove/internal/domain"
)

// MockRepository implements repository.Catalog for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetItemByName(ctx context.Context, itemName string) (*domain.Item, error) {
	args := m.Called(ctx, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockRepository) GetItemsByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.Item, error) {
	args := m.Called(ctx, rarity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func testItem(id int, name string, rarity domain.Rarity) *domain.Item {
	return &domain.Item{ID: id, InternalName: name, DisplayName: name, Rarity: rarity}
}

func TestGetItemByName_CachesResult(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	item := testItem(1, "pebble", domain.RarityCommon)
	mockRepo.On("GetItemByName", ctx, "pebble").Return(item, nil).Once()

	first, err := svc.GetItemByName(ctx, "pebble")
	require.NoError(t, err)

	// Second lookup is served from cache; the mock allows only one call.
	second, err := svc.GetItemByName(ctx, "pebble")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockRepo.AssertExpectations(t)
}

func TestGetItemByName_NotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	mockRepo.On("GetItemByName", ctx, "unobtainium").Return(nil, nil)

	_, err := svc.GetItemByName(ctx, "unobtainium")

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetItemByName_RepoError(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	mockRepo.On("GetItemByName", ctx, "pebble").Return(nil, errors.New("connection reset"))

	_, err := svc.GetItemByName(ctx, "pebble")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get item")
}

func TestGetItemByID_NotFound(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	mockRepo.On("GetItemByID", ctx, 404).Return(nil, nil)

	_, err := svc.GetItemByID(ctx, 404)

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetItemsByIDs_FetchesOnlyMisses(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	cached := testItem(1, "pebble", domain.RarityCommon)
	mockRepo.On("GetItemByID", ctx, 1).Return(cached, nil).Once()
	_, err := svc.GetItemByID(ctx, 1)
	require.NoError(t, err)

	// Only item 2 goes to the repository; item 1 is already cached.
	mockRepo.On("GetItemsByIDs", ctx, []int{2}).
		Return([]domain.Item{*testItem(2, "twig", domain.RarityCommon)}, nil).Once()

	items, err := svc.GetItemsByIDs(ctx, []int{1, 2})

	require.NoError(t, err)
	assert.Len(t, items, 2)
	mockRepo.AssertExpectations(t)
}

func TestGetItemsByIDs_DropsMissing(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	mockRepo.On("GetItemsByIDs", ctx, []int{1, 99}).
		Return([]domain.Item{*testItem(1, "pebble", domain.RarityCommon)}, nil)

	items, err := svc.GetItemsByIDs(ctx, []int{1, 99})

	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGetItemsByRarity_CachesList(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	items := []domain.Item{
		*testItem(5, "moonstone", domain.RarityEpic),
		*testItem(6, "music_box", domain.RarityEpic),
	}
	mockRepo.On("GetItemsByRarity", ctx, domain.RarityEpic).Return(items, nil).Once()

	first, err := svc.GetItemsByRarity(ctx, domain.RarityEpic)
	require.NoError(t, err)

	second, err := svc.GetItemsByRarity(ctx, domain.RarityEpic)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockRepo.AssertExpectations(t)
}

func TestGetAllItems_CachesList(t *testing.T) {
	mockRepo := &MockRepository{}
	svc := NewService(mockRepo, 16, time.Minute)
	ctx := context.Background()

	items := []domain.Item{*testItem(1, "pebble", domain.RarityCommon)}
	mockRepo.On("GetAllItems", ctx).Return(items, nil).Once()

	_, err := svc.GetAllItems(ctx)
	require.NoError(t, err)

	got, err := svc.GetAllItems(ctx)
	require.NoError(t, err)

	assert.Equal(t, items, got)
	mockRepo.AssertExpectations(t)
}
