package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trovehq/trove/internal/account"
	"github.com/trovehq/trove/internal/domain"
)

// MockAccountService implements account.Service for testing
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Login(ctx context.Context, accountID string) (*account.LoginResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.LoginResult), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Rename(ctx context.Context, accountID, newName string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Delete(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestLogin_ExistingAccountReturns200(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	mockSvc.On("Login", mock.Anything, "acct-1").
		Return(&account.LoginResult{Account: &domain.Account{ID: "acct-1", Name: "SwiftSeeker1"}}, nil)

	rec := postJSON(t, h.Login, "/api/v1/account/login", LoginRequest{AccountID: "acct-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_NewAccountReturns201(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	mockSvc.On("Login", mock.Anything, "acct-new").
		Return(&account.LoginResult{Account: &domain.Account{ID: "acct-new"}, Created: true}, nil)

	rec := postJSON(t, h.Login, "/api/v1/account/login", LoginRequest{AccountID: "acct-new"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var result account.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Created)
}

func TestLogin_MissingAccountID(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	rec := postJSON(t, h.Login, "/api/v1/account/login", LoginRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestGet_MissingQueryParam(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet_NotFoundMapsTo404(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	mockSvc.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account?account_id=ghost", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Account not found"}`, rec.Body.String())
}

func TestRename_NameTakenMapsTo409(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	mockSvc.On("Rename", mock.Anything, "acct-1", "Taken").Return(nil, domain.ErrNameTaken)

	rec := postJSON(t, h.Rename, "/api/v1/account/rename", RenameRequest{AccountID: "acct-1", Name: "Taken"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRename_NameWithSpacesRejectedByValidation(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	rec := postJSON(t, h.Rename, "/api/v1/account/rename", RenameRequest{AccountID: "acct-1", Name: "has space"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	mockSvc := &MockAccountService{}
	h := NewAccountHandler(mockSvc)

	mockSvc.On("Delete", mock.Anything, "acct-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account?account_id=acct-1", nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
