package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

func TestHandleGetInventory(t *testing.T) {
	svc := &MockInventoryService{}
	snap := domain.InventorySnapshot{OwnerID: "alice", MaxSelected: 3}
	svc.On("Get", mock.Anything, "alice").Return(snap, nil)

	w := serve(t, http.MethodGet, "/inventory/{owner}", "/inventory/alice", nil, HandleGetInventory(svc))

	assert.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[domain.InventorySnapshot](t, w)
	assert.Equal(t, "alice", got.OwnerID)
	svc.AssertExpectations(t)
}

func TestHandleAddEntry(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMock      func(*MockInventoryService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: AddEntryRequest{Key: "Cannon1", Selected: true},
			setupMock: func(m *MockInventoryService) {
				m.On("AddEntry", mock.Anything, "alice", "Cannon1", true).
					Return(domain.InventorySnapshot{OwnerID: "alice"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"owner_id":"alice"`,
		},
		{
			name:           "Missing Key",
			body:           AddEntryRequest{},
			setupMock:      func(m *MockInventoryService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   FieldMsgRequired,
		},
		{
			name:           "Unknown Field",
			body:           `{"key":"Cannon1","quantity":2}`,
			setupMock:      func(m *MockInventoryService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Already Owned",
			body: AddEntryRequest{Key: "Cannon1"},
			setupMock: func(m *MockInventoryService) {
				m.On("AddEntry", mock.Anything, "alice", "Cannon1", false).
					Return(domain.InventorySnapshot{}, domain.NewValidationError(domain.ValidationAlreadyOwned, "Cannon1", ""))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAlreadyOwned,
		},
		{
			name: "Store Unreachable",
			body: AddEntryRequest{Key: "Cannon1"},
			setupMock: func(m *MockInventoryService) {
				m.On("AddEntry", mock.Anything, "alice", "Cannon1", false).
					Return(domain.InventorySnapshot{}, &domain.RemoteError{Op: "set", Collection: "inventories", Kind: domain.RemoteConnectivity, Err: errors.New("dial")})
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgRemoteUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockInventoryService{}
			tt.setupMock(svc)

			w := serve(t, http.MethodPost, "/inventory/{owner}/entries", "/inventory/alice/entries", tt.body, HandleAddEntry(svc))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleRemoveEntry_NotOwned(t *testing.T) {
	svc := &MockInventoryService{}
	svc.On("RemoveEntry", mock.Anything, "alice", "Laser2").
		Return(domain.InventorySnapshot{}, domain.NewValidationError(domain.ValidationNotOwned, "Laser2", ""))

	w := serve(t, http.MethodDelete, "/inventory/{owner}/entries/{key}", "/inventory/alice/entries/Laser2", nil, HandleRemoveEntry(svc))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody[ErrorResponse](t, w)
	assert.Equal(t, string(domain.ValidationNotOwned), body.Code)
}

func TestHandleSetSelection(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockInventoryService{}
		svc.On("SetSelection", mock.Anything, "alice", []string{"Cannon1", "MachineGun1"}).
			Return(domain.InventorySnapshot{OwnerID: "alice"}, nil)

		w := serve(t, http.MethodPut, "/inventory/{owner}/selection", "/inventory/alice/selection",
			SetSelectionRequest{Keys: []string{"Cannon1", "MachineGun1"}}, HandleSetSelection(svc))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Over Quota", func(t *testing.T) {
		svc := &MockInventoryService{}
		svc.On("SetSelection", mock.Anything, "alice", mock.Anything).
			Return(domain.InventorySnapshot{}, domain.NewValidationError(domain.ValidationSelectionOverQuota, "", "4 > 3"))

		w := serve(t, http.MethodPut, "/inventory/{owner}/selection", "/inventory/alice/selection",
			SetSelectionRequest{Keys: []string{"a", "b", "c", "d"}}, HandleSetSelection(svc))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSelectionOverQuota)
	})

	t.Run("Empty Key In List", func(t *testing.T) {
		svc := &MockInventoryService{}

		w := serve(t, http.MethodPut, "/inventory/{owner}/selection", "/inventory/alice/selection",
			SetSelectionRequest{Keys: []string{""}}, HandleSetSelection(svc))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SetSelection", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleRecordUsage(t *testing.T) {
	svc := &MockInventoryService{}
	svc.On("IncrementUsage", mock.Anything, "alice", "Cannon1").Return(domain.InventorySnapshot{OwnerID: "alice"}, nil)

	w := serve(t, http.MethodPost, "/inventory/{owner}/entries/{key}/use", "/inventory/alice/entries/Cannon1/use", nil, HandleRecordUsage(svc))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleUnlock(t *testing.T) {
	t.Run("Purchased", func(t *testing.T) {
		svc := &MockInventoryService{}
		status := unlock.KeyStatus{Key: "Cannon1", CanUnlock: true, Status: unlock.StatusMessage{Code: unlock.StatusAvailable, Text: "Available"}}
		svc.On("Unlock", mock.Anything, "alice", "Cannon1").Return(domain.InventorySnapshot{OwnerID: "alice"}, status, nil)

		w := serve(t, http.MethodPost, "/inventory/{owner}/unlock", "/inventory/alice/unlock", UnlockRequest{Key: "Cannon1"}, HandleUnlock(svc))

		assert.Equal(t, http.StatusCreated, w.Code)
		got := decodeBody[UnlockResponse](t, w)
		assert.True(t, got.Status.CanUnlock)
		assert.Equal(t, "alice", got.Inventory.OwnerID)
	})

	t.Run("Locked", func(t *testing.T) {
		svc := &MockInventoryService{}
		svc.On("Unlock", mock.Anything, "alice", "Laser2").
			Return(domain.InventorySnapshot{}, unlock.KeyStatus{}, domain.NewValidationError(domain.ValidationLocked, "Laser2", "Requires level 10"))

		w := serve(t, http.MethodPost, "/inventory/{owner}/unlock", "/inventory/alice/unlock", UnlockRequest{Key: "Laser2"}, HandleUnlock(svc))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgLocked)
	})

	t.Run("Unknown Tower", func(t *testing.T) {
		svc := &MockInventoryService{}
		svc.On("Unlock", mock.Anything, "alice", "Railgun").
			Return(domain.InventorySnapshot{}, unlock.KeyStatus{}, domain.ErrRuleNotFound)

		w := serve(t, http.MethodPost, "/inventory/{owner}/unlock", "/inventory/alice/unlock", UnlockRequest{Key: "Railgun"}, HandleUnlock(svc))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnknownTower)
	})
}
