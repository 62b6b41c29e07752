package handler

import (
	"net/http"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

// AddEntryRequest adds a tower to an inventory without a purchase check
type AddEntryRequest struct {
	Key      string `json:"key" validate:"required,max=64,documentkey"`
	Selected bool   `json:"selected"`
}

// SetSelectionRequest replaces the selected set
type SetSelectionRequest struct {
	Keys []string `json:"keys" validate:"max=64,dive,required,max=64,documentkey"`
}

// UnlockRequest purchases a tower
type UnlockRequest struct {
	Key string `json:"key" validate:"required,max=64,documentkey"`
}

// UnlockResponse is the inventory after a purchase and the verdict that allowed it
type UnlockResponse struct {
	Inventory domain.InventorySnapshot `json:"inventory"`
	Status    unlock.KeyStatus         `json:"status"`
}

// HandleGetInventory returns an owner's inventory, empty if none is stored
func HandleGetInventory(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		snap, err := svc.Get(r.Context(), owner)
		if err != nil {
			respondServiceError(w, r, "get inventory", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleAddEntry grants a tower
func HandleAddEntry(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		var req AddEntryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "add entry"); err != nil {
			return
		}
		snap, err := svc.AddEntry(r.Context(), owner, req.Key, req.Selected)
		if err != nil {
			respondServiceError(w, r, "add entry", err)
			return
		}
		respondJSON(w, http.StatusCreated, snap)
	}
}

// HandleRemoveEntry drops a tower
func HandleRemoveEntry(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		key, ok := GetPathParam(r, w, "key")
		if !ok {
			return
		}
		snap, err := svc.RemoveEntry(r.Context(), owner, key)
		if err != nil {
			respondServiceError(w, r, "remove entry", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleSetSelection replaces the selected set in one write
func HandleSetSelection(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		var req SetSelectionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "set selection"); err != nil {
			return
		}
		snap, err := svc.SetSelection(r.Context(), owner, req.Keys)
		if err != nil {
			respondServiceError(w, r, "set selection", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleRecordUsage bumps an entry's usage counter
func HandleRecordUsage(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		key, ok := GetPathParam(r, w, "key")
		if !ok {
			return
		}
		snap, err := svc.IncrementUsage(r.Context(), owner, key)
		if err != nil {
			respondServiceError(w, r, "record usage", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleUnlock purchases a tower when the unlock rule allows it
func HandleUnlock(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		var req UnlockRequest
		if err := DecodeAndValidateRequest(r, w, &req, "unlock"); err != nil {
			return
		}
		snap, status, err := svc.Unlock(r.Context(), owner, req.Key)
		if err != nil {
			respondServiceError(w, r, "unlock", err)
			return
		}
		respondJSON(w, http.StatusCreated, UnlockResponse{Inventory: snap, Status: status})
	}
}
