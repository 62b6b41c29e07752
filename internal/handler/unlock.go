package handler

import (
	"net/http"

	"github.com/osse101/ArsenalSync_Go/internal/unlock"
)

// UnlockStatusResponse lists the verdict for every catalogued tower
type UnlockStatusResponse struct {
	OwnerID string             `json:"owner_id"`
	Towers  []unlock.KeyStatus `json:"towers"`
}

// HandleUnlockStatus evaluates every rule for one owner
func HandleUnlockStatus(checker UnlockChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		statuses, err := checker.StatusAll(r.Context(), owner)
		if err != nil {
			respondServiceError(w, r, "unlock status", err)
			return
		}
		respondJSON(w, http.StatusOK, UnlockStatusResponse{OwnerID: owner, Towers: statuses})
	}
}

// HandleUnlockKeyStatus evaluates a single tower for one owner
func HandleUnlockKeyStatus(checker UnlockChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetPathParam(r, w, "owner")
		if !ok {
			return
		}
		key, ok := GetPathParam(r, w, "key")
		if !ok {
			return
		}
		status, err := checker.CanUnlockKey(r.Context(), owner, key)
		if err != nil {
			respondServiceError(w, r, "unlock key status", err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}
