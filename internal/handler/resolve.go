package handler

import (
	"net/http"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/resolver"
)

// ResolveRequest asks for the active definitions of one owner. Level
// overrides the stored progress level when set.
type ResolveRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=128,documentkey"`
	Level   *int   `json:"level,omitempty" validate:"omitempty,min=0"`
}

// ResolveResponse wraps a resolution with its warnings as text
type ResolveResponse struct {
	resolver.Resolution
	Warnings []string `json:"warnings,omitempty"`
}

// HandleResolve resolves the owner's selected towers against the catalog pool
func HandleResolve(inv InventoryService, progress ProgressProvider, res DefinitionResolver, cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResolveRequest
		if err := DecodeAndValidateRequest(r, w, &req, "resolve"); err != nil {
			return
		}
		ctx := r.Context()

		snap, err := inv.Get(ctx, req.OwnerID)
		if err != nil {
			respondServiceError(w, r, "resolve", err)
			return
		}

		level := 0
		if req.Level != nil {
			level = *req.Level
		} else {
			prog, err := progress.Snapshot(ctx, req.OwnerID)
			if err != nil {
				respondServiceError(w, r, "resolve", err)
				return
			}
			level = prog.CurrentLevel
		}

		var selected []domain.InventoryEntry
		for _, e := range snap.Entries {
			if e.IsSelected {
				selected = append(selected, e)
			}
		}

		result := res.ResolveForLevel(ctx, req.OwnerID, selected, cat.Pool(), level)
		out := ResolveResponse{Resolution: result}
		for _, warn := range result.Warnings {
			out.Warnings = append(out.Warnings, warn.Error())
		}
		respondJSON(w, http.StatusOK, out)
	}
}
