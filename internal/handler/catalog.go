package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

// RuleView is an unlock rule as served to clients
type RuleView struct {
	domain.UnlockRule
	RarityName string `json:"rarity_name"`
}

func toRuleView(rule domain.UnlockRule) RuleView {
	return RuleView{UnlockRule: rule, RarityName: rule.Rarity.String()}
}

// HandleListRules returns every rule in display order
func HandleListRules(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules := cat.Rules()
		out := make([]RuleView, 0, len(rules))
		for _, rule := range rules {
			out = append(out, toRuleView(rule))
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// HandleGetRule returns one rule
func HandleGetRule(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := GetPathParam(r, w, "key")
		if !ok {
			return
		}
		rule, found := cat.Rule(key)
		if !found {
			respondError(w, http.StatusNotFound, ErrMsgUnknownTower, CodeRuleNotFound)
			return
		}
		respondJSON(w, http.StatusOK, toRuleView(rule))
	}
}

// HandleUpdateRule replaces one rule. The full rule document is written to
// the store first; the in-memory catalog only changes once the write succeeded.
func HandleUpdateRule(cat Catalog, syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := GetPathParam(r, w, "key")
		if !ok {
			return
		}
		var def catalog.RuleDef
		if err := DecodeAndValidateRequest(r, w, &def, "update rule"); err != nil {
			return
		}
		if def.Key == "" {
			def.Key = key
		} else if !strings.EqualFold(def.Key, key) {
			respondError(w, http.StatusBadRequest, ErrMsgKeyMismatch, CodeInvalidInput)
			return
		}

		rule, err := def.ToRule()
		if err != nil {
			respondServiceError(w, r, "update rule", asValidation(err))
			return
		}
		if err := syncer.SaveRule(r.Context(), rule); err != nil {
			respondServiceError(w, r, "update rule", err)
			return
		}
		updated, err := cat.Update(rule)
		if err != nil {
			respondServiceError(w, r, "update rule", asValidation(err))
			return
		}
		respondJSON(w, http.StatusOK, toRuleView(updated))
	}
}

// HandleGetShopLayout returns the stored shop layout, falling back to the
// catalog display order when none is stored
func HandleGetShopLayout(cat Catalog, syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		layout, found, err := syncer.LoadLayout(r.Context())
		if err != nil {
			respondServiceError(w, r, "shop layout", err)
			return
		}
		if !found {
			for _, rule := range cat.Rules() {
				layout.Keys = append(layout.Keys, rule.Key)
			}
		}
		respondJSON(w, http.StatusOK, layout)
	}
}

// ShopLayoutRequest is the full ordered key list of the shop layout
type ShopLayoutRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required,max=64"`
}

// HandleUpdateShopLayout replaces the stored shop layout. Keys are matched
// case-insensitively and stored in their canonical spelling.
func HandleUpdateShopLayout(syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShopLayoutRequest
		if err := DecodeAndValidateRequest(r, w, &req, "update shop layout"); err != nil {
			return
		}

		layout := domain.ShopLayout{Keys: make([]string, 0, len(req.Keys))}
		seen := make(map[domain.TowerType]bool, len(req.Keys))
		for _, key := range req.Keys {
			t, ok := domain.ParseTowerKey(key)
			if !ok {
				respondError(w, http.StatusBadRequest, ErrMsgUnknownTower, CodeRuleNotFound)
				return
			}
			if seen[t] {
				respondError(w, http.StatusBadRequest, ErrMsgDuplicateLayoutKey, CodeInvalidInput)
				return
			}
			seen[t] = true
			layout.Keys = append(layout.Keys, t.Key())
		}

		if err := syncer.SaveLayout(r.Context(), layout); err != nil {
			respondServiceError(w, r, "update shop layout", err)
			return
		}
		respondJSON(w, http.StatusOK, layout)
	}
}

// asValidation marks catalog config errors as caller input problems
func asValidation(err error) error {
	if domain.Classify(err) == domain.ClassValidation {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
