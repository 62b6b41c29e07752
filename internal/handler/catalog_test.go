package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ArsenalSync_Go/internal/catalog"
	"github.com/osse101/ArsenalSync_Go/internal/domain"
)

func TestHandleListRules(t *testing.T) {
	w := serve(t, http.MethodGet, "/catalog", "/catalog", nil, HandleListRules(catalog.NewDefault()))

	assert.Equal(t, http.StatusOK, w.Code)
	rules := decodeBody[[]RuleView](t, w)
	require.Len(t, rules, len(domain.AllTowerTypes))
	assert.Equal(t, "MachineGun1", rules[0].Key)
	assert.NotEmpty(t, rules[0].RarityName)
}

func TestHandleGetRule(t *testing.T) {
	cat := catalog.NewDefault()

	w := serve(t, http.MethodGet, "/catalog/{key}", "/catalog/laser2", nil, HandleGetRule(cat))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Laser2", decodeBody[RuleView](t, w).Key)

	w = serve(t, http.MethodGet, "/catalog/{key}", "/catalog/Railgun", nil, HandleGetRule(cat))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUpdateRule(t *testing.T) {
	t.Run("Persists Then Updates", func(t *testing.T) {
		cat := catalog.NewDefault()
		syncer := &MockSyncer{}
		syncer.On("SaveRule", mock.Anything, mock.MatchedBy(func(r domain.UnlockRule) bool {
			return r.Ordinal == domain.TowerCannon1 && r.UnlockCost == 750
		})).Return(nil)

		body := `{"unlock_cost":750,"required_progress_level":2,"rarity":"rare"}`
		w := serve(t, http.MethodPut, "/catalog/{key}", "/catalog/Cannon1", body, HandleUpdateRule(cat, syncer))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		rule, ok := cat.Rule("Cannon1")
		require.True(t, ok)
		assert.Equal(t, 750, rule.UnlockCost)
		assert.Equal(t, 2, rule.RequiredProgressLevel)
		assert.True(t, rule.IsActive)
		syncer.AssertExpectations(t)
	})

	t.Run("Failed Write Leaves Catalog Alone", func(t *testing.T) {
		cat := catalog.NewDefault()
		before, _ := cat.Rule("Cannon1")
		syncer := &MockSyncer{}
		syncer.On("SaveRule", mock.Anything, mock.Anything).
			Return(&domain.RemoteError{Kind: domain.RemotePermission, Err: errors.New("denied")})

		w := serve(t, http.MethodPut, "/catalog/{key}", "/catalog/Cannon1", `{"unlock_cost":1}`, HandleUpdateRule(cat, syncer))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		after, _ := cat.Rule("Cannon1")
		assert.Equal(t, before, after)
	})

	t.Run("Key Mismatch", func(t *testing.T) {
		syncer := &MockSyncer{}
		w := serve(t, http.MethodPut, "/catalog/{key}", "/catalog/Cannon1", `{"key":"Laser1"}`, HandleUpdateRule(catalog.NewDefault(), syncer))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		syncer.AssertNotCalled(t, "SaveRule", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Rarity", func(t *testing.T) {
		syncer := &MockSyncer{}
		w := serve(t, http.MethodPut, "/catalog/{key}", "/catalog/Cannon1", `{"rarity":"mythic"}`, HandleUpdateRule(catalog.NewDefault(), syncer))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		syncer.AssertNotCalled(t, "SaveRule", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Tower", func(t *testing.T) {
		syncer := &MockSyncer{}
		w := serve(t, http.MethodPut, "/catalog/{key}", "/catalog/Railgun", `{}`, HandleUpdateRule(catalog.NewDefault(), syncer))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleUpdateShopLayout(t *testing.T) {
	t.Run("Stores Canonical Keys", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("SaveLayout", mock.Anything, domain.ShopLayout{Keys: []string{"Laser1", "Cannon1"}}).Return(nil)

		w := serve(t, http.MethodPut, "/shop/layout", "/shop/layout", `{"keys":["laser1","Cannon1"]}`, HandleUpdateShopLayout(syncer))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, []string{"Laser1", "Cannon1"}, decodeBody[domain.ShopLayout](t, w).Keys)
		syncer.AssertExpectations(t)
	})

	t.Run("Unknown Tower", func(t *testing.T) {
		syncer := &MockSyncer{}
		w := serve(t, http.MethodPut, "/shop/layout", "/shop/layout", `{"keys":["Laser9"]}`, HandleUpdateShopLayout(syncer))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		syncer.AssertNotCalled(t, "SaveLayout", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Key", func(t *testing.T) {
		syncer := &MockSyncer{}
		w := serve(t, http.MethodPut, "/shop/layout", "/shop/layout", `{"keys":["Laser1","LASER1"]}`, HandleUpdateShopLayout(syncer))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		syncer.AssertNotCalled(t, "SaveLayout", mock.Anything, mock.Anything)
	})

	t.Run("Empty Layout", func(t *testing.T) {
		w := serve(t, http.MethodPut, "/shop/layout", "/shop/layout", `{"keys":[]}`, HandleUpdateShopLayout(&MockSyncer{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Store Failure", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("SaveLayout", mock.Anything, mock.Anything).Return(domain.ErrNotInitialized)

		w := serve(t, http.MethodPut, "/shop/layout", "/shop/layout", `{"keys":["Laser1"]}`, HandleUpdateShopLayout(syncer))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandleGetShopLayout(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("LoadLayout", mock.Anything).Return(domain.ShopLayout{Keys: []string{"Laser1", "Cannon1"}}, true, nil)

		w := serve(t, http.MethodGet, "/shop/layout", "/shop/layout", nil, HandleGetShopLayout(catalog.NewDefault(), syncer))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Laser1", "Cannon1"}, decodeBody[domain.ShopLayout](t, w).Keys)
	})

	t.Run("Falls Back To Catalog Order", func(t *testing.T) {
		syncer := &MockSyncer{}
		syncer.On("LoadLayout", mock.Anything).Return(domain.ShopLayout{}, false, nil)

		w := serve(t, http.MethodGet, "/shop/layout", "/shop/layout", nil, HandleGetShopLayout(catalog.NewDefault(), syncer))

		assert.Equal(t, http.StatusOK, w.Code)
		keys := decodeBody[domain.ShopLayout](t, w).Keys
		require.Len(t, keys, len(domain.AllTowerTypes))
		assert.Equal(t, "MachineGun1", keys[0])
	})
}
