package domain

import (
	"fmt"
	"strings"
)

// TowerType is the ordinal identifier of a tower definition. The set of valid
// ordinals is closed; anything outside AllTowerTypes is foreign data.
type TowerType int

const (
	TowerMachineGun1 TowerType = iota
	TowerMachineGun2
	TowerCannon1
	TowerCannon2
	TowerMissile1
	TowerMissile2
	TowerLaser1
	TowerLaser2
)

// AllTowerTypes lists every known ordinal in ascending order
var AllTowerTypes = []TowerType{
	TowerMachineGun1,
	TowerMachineGun2,
	TowerCannon1,
	TowerCannon2,
	TowerMissile1,
	TowerMissile2,
	TowerLaser1,
	TowerLaser2,
}

type towerInfo struct {
	key      string
	category Category
}

var towerTable = map[TowerType]towerInfo{
	TowerMachineGun1: {"MachineGun1", CategoryMachineGun},
	TowerMachineGun2: {"MachineGun2", CategoryMachineGun},
	TowerCannon1:     {"Cannon1", CategoryCannon},
	TowerCannon2:     {"Cannon2", CategoryCannon},
	TowerMissile1:    {"Missile1", CategoryMissile},
	TowerMissile2:    {"Missile2", CategoryMissile},
	TowerLaser1:      {"Laser1", CategoryLaser},
	TowerLaser2:      {"Laser2", CategoryLaser},
}

// Valid reports whether t is a member of the known enumeration
func (t TowerType) Valid() bool {
	_, ok := towerTable[t]
	return ok
}

// Key returns the natural identifier used by inventories and definition pools
func (t TowerType) Key() string {
	if info, ok := towerTable[t]; ok {
		return info.key
	}
	return fmt.Sprintf("TowerType(%d)", int(t))
}

// Category returns the weapon class the tower belongs to
func (t TowerType) Category() Category {
	return towerTable[t].category
}

func (t TowerType) String() string {
	return t.Key()
}

// ParseTowerKey looks up a tower ordinal by its natural key (case-insensitive)
func ParseTowerKey(key string) (TowerType, bool) {
	for _, t := range AllTowerTypes {
		if strings.EqualFold(towerTable[t].key, key) {
			return t, true
		}
	}
	return 0, false
}

// Category is a weapon-class tag shared by inventory entries and definitions
type Category string

const (
	CategoryMachineGun Category = "MachineGun"
	CategoryCannon     Category = "Cannon"
	CategoryMissile    Category = "Missile"
	CategoryLaser      Category = "Laser"
)

// categoryTiers is ordered by the progression tier that unlocks each category.
// Tier N unlocks the first N entries.
var categoryTiers = []Category{
	CategoryMachineGun,
	CategoryCannon,
	CategoryMissile,
	CategoryLaser,
}

// MaxTier is the highest progression tier with its own category
const MaxTier = 4

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range categoryTiers {
		if c == known {
			return true
		}
	}
	return false
}

// CategorySet is a set of categories
type CategorySet map[Category]struct{}

// Has reports membership
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// EligibleCategories returns the categories unlocked at tier. Each tier is a
// strict superset of the one below it.
func EligibleCategories(tier int) CategorySet {
	if tier > MaxTier {
		tier = MaxTier
	}
	set := make(CategorySet, len(categoryTiers))
	for i := 0; i < tier; i++ {
		set[categoryTiers[i]] = struct{}{}
	}
	return set
}

// Rarity is the ordinal rarity tier of a tower
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = []string{"common", "uncommon", "rare", "epic", "legendary"}

// Valid reports whether r is a known rarity tier
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityLegendary
}

func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity looks up a rarity by name (case-insensitive)
func ParseRarity(name string) (Rarity, bool) {
	for i, n := range rarityNames {
		if strings.EqualFold(n, name) {
			return Rarity(i), true
		}
	}
	return 0, false
}
