package catalog

import "github.com/osse101/ArsenalSync_Go/internal/domain"

// DefaultRules is the rule table written to an empty store on first run
func DefaultRules() []domain.UnlockRule {
	return []domain.UnlockRule{
		{Ordinal: domain.TowerMachineGun1, IsDefaultUnlocked: true, IsPurchasable: true, IsActive: true, Rarity: domain.RarityCommon, SortOrder: 0},
		{Ordinal: domain.TowerMachineGun2, UnlockCost: 500, RequiredProgressLevel: 1, IsPurchasable: true, IsActive: true, Rarity: domain.RarityCommon, SortOrder: 1},
		{Ordinal: domain.TowerCannon1, UnlockCost: 1000, RequiredProgressLevel: 3, IsPurchasable: true, IsActive: true, Rarity: domain.RarityUncommon, SortOrder: 2},
		{Ordinal: domain.TowerCannon2, UnlockCost: 2000, RequiredProgressLevel: 4, RequiredCompletedMilestones: []string{"stage_03"}, IsPurchasable: true, IsActive: true, Rarity: domain.RarityRare, SortOrder: 3},
		{Ordinal: domain.TowerMissile1, UnlockCost: 3000, RequiredProgressLevel: 5, IsPurchasable: true, IsActive: true, Rarity: domain.RarityRare, SortOrder: 4},
		{Ordinal: domain.TowerMissile2, UnlockCost: 5000, RequiredProgressLevel: 6, RequiredCompletedMilestones: []string{"stage_06"}, IsPurchasable: true, IsActive: true, Rarity: domain.RarityEpic, SortOrder: 5},
		{Ordinal: domain.TowerLaser1, UnlockCost: 8000, RequiredProgressLevel: 8, IsPurchasable: true, IsActive: true, Rarity: domain.RarityEpic, SortOrder: 6},
		{Ordinal: domain.TowerLaser2, UnlockCost: 12000, RequiredProgressLevel: 10, RequiredCompletedMilestones: []string{"stage_09", "boss_laser"}, IsPurchasable: true, IsActive: true, Rarity: domain.RarityLegendary, SortOrder: 7},
	}
}

// DefaultDefinitions is one placeable definition per tower
func DefaultDefinitions() []domain.ContentDefinition {
	return []domain.ContentDefinition{
		{ID: "MachineGun1", Category: domain.CategoryMachineGun, DisplayName: "Machine Gun", Cost: 100, SellValue: 50, Health: 100, MaxHealth: 100},
		{ID: "MachineGun2", Category: domain.CategoryMachineGun, DisplayName: "Heavy Machine Gun", Cost: 180, SellValue: 90, Health: 140, MaxHealth: 140},
		{ID: "Cannon1", Category: domain.CategoryCannon, DisplayName: "Cannon", Cost: 250, SellValue: 125, Health: 200, MaxHealth: 200},
		{ID: "Cannon2", Category: domain.CategoryCannon, DisplayName: "Siege Cannon", Cost: 400, SellValue: 200, Health: 260, MaxHealth: 260},
		{ID: "Missile1", Category: domain.CategoryMissile, DisplayName: "Missile Launcher", Cost: 500, SellValue: 250, Health: 180, MaxHealth: 180},
		{ID: "Missile2", Category: domain.CategoryMissile, DisplayName: "Swarm Launcher", Cost: 750, SellValue: 375, Health: 220, MaxHealth: 220},
		{ID: "Laser1", Category: domain.CategoryLaser, DisplayName: "Laser", Cost: 900, SellValue: 450, Health: 160, MaxHealth: 160},
		{ID: "Laser2", Category: domain.CategoryLaser, DisplayName: "Prism Laser", Cost: 1400, SellValue: 700, Health: 200, MaxHealth: 200},
	}
}
