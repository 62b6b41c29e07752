package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/validation"
)

//go:embed schemas/catalog.schema.json
var catalogSchema []byte

// Config is the on-disk catalog, JSON or YAML
type Config struct {
	Version     string                     `json:"version" yaml:"version"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Rules       []RuleDef                  `json:"rules" yaml:"rules"`
	Definitions []domain.ContentDefinition `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// RuleDef is one rule as written by an operator. Purchasable and Active
// default to true when omitted.
type RuleDef struct {
	Key                         string   `json:"key" yaml:"key"`
	UnlockCost                  int      `json:"unlock_cost,omitempty" yaml:"unlock_cost,omitempty"`
	RequiredProgressLevel       int      `json:"required_progress_level,omitempty" yaml:"required_progress_level,omitempty"`
	RequiredCompletedMilestones []string `json:"required_completed_milestones,omitempty" yaml:"required_completed_milestones,omitempty"`
	DefaultUnlocked             bool     `json:"default_unlocked,omitempty" yaml:"default_unlocked,omitempty"`
	Purchasable                 *bool    `json:"purchasable,omitempty" yaml:"purchasable,omitempty"`
	Active                      *bool    `json:"active,omitempty" yaml:"active,omitempty"`
	Rarity                      string   `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	SortOrder                   int      `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
}

// Loader reads, checks and builds catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	Build(ctx context.Context, config *Config) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a Loader backed by the embedded catalog schema
func NewLoader() Loader {
	v := validation.NewSchemaValidator()
	if err := v.Register(SchemaName, catalogSchema); err != nil {
		panic(fmt.Sprintf("embedded catalog schema is invalid: %v", err))
	}
	return &catalogLoader{schemaValidator: v}
}

// Load reads a catalog file and validates it against the schema
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadConfigFileFailed, err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgParseConfigFailed, err)
		}
		if err := l.schemaValidator.ValidateValue(doc, SchemaName); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgSchemaFailed, path, err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgParseConfigFailed, err)
		}
	default:
		if err := l.schemaValidator.ValidateBytes(data, SchemaName); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgSchemaFailed, path, err)
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgParseConfigFailed, err)
		}
	}
	return &config, nil
}

// Validate checks what the schema cannot: known keys, duplicates and
// definition categories
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Rules) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoRulesDefined)
	}

	seen := make(map[domain.TowerType]bool, len(config.Rules))
	for _, def := range config.Rules {
		rule, err := def.ToRule()
		if err != nil {
			return err
		}
		if seen[rule.Ordinal] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateRule, rule.Ordinal.Key())
		}
		seen[rule.Ordinal] = true
	}

	ids := make(map[string]bool, len(config.Definitions))
	for i, def := range config.Definitions {
		if def.ID == "" {
			return fmt.Errorf("%w: "+ErrMsgEmptyDefinitionID, ErrInvalidConfig, i)
		}
		if ids[def.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateDefinition, def.ID)
		}
		ids[def.ID] = true
		if !def.Category.Valid() {
			return fmt.Errorf("%w: '%s' %s", ErrInvalidConfig, def.ID, ErrMsgUnknownCategory)
		}
	}
	return nil
}

// Build validates config and turns it into a Catalog. Definitions fall back to
// the built-in set when the file lists none.
func (l *catalogLoader) Build(ctx context.Context, config *Config) (*Catalog, error) {
	if err := l.Validate(config); err != nil {
		return nil, err
	}

	rules := make([]domain.UnlockRule, 0, len(config.Rules))
	for _, def := range config.Rules {
		rule, err := def.ToRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	defs := config.Definitions
	if len(defs) == 0 {
		defs = DefaultDefinitions()
	}

	c, err := New(rules, defs)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		"version", config.Version,
		"rules", len(rules),
		"definitions", len(defs))
	return c, nil
}

// LoadFile is Load, Build in one step
func LoadFile(ctx context.Context, path string) (*Catalog, error) {
	l := NewLoader()
	config, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return l.Build(ctx, config)
}

// ToRule converts an operator rule into a normalized catalog rule
func (d RuleDef) ToRule() (domain.UnlockRule, error) {
	t, ok := domain.ParseTowerKey(d.Key)
	if !ok {
		return domain.UnlockRule{}, fmt.Errorf("%w: '%s'", domain.ErrRuleNotFound, d.Key)
	}

	rarity := domain.RarityCommon
	if d.Rarity != "" {
		r, ok := domain.ParseRarity(d.Rarity)
		if !ok {
			return domain.UnlockRule{}, fmt.Errorf("%w: '%s' %s", ErrInvalidConfig, d.Key, ErrMsgUnknownRarity)
		}
		rarity = r
	}
	for _, m := range d.RequiredCompletedMilestones {
		if strings.TrimSpace(m) == "" {
			return domain.UnlockRule{}, fmt.Errorf("%w: '%s' %s", ErrInvalidConfig, d.Key, ErrMsgEmptyMilestone)
		}
	}

	return normalize(domain.UnlockRule{
		Ordinal:                     t,
		UnlockCost:                  d.UnlockCost,
		RequiredProgressLevel:       d.RequiredProgressLevel,
		RequiredCompletedMilestones: d.RequiredCompletedMilestones,
		IsDefaultUnlocked:           d.DefaultUnlocked,
		IsPurchasable:               boolOr(d.Purchasable, true),
		IsActive:                    boolOr(d.Active, true),
		Rarity:                      rarity,
		SortOrder:                   d.SortOrder,
	})
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
