package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const ruleSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"key": {"type": "string", "minLength": 1},
		"unlock_cost": {"type": "integer", "minimum": 0}
	},
	"required": ["key"]
}`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rule.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(ruleSchema), 0o644))
	return path
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t)

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid", data: `{"key": "Cannon1", "unlock_cost": 100}`},
		{name: "optional field omitted", data: `{"key": "Cannon1"}`},
		{name: "missing required field", data: `{"unlock_cost": 1}`, errorMsg: "required"},
		{name: "wrong type", data: `{"key": "Cannon1", "unlock_cost": "lots"}`, errorMsg: "/unlock_cost"},
		{name: "below minimum", data: `{"key": "Cannon1", "unlock_cost": -5}`, errorMsg: "minimum"},
		{name: "invalid JSON", data: `{"key": }`, errorMsg: ErrMsgParseData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t)

	dataPath := filepath.Join(t.TempDir(), "rule.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"key": "Laser2"}`), 0o644))
	assert.NoError(t, v.ValidateFile(dataPath, schemaPath))

	err := v.ValidateFile("nonexistent.json", schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgReadDataFile)
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgLoadSchema)
}

func TestSchemaValidator_RegisteredSchemaAndYAML(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("rule.schema.json", []byte(ruleSchema)))

	var doc any
	require.NoError(t, yaml.Unmarshal([]byte("key: Missile1\nunlock_cost: 250\n"), &doc))
	assert.NoError(t, v.ValidateValue(doc, "rule.schema.json"))

	require.NoError(t, yaml.Unmarshal([]byte("unlock_cost: -1\n"), &doc))
	err := v.ValidateValue(doc, "rule.schema.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaViolation)
}

func TestSchemaValidator_RegisterRejectsBadSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.Register("broken.schema.json", []byte(`{"type": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgParseSchema)
}
