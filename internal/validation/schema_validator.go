// Package validation checks configuration documents against JSON schemas.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates decoded documents against JSON schemas. A schema
// is referenced either by a name passed to Register or by a file path.
type SchemaValidator interface {
	Register(name string, schema []byte) error
	ValidateFile(dataPath, schemaRef string) error
	ValidateBytes(data []byte, schemaRef string) error
	// ValidateValue validates an already decoded document, e.g. one read from YAML
	ValidateValue(doc any, schemaRef string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// Register compiles an in-memory schema under name
func (v *validator) Register(name string, schema []byte) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schema)))
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgParseSchema, name, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	_, err = v.compileLocked(name, doc)
	return err
}

// ValidateFile validates a JSON file against a schema
func (v *validator) ValidateFile(dataPath, schemaRef string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgReadDataFile, dataPath, err)
	}
	return v.ValidateBytes(data, schemaRef)
}

// ValidateBytes validates JSON data against a schema
func (v *validator) ValidateBytes(data []byte, schemaRef string) error {
	schema, err := v.schema(schemaRef)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseData, err)
	}
	return check(schema, doc)
}

func (v *validator) ValidateValue(doc any, schemaRef string) error {
	schema, err := v.schema(schemaRef)
	if err != nil {
		return err
	}

	// Normalize through JSON so YAML scalars and Go structs look like decoded JSON
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseData, err)
	}
	normalized, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseData, err)
	}
	return check(schema, normalized)
}

func (v *validator) schema(ref string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[ref]; ok {
		return schema, nil
	}

	path, err := resolveSchemaPath(ref)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, ref, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, ref, err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, ref, err)
	}
	return v.compileLocked(ref, doc)
}

func (v *validator) compileLocked(name string, doc any) (*jsonschema.Schema, error) {
	if err := v.compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgCompileSchema, name, err)
	}
	schema, err := v.compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgCompileSchema, name, err)
	}
	v.schemas[name] = schema
	return schema, nil
}

func check(schema *jsonschema.Schema, doc any) error {
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}
	var lines []string
	collect(verr, &lines)
	return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
}

// collect flattens the cause tree into one line per leaf failure
func collect(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, describe(err))
		return
	}
	for _, cause := range err.Causes {
		collect(cause, lines)
	}
}

func describe(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind == nil {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	keyword := strings.Join(err.ErrorKind.KeywordPath(), ".")
	return fmt.Sprintf("  - at %s: %s validation failed", location, keyword)
}

// resolveSchemaPath finds a relative schema path from the working directory or
// any parent up to the module root
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := cwd; ; {
		candidate := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s: %s (searched from %s)", ErrMsgSchemaNotFound, schemaPath, cwd)
}
