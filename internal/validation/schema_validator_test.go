package validation

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CineLoot_Go/configs"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"schemas/person.schema.json": &fstest.MapFile{Data: []byte(personSchema)},
		"schemas/broken.schema.json": &fstest.MapFile{Data: []byte(`{"type": `)},
	}
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator(testFS())

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid data", data: `{"name": "John", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Jane"}`},
		{name: "missing required field", data: `{"age": 25}`, errorMsg: "required"},
		{name: "wrong type for field", data: `{"name": "John", "age": "thirty"}`, errorMsg: "/age"},
		{name: "constraint violation", data: `{"name": "John", "age": -5}`, errorMsg: "minimum"},
		{name: "invalid JSON", data: `{"name": "John", "age": }`, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "schemas/person.schema.json")
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
	v := NewSchemaValidator(testFS())

	dataPath := filepath.Join(t.TempDir(), "person.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"name": "Ada"}`), 0o644))

	assert.NoError(t, v.ValidateFile(dataPath, "schemas/person.schema.json"))

	err := v.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), "schemas/person.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	v := NewSchemaValidator(testFS())

	err := v.ValidateBytes([]byte(`{}`), "schemas/nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")

	err = v.ValidateBytes([]byte(`{}`), "schemas/broken.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema JSON")
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	v := NewSchemaValidator(testFS()).(*validator)

	require.NoError(t, v.ValidateBytes([]byte(`{"name": "a"}`), "schemas/person.schema.json"))
	require.NoError(t, v.ValidateBytes([]byte(`{"name": "b"}`), "schemas/person.schema.json"))
	assert.Len(t, v.schemas, 1)
}

func TestSchemaValidator_EmbeddedRarityTable(t *testing.T) {
	v := NewSchemaValidator(configs.Schemas)

	data, err := os.ReadFile(filepath.Join("..", "..", "configs", "rarity_tiers.json"))
	require.NoError(t, err)
	assert.NoError(t, v.ValidateBytes(data, "schemas/rarity_tiers.schema.json"))

	err = v.ValidateBytes([]byte(`{"version": "1", "tiers": []}`), "schemas/rarity_tiers.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minItems")
}
