package storage

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SchemaFile is a schema declared in a YAML file rather than in Go. This is
// the surface a compiler or deployment pipeline feeds: the same definition
// rules apply, and everything a file can get wrong (unknown types, nested
// mappings, oversized layouts) is rejected at load time.
//
//	contract: my_token
//	storage:
//	  - name: total_supply
//	    type: felt252
//	  - name: owner
//	    type:
//	      struct:
//	        - {name: name, type: felt252}
//	        - {name: address, type: contract_address}
//	  - name: balances
//	    mapping:
//	      keys: [contract_address]
//	      value: felt252
type SchemaFile struct {
	Contract string
	Schema   *Schema
}

type fileSchema struct {
	Contract string         `yaml:"contract" validate:"required"`
	Storage  []fileVariable `yaml:"storage" validate:"required,min=1,dive"`
}

type fileVariable struct {
	Name    string       `yaml:"name" validate:"required"`
	Type    *fileType    `yaml:"type"`
	Mapping *fileMapping `yaml:"mapping"`
}

type fileMapping struct {
	Keys  []fileType `yaml:"keys" validate:"required,min=1"`
	Value *fileType  `yaml:"value" validate:"required"`
}

type fileField struct {
	Name string   `yaml:"name" validate:"required"`
	Type fileType `yaml:"type"`
}

type fileVariant struct {
	Name string    `yaml:"name" validate:"required"`
	Type *fileType `yaml:"type"`
}

// fileType is either a scalar naming a primitive or a nested composite form.
type fileType struct {
	Named   string
	Struct  []fileField
	Tuple   []fileType
	Enum    []fileVariant
	Mapping *fileMapping
}

type rawFileType struct {
	Struct  []fileField   `yaml:"struct"`
	Tuple   []fileType    `yaml:"tuple"`
	Enum    []fileVariant `yaml:"enum"`
	Mapping *fileMapping  `yaml:"mapping"`
}

func (t *fileType) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&t.Named)
	}

	var raw rawFileType
	if err := node.Decode(&raw); err != nil {
		return err
	}
	t.Struct = raw.Struct
	t.Tuple = raw.Tuple
	t.Enum = raw.Enum
	t.Mapping = raw.Mapping
	return nil
}

var primitiveTypes = map[string]Type{
	"felt252":          Felt252,
	"bool":             Bool,
	"u8":               Uint8,
	"u16":              Uint16,
	"u32":              Uint32,
	"u64":              Uint64,
	"u128":             Uint128,
	"contract_address": ContractAddress,
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// LoadSchemaFile reads and parses a YAML schema definition.
func LoadSchemaFile(path string) (*SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchemaFile(data)
}

// ParseSchemaFile parses a YAML schema definition.
func ParseSchemaFile(data []byte) (*SchemaFile, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := schemaValidator().Struct(&fs); err != nil {
		return nil, fmt.Errorf("validate schema: %w", err)
	}

	schema := NewSchema()
	for _, v := range fs.Storage {
		switch {
		case v.Mapping != nil && v.Type != nil:
			return nil, fmt.Errorf("%w: %q declares both a type and a mapping", ErrInvalidName, v.Name)
		case v.Mapping != nil:
			keys := make([]Type, len(v.Mapping.Keys))
			for i := range v.Mapping.Keys {
				kt, err := resolveType(&v.Mapping.Keys[i])
				if err != nil {
					return nil, fmt.Errorf("mapping %q key %d: %w", v.Name, i, err)
				}
				keys[i] = kt
			}
			value, err := resolveType(v.Mapping.Value)
			if err != nil {
				return nil, fmt.Errorf("mapping %q value: %w", v.Name, err)
			}
			if _, err := schema.AddMapping(v.Name, value, keys...); err != nil {
				return nil, err
			}
		case v.Type != nil:
			typ, err := resolveType(v.Type)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			if _, err := schema.AddVariable(v.Name, typ); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: %q declares neither a type nor a mapping", ErrInvalidName, v.Name)
		}
	}

	return &SchemaFile{Contract: fs.Contract, Schema: schema}, nil
}

func resolveType(t *fileType) (Type, error) {
	// A mapping is not a value type: it cannot nest inside a struct, a tuple,
	// an enum, another mapping's key or value, or anywhere but a top-level
	// storage declaration.
	if t.Mapping != nil {
		return nil, ErrInvalidMappingUsage
	}

	forms := 0
	if t.Named != "" {
		forms++
	}
	if len(t.Struct) > 0 {
		forms++
	}
	if len(t.Tuple) > 0 {
		forms++
	}
	if len(t.Enum) > 0 {
		forms++
	}
	if forms != 1 {
		return nil, fmt.Errorf("%w: want exactly one of a primitive name, struct, tuple or enum", ErrUnknownType)
	}

	switch {
	case t.Named != "":
		typ, ok := primitiveTypes[t.Named]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, t.Named)
		}
		return typ, nil
	case len(t.Struct) > 0:
		fields := make([]Field, len(t.Struct))
		for i, f := range t.Struct {
			ft, err := resolveType(&f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields[i] = Field{Name: f.Name, Type: ft}
		}
		return NewStruct(fields...)
	case len(t.Tuple) > 0:
		elems := make([]Type, len(t.Tuple))
		for i := range t.Tuple {
			et, err := resolveType(&t.Tuple[i])
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = et
		}
		return NewTuple(elems...)
	default:
		variants := make([]Variant, len(t.Enum))
		for i, v := range t.Enum {
			variants[i] = Variant{Name: v.Name}
			if v.Type != nil {
				vt, err := resolveType(v.Type)
				if err != nil {
					return nil, fmt.Errorf("variant %q: %w", v.Name, err)
				}
				variants[i].Type = vt
			}
		}
		return NewEnum(variants...)
	}
}
