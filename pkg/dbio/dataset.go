// Package dbio loads entity datasets for the cmd/eavdb demo driver from
// YAML files: a flat list of records, each resolved into a types.Entity
// via pkg/types.MakeAttr.
package dbio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/epochdb/epoch/pkg/types"
)

// AttrSpec is one attribute of one entity as written in a dataset file.
type AttrSpec struct {
	Type        string      `yaml:"type"`
	Cardinality string      `yaml:"cardinality,omitempty"`
	Indexed     bool        `yaml:"indexed,omitempty"`
	Value       interface{} `yaml:"value"`
}

// EntitySpec is one entity as written in a dataset file: an id plus a map
// of attribute name to AttrSpec.
type EntitySpec struct {
	ID    string              `yaml:"id"`
	Attrs map[string]AttrSpec `yaml:"attrs"`
}

// Dataset is the top-level shape of a dataset YAML file.
type Dataset struct {
	Entities []EntitySpec `yaml:"entities"`
}

// LoadFile reads and parses a dataset YAML file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &ds, nil
}

// ToEntities converts every EntitySpec into a types.Entity, resolving each
// AttrSpec's declared type and cardinality into a types.Value via
// types.MakeAttr.
func (ds *Dataset) ToEntities() ([]*types.Entity, error) {
	out := make([]*types.Entity, 0, len(ds.Entities))
	for _, es := range ds.Entities {
		if es.ID == "" {
			return nil, fmt.Errorf("entity spec missing id")
		}
		e := types.MakeEntity(es.ID)
		for name, as := range es.Attrs {
			attrType, err := parseAttrType(as.Type)
			if err != nil {
				return nil, fmt.Errorf("entity %s attr %s: %w", es.ID, name, err)
			}
			card := types.CardinalityOne
			if as.Cardinality == string(types.CardinalityMany) {
				card = types.CardinalityMany
			}
			value, err := parseValue(attrType, card, as.Value)
			if err != nil {
				return nil, fmt.Errorf("entity %s attr %s: %w", es.ID, name, err)
			}
			e.Attrs[name] = types.MakeAttr(name, value, attrType, types.AttrOptions{
				Indexed:     as.Indexed,
				Cardinality: card,
			})
		}
		out = append(out, e)
	}
	return out, nil
}

func parseAttrType(s string) (types.AttrType, error) {
	switch types.AttrType(s) {
	case types.TypeString, types.TypeNumber, types.TypeBoolean, types.TypeRef:
		return types.AttrType(s), nil
	default:
		return "", fmt.Errorf("unknown attribute type %q", s)
	}
}

func parseValue(t types.AttrType, card types.Cardinality, raw interface{}) (types.Value, error) {
	if card == types.CardinalityMany {
		items, ok := raw.([]interface{})
		if !ok {
			return types.Value{}, fmt.Errorf("multi-cardinality value must be a list, got %T", raw)
		}
		members := make([]types.Value, len(items))
		for i, it := range items {
			v, err := parseScalar(t, it)
			if err != nil {
				return types.Value{}, err
			}
			members[i] = v
		}
		return types.NewSet(members...), nil
	}
	return parseScalar(t, raw)
}

func parseScalar(t types.AttrType, raw interface{}) (types.Value, error) {
	switch t {
	case types.TypeString:
		s, ok := raw.(string)
		if !ok {
			return types.Value{}, fmt.Errorf("expected string value, got %T", raw)
		}
		return types.Text(s), nil
	case types.TypeRef:
		s, ok := raw.(string)
		if !ok {
			return types.Value{}, fmt.Errorf("expected ref value, got %T", raw)
		}
		return types.Ref(s), nil
	case types.TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return types.Value{}, fmt.Errorf("expected bool value, got %T", raw)
		}
		return types.Bool(b), nil
	case types.TypeNumber:
		switch n := raw.(type) {
		case int:
			return types.Int(int64(n)), nil
		case int64:
			return types.Int(n), nil
		case float64:
			return types.Real(n), nil
		default:
			return types.Value{}, fmt.Errorf("expected numeric value, got %T", raw)
		}
	default:
		return types.Value{}, fmt.Errorf("unknown attribute type %q", t)
	}
}
