package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringOrList accepts either a single string or a list of strings.
type StringOrList []string

// UnmarshalTOML implements toml.Unmarshaler.
func (s *StringOrList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*s = StringOrList{v}

		return nil
	case []any:
		out := make(StringOrList, 0, len(v))

		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("item %d: expected string, got %T", i, item)
			}

			out = append(out, str)
		}

		*s = out

		return nil
	default:
		return fmt.Errorf("expected string or array, got %T", v)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		*s = StringOrList{str}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}
