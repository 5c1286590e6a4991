package i18n

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps a language code to its flat key → message table.
type Catalog map[string]map[string]string

// ParseYAML decodes a document of the form
//
//	en:
//	  onboarding:
//	    create_organization.organization_name: Organization key
//
// Nested maps are flattened into dot-separated keys, so a key may be both a
// message and the prefix of other messages.
func ParseYAML(content []byte) (Catalog, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	out := make(Catalog, len(doc))
	for lang, v := range doc {
		tree, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q must map to messages, got %T", ErrInvalidStructure, lang, v)
		}
		msgs := make(map[string]string)
		if err := flatten("", tree, msgs); err != nil {
			return nil, fmt.Errorf("%w: language %q: %w", ErrInvalidStructure, lang, err)
		}
		out[strings.ToLower(lang)] = msgs
	}
	return out, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		case string:
			out[key] = val
		case nil:
			out[key] = ""
		case int, int64, float64, bool:
			out[key] = fmt.Sprint(val)
		default:
			return fmt.Errorf("key %q has unsupported value type %T", key, v)
		}
	}
	return nil
}

// merge copies src into dst, overriding existing messages.
func (c Catalog) merge(src Catalog) {
	for lang, msgs := range src {
		if c[lang] == nil {
			c[lang] = make(map[string]string, len(msgs))
		}
		for k, v := range msgs {
			c[lang][k] = v
		}
	}
}
