package sheet

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlField mirrors the on-disk shape of one field entry; kind is one of
// "boolean" or "seven_segment".
type yamlField struct {
	Descriptor string `yaml:"descriptor"`
	Kind       string `yaml:"kind"`
	DigitCount int    `yaml:"digit_count"`
}

type yamlPage struct {
	Title  string      `yaml:"title"`
	Fields []yamlField `yaml:"fields"`
}

// LoadPageDescription parses a YAML page-description document into a
// PageDescription, replacing the out-of-scope dummy() sample page with a
// real, user-authored source for the layout builder.
func LoadPageDescription(data []byte) (PageDescription, error) {
	var page yamlPage
	if err := yaml.Unmarshal(data, &page); err != nil {
		return PageDescription{}, fmt.Errorf("sheet: parsing page description: %w", err)
	}

	desc := PageDescription{Title: page.Title}
	for i, f := range page.Fields {
		switch f.Kind {
		case "boolean":
			desc.Fields = append(desc.Fields, FieldDescription{
				Descriptor: f.Descriptor,
				Kind:       FieldBoolean,
			})
		case "seven_segment":
			if f.DigitCount < 1 {
				return PageDescription{}, fmt.Errorf("sheet: field %d (%q): digit_count must be >= 1", i, f.Descriptor)
			}
			desc.Fields = append(desc.Fields, FieldDescription{
				Descriptor: f.Descriptor,
				Kind:       FieldSevenSegment,
				DigitCount: f.DigitCount,
			})
		default:
			return PageDescription{}, fmt.Errorf("sheet: field %d (%q): unrecognized kind %q", i, f.Descriptor, f.Kind)
		}
	}

	return desc, nil
}
