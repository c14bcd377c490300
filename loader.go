package deployhelper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// layoutSchema validates JSON layout files before we unmarshal them -
// bad shape kinds or under-specified polygons are rejected at load time.
const layoutSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"board_width": {"type": "number", "exclusiveMinimum": 0},
		"board_height": {"type": "number", "exclusiveMinimum": 0},
		"pieces": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"shapes": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"properties": {
								"kind": {"enum": ["rectangle", "polygon", "circle", "wall"]},
								"width": {"type": "number"},
								"height": {"type": "number"},
								"points": {"type": "array", "minItems": 3},
								"radius": {"type": "number"},
								"thickness": {"type": "number"}
							},
							"required": ["kind"]
						}
					},
					"position": {"type": "object"},
					"rotation": {"type": "number"},
					"mirror": {"enum": ["", "horizontal", "vertical"]},
					"blocking": {"type": "boolean"},
					"height": {"type": "number"}
				},
				"required": ["id", "shapes", "position"]
			}
		}
	},
	"required": ["pieces"]
}`

// Layout is the on-disk terrain layout format handed to us by whatever
// tool authored the table.
type Layout struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	BoardWidth  float64         `json:"board_width,omitempty" yaml:"board_width,omitempty"`
	BoardHeight float64         `json:"board_height,omitempty" yaml:"board_height,omitempty"`
	Pieces      []*TerrainPiece `json:"pieces" yaml:"pieces"`
}

// LoadLayout reads a layout file, YAML or JSON by extension, & validates
// every piece so malformed terrain fails here rather than mid-sweep.
func LoadLayout(fpath string) (*Layout, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read layout %s", fpath)
	}

	var l *Layout
	switch strings.ToLower(filepath.Ext(fpath)) {
	case ".json":
		l, err = ParseLayoutJSON(data)
	default:
		l, err = ParseLayoutYAML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "layout %s", fpath)
	}
	return l, nil
}

// ParseLayoutJSON parses & schema-validates a JSON layout.
func ParseLayoutJSON(data []byte) (*Layout, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(layoutSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, errors.Wrap(err, "schema validation failed")
	}
	if !result.Valid() {
		msgs := []string{}
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, errors.Errorf("invalid layout: %s", strings.Join(msgs, "; "))
	}

	l := &Layout{}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, errors.Wrap(err, "failed to parse layout json")
	}
	return l, validateLayout(l)
}

// ParseLayoutYAML parses a YAML layout.
func ParseLayoutYAML(data []byte) (*Layout, error) {
	l := &Layout{}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, errors.Wrap(err, "failed to parse layout yaml")
	}
	return l, validateLayout(l)
}

// validateLayout runs the construction-time shape checks over every piece.
func validateLayout(l *Layout) error {
	return ValidatePieces(l.Pieces)
}
