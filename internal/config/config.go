// Package config provides configuration resolution for the export
// pipeline: built-in defaults deep-merged with an optional user YAML
// document, decoded into a typed schema and validated.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the typed view of the options the exporters consume. Keys
// that are accepted for compatibility but never read (page sizes,
// legacy BOM plugin settings) live only in the raw merged map.
type Config struct {
	General       GeneralConfig       `yaml:"general"`
	Gerbers       GerbersConfig       `yaml:"gerbers"`
	PCBPDF        PCBPDFConfig        `yaml:"pcb_pdf"`
	SchematicsPDF SchematicsPDFConfig `yaml:"schematics_pdf"`
	Step          StepConfig          `yaml:"step"`
	BOM           BOMConfig           `yaml:"bom"`
}

// GeneralConfig holds run-wide behavior switches.
type GeneralConfig struct {
	CleanOutput bool   `yaml:"clean_output"`
	ZipGerbers  bool   `yaml:"zip_gerbers"`
	FailFast    bool   `yaml:"fail_fast"`
	KicadCLI    string `yaml:"kicad_cli"` // explicit path to kicad-cli
}

// GerbersConfig controls the Gerber layer export and its drill companion.
type GerbersConfig struct {
	Enabled bool        `yaml:"enabled"`
	Layers  []string    `yaml:"layers"` // empty means the tool's default layer set
	Drill   DrillConfig `yaml:"drill"`
}

// DrillConfig controls the Excellon drill file export.
type DrillConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Units     string `yaml:"units" validate:"omitempty,oneof=mm in inch"`
	MapFormat string `yaml:"map_format" validate:"omitempty,oneof=gerber gerberx2 pdf ps dxf svg"`
	MergeNPTH bool   `yaml:"merge_npth"`
}

// PCBPDFConfig controls the multi-page board PDF export.
type PCBPDFConfig struct {
	Enabled           bool     `yaml:"enabled"`
	Layers            []string `yaml:"layers"`
	Monochrome        bool     `yaml:"monochrome"`
	IncludeTitleBlock bool     `yaml:"include_title_block"`
}

// SchematicsPDFConfig controls the schematic PDF export.
type SchematicsPDFConfig struct {
	Enabled    bool `yaml:"enabled"`
	Monochrome bool `yaml:"monochrome"`
}

// StepConfig controls the 3D model export and its missing-model policy.
type StepConfig struct {
	Enabled             bool   `yaml:"enabled"`
	IncludeTracksZones  bool   `yaml:"include_tracks_zones"`
	IncludePads         bool   `yaml:"include_pads"`
	IncludeInnerCopper  bool   `yaml:"include_inner_copper"`
	IncludeSilkscreen   bool   `yaml:"include_silkscreen"`
	IncludeSoldermask   bool   `yaml:"include_soldermask"`
	BoardOnly           bool   `yaml:"board_only"`
	FuseShapes          bool   `yaml:"fuse_shapes"`
	UserOrigin          string `yaml:"user_origin"` // "grid", "drill", or explicit coordinates
	IgnoreMissingModels bool   `yaml:"ignore_missing_models"`
	FallbackBoardOnly   bool   `yaml:"fallback_board_only"`
}

// BOMConfig controls the bill-of-materials export.
type BOMConfig struct {
	Enabled      bool     `yaml:"enabled"`
	OutputFormat string   `yaml:"output_format" validate:"omitempty,oneof=csv tsv"`
	Fields       []string `yaml:"fields"`
	Labels       []string `yaml:"labels"`
	GroupBy      []string `yaml:"group_by"`
}

// Resolved pairs the typed configuration with the merged raw document.
// The raw map preserves user-supplied unknown keys so the manifest can
// record exactly what the run was configured with.
type Resolved struct {
	Config Config
	Raw    map[string]any
}

var validate = validator.New()

// DefaultMap returns the built-in default configuration as a fresh
// mutable document. Option names and values match what kicad-cli
// expects; the per-section structs above describe the options the
// exporters actually read.
func DefaultMap() map[string]any {
	return map[string]any{
		"general": map[string]any{
			"clean_output": true,
			"zip_gerbers":  true,
			"fail_fast":    true,
			"kicad_cli":    "",
		},
		"gerbers": map[string]any{
			"enabled": true,
			"layers": []any{
				"F.Cu", "B.Cu",
				"F.Paste", "B.Paste",
				"F.SilkS", "B.SilkS",
				"F.Mask", "B.Mask",
				"Edge.Cuts",
			},
			"drill": map[string]any{
				"enabled":    true,
				"units":      "mm",
				"map_format": "gerber",
				"merge_npth": false,
			},
		},
		"pcb_pdf": map[string]any{
			"enabled": true,
			"layers": []any{
				"F.Cu", "B.Cu",
				"F.SilkS", "B.SilkS",
				"F.Mask", "B.Mask",
				"Edge.Cuts",
			},
			"monochrome":          false,
			"include_title_block": true,
			"page_size":           "A4",
		},
		"schematics_pdf": map[string]any{
			"enabled":             true,
			"monochrome":          false,
			"page_size":           "A4",
			"include_title_block": true,
		},
		"step": map[string]any{
			"enabled":               true,
			"units":                 "mm",
			"include_tracks_zones":  false,
			"model_precision":       "high",
			"ignore_missing_models": true,
			"fallback_board_only":   true,
		},
		"bom": map[string]any{
			"enabled":       true,
			"method":        "cli",
			"output_format": "csv",
			"plugin":        "bom_csv_grouped_by_value",
			"plugin_args":   []any{},
			"fields": []any{
				"Reference", "${QUANTITY}", "Value", "Footprint",
				"Supplier", "Supplier Part Number", "${DNP}",
			},
			"group_by": []any{"Value", "Footprint"},
		},
	}
}

// Defaults returns the typed default configuration.
func Defaults() Config {
	cfg, err := decode(DefaultMap())
	if err != nil {
		// The default document is a fixed literal; a decode failure is
		// a programming error.
		panic(err)
	}
	return cfg
}

// Resolve loads the config file at path (when non-empty), merges it
// over the defaults, and returns both the typed and raw views.
func Resolve(path string) (*Resolved, error) {
	raw := DefaultMap()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &NotFoundError{Path: path}
			}
			return nil, &InvalidError{Path: path, Message: "could not read config file", Cause: err}
		}

		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &InvalidError{Path: path, Message: "config file is not valid YAML", Cause: err}
		}
		if doc != nil {
			override, ok := doc.(map[string]any)
			if !ok {
				return nil, &InvalidError{Path: path, Message: "config file must contain a mapping at the root"}
			}
			DeepMerge(raw, override)
		}
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, &InvalidError{Path: path, Message: "config does not match the expected schema", Cause: err}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, &InvalidError{Path: path, Message: "config failed validation", Cause: err}
	}

	return &Resolved{Config: cfg, Raw: raw}, nil
}

// SetMonochrome overrides the monochrome option for both PDF exporters,
// keeping the typed config and the raw map in sync so the manifest
// reflects the effective value.
func (r *Resolved) SetMonochrome(mono bool) {
	r.Config.PCBPDF.Monochrome = mono
	r.Config.SchematicsPDF.Monochrome = mono
	for _, section := range []string{"pcb_pdf", "schematics_pdf"} {
		m, ok := r.Raw[section].(map[string]any)
		if !ok {
			m = map[string]any{}
			r.Raw[section] = m
		}
		m["monochrome"] = mono
	}
}

// decode round-trips a raw document through YAML into the typed schema.
// Unknown keys are tolerated; they stay visible in the raw map only.
func decode(raw map[string]any) (Config, error) {
	var cfg Config
	data, err := yaml.Marshal(raw)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
