/**
 * CONTEXT:   Typed TOML configuration for formatter plugins and the log parser
 * INPUT:     A TOML file path
 * OUTPUT:    Versioned config structs, one per (report-kind, dialect) pair
 * BUSINESS:  Labels, templates, connectors, and colors are operator-tunable
 *            without recompiling any plugin; every struct mirrors the ABI's
 *            struct_size/version discipline so a stale config is rejected
 * CHANGE:    Loads formatter and parser configuration via BurntSushi/toml
 *            into versioned structs, one per (report-kind, dialect) pair
 * RISK:      Low - pure data, validated once at load time
 */

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ConfigVersion is the compile-time version every loaded config struct must
// match, mirroring the ABI's version discipline for the formatter boundary.
const ConfigVersion uint32 = 1

// StatisticItemConfig is one node in the renderer's per-day statistics tree.
// ParentIndex must be < the node's own index in the flat array (topological
// order); -1 marks a root.
type StatisticItemConfig struct {
	Label       string `toml:"label"`
	DBColumn    string `toml:"db_column"`
	Show        bool   `toml:"show"`
	ParentIndex int    `toml:"parent_index"`
}

// ValidateStatisticItems checks that every StatisticItemConfig's parent_index
// refers to an earlier item in the list, never itself or a later one.
func ValidateStatisticItems(items []StatisticItemConfig) error {
	for i, item := range items {
		if item.ParentIndex < -1 || item.ParentIndex >= i {
			return fmt.Errorf("config: statistic item %d (%s) has invalid parent_index %d", i, item.Label, item.ParentIndex)
		}
	}
	return nil
}

// BaseDialectConfig carries the fields every dialect config shares:
// ABI-style version header plus per-dialect message strings, configured
// per-(kind, dialect) rather than as a single global default.
type BaseDialectConfig struct {
	StructVersion        uint32 `toml:"struct_version"`
	NoRecordsMessage     string `toml:"no_records_message"`
	InvalidFormatMessage string `toml:"invalid_format_message"`
	ProjectPathConnector string `toml:"project_path_connector"`
}

// Validate rejects a config built against an incompatible version.
func (b BaseDialectConfig) Validate() error {
	if b.StructVersion != ConfigVersion {
		return fmt.Errorf("config: unsupported struct_version %d (want %d)", b.StructVersion, ConfigVersion)
	}
	return nil
}

// DayMdConfig configures the Daily x Markdown formatter.
type DayMdConfig struct {
	Base           BaseDialectConfig     `toml:"base"`
	Title          string                `toml:"title"`
	StatisticItems []StatisticItemConfig `toml:"statistic_items"`
}

// DayTexConfig configures the Daily x LaTeX formatter.
type DayTexConfig struct {
	Base           BaseDialectConfig     `toml:"base"`
	Title          string                `toml:"title"`
	DocumentClass  string                `toml:"document_class"`
	StatisticItems []StatisticItemConfig `toml:"statistic_items"`
}

// DayTypConfig configures the Daily x Typst formatter, including the
// keyword->color table interval highlighting is driven from.
type DayTypConfig struct {
	Base               BaseDialectConfig     `toml:"base"`
	Title              string                `toml:"title"`
	StatisticItems     []StatisticItemConfig `toml:"statistic_items"`
	TypstKeywordColors map[string]string     `toml:"typst_keyword_colors"`
}

// RangeMdConfig configures every Range x Markdown formatter (Monthly, Weekly,
// Yearly, and Period all share the same config shape, varying only the
// title template and which header fields are shown).
type RangeMdConfig struct {
	Base          BaseDialectConfig `toml:"base"`
	TitleTemplate string            `toml:"title_template"`
}

// RangeTexConfig configures every Range x LaTeX formatter.
type RangeTexConfig struct {
	Base          BaseDialectConfig `toml:"base"`
	TitleTemplate string            `toml:"title_template"`
	DocumentClass string            `toml:"document_class"`
}

// RangeTypConfig configures every Range x Typst formatter.
type RangeTypConfig struct {
	Base          BaseDialectConfig `toml:"base"`
	TitleTemplate string            `toml:"title_template"`
}

// TopLevelParentMap is the parser's "top segment -> uppercase display name"
// configuration. A missing file is non-fatal at the call site, not here.
type TopLevelParentMap map[string]string

// Config aggregates every sub-config the module loads from a single TOML
// document, one config.toml carrying every subsystem's settings.
type Config struct {
	DayMd          DayMdConfig       `toml:"day_md"`
	DayTex         DayTexConfig      `toml:"day_tex"`
	DayTyp         DayTypConfig      `toml:"day_typ"`
	RangeMd        RangeMdConfig     `toml:"range_md"`
	RangeTex       RangeTexConfig    `toml:"range_tex"`
	RangeTyp       RangeTypConfig    `toml:"range_typ"`
	TopLevelParent TopLevelParentMap `toml:"top_level_parent"`
}

// Load reads and decodes a TOML config file, validating every sub-config's
// struct_version before returning.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	validators := []func() error{
		cfg.DayMd.Base.Validate,
		cfg.DayTex.Base.Validate,
		cfg.DayTyp.Base.Validate,
		cfg.RangeMd.Base.Validate,
		cfg.RangeTex.Base.Validate,
		cfg.RangeTyp.Base.Validate,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return nil, err
		}
	}

	if err := ValidateStatisticItems(cfg.DayMd.StatisticItems); err != nil {
		return nil, err
	}
	if err := ValidateStatisticItems(cfg.DayTex.StatisticItems); err != nil {
		return nil, err
	}
	if err := ValidateStatisticItems(cfg.DayTyp.StatisticItems); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with sensible defaults, used when no TOML file
// is supplied (e.g. in tests or a first run before any config exists).
func Default() *Config {
	base := func(noRecords, invalidFormat, connector string) BaseDialectConfig {
		return BaseDialectConfig{
			StructVersion:        ConfigVersion,
			NoRecordsMessage:     noRecords,
			InvalidFormatMessage: invalidFormat,
			ProjectPathConnector: connector,
		}
	}

	return &Config{
		DayMd: DayMdConfig{
			Base:  base("No records for this day.", "Invalid date format.", "."),
			Title: "Daily Report",
		},
		DayTex: DayTexConfig{
			Base:          base("No records for this day.", "Invalid date format.", "."),
			Title:         "Daily Report",
			DocumentClass: "article",
		},
		DayTyp: DayTypConfig{
			Base:               base("No records for this day.", "Invalid date format.", "."),
			Title:              "Daily Report",
			TypstKeywordColors: map[string]string{},
		},
		RangeMd:  RangeMdConfig{Base: base("No records for this range.", "Invalid range format.", "."), TitleTemplate: "Report for {label}"},
		RangeTex: RangeTexConfig{Base: base("No records for this range.", "Invalid range format.", "."), TitleTemplate: "Report for {label}", DocumentClass: "article"},
		RangeTyp: RangeTypConfig{Base: base("No records for this range.", "Invalid range format.", "."), TitleTemplate: "Report for {label}"},
		TopLevelParent: TopLevelParentMap{},
	}
}
