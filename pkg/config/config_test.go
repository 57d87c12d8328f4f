package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[day_md.base]
struct_version = 1
no_records_message = "No records for this day."
invalid_format_message = "Invalid date format."
project_path_connector = "."
title = "Daily Report"

[day_md]
title = "Daily Report"

[day_tex.base]
struct_version = 1
no_records_message = "No records for this day."
invalid_format_message = "Invalid date format."
project_path_connector = "."

[day_tex]
title = "Daily Report"
document_class = "article"

[day_typ.base]
struct_version = 1
no_records_message = "No records for this day."
invalid_format_message = "Invalid date format."
project_path_connector = "."

[day_typ]
title = "Daily Report"
[day_typ.typst_keyword_colors]
study = "#336699"

[range_md.base]
struct_version = 1
no_records_message = "No records for this range."
invalid_format_message = "Invalid range format."
project_path_connector = "."

[range_md]
title_template = "Report for {label}"

[range_tex.base]
struct_version = 1
no_records_message = "No records for this range."
invalid_format_message = "Invalid range format."
project_path_connector = "."

[range_tex]
title_template = "Report for {label}"
document_class = "article"

[range_typ.base]
struct_version = 1
no_records_message = "No records for this range."
invalid_format_message = "Invalid range format."
project_path_connector = "."

[range_typ]
title_template = "Report for {label}"

[top_level_parent]
study = "STUDY"
code = "CODE"
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	path := writeTempConfig(t, sampleTOML)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Daily Report", cfg.DayMd.Title)
	assert.Equal(t, "#336699", cfg.DayTyp.TypstKeywordColors["study"])
	assert.Equal(t, "STUDY", cfg.TopLevelParent["study"])
	assert.Equal(t, "article", cfg.DayTex.DocumentClass)
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	bad := `
[day_md.base]
struct_version = 99
no_records_message = "x"
invalid_format_message = "y"
project_path_connector = "."
`
	path := writeTempConfig(t, bad)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateStatisticItemsRejectsForwardReference(t *testing.T) {
	items := []StatisticItemConfig{
		{Label: "a", ParentIndex: 1},
		{Label: "b", ParentIndex: -1},
	}
	assert.Error(t, ValidateStatisticItems(items))
}

func TestValidateStatisticItemsAcceptsTopologicalOrder(t *testing.T) {
	items := []StatisticItemConfig{
		{Label: "root", ParentIndex: -1},
		{Label: "child", ParentIndex: 0},
	}
	assert.NoError(t, ValidateStatisticItems(items))
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.DayMd.Base.Validate())
	assert.NoError(t, cfg.RangeTyp.Base.Validate())
}
