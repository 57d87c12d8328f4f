/**
 * CONTEXT:   Maps a (report kind, output format) pair to the plugin binary
 *            that renders it, and resolves that binary's platform file name
 * INPUT:     formatterabi.ReportKind / ReportFormat, a plugin directory
 * OUTPUT:    An absolute shared-library path ready for purego.Dlopen
 * BUSINESS:  Six dialect binaries ship as separate c-shared libraries; the
 *            host must find "daymdformatter" on disk as libdaymdformatter.so,
 *            daymdformatter.dll, or libdaymdformatter.dylib depending on OS
 * CHANGE:    Resolves a plugin name to its platform-specific shared library
 *            file name before handing the path to purego.Dlopen
 * RISK:      Low - pure lookup and string construction, no I/O until Dlopen
 */

package pluginhost

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/timetracer/timetracer/internal/formatterabi"
)

// Key identifies one (report kind, output format) pair the registry maps to
// a plugin basename.
type Key struct {
	Kind   formatterabi.ReportKind
	Format formatterabi.ReportFormat
}

// Registry is the compiled-in basename table for the six separate
// cmd/plugins/* binaries.
type Registry map[Key]string

// DefaultRegistry returns the basename for each of the six shipped plugins.
func DefaultRegistry() Registry {
	return Registry{
		{Kind: formatterabi.ReportKindDaily, Format: formatterabi.FormatMarkdown}: "daymdformatter",
		{Kind: formatterabi.ReportKindDaily, Format: formatterabi.FormatLatex}:    "daytexformatter",
		{Kind: formatterabi.ReportKindDaily, Format: formatterabi.FormatTypst}:    "daytypformatter",
		{Kind: formatterabi.ReportKindRange, Format: formatterabi.FormatMarkdown}: "rangemdformatter",
		{Kind: formatterabi.ReportKindRange, Format: formatterabi.FormatLatex}:    "rangetexformatter",
		{Kind: formatterabi.ReportKindRange, Format: formatterabi.FormatTypst}:    "rangetypformatter",
	}
}

// Basename returns the plugin basename for kind/format, or an error if the
// registry has no entry for that pair.
func (r Registry) Basename(kind formatterabi.ReportKind, format formatterabi.ReportFormat) (string, error) {
	name, ok := r[Key{Kind: kind, Format: format}]
	if !ok {
		return "", fmt.Errorf("pluginhost: no plugin registered for kind=%d format=%d", kind, format)
	}
	return name, nil
}

// LibraryPath turns a basename into the platform-specific shared library
// file name, joined under dir.
func LibraryPath(dir, basename string) string {
	return filepath.Join(dir, libraryFileName(basename))
}

func libraryFileName(basename string) string {
	switch runtime.GOOS {
	case "windows":
		return basename + ".dll"
	case "darwin":
		return "lib" + basename + ".dylib"
	default:
		return "lib" + basename + ".so"
	}
}
