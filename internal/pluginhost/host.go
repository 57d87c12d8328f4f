/**
 * CONTEXT:   Top-level entry point internal/reportservice calls to render a report
 * INPUT:     A plugin directory, a Registry, and per-call (kind, format, config, payload)
 * OUTPUT:    A rendered report string, or an error surfaced from the plugin's
 *            tt_getLastError detail
 * BUSINESS:  Loading a shared library and creating a formatter handle are both
 *            expensive relative to rendering one report; the host caches both
 *            per (kind, format) pair so a batch run pays the cost once
 * CHANGE:    Caches loaded libraries by plugin basename and formatter
 *            handles by Key{Kind, Format}, so a batch run reuses both
 *            across every report it renders
 * RISK:      Medium - a stale cached handle after a plugin reload would be
 *            invisible to callers; this host never reloads a library once
 *            opened, the same long-lived-connection idiom internal/sqlitestore
 *            uses for its pooled handle
 */

package pluginhost

import (
	"fmt"
	"sync"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/pkg/logger"
)

// Host owns every loaded plugin library and live formatter handle for one
// process. Safe for concurrent use.
type Host struct {
	pluginDir string
	registry  Registry
	log       logger.Logger

	mu        sync.Mutex
	libraries map[string]*Library
	handles   map[Key]*Handle
}

// NewHost builds a Host that resolves plugin basenames from registry against
// shared libraries under pluginDir.
func NewHost(pluginDir string, registry Registry, log logger.Logger) *Host {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Host{
		pluginDir: pluginDir,
		registry:  registry,
		log:       log.WithComponent("pluginhost"),
		libraries: make(map[string]*Library),
		handles:   make(map[Key]*Handle),
	}
}

// Format renders one report through the plugin registered for key, loading
// the library and creating the formatter handle on first use and reusing
// both on every subsequent call for the same key.
func (h *Host) Format(kind formatterabi.ReportKind, format formatterabi.ReportFormat, config, payload interface{}) (string, error) {
	handle, err := h.handleFor(kind, format, config)
	if err != nil {
		return "", err
	}
	return handle.FormatReport(kind, payload)
}

func (h *Host) handleFor(kind formatterabi.ReportKind, format formatterabi.ReportFormat, config interface{}) (*Handle, error) {
	key := Key{Kind: kind, Format: format}

	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.handles[key]; ok {
		return handle, nil
	}

	lib, err := h.libraryFor(key)
	if err != nil {
		return nil, err
	}

	if err := h.checkAbi(lib); err != nil {
		return nil, err
	}

	handle, err := newHandle(lib, kind, config)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: tt_createFormatter failed for kind=%d format=%d: %w", kind, format, err)
	}

	h.log.Info("formatter handle created", "handle_id", handle.id.String(), "kind", kind, "format", format)
	h.handles[key] = handle
	return handle, nil
}

func (h *Host) libraryFor(key Key) (*Library, error) {
	basename, err := h.registry.Basename(key.Kind, key.Format)
	if err != nil {
		return nil, err
	}

	if lib, ok := h.libraries[basename]; ok {
		return lib, nil
	}

	path := LibraryPath(h.pluginDir, basename)
	lib, err := loadLibrary(path)
	if err != nil {
		return nil, err
	}

	h.libraries[basename] = lib
	return lib, nil
}

func (h *Host) checkAbi(lib *Library) error {
	var info cAbiInfo
	lib.getFormatterAbiInfo(&info)

	native := formatterabi.AbiInfo{
		StructSize:       info.StructSize,
		AbiVersion:       info.AbiVersion,
		ImplVersionMajor: info.ImplVersionMajor,
		ImplVersionMinor: info.ImplVersionMinor,
		ImplVersionPatch: info.ImplVersionPatch,
	}
	if err := native.Validate(); err != nil {
		return fmt.Errorf("pluginhost: %s failed ABI validation: %w", lib.path, err)
	}
	return nil
}

// Close releases every live handle and dlclose's every loaded library. Meant
// to run once at process shutdown; a Host is not usable afterward.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, handle := range h.handles {
		handle.Close()
		delete(h.handles, key)
	}
	for basename, lib := range h.libraries {
		if err := lib.close(); err != nil {
			h.log.Warn("failed to unload plugin library", "basename", basename, "error", err.Error())
		}
		delete(h.libraries, basename)
	}
}
