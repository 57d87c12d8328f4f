/**
 * CONTEXT:   Plugin-side handle table and dispatch shared by all six cmd/plugins/* binaries
 * INPUT:     A Dialect (fixed per binary), JSON-encoded config/payload bytes
 * OUTPUT:    Rendered report strings or formatterabi.AbiError, handle integers
 * BUSINESS:  Every cmd/plugins/* binary's //export functions are a thin cgo
 *            shim; this package holds the actual logic (handle bookkeeping,
 *            per-handle last-error, JSON decode, delegation to
 *            internal/formatterplugins) so the six main.go files stay
 *            nearly identical one-page wrappers differing in Dialect and in
 *            calling FormatDaily or FormatRange
 * CHANGE:    Wraps the handle lifecycle so every successful CreateFormatter
 *            is paired with a DestroyFormatter; the plugin-side mirror of
 *            internal/pluginhost's host-side half of the same contract
 * RISK:      High - this is the only code running inside the plugin process;
 *            a panic here must never cross the cgo boundary uncaught
 */

package pluginshim

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/formatterplugins"
	"github.com/timetracer/timetracer/pkg/config"
)

// instance is one live tt_createFormatter handle: a fixed dialect plus the
// decoded config it was created with, and the last error recorded against it.
type instance struct {
	dialect   formatterplugins.Dialect
	cfg       *config.Config
	lastError formatterabi.AbiError
}

// Registry is the plugin-side handle table. One Registry per loaded plugin
// process; cmd/plugins/*/main.go keeps a single package-level instance.
type Registry struct {
	mu      sync.Mutex
	next    uintptr
	live    map[uintptr]*instance
	process formatterabi.AbiError // last error for calls made before any handle exists
}

// NewRegistry returns an empty handle table, starting handle ids at 1 so 0
// can mean "no handle" at the cgo boundary.
func NewRegistry() *Registry {
	return &Registry{next: 1, live: make(map[uintptr]*instance)}
}

// CreateFormatter decodes configJSON into a full config.Config, validates
// it, and registers a new handle bound to dialect.
func (r *Registry) CreateFormatter(dialect formatterplugins.Dialect, configJSON []byte) (uintptr, formatterabi.StatusCode) {
	var cfg config.Config
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		r.setProcessError(formatterabi.StatusConfigError, fmt.Sprintf("malformed config JSON: %v", err))
		return 0, formatterabi.StatusConfigError
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.next
	r.next++
	r.live[handle] = &instance{dialect: dialect, cfg: &cfg}
	return handle, formatterabi.StatusOK
}

// DestroyFormatter releases a handle. Unknown or already-destroyed handles
// are a silent no-op, matching tt_destroyFormatter's documented idempotence.
func (r *Registry) DestroyFormatter(handle uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, handle)
}

// FormatDaily renders a DailyPayload through the handle's dialect/config.
func (r *Registry) FormatDaily(handle uintptr, payloadJSON []byte) (string, formatterabi.StatusCode) {
	inst, ok := r.lookup(handle)
	if !ok {
		return "", formatterabi.StatusInvalidArgument
	}

	var payload formatterabi.DailyPayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		inst.record(formatterabi.StatusInvalidArgument, fmt.Sprintf("malformed daily payload: %v", err))
		return "", formatterabi.StatusInvalidArgument
	}

	rendered, err := formatterplugins.FormatDailyPayload(inst.dialect, payload, inst.cfg)
	if err != nil {
		inst.record(formatterabi.StatusFormatError, err.Error())
		return "", formatterabi.StatusFormatError
	}
	return rendered, formatterabi.StatusOK
}

// FormatRange renders a RangePayload through the handle's dialect/config.
func (r *Registry) FormatRange(handle uintptr, payloadJSON []byte) (string, formatterabi.StatusCode) {
	inst, ok := r.lookup(handle)
	if !ok {
		return "", formatterabi.StatusInvalidArgument
	}

	var payload formatterabi.RangePayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		inst.record(formatterabi.StatusInvalidArgument, fmt.Sprintf("malformed range payload: %v", err))
		return "", formatterabi.StatusInvalidArgument
	}

	rendered, err := formatterplugins.FormatRangePayload(inst.dialect, payload, inst.cfg)
	if err != nil {
		inst.record(formatterabi.StatusFormatError, err.Error())
		return "", formatterabi.StatusFormatError
	}
	return rendered, formatterabi.StatusOK
}

// LastError returns the last recorded error for handle, or the process-wide
// error recorded before any handle existed (e.g. a failed CreateFormatter).
func (r *Registry) LastError(handle uintptr) formatterabi.AbiError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inst, ok := r.live[handle]; ok {
		return inst.lastError
	}
	return r.process
}

func (r *Registry) lookup(handle uintptr) (*instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.live[handle]
	return inst, ok
}

func (r *Registry) setProcessError(code formatterabi.StatusCode, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.process = formatterabi.AbiError{Code: code, Message: message}
}

func (inst *instance) record(code formatterabi.StatusCode, message string) {
	inst.lastError = formatterabi.AbiError{Code: code, Message: message}
}
