/**
 * CONTEXT:   A single tt_createFormatter handle and its scoped lifecycle
 * INPUT:     A *Library and a TOML-derived dialect config (already JSON-able)
 * OUTPUT:    A handle usable for FormatReport calls, always paired with Close
 * BUSINESS:  Every successful tt_createFormatter must be paired with
 *            tt_destroyFormatter on all exit paths, and calls against one
 *            handle must not race - the plugin side has no concurrency story
 * CHANGE:    Wraps a raw formatter handle with a mutex and a closed flag so
 *            Close is idempotent and FormatReport refuses calls after Close
 * RISK:      High - a leaked handle leaks plugin-side memory for the process
 *            lifetime; a racing pair of calls on one handle is undefined
 *            behavior on the plugin side
 */

package pluginhost

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/timetracer/timetracer/internal/formatterabi"
)

// Handle is one live tt_createFormatter instance, correlated by a host-side
// uuid for logging even though the plugin only ever sees the raw uintptr.
type Handle struct {
	id      uuid.UUID
	lib     *Library
	cHandle uintptr
	mu      sync.Mutex
	closed  bool
}

// ID returns the host-side correlation id for this handle, suitable for
// structured logging across a batch of format calls.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// newHandle calls tt_createFormatter with a JSON-encoded config and wraps
// the returned raw handle, or returns the plugin's reported error.
func newHandle(lib *Library, kind formatterabi.ReportKind, config interface{}) (*Handle, error) {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: failed to marshal formatter config: %w", err)
	}

	var rawHandle uintptr
	status := lib.createFormatter(int32(kind), bytesPtr(configJSON), uint64(len(configJSON)), &rawHandle)
	if formatterabi.StatusCode(status) != formatterabi.StatusOK {
		return nil, lastError(lib, 0, formatterabi.StatusCode(status))
	}

	return &Handle{id: uuid.New(), lib: lib, cHandle: rawHandle}, nil
}

// FormatReport invokes tt_formatReport with a JSON-encoded payload, copies
// the plugin-owned result into a host string, and frees the plugin buffer
// via tt_freeCString before returning - never holding a plugin allocation
// past this call.
func (h *Handle) FormatReport(kind formatterabi.ReportKind, payload interface{}) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return "", fmt.Errorf("pluginhost: FormatReport called on a closed handle %s", h.id)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("pluginhost: failed to marshal report payload: %w", err)
	}

	var outPtr *byte
	var outLen uint64
	status := h.lib.formatReport(h.cHandle, int32(kind), bytesPtr(payloadJSON), uint64(len(payloadJSON)), &outPtr, &outLen)
	if formatterabi.StatusCode(status) != formatterabi.StatusOK {
		return "", lastError(h.lib, h.cHandle, formatterabi.StatusCode(status))
	}

	rendered := copyCString(outPtr, outLen)
	h.lib.freeCString(outPtr)
	return rendered, nil
}

// Close releases the plugin-side handle. Idempotent: a second Close is a
// no-op rather than a double-free, matching the scoped-acquisition pattern
// every exit path (success or error) must run exactly once.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.lib.destroyFormatter(h.cHandle)
}

func lastError(lib *Library, cHandle uintptr, status formatterabi.StatusCode) error {
	var code int32
	var msgPtr *byte
	var msgLen uint64
	lib.getLastError(cHandle, &code, &msgPtr, &msgLen)

	message := copyCString(msgPtr, msgLen)
	if message == "" {
		message = "no error detail reported by plugin"
	}
	return &formatterabi.AbiError{Code: status, Message: message}
}
