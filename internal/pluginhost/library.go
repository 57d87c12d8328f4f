/**
 * CONTEXT:   One loaded plugin shared library and its six resolved ABI symbols
 * INPUT:     A shared library path
 * OUTPUT:    A *Library exposing Go func values bound to the plugin's C entry points
 * BUSINESS:  The host never links against a plugin at compile time; every
 *            call crosses the FFI boundary through purego-registered function
 *            pointers resolved at runtime from the loaded library's symbol table
 * CHANGE:    Resolves the six formatter ABI entry points via purego.Dlopen +
 *            purego.RegisterLibFunc, with no cgo and no compile-time link
 *            against any plugin binary
 * RISK:      High - a resolved function's Go signature must exactly match the
 *            plugin's C signature; purego trusts the caller on this completely
 */

package pluginhost

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Library wraps one dlopen'd plugin and its six resolved ABI functions.
// Field names mirror the C symbol names with the tt_ prefix dropped.
type Library struct {
	path   string
	handle uintptr
	closed bool

	getFormatterAbiInfo func(out *cAbiInfo) int32
	createFormatter     func(kind int32, configJSON *byte, configLen uint64, outHandle *uintptr) int32
	destroyFormatter    func(handle uintptr)
	formatReport        func(handle uintptr, kind int32, payloadJSON *byte, payloadLen uint64, outPtr **byte, outLen *uint64) int32
	freeCString         func(ptr *byte)
	getLastError        func(handle uintptr, outCode *int32, outMsgPtr **byte, outMsgLen *uint64)
}

// cAbiInfo mirrors formatterabi.AbiInfo's field layout for the raw FFI call;
// kept distinct from the Go-native type so the unsafe boundary is explicit
// and confined to this file.
type cAbiInfo struct {
	StructSize       uint32
	AbiVersion       uint32
	ImplVersionMajor uint32
	ImplVersionMinor uint32
	ImplVersionPatch uint32
}

// loadLibrary dlopens path and resolves all six required ABI symbols,
// failing fast (and closing the handle) if any is missing.
func loadLibrary(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: dlopen %s: %w", path, err)
	}

	lib := &Library{path: path, handle: handle}

	if err := lib.resolveSymbols(); err != nil {
		purego.Dlclose(handle)
		return nil, err
	}

	return lib, nil
}

func (l *Library) resolveSymbols() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pluginhost: %s is missing a required ABI symbol: %v", l.path, r)
		}
	}()

	purego.RegisterLibFunc(&l.getFormatterAbiInfo, l.handle, "tt_getFormatterAbiInfo")
	purego.RegisterLibFunc(&l.createFormatter, l.handle, "tt_createFormatter")
	purego.RegisterLibFunc(&l.destroyFormatter, l.handle, "tt_destroyFormatter")
	purego.RegisterLibFunc(&l.formatReport, l.handle, "tt_formatReport")
	purego.RegisterLibFunc(&l.freeCString, l.handle, "tt_freeCString")
	purego.RegisterLibFunc(&l.getLastError, l.handle, "tt_getLastError")

	return nil
}

func (l *Library) close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	return purego.Dlclose(l.handle)
}
