/**
 * CONTEXT:   c-shared plugin binary exposing the six tt_* ABI symbols for Daily x Markdown
 * INPUT:     C-ABI calls from internal/pluginhost, JSON-encoded config/payload buffers
 * OUTPUT:    NUL-terminated UTF-8 report strings allocated with C.CString
 * BUSINESS:  This file is intentionally thin: every //export function does
 *            argument marshaling only and delegates to internal/pluginshim;
 *            the other five cmd/plugins/*/main.go files are this same shape
 *            with the Dialect constant and package comment changed, and the
 *            range plugins call registry.FormatRange instead of FormatDaily
 * CHANGE:    Exports the six tt_* symbols for Daily x Markdown; build with
 *            `go build -buildmode=c-shared`
 * RISK:      High - a panic crossing back into C is undefined behavior;
 *            tt_createFormatter and tt_formatReport recover before returning
 */

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/formatterplugins"
	"github.com/timetracer/timetracer/internal/pluginshim"
)

const implMajor, implMinor, implPatch = 1, 0, 0

const dialect = formatterplugins.DialectDayMarkdown

var registry = pluginshim.NewRegistry()

//export tt_getFormatterAbiInfo
func tt_getFormatterAbiInfo(out *C.uint32_t) C.int32_t {
	if out == nil {
		return C.int32_t(formatterabi.StatusInvalidArgument)
	}
	info := formatterabi.NewAbiInfo(implMajor, implMinor, implPatch)
	writeAbiInfo(out, info)
	return C.int32_t(formatterabi.StatusOK)
}

//export tt_createFormatter
func tt_createFormatter(configJSON *C.char, configLen C.uint64_t, outHandle *C.uintptr_t) (status C.int32_t) {
	defer func() {
		if r := recover(); r != nil {
			status = C.int32_t(formatterabi.StatusInternalError)
		}
	}()

	if outHandle == nil {
		return C.int32_t(formatterabi.StatusInvalidArgument)
	}

	buf := cBytes(configJSON, configLen)
	handle, code := registry.CreateFormatter(dialect, buf)
	*outHandle = C.uintptr_t(handle)
	return C.int32_t(code)
}

//export tt_destroyFormatter
func tt_destroyFormatter(handle C.uintptr_t) {
	registry.DestroyFormatter(uintptr(handle))
}

//export tt_formatReport
func tt_formatReport(handle C.uintptr_t, payloadJSON *C.char, payloadLen C.uint64_t, outPtr **C.char, outLen *C.uint64_t) (status C.int32_t) {
	defer func() {
		if r := recover(); r != nil {
			status = C.int32_t(formatterabi.StatusInternalError)
		}
	}()

	if outPtr == nil || outLen == nil {
		return C.int32_t(formatterabi.StatusInvalidArgument)
	}

	buf := cBytes(payloadJSON, payloadLen)
	rendered, code := registry.FormatDaily(uintptr(handle), buf)
	if code != formatterabi.StatusOK {
		return C.int32_t(code)
	}

	cstr := C.CString(rendered)
	*outPtr = cstr
	*outLen = C.uint64_t(len(rendered))
	return C.int32_t(formatterabi.StatusOK)
}

//export tt_freeCString
func tt_freeCString(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

//export tt_getLastError
func tt_getLastError(handle C.uintptr_t, outCode *C.int32_t, outMsgPtr **C.char, outMsgLen *C.uint64_t) {
	if outCode == nil || outMsgPtr == nil || outMsgLen == nil {
		return
	}

	abiErr := registry.LastError(uintptr(handle))
	*outCode = C.int32_t(abiErr.Code)

	cstr := C.CString(abiErr.Message)
	*outMsgPtr = cstr
	*outMsgLen = C.uint64_t(len(abiErr.Message))
}

func writeAbiInfo(out *C.uint32_t, info formatterabi.AbiInfo) {
	fields := []uint32{info.StructSize, info.AbiVersion, info.ImplVersionMajor, info.ImplVersionMinor, info.ImplVersionPatch}
	base := (*[5]C.uint32_t)(unsafe.Pointer(out))
	for i, f := range fields {
		base[i] = C.uint32_t(f)
	}
}

func cBytes(ptr *C.char, length C.uint64_t) []byte {
	if ptr == nil || length == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(ptr), C.int(length))
}

func main() {}
