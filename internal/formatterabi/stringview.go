/**
 * CONTEXT:   Non-owning string views crossing the FFI boundary
 * INPUT:     A Go string to expose, or a raw pointer+length pair to read back
 * OUTPUT:    A StringView a plugin can read without the host transferring ownership
 * BUSINESS:  Most payload fields (names, paths, remarks) are read-only from the
 *            plugin's perspective; only tt_formatReport's output string is owned
 * CHANGE:    StringView is a {data: *const u8, length: u64} pair that never
 *            takes ownership of the bytes it points to
 * RISK:      High - the Go string's backing array must outlive every call that
 *            uses its StringView; callers must keep the source string alive (runtime.KeepAlive)
 */

package formatterabi

import (
	"unsafe"
)

// StringView is the non-owning {pointer, length} pair the spec mandates.
// Data is a raw pointer into Go-managed memory; callers must not retain a
// StringView past the call that produced it without separately pinning the
// source string with runtime.KeepAlive.
type StringView struct {
	Data   uintptr
	Length uint64
}

// NewStringView borrows s's backing bytes. The caller is responsible for
// keeping s alive (e.g. via runtime.KeepAlive) for the duration the plugin
// might read through the returned view.
func NewStringView(s string) StringView {
	if len(s) == 0 {
		return StringView{}
	}
	return StringView{
		Data:   uintptr(unsafe.Pointer(unsafe.StringData(s))),
		Length: uint64(len(s)),
	}
}

// ReadString copies a plugin-owned StringView back into a Go string. Used
// only for borrowed views the host reads without taking ownership; owned
// output strings are copied by internal/pluginhost and released through
// tt_freeCString instead.
func ReadString(v StringView) string {
	if v.Data == 0 || v.Length == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(v.Data)), int(v.Length)))
}
