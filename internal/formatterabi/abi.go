/**
 * CONTEXT:   Stable C-shaped struct layouts crossing the host/plugin FFI boundary
 * INPUT:     Go-native report data, descriptor kinds
 * OUTPUT:    Fixed-layout structs safe to pass by pointer across a dynamic library boundary
 * BUSINESS:  Every formatter plugin is a separately compiled binary; the host
 *            and plugin must agree on byte layout without sharing Go types
 * CHANGE:    Defines AbiInfo, status codes, and the flattened tree layout with
 *            explicit field order and fixed-width integer types so the struct
 *            has no padding surprises across compilers
 * RISK:      High - field order and widths here must exactly match cmd/plugins/*
 *            and internal/pluginhost; changing either side without the other breaks the ABI
 */

package formatterabi

// AbiVersion is the host's compile-time expectation; tt_getFormatterAbiInfo
// must report a matching value or the plugin is rejected.
const AbiVersion uint32 = 1

// StatusCode mirrors the plugin-side status taxonomy returned by every
// entry point and retrievable in detail via tt_getLastError.
type StatusCode int32

const (
	StatusOK StatusCode = iota
	StatusInvalidArgument
	StatusConfigError
	StatusFormatError
	StatusMemoryError
	StatusNotSupported
	StatusInternalError
)

func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusConfigError:
		return "CONFIG_ERROR"
	case StatusFormatError:
		return "FORMAT_ERROR"
	case StatusMemoryError:
		return "MEMORY_ERROR"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN_STATUS"
	}
}

// ReportKind tags which payload shape follows a descriptor's header.
type ReportKind int32

const (
	ReportKindDaily ReportKind = iota
	ReportKindRange
)

// ReportFormat tags the output dialect a formatter handle was created for.
type ReportFormat int32

const (
	FormatMarkdown ReportFormat = iota
	FormatLatex
	FormatTypst
)

// AbiInfo is what tt_getFormatterAbiInfo writes into a caller-owned buffer.
// StructSize lets the host detect a plugin built against an incompatible
// struct layout before touching any other field.
type AbiInfo struct {
	StructSize       uint32
	AbiVersion       uint32
	ImplVersionMajor uint32
	ImplVersionMinor uint32
	ImplVersionPatch uint32
}

// SizeOfAbiInfo is the struct_size value every plugin must report; computed
// by hand (5 * uint32) rather than unsafe.Sizeof since the value crosses a
// language boundary and must stay stable even if Go's layout rules change.
const SizeOfAbiInfo uint32 = 20

// NewAbiInfo builds the struct the host expects back from a plugin, with
// struct_size and abi_version pre-filled.
func NewAbiInfo(major, minor, patch uint32) AbiInfo {
	return AbiInfo{
		StructSize:       SizeOfAbiInfo,
		AbiVersion:       AbiVersion,
		ImplVersionMajor: major,
		ImplVersionMinor: minor,
		ImplVersionPatch: patch,
	}
}

// Validate checks struct_size and abi_version against this host's
// expectations, the first thing done with any plugin-returned AbiInfo.
func (info AbiInfo) Validate() error {
	if info.StructSize != SizeOfAbiInfo {
		return &AbiError{Code: StatusInvalidArgument, Message: "plugin AbiInfo struct_size mismatch"}
	}
	if info.AbiVersion != AbiVersion {
		return &AbiError{Code: StatusNotSupported, Message: "plugin abi_version unsupported by this host"}
	}
	return nil
}

// AbiError is a status code paired with a human-readable message, the shape
// tt_getLastError returns and every pluginhost call surfaces as a Go error.
type AbiError struct {
	Code    StatusCode
	Message string
}

func (e *AbiError) Error() string {
	return e.Code.String() + ": " + e.Message
}
