package pluginhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/pkg/logger"
)

func TestHostFormatReusesCachedHandle(t *testing.T) {
	lib, state := fakeLibrary(t)
	state.renderResult = "rendered once"

	handle, err := newHandle(lib, formatterabi.ReportKindDaily, map[string]string{})
	require.NoError(t, err)

	host := NewHost(t.TempDir(), DefaultRegistry(), logger.NopLogger{})
	key := Key{Kind: formatterabi.ReportKindDaily, Format: formatterabi.FormatMarkdown}
	host.handles[key] = handle

	out1, err := host.Format(formatterabi.ReportKindDaily, formatterabi.FormatMarkdown, nil, nil)
	require.NoError(t, err)
	out2, err := host.Format(formatterabi.ReportKindDaily, formatterabi.FormatMarkdown, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "rendered once", out1)
	assert.Equal(t, out1, out2)
	assert.Len(t, host.handles, 1)
}

func TestHostCloseDestroysEveryHandle(t *testing.T) {
	lib, state := fakeLibrary(t)
	handle, err := newHandle(lib, formatterabi.ReportKindDaily, map[string]string{})
	require.NoError(t, err)

	host := NewHost(t.TempDir(), DefaultRegistry(), logger.NopLogger{})
	key := Key{Kind: formatterabi.ReportKindDaily, Format: formatterabi.FormatMarkdown}
	host.handles[key] = handle

	host.Close()
	assert.Equal(t, uintptr(42), state.destroyedHandle)
	assert.Empty(t, host.handles)
}
