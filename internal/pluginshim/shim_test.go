package pluginshim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/formatterplugins"
	"github.com/timetracer/timetracer/pkg/config"
)

func TestCreateFormatterAssignsIncrementingHandles(t *testing.T) {
	reg := NewRegistry()
	cfgJSON, err := json.Marshal(config.Default())
	require.NoError(t, err)

	h1, status1 := reg.CreateFormatter(formatterplugins.DialectDayMarkdown, cfgJSON)
	h2, status2 := reg.CreateFormatter(formatterplugins.DialectDayMarkdown, cfgJSON)

	assert.Equal(t, formatterabi.StatusOK, status1)
	assert.Equal(t, formatterabi.StatusOK, status2)
	assert.NotEqual(t, h1, h2)
	assert.NotZero(t, h1)
}

func TestCreateFormatterRejectsMalformedConfig(t *testing.T) {
	reg := NewRegistry()
	handle, status := reg.CreateFormatter(formatterplugins.DialectDayMarkdown, []byte("not json"))

	assert.Zero(t, handle)
	assert.Equal(t, formatterabi.StatusConfigError, status)
	assert.Equal(t, formatterabi.StatusConfigError, reg.LastError(0).Code)
}

func TestFormatDailyRendersThroughRegisteredDialect(t *testing.T) {
	reg := NewRegistry()
	cfgJSON, err := json.Marshal(config.Default())
	require.NoError(t, err)
	handle, status := reg.CreateFormatter(formatterplugins.DialectDayMarkdown, cfgJSON)
	require.Equal(t, formatterabi.StatusOK, status)

	payload := formatterabi.DailyPayload{Date: "2024-05-01", TotalDuration: 3600}
	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)

	out, status := reg.FormatDaily(handle, payloadJSON)
	require.Equal(t, formatterabi.StatusOK, status)
	assert.Contains(t, out, "Total Time: 1h 0m")
}

func TestFormatDailyUnknownHandleReturnsInvalidArgument(t *testing.T) {
	reg := NewRegistry()
	_, status := reg.FormatDaily(999, []byte("{}"))
	assert.Equal(t, formatterabi.StatusInvalidArgument, status)
}

func TestFormatDailyMalformedPayloadRecordsPerHandleError(t *testing.T) {
	reg := NewRegistry()
	cfgJSON, err := json.Marshal(config.Default())
	require.NoError(t, err)
	handle, _ := reg.CreateFormatter(formatterplugins.DialectDayMarkdown, cfgJSON)

	_, status := reg.FormatDaily(handle, []byte("not json"))
	assert.Equal(t, formatterabi.StatusInvalidArgument, status)
	assert.Equal(t, formatterabi.StatusInvalidArgument, reg.LastError(handle).Code)
}

func TestDestroyFormatterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	cfgJSON, err := json.Marshal(config.Default())
	require.NoError(t, err)
	handle, _ := reg.CreateFormatter(formatterplugins.DialectDayMarkdown, cfgJSON)

	reg.DestroyFormatter(handle)
	reg.DestroyFormatter(handle)

	_, status := reg.FormatDaily(handle, []byte("{}"))
	assert.Equal(t, formatterabi.StatusInvalidArgument, status)
}

func TestFormatRangeRendersThroughRegisteredDialect(t *testing.T) {
	reg := NewRegistry()
	cfgJSON, err := json.Marshal(config.Default())
	require.NoError(t, err)
	handle, _ := reg.CreateFormatter(formatterplugins.DialectRangeTypst, cfgJSON)

	payload := formatterabi.RangePayload{Valid: true, ActualDays: 0}
	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)

	out, status := reg.FormatRange(handle, payloadJSON)
	require.Equal(t, formatterabi.StatusOK, status)
	assert.Contains(t, out, config.Default().RangeTyp.Base.NoRecordsMessage)
}
