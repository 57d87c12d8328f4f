package logparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `Date: 2024-10-31
Status: True
Sleep: False
Getup: 07:30
Exercise: False
Remark: anything to end of line
09:00~10:00study_math
10:00~10:15rest_short
`

func TestParseBasicLog(t *testing.T) {
	p := NewParser(map[string]string{"study": "STUDY"})
	require.NoError(t, p.ParseReader(strings.NewReader(sampleLog)))

	res := p.Result()
	require.Len(t, res.Days, 1)
	day := res.Days[0]
	assert.Equal(t, "2024-10-31", day.Date)
	assert.True(t, day.Status)
	assert.False(t, day.Sleep)
	assert.Equal(t, "07:30", day.Getup)
	assert.Equal(t, "anything to end of line", day.Remark)

	require.Len(t, res.Intervals, 2)
	assert.Equal(t, 3600, res.Intervals[0].DurationSeconds)
	assert.Equal(t, "study_math", res.Intervals[0].ProjectPath)
	assert.Equal(t, 900, res.Intervals[1].DurationSeconds)
}

func TestMidnightWrapInterval(t *testing.T) {
	p := NewParser(nil)
	require.NoError(t, p.ParseReader(strings.NewReader("Date: 2025-01-01\nGetup: 06:00\n23:30~00:15sleep_night\n")))

	res := p.Result()
	require.Len(t, res.Intervals, 1)
	assert.Equal(t, 2700, res.Intervals[0].DurationSeconds)
	assert.Equal(t, "sleep_night", res.Intervals[0].ProjectPath)
}

func TestProjectPathHierarchy(t *testing.T) {
	p := NewParser(map[string]string{"study": "STUDY"})
	require.NoError(t, p.ParseReader(strings.NewReader("Date: 2024-01-01\n09:00~10:00study_english_words\n")))

	res := p.Result()
	pairs := map[ParentChildPair]bool{}
	for _, pc := range res.ParentChild {
		pairs[pc] = true
	}
	assert.True(t, pairs[ParentChildPair{Child: "study", Parent: "STUDY"}])
	assert.True(t, pairs[ParentChildPair{Child: "study_english", Parent: "study"}])
	assert.True(t, pairs[ParentChildPair{Child: "study_english_words", Parent: "study_english"}])
}

func TestCommitRequiresExplicitFlush(t *testing.T) {
	p := NewParser(nil)
	p.ParseLine("Date: 2024-01-01")
	p.ParseLine("09:00~10:00work_code")
	res := p.Result()
	assert.Empty(t, res.Days, "day must not be committed before flush or a new Date: line")

	p.Flush()
	res = p.Result()
	assert.Len(t, res.Days, 1)
	assert.Len(t, res.Intervals, 1)
}

func TestMalformedTimeLineIgnored(t *testing.T) {
	p := NewParser(nil)
	p.ParseLine("Date: 2024-01-01")
	p.ParseLine("this has a ~ but is not a time line")
	p.Flush()
	res := p.Result()
	require.Len(t, res.Days, 1)
	assert.Empty(t, res.Intervals)
}

func TestMultipleDaysCommitInOrder(t *testing.T) {
	p := NewParser(nil)
	log := "Date: 2024-01-01\n09:00~10:00a_b\nDate: 2024-01-02\n11:00~12:00c_d\n"
	require.NoError(t, p.ParseReader(strings.NewReader(log)))
	res := p.Result()
	require.Len(t, res.Days, 2)
	assert.Equal(t, "2024-01-01", res.Days[0].Date)
	assert.Equal(t, "2024-01-02", res.Days[1].Date)
}
