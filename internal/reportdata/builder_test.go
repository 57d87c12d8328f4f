package reportdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/timetracer/timetracer/internal/query"
)

func TestBuildDailySumsIntervalDurations(t *testing.T) {
	scope := &query.DayScopeResult{
		Meta: query.DayMeta{Date: "2024-01-15", Status: true, StudyTime: 1800},
		DetailedRecords: []query.DetailedRecord{
			{Start: "09:00", End: "10:00", ProjectPath: "STUDY_english", DurationSec: 3600},
			{Start: "10:00", End: "10:15", ProjectPath: "STUDY_math", DurationSec: 900},
		},
	}

	data := BuildDaily(scope, nil)
	assert.Equal(t, "2024-01-15", data.Date)
	assert.True(t, data.Status)
	assert.Equal(t, int64(4500), data.TotalDuration)
	assert.Equal(t, int64(1800), data.Stats[StatStudy])
	assert.Len(t, data.Intervals, 2)
}

func TestBuildRangeMarksInvalidOnEmptyBounds(t *testing.T) {
	scope := &query.RangeScopeResult{}
	data := BuildRange(RangeKindWeekly, "2019-W01", 7, scope, nil)
	assert.False(t, data.Valid)
}

func TestBuildRangeCopiesFlags(t *testing.T) {
	scope := &query.RangeScopeResult{
		Start: "2024-01-01", End: "2024-01-31",
		ActualDays: 20, TotalDuration: 72000,
		Flags: query.DayFlagCounts{StatusDays: 15, SleepDays: 18, ExerciseDays: 5, CardioDays: 3, AnaerobicDays: 2},
	}
	data := BuildRange(RangeKindMonthly, "2024-01", 31, scope, nil)
	assert.True(t, data.Valid)
	assert.Equal(t, 31, data.RequestedDays)
	assert.Equal(t, 20, data.ActualDays)
	assert.Equal(t, 15, data.Flags.StatusDays)
	assert.Equal(t, 18, data.Flags.SleepDays)
}
