package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "plain add", start: "09:00", minutes: 30, want: "09:30"},
		{name: "hour rollover", start: "09:45", minutes: 30, want: "10:15"},
		{name: "zero", start: "12:00", minutes: 0, want: "12:00"},
		{name: "negative within day", start: "12:00", minutes: -90, want: "10:30"},
		{name: "crosses midnight", start: "23:50", minutes: 30, wantErr: ErrTimeOutOfRange},
		{name: "exactly midnight", start: "23:30", minutes: 30, wantErr: ErrTimeOutOfRange},
		{name: "below zero", start: "00:10", minutes: -20, wantErr: ErrTimeOutOfRange},
		{name: "invalid value", start: "nope", minutes: 10, wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(b))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	got, err := TimeString("09:30").OnDate(date, loc)
	require.NoError(t, err)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 3, got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, loc, got.Location())
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:15:00"))
		assert.Equal(t, TimeString("10:15"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:05:00")))
		assert.Equal(t, TimeString("08:05"), ts)
	})

	t.Run("time value", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("14:45"), ts)
	})

	t.Run("nil", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
