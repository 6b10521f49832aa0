package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2014-07-09")
	require.NoError(t, err)
	assert.Equal(t, Date(2014, time.July, 9), d)

	for _, s := range []string{"2014/07/09", "09-07-2014", "2014-13-01", "", "2014-02-30"} {
		_, err := ParseDate(s)
		assert.True(t, errors.Is(err, ErrInvalidDate), "input %q", s)
	}
}

func TestDateRange_Clamp(t *testing.T) {
	r := DateRange{Start: Date(2010, time.January, 1), End: Date(2020, time.January, 1)}
	assert.Equal(t, DatasetBounds(), r.Clamp(DatasetBounds()))

	inside := DateRange{Start: Date(2014, time.May, 1), End: Date(2014, time.May, 31)}
	assert.Equal(t, inside, inside.Clamp(DatasetBounds()))

	after := DateRange{Start: Date(2018, time.January, 1), End: Date(2018, time.February, 1)}
	assert.True(t, after.Clamp(DatasetBounds()).Inverted())

	inverted := DateRange{Start: Date(2020, time.January, 1), End: Date(2019, time.January, 1)}
	assert.True(t, inverted.Clamp(DatasetBounds()).Inverted())
}

func TestDateRange_Contains(t *testing.T) {
	r := NewDateRange(Date(2013, time.March, 5), Date(2013, time.March, 6))

	assert.True(t, r.Contains(hour(2013, time.March, 5, 0)))
	assert.True(t, r.Contains(hour(2013, time.March, 6, 23)))
	assert.False(t, r.Contains(hour(2013, time.March, 4, 23)))
	assert.False(t, r.Contains(hour(2013, time.March, 7, 0)))
}

func TestNewDateRange_DropsTimeOfDay(t *testing.T) {
	r := NewDateRange(hour(2013, time.March, 5, 13), hour(2013, time.March, 6, 7))
	assert.Equal(t, Date(2013, time.March, 5), r.Start)
	assert.Equal(t, Date(2013, time.March, 6), r.End)
}

func TestDateRange_JSON(t *testing.T) {
	r := NewDateRange(Date(2013, time.March, 1), Date(2013, time.March, 31))
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2013-03-01","end":"2013-03-31"}`, string(data))

	var back DateRange
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestSelection_Key(t *testing.T) {
	a := Selection{Location: Dongsi, Range: NewDateRange(Date(2013, time.March, 1), Date(2013, time.March, 2))}
	b := Selection{Location: Dingling, Range: a.Range}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "Dongsi|2013-03-01..2013-03-02", a.Key())
}
