package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

func TestReportCache_BasicGetPut(t *testing.T) {
	c := newReportCache(10)

	_, ok := c.get("missing")
	assert.False(t, ok)

	c.put("k1", Report{Location: domain.Dongsi})
	r, ok := c.get("k1")
	require.True(t, ok)
	assert.Equal(t, domain.Dongsi, r.Location)
}

func TestReportCache_CopiesSlices(t *testing.T) {
	c := newReportCache(2)

	r := Report{
		Preview: []domain.ViewRow{{Measurement: domain.Measurement{PM25: 1}}},
		Correlation: domain.CorrelationMatrix{
			Variables: []domain.Variable{domain.PM25},
			Values:    [][]domain.NullFloat{{1}},
		},
	}
	c.put("k", r)
	r.Preview[0].PM25 = 5
	r.Correlation.Values[0][0] = 0

	got, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Preview[0].PM25)
	assert.Equal(t, domain.NullFloat(1), got.Correlation.Values[0][0])

	got.Preview[0].PM25 = 7
	again, _ := c.get("k")
	assert.Equal(t, 1.0, again.Preview[0].PM25)
}

func TestReportCache_Eviction(t *testing.T) {
	c := newReportCache(2)

	c.put("a", Report{ViewRows: 1})
	c.put("b", Report{ViewRows: 2})
	c.put("c", Report{ViewRows: 3})

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	assert.Equal(t, 2, c.len())
}

func TestReportCache_AccessPromotesEntry(t *testing.T) {
	c := newReportCache(2)

	c.put("a", Report{ViewRows: 1})
	c.put("b", Report{ViewRows: 2})
	c.get("a")
	c.put("c", Report{ViewRows: 3})

	_, ok := c.get("a")
	assert.True(t, ok, "recently read entry survives")
	_, ok = c.get("b")
	assert.False(t, ok)
}

func TestReportCache_UpdateExisting(t *testing.T) {
	c := newReportCache(2)

	c.put("a", Report{ViewRows: 1})
	c.put("a", Report{ViewRows: 9})

	r, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, 9, r.ViewRows)
	assert.Equal(t, 1, c.len())
}
