package delegation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelegation_WithinWindow(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)
	d := &Delegation{StartDate: start, EndDate: end}

	assert.True(t, d.WithinWindow(start))
	assert.True(t, d.WithinWindow(end))
	assert.True(t, d.WithinWindow(start.Add(48*time.Hour)))
	assert.False(t, d.WithinWindow(start.Add(-time.Second)))
	assert.False(t, d.WithinWindow(end.Add(time.Second)))
}

func TestDelegation_Covers(t *testing.T) {
	cap := 10000.0
	usd := "USD"

	t.Run("no cap covers anything", func(t *testing.T) {
		d := &Delegation{}
		assert.True(t, d.Covers(1_000_000, "EUR"))
	})

	t.Run("cap admits amounts up to the limit", func(t *testing.T) {
		d := &Delegation{MaxAmount: &cap, Currency: &usd}
		assert.True(t, d.Covers(10000, "USD"))
		assert.False(t, d.Covers(10000.01, "USD"))
	})

	t.Run("cap currency mismatch refuses", func(t *testing.T) {
		d := &Delegation{MaxAmount: &cap, Currency: &usd}
		assert.False(t, d.Covers(5000, "EUR"))
	})
}

func TestDelegation_Use(t *testing.T) {
	now := time.Now().UTC()
	d := &Delegation{}
	d.Use(now)
	d.Use(now.Add(time.Minute))
	assert.Equal(t, 2, d.UsageCount)
	assert.Equal(t, now.Add(time.Minute), *d.LastUsedAt)
}
