package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/services"
)

func TestWallClock_Now(t *testing.T) {
	cases := []struct {
		name     string
		interval time.Duration
	}{
		{"default interval", 0},
		{"negative interval", -time.Minute},
		{"sub-second interval", 50 * time.Millisecond},
		{"one minute", time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := services.WallClock{Interval: tc.interval}
			first := c.Now()
			assert.Greater(t, first, uint64(0))
			// heights never decrease
			assert.GreaterOrEqual(t, c.Now(), first)
		})
	}
}
