package domain_test

import (
	"testing"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_AxisValue_Total(t *testing.T) {
	// El mapeo es total: todo valor posible cae en {+1, 0, -1}
	assert.Equal(t, 1.0, domain.SignalBullish.AxisValue())
	assert.Equal(t, 0.0, domain.SignalNeutral.AxisValue())
	assert.Equal(t, -1.0, domain.SignalBearish.AxisValue())

	// No reconocido o NULL → 0
	assert.Equal(t, 0.0, domain.Signal("").AxisValue())
	assert.Equal(t, 0.0, domain.Signal("SIDEWAYS").AxisValue())
	assert.Equal(t, 0.0, domain.Signal("bullish").AxisValue())
}

func TestSentimentHistory_Latest(t *testing.T) {
	_, ok := domain.SentimentHistory{}.Latest()
	assert.False(t, ok)

	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	h := domain.SentimentHistory{
		{Timestamp: t0.Add(time.Minute), SentimentSignal: domain.SignalBearish},
		{Timestamp: t0, SentimentSignal: domain.SignalBullish},
	}
	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, domain.SignalBearish, latest.SentimentSignal)
}

func TestSentimentHistory_Chronological(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	h := domain.SentimentHistory{
		{Timestamp: t0.Add(2 * time.Minute), SentimentSignal: domain.SignalNeutral},
		{Timestamp: t0.Add(time.Minute), SentimentSignal: domain.SignalBearish},
		{Timestamp: t0, SentimentSignal: domain.SignalBullish},
	}

	chrono := h.Chronological()
	require.Len(t, chrono, 3)
	assert.Equal(t, domain.SignalBullish, chrono[0].SentimentSignal)
	assert.Equal(t, domain.SignalNeutral, chrono[2].SentimentSignal)

	// El receptor no se muta
	assert.Equal(t, domain.SignalNeutral, h[0].SentimentSignal)
}
