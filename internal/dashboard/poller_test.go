package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/alejandrodnm/agentboard/internal/readmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReader implementa ports.HistoryReader sobre slices mutables.
type memReader struct {
	trades    []domain.Trade
	perfs     []domain.AgentPerformance
	sentiment domain.SentimentHistory
	equity    []domain.EquityPoint
	err       error
}

func (m *memReader) RecentTrades(context.Context, int) ([]domain.Trade, error) {
	return m.trades, m.err
}
func (m *memReader) AgentPerformance(context.Context) ([]domain.AgentPerformance, error) {
	out := make([]domain.AgentPerformance, len(m.perfs))
	copy(out, m.perfs)
	return out, m.err
}
func (m *memReader) SentimentHistory(context.Context, int) (domain.SentimentHistory, error) {
	return m.sentiment, m.err
}
func (m *memReader) EquityCurve(context.Context) ([]domain.EquityPoint, error) {
	return m.equity, m.err
}
func (m *memReader) AgentNames(context.Context) ([]string, error) { return nil, m.err }
func (m *memReader) Close() error                                 { return nil }

// captureNotifier guarda cada update recibido.
type captureNotifier struct {
	updates []domain.Update
}

func (c *captureNotifier) Notify(_ context.Context, up domain.Update) error {
	c.updates = append(c.updates, up)
	return nil
}

func pf(v float64) *float64 { return &v }

func zeroTTL() readmodel.Config {
	cfg := readmodel.DefaultConfig()
	cfg.TradesTTL = 0
	cfg.PerformanceTTL = 0
	cfg.SentimentTTL = 0
	return cfg
}

func TestPoller_FirstCycleMarksAllViews(t *testing.T) {
	reader := &memReader{}
	svc := readmodel.New(zeroTTL(), reader)
	sink := &captureNotifier{}
	p := New(svc, time.Second, sink)

	require.NoError(t, p.RunOnce(context.Background()))
	require.Len(t, sink.updates, 1)
	assert.Equal(t, domain.AllViews(), sink.updates[0].Changed)
}

func TestPoller_UnchangedStoreMarksNothing(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	reader := &memReader{
		trades: []domain.Trade{{ID: 1, Timestamp: t0, Action: "BUY", AgentName: "A", Profit: pf(10)}},
		perfs:  []domain.AgentPerformance{{AgentName: "A", TotalTrades: 1, Wins: 1, TotalProfit: 10}},
		equity: []domain.EquityPoint{{Timestamp: t0, Cumulative: 10}},
	}
	svc := readmodel.New(zeroTTL(), reader)
	sink := &captureNotifier{}
	p := New(svc, time.Second, sink)

	ctx := context.Background()
	require.NoError(t, p.RunOnce(ctx))
	require.NoError(t, p.RunOnce(ctx))

	require.Len(t, sink.updates, 2)
	assert.False(t, sink.updates[1].Changed.Any())
}

func TestPoller_DetectsNewTradeAndClose(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	reader := &memReader{
		trades: []domain.Trade{{ID: 1, Timestamp: t0, Action: "BUY", AgentName: "A"}},
	}
	svc := readmodel.New(zeroTTL(), reader)
	sink := &captureNotifier{}
	p := New(svc, time.Second, sink)

	ctx := context.Background()
	require.NoError(t, p.RunOnce(ctx))

	// El trade cierra: profit pasa de NULL a valor
	reader.trades = []domain.Trade{{ID: 1, Timestamp: t0, Action: "BUY", AgentName: "A", Profit: pf(25)}}
	reader.equity = []domain.EquityPoint{{Timestamp: t0, Cumulative: 25}}

	require.NoError(t, p.RunOnce(ctx))
	require.Len(t, sink.updates, 2)
	up := sink.updates[1]
	assert.True(t, up.Changed.Trades)
	assert.True(t, up.Changed.Equity)
	assert.True(t, up.Changed.Summary)
	assert.False(t, up.Changed.Sentiment)
}

func TestPoller_StoreDownNotifiesSinks(t *testing.T) {
	reader := &memReader{err: domain.ErrDataUnavailable}
	svc := readmodel.New(zeroTTL(), reader)
	sink := &captureNotifier{}
	p := New(svc, time.Second, sink)

	err := p.RunOnce(context.Background())
	require.ErrorIs(t, err, domain.ErrDataUnavailable)

	// El ciclo fallido también llega a los sinks, marcado como sin datos
	require.Len(t, sink.updates, 1)
	up := sink.updates[0]
	assert.True(t, up.DataUnavailable)
	assert.False(t, up.Changed.Any())
}

func TestDiff_SentimentAppend(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	prev := domain.Snapshot{Sentiment: domain.SentimentHistory{
		{Timestamp: t0, SentimentSignal: domain.SignalBullish},
	}}
	cur := domain.Snapshot{Sentiment: domain.SentimentHistory{
		{Timestamp: t0.Add(time.Minute), SentimentSignal: domain.SignalBearish},
		{Timestamp: t0, SentimentSignal: domain.SignalBullish},
	}}

	changed := diff(prev, cur)
	assert.True(t, changed.Sentiment)
	assert.False(t, changed.Trades)
	assert.False(t, changed.Equity)
}
