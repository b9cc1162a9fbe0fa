package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/alejandrodnm/agentboard/internal/readmodel"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Server expone las cuatro vistas como API JSON para el front de charts,
// más un endpoint de refresco manual y el push por websocket.
type Server struct {
	engine  *gin.Engine
	svc     *readmodel.Service
	hub     *Hub
	limiter *rate.Limiter
}

// NewServer monta las rutas sobre un engine limpio.
func NewServer(svc *readmodel.Service, hub *Hub) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine:  gin.New(),
		svc:     svc,
		hub:     hub,
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}

	s.engine.Use(gin.Recovery(), requestLogger())

	s.engine.GET("/healthz", s.health)
	s.engine.GET("/ws", hub.Handle)

	api := s.engine.Group("/api/v1")
	api.GET("/summary", s.summary)
	api.GET("/trades", s.trades)
	api.GET("/agents", s.agents)
	api.GET("/agents/performance", s.agentPerformance)
	api.GET("/sentiment", s.sentiment)
	api.GET("/equity", s.equity)
	api.POST("/refresh", s.refresh)

	return s
}

// Handler devuelve el http.Handler del server (para tests y wiring).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run sirve la API hasta que el contexto se cancele.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	slog.Info("web server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// --- handlers ---

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) summary(c *gin.Context) {
	sum, err := s.svc.Summary(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSummaryResponse(sum))
}

// trades valida los query params antes de tocar el store.
func (s *Server) trades(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trades, err := s.svc.RecentTrades(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]tradeResponse, 0, len(trades))
	for _, t := range filter.Apply(trades) {
		out = append(out, newTradeResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) agents(c *gin.Context) {
	names, err := s.svc.AgentNames(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) agentPerformance(c *gin.Context) {
	perfs, err := s.svc.AgentPerformance(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]performanceResponse, 0, len(perfs))
	for _, p := range perfs {
		out = append(out, newPerformanceResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// sentiment devuelve la ventana newest-first por defecto; ?order=asc la
// reordena cronológicamente para series temporales.
func (s *Server) sentiment(c *gin.Context) {
	history, err := s.svc.SentimentHistory(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	records := []domain.SentimentRecord(history)
	if c.Query("order") == "asc" {
		records = history.Chronological()
	}

	out := make([]sentimentResponse, 0, len(records))
	for _, r := range records {
		out = append(out, newSentimentResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) equity(c *gin.Context) {
	curve, err := s.svc.EquityCurve(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]equityResponse, 0, len(curve))
	for _, p := range curve {
		out = append(out, equityResponse{Timestamp: p.Timestamp, Cumulative: p.Cumulative})
	}
	c.JSON(http.StatusOK, out)
}

// refresh invalida la cache del servicio; el siguiente ciclo (o request)
// vuelve al store. Máximo un refresco manual cada 5 segundos.
func (s *Server) refresh(c *gin.Context) {
	if !s.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "refresh throttled"})
		return
	}
	s.svc.Invalidate()
	c.Status(http.StatusNoContent)
}

// --- helpers ---

// abortWithError mapea la taxonomía de errores: store inaccesible → 503 con
// placeholder; cualquier otra cosa → 500.
func abortWithError(c *gin.Context, err error) {
	slog.Warn("query failed", "path", c.FullPath(), "err", err)
	if errors.Is(err, domain.ErrDataUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data yet"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// parseFilter lee from/to/agent de la query string. Fechas en RFC3339 o
// "2006-01-02"; agente vacío o "all" significa todos.
func parseFilter(c *gin.Context) (readmodel.TradeFilter, error) {
	var f readmodel.TradeFilter
	f.Agent = c.Query("agent")

	var err error
	if v := c.Query("from"); v != "" {
		if f.From, err = parseDate(v); err != nil {
			return f, err
		}
	}
	if v := c.Query("to"); v != "" {
		if f.To, err = parseDate(v); err != nil {
			return f, err
		}
	}
	return f, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// requestLogger loggea cada request con un id propio (X-Request-ID).
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", id,
		)
	}
}
