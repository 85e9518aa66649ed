// Package api serves the leaderboard, stats and stored replays over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/metrics"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Store is the subset of storage the API reads from.
type Store interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GameStats(gameID string) (*storage.GameStats, error)
	Replay(runID string) (storage.ReplayRecord, error)
}

// Config holds the server dependencies. Only Store is required.
type Config struct {
	Addr    string
	Store   Store
	Metrics *metrics.Metrics
	Logger  *log.Logger

	// Verify re-simulates a replay. When set, replay responses report
	// whether the recorded result reproduces.
	Verify func(replay.Replay) error
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	router *gin.Engine
	http   *http.Server
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(cfg.Metrics.Middleware())

	s := &Server{cfg: cfg, router: router}
	s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.cfg.Metrics.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/games", s.handleGames)
		api.GET("/scores/:game", s.handleScores)
		api.GET("/stats/:game", s.handleStats)
		api.GET("/replays/:run", s.handleReplay)
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the server stops. A graceful Shutdown
// is not reported as an error.
func (s *Server) ListenAndServe() error {
	s.cfg.Logger.Info("HTTP API listening", "addr", s.cfg.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger tags each request with an ID and logs it on completion.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"request_id", reqID,
		)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type gameResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Server) handleGames(c *gin.Context) {
	games := registry.List()
	resp := make([]gameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, gameResponse{ID: g.ID, Title: g.Title})
	}
	c.JSON(http.StatusOK, resp)
}

type scoreResponse struct {
	Rank      int       `json:"rank"`
	RunID     string    `json:"run_id,omitempty"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleScores(c *gin.Context) {
	gameID := c.Param("game")
	if !registry.Exists(gameID) {
		abort(c, http.StatusNotFound, "unknown game")
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			abort(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.cfg.Store.TopScores(gameID, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	resp := make([]scoreResponse, 0, len(entries))
	for i, e := range entries {
		resp = append(resp, scoreResponse{
			Rank:      i + 1,
			RunID:     e.RunID,
			Score:     e.Score,
			Lines:     e.Lines,
			Level:     e.Level,
			CreatedAt: e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"game": gameID, "scores": resp})
}

type statsResponse struct {
	Game       string     `json:"game"`
	Games      int        `json:"games"`
	HighScore  int        `json:"high_score"`
	AvgScore   float64    `json:"avg_score"`
	TotalLines int64      `json:"total_lines"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

func (s *Server) handleStats(c *gin.Context) {
	gameID := c.Param("game")
	if !registry.Exists(gameID) {
		abort(c, http.StatusNotFound, "unknown game")
		return
	}

	stats, err := s.cfg.Store.GameStats(gameID)
	if err != nil {
		s.internalError(c, err)
		return
	}

	resp := statsResponse{
		Game:       gameID,
		Games:      stats.GamesCount,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		TotalLines: stats.TotalLines,
	}
	if !stats.LastPlayed.IsZero() {
		resp.LastPlayed = &stats.LastPlayed
	}
	c.JSON(http.StatusOK, resp)
}

type finalResponse struct {
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Ticks uint64 `json:"ticks"`
}

type frameResponse struct {
	Tick    uint64   `json:"tick"`
	Actions []string `json:"actions"`
}

type replayResponse struct {
	RunID       string          `json:"run_id"`
	Game        string          `json:"game"`
	Seed        int64           `json:"seed"`
	TickRate    int             `json:"tick_rate"`
	FrameCount  int             `json:"frame_count"`
	Actions     int             `json:"actions"`
	Duration    string          `json:"duration"`
	Final       finalResponse   `json:"final"`
	RecordedAt  time.Time       `json:"recorded_at"`
	Verified    *bool           `json:"verified,omitempty"`
	VerifyError string          `json:"verify_error,omitempty"`
	Frames      []frameResponse `json:"frames,omitempty"`
}

func (s *Server) handleReplay(c *gin.Context) {
	rec, err := s.cfg.Store.Replay(c.Param("run"))
	if errors.Is(err, storage.ErrNotFound) {
		abort(c, http.StatusNotFound, "replay not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}

	r, err := replay.Decode(rec.Data)
	if err != nil {
		s.internalError(c, err)
		return
	}

	resp := replayResponse{
		RunID:      r.RunID,
		Game:       r.GameID,
		Seed:       r.Seed,
		TickRate:   r.TickRate,
		FrameCount: len(r.Frames),
		Actions:    r.ActionCount(),
		Duration:   r.Duration().String(),
		Final:      finalResponse{Score: r.Final.Score, Lines: r.Final.Lines, Ticks: r.Final.Ticks},
		RecordedAt: r.RecordedAt,
	}
	if c.Query("frames") == "true" {
		resp.Frames = make([]frameResponse, len(r.Frames))
		for i, f := range r.Frames {
			resp.Frames[i] = frameResponse{Tick: f.Tick, Actions: f.Actions}
		}
	}
	if s.cfg.Verify != nil && c.Query("verify") == "true" {
		verr := s.cfg.Verify(r)
		ok := verr == nil
		resp.Verified = &ok
		if verr != nil {
			resp.VerifyError = verr.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.cfg.Logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	abort(c, http.StatusInternalServerError, "internal error")
}
