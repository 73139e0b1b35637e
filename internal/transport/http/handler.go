package http

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/service/bot"
	"github.com/iamasit07/quadtoe/internal/service/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const MaxAnalyzeDepth = 4

type Handler struct {
	Sessions          *game.Manager
	DefaultDifficulty string
	DefaultDepth      int
	// EngineOptions are applied to every analysis engine before the
	// requested depth.
	EngineOptions []bot.Option
	logger        zerolog.Logger
}

func NewHandler(sessions *game.Manager, difficulty string, depth int, opts []bot.Option, logger zerolog.Logger) *Handler {
	return &Handler{
		Sessions:          sessions,
		DefaultDifficulty: difficulty,
		DefaultDepth:      depth,
		EngineOptions:     opts,
		logger:            logger,
	}
}

// Register mounts the REST routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.POST("/api/analyze", h.Analyze)

	games := r.Group("/api/games")
	{
		games.POST("", h.CreateGame)
		games.GET("/:id", h.GetGame)
		games.POST("/:id/actions", h.PlayAction)
		games.POST("/:id/resign", h.Resign)
		games.DELETE("/:id", h.DeleteGame)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.Sessions.Count()})
}

type analyzeRequest struct {
	Cells      [][]int `json:"cells" binding:"required"`
	Player     int     `json:"player"`
	Difficulty string  `json:"difficulty"`
	Depth      *int    `json:"depth"`
}

// Analyze returns the engine's decision for an arbitrary position.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cells, err := domain.CellsFromInts(req.Cells)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cells must be a 4x4 grid"})
		return
	}
	board, err := domain.NewBoardFromCells(cells)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player := domain.Cell(req.Player)
	if !player.IsPlayer() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player must be 1 or 2"})
		return
	}

	depth := h.DefaultDepth
	if req.Depth != nil {
		depth = *req.Depth
	}
	if depth < 0 || depth > MaxAnalyzeDepth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "depth must be between 0 and 4"})
		return
	}

	profile, err := bot.ParseDifficulty(h.difficulty(req.Difficulty))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := append(slices.Clone(h.EngineOptions), bot.WithDepth(depth))
	decision, err := bot.NewEngine(profile, opts...).BestMove(c.Request.Context(), board, player)
	if err != nil {
		h.logger.Error().Err(err).Msg("analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, decision)
}

type createGameRequest struct {
	Difficulty  string `json:"difficulty"`
	HumanPlayer int    `json:"humanPlayer"`
}

func (h *Handler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	difficulty := h.difficulty(req.Difficulty)
	if _, err := bot.ParseDifficulty(difficulty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	human := domain.Cell(req.HumanPlayer)
	if req.HumanPlayer == 0 {
		human = domain.PlayerA
	}

	view, err := h.Sessions.Create(c.Request.Context(), difficulty, human)
	if err != nil {
		if errors.Is(err, game.ErrInvalidSide) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetGame(c *gin.Context) {
	s, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		h.writeError(c, game.ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, s.View())
}

type actionRequest struct {
	Action domain.Action `json:"action"`
}

func (h *Handler) PlayAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.Sessions.Play(c.Request.Context(), c.Param("id"), req.Action)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) Resign(c *gin.Context) {
	view, err := h.Sessions.Resign(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeleteGame(c *gin.Context) {
	if err := h.Sessions.Remove(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) difficulty(requested string) string {
	if requested == "" {
		return h.DefaultDifficulty
	}
	return requested
}

// writeError maps service errors to status codes: unknown sessions are
// 404, rule violations 409, anything else 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var domainErr domain.Error
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &domainErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
