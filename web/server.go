// Package web exposes the planner over HTTP: a single-page farm form plus a
// small JSON API for plan generation, follow-up chat, and the weather panel.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resilienceplanner"
	"resilienceplanner/archive"
	"resilienceplanner/geo"
	"resilienceplanner/planner"
	"resilienceplanner/session"
	"resilienceplanner/share"
)

// sessionCookie names the visitor cookie that keys per-browser plan state.
const sessionCookie = "rp_session"

// advisoryPlanner is the planner surface the handlers call. Both the plain
// and the instrumented planner satisfy it.
type advisoryPlanner interface {
	GeneratePlan(ctx context.Context, sess *session.Session, profile resilienceplanner.FarmProfile) (resilienceplanner.AdvisoryReport, error)
	Answer(ctx context.Context, sess *session.Session, question string) (string, error)
	ClimateContext(ctx context.Context, county string) planner.ClimateContext
}

// Server wires the HTTP handlers to the planner and the per-visitor session
// store. Archiving and sharing are optional and always best-effort.
type Server struct {
	planner      advisoryPlanner
	sessions     *session.Store
	archiver     archive.Archiver
	share        resilienceplanner.ShareClient
	shareChannel string
}

func NewServer(p advisoryPlanner, sessions *session.Store, archiver archive.Archiver, shareClient resilienceplanner.ShareClient, shareChannel string) *Server {
	if archiver == nil {
		archiver = archive.NewNoOpArchiver()
	}
	return &Server{
		planner:      p,
		sessions:     sessions,
		archiver:     archiver,
		share:        shareClient,
		shareChannel: shareChannel,
	}
}

// Routes builds the gin engine with all handlers registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/api/health", s.handleHealth)
	r.GET("/api/counties", s.handleCounties)
	r.GET("/api/weather", s.handleWeather)
	r.POST("/api/plan", s.handlePlan)
	r.POST("/api/chat", s.handleChat)
	r.GET("/api/chat/history", s.handleHistory)

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *Server) handleCounties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"counties":   geo.Counties(),
		"soil_types": resilienceplanner.SoilTypes(),
	})
}

func (s *Server) handleWeather(c *gin.Context) {
	county := strings.TrimSpace(c.Query("county"))
	if county == "" {
		county = "Kiambu"
	}
	c.JSON(http.StatusOK, s.planner.ClimateContext(c.Request.Context(), county))
}

func (s *Server) handlePlan(c *gin.Context) {
	var profile resilienceplanner.FarmProfile
	if err := c.ShouldBindJSON(&profile); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	profile.Normalize()

	sess := s.session(c)
	report, err := s.planner.GeneratePlan(c.Request.Context(), sess, profile)
	if err != nil {
		slog.Error("WEB: Plan generation failed", "county", profile.County, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "plan generation failed, previous plan (if any) is unchanged"})
		return
	}

	if err := s.archiver.Save(c.Request.Context(), profile.County, report.Text()); err != nil {
		slog.Warn("WEB: Failed to archive plan", "county", profile.County, "error", err)
	}
	if s.share != nil {
		msg := share.PlanMessage(profile.County, profile.Crop, report.Rundown)
		if err := s.share.PostMessage(c.Request.Context(), s.shareChannel, msg); err != nil {
			slog.Warn("WEB: Failed to share plan", "county", profile.County, "error", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleChat(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	sess := s.session(c)
	answer, err := s.planner.Answer(c.Request.Context(), sess, req.Question)
	if errors.Is(err, planner.ErrNoPlan) {
		c.JSON(http.StatusConflict, gin.H{"error": "generate a plan before asking follow-up questions"})
		return
	}
	if err != nil {
		slog.Error("WEB: Follow-up failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "follow-up failed", "messages": sess.Messages()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer, "messages": sess.Messages()})
}

func (s *Server) handleHistory(c *gin.Context) {
	sess := s.session(c)
	c.JSON(http.StatusOK, gin.H{"messages": sess.Messages()})
}

// session resolves the visitor's session from the cookie, minting a new
// visitor ID on first contact.
func (s *Server) session(c *gin.Context) *session.Session {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, 86400*30, "/", "", false, true)
	}
	return s.sessions.Get(id)
}
