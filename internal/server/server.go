// Package server hosts the skill behind an HTTP endpoint that speaks the
// voice platform's JSON request/response envelope.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bargain-buddy/internal/skill"
)

const (
	headerRequestID = "X-Request-Id"
	ctxKeyRequestID = "request_id"
	envelopeVersion = "1.0"
)

type Server struct {
	Handler skill.EventHandler
	// AppID, when set, must match the application id of every request.
	AppID string
	Log   *slog.Logger
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), withRequestID(), s.withLogging())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/alexa", s.handleAlexa)
	return r
}

func withRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, reqID)
		c.Header(headerRequestID, reqID)
		c.Next()
	}
}

func (s *Server) withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lat := time.Since(start)
		s.Log.Info("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"latency_ms", float64(lat.Microseconds())/1000.0,
			"request_id", c.GetString(ctxKeyRequestID),
		)
	}
}

func (s *Server) handleAlexa(c *gin.Context) {
	var env RequestEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request envelope", err.Error())
		return
	}

	if s.AppID != "" && env.Session.Application.ApplicationID != s.AppID {
		writeError(c, http.StatusBadRequest, "invalid application id", "")
		return
	}

	ctx := c.Request.Context()
	sess := skill.Session{
		SessionID: env.Session.SessionID,
		UserID:    env.Session.User.UserID,
		RequestID: env.Request.RequestID,
		New:       env.Session.New,
	}
	if sess.RequestID == "" {
		sess.RequestID = c.GetString(ctxKeyRequestID)
	}

	if sess.New {
		s.Handler.OnSessionStarted(ctx, sess)
	}

	switch env.Request.Type {
	case LaunchRequest:
		c.JSON(http.StatusOK, toEnvelope(s.Handler.OnLaunch(ctx, sess)))
	case IntentRequest:
		in := skill.Intent{
			Name:  env.Request.Intent.Name,
			Slots: make(map[string]string, len(env.Request.Intent.Slots)),
		}
		for k, v := range env.Request.Intent.Slots {
			in.Slots[k] = v.Value
		}
		c.JSON(http.StatusOK, toEnvelope(s.Handler.OnIntent(ctx, sess, in)))
	case SessionEndedRequest:
		s.Handler.OnSessionEnded(ctx, sess, env.Request.Reason)
		c.JSON(http.StatusOK, ResponseEnvelope{
			Version:  envelopeVersion,
			Response: ResponseBody{ShouldEndSession: true},
		})
	default:
		writeError(c, http.StatusBadRequest, "unsupported request type", env.Request.Type)
	}
}

func toEnvelope(r skill.Response) ResponseEnvelope {
	body := ResponseBody{
		OutputSpeech:     &OutputSpeech{Type: "PlainText", Text: r.Speech},
		ShouldEndSession: r.EndSession,
	}
	if r.CardTitle != "" {
		body.Card = &Card{Type: "Simple", Title: r.CardTitle, Content: r.CardText}
	}
	if r.Reprompt != "" {
		body.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: "PlainText", Text: r.Reprompt}}
	}
	return ResponseEnvelope{Version: envelopeVersion, Response: body}
}

type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, message, details string) {
	c.AbortWithStatusJSON(status, jsonError{Error: message, Details: details})
}
