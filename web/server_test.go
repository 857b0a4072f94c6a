package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resilienceplanner"
	"resilienceplanner/planner"
	"resilienceplanner/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockPlanner struct {
	report     resilienceplanner.AdvisoryReport
	answer     string
	err        error
	live       bool
	lastProfil resilienceplanner.FarmProfile
}

func (m *mockPlanner) GeneratePlan(ctx context.Context, sess *session.Session, profile resilienceplanner.FarmProfile) (resilienceplanner.AdvisoryReport, error) {
	m.lastProfil = profile
	if m.err != nil {
		return resilienceplanner.AdvisoryReport{}, m.err
	}
	sess.StoreReport(m.report.Rundown, m.report.Report)
	return m.report, nil
}

func (m *mockPlanner) Answer(ctx context.Context, sess *session.Session, question string) (string, error) {
	if sess.CurrentReport() == "" {
		return "", planner.ErrNoPlan
	}
	if m.err != nil {
		sess.AppendTurn(session.RoleUser, question)
		sess.AppendTurn(session.RoleAssistant, "Error: "+m.err.Error())
		return "", m.err
	}
	sess.AppendTurn(session.RoleUser, question)
	sess.AppendTurn(session.RoleAssistant, m.answer)
	return m.answer, nil
}

func (m *mockPlanner) ClimateContext(ctx context.Context, county string) planner.ClimateContext {
	return planner.ClimateContext{County: county, Live: m.live, Narrative: "narrative for " + county}
}

type mockShare struct {
	messages []string
	err      error
}

func (m *mockShare) PostMessage(ctx context.Context, channel, message string) error {
	m.messages = append(m.messages, message)
	return m.err
}

func newTestServer(p advisoryPlanner, shareClient resilienceplanner.ShareClient) *gin.Engine {
	return NewServer(p, session.NewStore(), nil, shareClient, "#farm-plans").Routes()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	r := newTestServer(&mockPlanner{}, nil)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHandleCounties(t *testing.T) {
	r := newTestServer(&mockPlanner{}, nil)
	w := doJSON(t, r, http.MethodGet, "/api/counties", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Counties  []string `json:"counties"`
		SoilTypes []string `json:"soil_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Counties, 47)
	assert.Equal(t, []string{"Red Volcanic", "Black Cotton", "Sandy/Loamy"}, resp.SoilTypes)
}

func TestHandleWeather(t *testing.T) {
	r := newTestServer(&mockPlanner{live: true}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/weather?county=Kitui", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cc planner.ClimateContext
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cc))
	assert.Equal(t, "Kitui", cc.County)
	assert.True(t, cc.Live)

	// Blank county falls back to the default farm county.
	w = doJSON(t, r, http.MethodGet, "/api/weather", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cc))
	assert.Equal(t, "Kiambu", cc.County)
}

func TestHandlePlan(t *testing.T) {
	t.Run("success sets cookie and shares", func(t *testing.T) {
		mp := &mockPlanner{report: resilienceplanner.AdvisoryReport{Rundown: "Advisable: Yes", Report: "Full plan."}}
		ms := &mockShare{}
		r := newTestServer(mp, ms)

		w := doJSON(t, r, http.MethodPost, "/api/plan", resilienceplanner.FarmProfile{County: "Kitui", Crop: "Sorghum"}, nil)

		require.Equal(t, http.StatusOK, w.Code)

		var report resilienceplanner.AdvisoryReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "Advisable: Yes", report.Rundown)
		assert.Equal(t, "Full plan.", report.Report)

		require.Len(t, ms.messages, 1)
		assert.Contains(t, ms.messages[0], "Kitui (Sorghum)")
		assert.Contains(t, ms.messages[0], "Advisable: Yes")

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, "rp_session", cookies[0].Name)
	})

	t.Run("empty body normalizes to default farm", func(t *testing.T) {
		mp := &mockPlanner{report: resilienceplanner.AdvisoryReport{Report: "plan"}}
		r := newTestServer(mp, nil)

		w := doJSON(t, r, http.MethodPost, "/api/plan", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Kiambu", mp.lastProfil.County)
		assert.Equal(t, "Ruiru", mp.lastProfil.Town)
		assert.Equal(t, "Red Volcanic", mp.lastProfil.SoilType)
		assert.Equal(t, "Maize", mp.lastProfil.Crop)
	})

	t.Run("model failure maps to bad gateway", func(t *testing.T) {
		r := newTestServer(&mockPlanner{err: errors.New("model down")}, nil)

		w := doJSON(t, r, http.MethodPost, "/api/plan", resilienceplanner.FarmProfile{}, nil)

		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "unchanged")
	})

	t.Run("share failure does not fail the request", func(t *testing.T) {
		mp := &mockPlanner{report: resilienceplanner.AdvisoryReport{Report: "plan"}}
		r := newTestServer(mp, &mockShare{err: errors.New("webhook down")})

		w := doJSON(t, r, http.MethodPost, "/api/plan", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleChat(t *testing.T) {
	t.Run("before any plan", func(t *testing.T) {
		r := newTestServer(&mockPlanner{answer: "reply"}, nil)

		w := doJSON(t, r, http.MethodPost, "/api/chat", gin.H{"question": "when to plant?"}, nil)

		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing question", func(t *testing.T) {
		r := newTestServer(&mockPlanner{}, nil)

		w := doJSON(t, r, http.MethodPost, "/api/chat", gin.H{"question": "  "}, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("answers within one session", func(t *testing.T) {
		mp := &mockPlanner{report: resilienceplanner.AdvisoryReport{Report: "plan"}, answer: "Plant in March."}
		r := newTestServer(mp, nil)

		w := doJSON(t, r, http.MethodPost, "/api/plan", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		w = doJSON(t, r, http.MethodPost, "/api/chat", gin.H{"question": "when to plant?"}, cookies)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Answer   string            `json:"answer"`
			Messages []session.Message `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Plant in March.", resp.Answer)
		require.Len(t, resp.Messages, 2)
		assert.Equal(t, session.RoleUser, resp.Messages[0].Role)
		assert.Equal(t, "when to plant?", resp.Messages[0].Content)
		assert.Equal(t, "Plant in March.", resp.Messages[1].Content)

		// History endpoint sees the same transcript.
		w = doJSON(t, r, http.MethodGet, "/api/chat/history", nil, cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Plant in March.")
	})
}
