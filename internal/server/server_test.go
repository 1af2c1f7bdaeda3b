package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/providers"
	"bargain-buddy/internal/providers/meh"
	"bargain-buddy/internal/providers/woot"
	"bargain-buddy/internal/skill"
	"bargain-buddy/internal/tracking"
)

const testAppID = "amzn1.ask.skill.test"

func init() {
	gin.SetMode(gin.TestMode)
}

// feedServer serves canned meh and woot payloads keyed by woot site.
func feedServer(t *testing.T, mehBody string, wootBodies map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/meh":
			io.WriteString(w, mehBody)
		case "/woot":
			body, ok := wootBodies[r.URL.Query().Get("site")]
			if !ok {
				body = "[]"
			}
			io.WriteString(w, body)
		default:
			http.NotFound(w, r)
		}
	}))
}

func setupRouter(t *testing.T, feedURL string) *gin.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := providers.Registry{
		domain.FamilyMeh:  meh.Provider{C: meh.New(feedURL+"/meh", "k", time.Second)},
		domain.FamilyWoot: woot.Provider{C: woot.New(feedURL+"/woot", "k", time.Second)},
	}
	s := &Server{
		Handler: &skill.Skill{
			AppName: "Bargain Buddy",
			Deals:   reg,
			Tracker: tracking.Noop{},
			Log:     log,
		},
		AppID: testAppID,
		Log:   log,
	}
	return s.Router()
}

func intentEnvelope(intent, service string) string {
	slots := `{}`
	if service != "" {
		slots = `{"Service":{"name":"Service","value":"` + service + `"}}`
	}
	return `{
		"version":"1.0",
		"session":{"new":true,"sessionId":"s1","application":{"applicationId":"` + testAppID + `"},"user":{"userId":"u1"}},
		"request":{"type":"IntentRequest","requestId":"r1","intent":{"name":"` + intent + `","slots":` + slots + `}}
	}`
}

func post(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, ResponseEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/alexa", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env ResponseEnvelope
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
	}
	return rr, env
}

func TestEndToEndDeals(t *testing.T) {
	feeds := feedServer(t,
		`{"deal":{"title":"Wireless Mouse","items":[{"price":25}]}}`,
		map[string]string{
			"shirt.woot.com": `[{"Offers":[{"Title":"Space Cat Tee","Items":[{"SalePrice":18}],"SoldOut":true}]}]`,
			"home.woot.com":  `[{"Offers":[{"Title":"Shirt","Items":[{"SalePrice":15},{"SalePrice":20},{"SalePrice":25}],"SoldOut":false}]}]`,
			"sport.woot.com": `[]`,
			"wine.woot.com":  `<html>maintenance</html>`,
		},
	)
	defer feeds.Close()
	r := setupRouter(t, feeds.URL)

	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{"meh single item", intentEnvelope("GetMehIntent", ""), "Today's Meh deal is a Wireless Mouse for $25."},
		{"woot range", intentEnvelope("GetWootIntent", "home"), "Today's Home Woot deal is a choice of Shirt starting at $15."},
		{"shirt sold out", intentEnvelope("GetWootIntent", "shirts"), "Today's Shirt Woot is sold out. It was called Space Cat Tee for $18."},
		{"woot-off", intentEnvelope("GetWootIntent", "sport"), "It's a Sport Woot-off!"},
		{"malformed", intentEnvelope("GetWootIntent", "wines"), "Sorry, I got an unexpected response from Wine Woot. Please try again later."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := post(t, r, tc.body)
			if rr.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
			}
			if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.Text != tc.expected {
				t.Fatalf("Expected speech %q, got %+v", tc.expected, env.Response.OutputSpeech)
			}
			if env.Response.Card == nil || env.Response.Card.Title != "Bargain Buddy" || env.Response.Card.Content != tc.expected {
				t.Errorf("Unexpected card %+v", env.Response.Card)
			}
			if !env.Response.ShouldEndSession {
				t.Error("Expected session to end")
			}
		})
	}
}

func TestEndToEndTransportFailure(t *testing.T) {
	feeds := feedServer(t, "", nil)
	base := feeds.URL
	feeds.Close()

	r := setupRouter(t, base)
	_, env := post(t, r, intentEnvelope("GetWootIntent", "tools"))

	want := "Sorry, I was unable to reach Tools Woot. Please try again later."
	if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.Text != want {
		t.Errorf("Expected %q, got %+v", want, env.Response.OutputSpeech)
	}
}

func TestLaunchAndHelp(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	launch := `{"session":{"new":true,"sessionId":"s1","application":{"applicationId":"` + testAppID + `"}},"request":{"type":"LaunchRequest","requestId":"r0"}}`
	_, env := post(t, r, launch)
	if env.Response.OutputSpeech == nil || !strings.HasPrefix(env.Response.OutputSpeech.Text, "What daily deal") {
		t.Errorf("Unexpected launch speech %+v", env.Response.OutputSpeech)
	}
	if env.Response.Reprompt == nil || env.Response.ShouldEndSession || env.Response.Card != nil {
		t.Errorf("Expected reprompt without card on launch, got %+v", env.Response)
	}

	_, env = post(t, r, intentEnvelope("AMAZON.HelpIntent", ""))
	if env.Response.OutputSpeech == nil || !strings.Contains(env.Response.OutputSpeech.Text, "Sellout Woot, Wine Woot, and Shirt Woot") {
		t.Errorf("Unexpected help speech %+v", env.Response.OutputSpeech)
	}

	_, env = post(t, r, intentEnvelope("AMAZON.StopIntent", ""))
	if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.Text != "O.K." || !env.Response.ShouldEndSession {
		t.Errorf("Unexpected stop response %+v", env.Response)
	}
}

func TestSessionEnded(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")
	body := `{"session":{"sessionId":"s1","application":{"applicationId":"` + testAppID + `"}},"request":{"type":"SessionEndedRequest","requestId":"r9","reason":"USER_INITIATED"}}`

	rr, env := post(t, r, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if env.Response.OutputSpeech != nil || !env.Response.ShouldEndSession {
		t.Errorf("Unexpected session ended response %+v", env.Response)
	}
}

func TestRejectsBadRequests(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	testCases := []struct {
		name string
		body string
	}{
		{"invalid json", `{nope`},
		{"wrong app id", `{"session":{"application":{"applicationId":"other"}},"request":{"type":"LaunchRequest"}}`},
		{"unknown type", `{"session":{"application":{"applicationId":"` + testAppID + `"}},"request":{"type":"Display.ElementSelected"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr, _ := post(t, r, tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
			var e jsonError
			if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil || e.Error == "" {
				t.Errorf("Expected JSON error body, got %q", rr.Body.String())
			}
		})
	}
}

func TestRequestIDAndHealth(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if rr.Header().Get(headerRequestID) == "" {
		t.Error("Expected generated request id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "fixed-id")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Header().Get(headerRequestID) != "fixed-id" {
		t.Errorf("Expected request id to be echoed, got %q", rr.Header().Get(headerRequestID))
	}
}

func TestToEnvelope(t *testing.T) {
	env := toEnvelope(skill.Response{Speech: "hi"})
	b, _ := json.Marshal(env)
	if bytes.Contains(b, []byte(`"card"`)) || bytes.Contains(b, []byte(`"reprompt"`)) {
		t.Errorf("Expected card and reprompt to be omitted, got %s", b)
	}
	if env.Version != "1.0" || env.Response.OutputSpeech.Type != "PlainText" {
		t.Errorf("Unexpected envelope %+v", env)
	}
}
