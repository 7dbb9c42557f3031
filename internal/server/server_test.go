package server

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexjean/devify/internal/catalog"
	"github.com/alexjean/devify/internal/contact"
	"github.com/alexjean/devify/internal/metrics"
	"github.com/alexjean/devify/internal/tracker"
	"github.com/alexjean/devify/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls   atomic.Int32
	respond func(ctx context.Context, query string) (string, error)
}

func (f *fakeGenerator) GenerateText(ctx context.Context, _, query string) (string, error) {
	f.calls.Add(1)
	if f.respond != nil {
		return f.respond(ctx, query)
	}
	return "You should listen to " + query, nil
}

type fakeSynth struct {
	calls   atomic.Int32
	respond func(ctx context.Context) ([]byte, error)
}

func (f *fakeSynth) SynthesizeSpeech(ctx context.Context, _, _ string) ([]byte, error) {
	f.calls.Add(1)
	if f.respond != nil {
		return f.respond(ctx)
	}
	return pcm(1, -1, 2, -2), nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []contact.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg contact.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func pcm(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

type testServer struct {
	*Server
	gen     *fakeGenerator
	synth   *fakeSynth
	sender  *fakeSender
	store   *tracker.MemoryStore
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, configure ...func(*Options)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		gen:     &fakeGenerator{},
		synth:   &fakeSynth{},
		sender:  &fakeSender{},
		store:   tracker.NewMemoryStore(),
		metrics: metrics.New(),
	}
	opts := Options{
		Catalog:     catalog.Default(),
		Store:       ts.store,
		Generator:   ts.gen,
		Synth:       ts.synth,
		Mailer:      ts.sender,
		Metrics:     ts.metrics,
		AITimeout:   5 * time.Second,
		IdleTimeout: time.Hour,
	}
	for _, fn := range configure {
		fn(&opts)
	}

	srv, err := New(opts)
	require.NoError(t, err)
	ts.Server = srv
	return ts
}

// client keeps the listener cookie between requests like a browser.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (ts *testServer) client(t *testing.T) *client {
	return &client{t: t, handler: ts.Handler()}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.setCookie(ck)
	}
	return rec
}

func (c *client) setCookie(ck *http.Cookie) {
	for i, existing := range c.cookies {
		if existing.Name == ck.Name {
			c.cookies[i] = ck
			return
		}
	}
	c.cookies = append(c.cookies, ck)
}

func (c *client) listenerID() string {
	for _, ck := range c.cookies {
		if ck.Name == listenerCookie {
			return ck.Value
		}
	}
	return ""
}

func (ts *testServer) listener(t *testing.T, c *client) *Listener {
	t.Helper()
	id := c.listenerID()
	require.NotEmpty(t, id)
	return ts.listeners.Get(context.Background(), id)
}

func TestHomeIssuesListenerCookie(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alex Jean")
	assert.Contains(t, rec.Body.String(), "Popular Projects")
	assert.NotEmpty(t, c.listenerID())

	// Same browser, same listener.
	first := c.listenerID()
	c.do(http.MethodGet, "/", nil)
	assert.Equal(t, first, c.listenerID())
	assert.Equal(t, 1, ts.listeners.Len())
}

func TestInvalidListenerCookieIsReplaced(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)
	c.cookies = []*http.Cookie{{Name: listenerCookie, Value: "../../etc/passwd"}}

	c.do(http.MethodGet, "/", nil)
	assert.NotEqual(t, "../../etc/passwd", c.listenerID())
}

func TestShowView(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)
	c.do(http.MethodGet, "/", nil)
	l := ts.listener(t, c)
	assert.Equal(t, view.Artist, l.View.Current())

	for _, v := range view.All() {
		rec := c.do(http.MethodGet, "/views/"+v.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code, v.String())
		assert.Equal(t, v, l.View.Current())
	}

	rec := c.do(http.MethodGet, "/views/lyrics", nil)
	assert.Contains(t, rec.Body.String(), "Playing from playlist")
	assert.Contains(t, rec.Body.String(), "E-Commerce Titan")

	rec = c.do(http.MethodPost, "/views/close", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, view.Artist, l.View.Current())
}

func TestUnknownViewIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)
	c.do(http.MethodGet, "/views/bio", nil)

	rec := c.do(http.MethodGet, "/views/discography", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, view.Bio, ts.listener(t, c).View.Current(), "state untouched")
}

func TestToggleLyrics(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	c.do(http.MethodPost, "/player/lyrics", nil)
	l := ts.listener(t, c)
	assert.Equal(t, view.Lyrics, l.View.Current())

	c.do(http.MethodPost, "/player/lyrics", nil)
	assert.Equal(t, view.Artist, l.View.Current())

	c.do(http.MethodGet, "/views/wrapped", nil)
	c.do(http.MethodPost, "/player/lyrics", nil)
	assert.Equal(t, view.Lyrics, l.View.Current())
}

func TestPlayRecordsRecentlyPlayed(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodPost, "/play/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodPost, "/play/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI Chat Interface")

	rec = c.do(http.MethodGet, "/recent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body recentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"2", "1"}, body.IDs)
	require.Len(t, body.Projects, 2)
	assert.Equal(t, "AI Chat Interface", body.Projects[0].Title)

	snap := ts.listener(t, c).View.Snapshot()
	assert.Equal(t, "2", snap.NowPlaying.ID)

	rec = c.do(http.MethodGet, "/views/library", nil)
	assert.Contains(t, rec.Body.String(), "Recently Played")
}

func TestPlayUnknownProject(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodPost, "/play/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/recent", nil)
	assert.JSONEq(t, `{"ids":[],"projects":[]}`, rec.Body.String())
}

func TestRecentlyPlayedSurvivesSweep(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)
	c.do(http.MethodPost, "/play/3", nil)

	ts.listeners.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 1, ts.listeners.Sweep())
	assert.Zero(t, ts.listeners.Len())
	ts.listeners.now = time.Now

	rec := c.do(http.MethodGet, "/recent", nil)
	var body recentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"3"}, body.IDs)
}

func TestDetailModal(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodGet, "/projects/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Crypto Dashboard")
	l := ts.listener(t, c)
	assert.Equal(t, "3", l.View.Snapshot().DetailProject.ID)

	rec = c.do(http.MethodGet, "/experiences/exp2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Creative Studio")
	snap := l.View.Snapshot()
	assert.Nil(t, snap.DetailProject)
	assert.Equal(t, "exp2", snap.DetailExperience.ID)

	rec = c.do(http.MethodPost, "/modal/close", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, l.View.Snapshot().HasDetail())

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/projects/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/experiences/nope", nil).Code)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodPost, "/search", url.Values{"q": {"   "}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, ts.gen.calls.Load(), "blank queries make no call")

	rec = c.do(http.MethodPost, "/search", url.Values{"q": {"React projects"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You should listen to React projects")

	// The search panel shows the last answer.
	rec = c.do(http.MethodGet, "/views/search", nil)
	assert.Contains(t, rec.Body.String(), "You should listen to React projects")
}

func TestSearchFallback(t *testing.T) {
	ts := newTestServer(t)
	ts.gen.respond = func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}
	c := ts.client(t)

	rec := c.do(http.MethodPost, "/search", url.Values{"q": {"anything"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error connecting to the AI brain. Try again later.")
}

func TestStaleSearchIsDiscarded(t *testing.T) {
	ts := newTestServer(t)
	release := make(chan struct{})
	started := make(chan struct{})
	ts.gen.respond = func(ctx context.Context, query string) (string, error) {
		if query == "slow" {
			close(started)
			<-release
		}
		return "answer to " + query, nil
	}
	c := ts.client(t)
	c.do(http.MethodGet, "/", nil)

	slow := make(chan *httptest.ResponseRecorder)
	go func() {
		slow <- c.do(http.MethodPost, "/search", url.Values{"q": {"slow"}})
	}()
	<-started

	rec := c.do(http.MethodPost, "/search", url.Values{"q": {"fast"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "answer to fast")

	close(release)
	assert.Equal(t, http.StatusNoContent, (<-slow).Code)

	answer, ok, pending := ts.listener(t, c).Search.Latest()
	assert.True(t, ok)
	assert.False(t, pending)
	assert.Equal(t, "answer to fast", answer.Text)
}

func TestGreetingStreamsWAV(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodPost, "/greeting", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	assert.Equal(t, "52", rec.Header().Get("Content-Length"))
	body := rec.Body.Bytes()
	require.Len(t, body, 52)
	assert.Equal(t, "RIFF", string(body[:4]))
	assert.Equal(t, "WAVE", string(body[8:12]))
}

func TestGreetingFailureIsNoContent(t *testing.T) {
	ts := newTestServer(t)
	ts.synth.respond = func(context.Context) ([]byte, error) {
		return nil, errors.New("tts unavailable")
	}
	c := ts.client(t)

	rec := c.do(http.MethodPost, "/greeting", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.False(t, ts.listener(t, c).Greeter.Busy())
}

func TestGreetingWhileBusyIsNoContent(t *testing.T) {
	ts := newTestServer(t)
	release := make(chan struct{})
	started := make(chan struct{})
	ts.synth.respond = func(context.Context) ([]byte, error) {
		close(started)
		<-release
		return pcm(1, 2), nil
	}
	c := ts.client(t)
	c.do(http.MethodGet, "/", nil)

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		first <- c.do(http.MethodPost, "/greeting", nil)
	}()
	<-started

	rec := c.do(http.MethodPost, "/greeting", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	close(release)
	assert.Equal(t, http.StatusOK, (<-first).Code)
	assert.EqualValues(t, 1, ts.synth.calls.Load())
}

func TestConsoleKeepsLastEightLines(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	var rec *httptest.ResponseRecorder
	for i := 0; i < 20; i++ {
		rec = c.do(http.MethodGet, "/console", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, consoleLines, strings.Count(rec.Body.String(), "[$]"))
	assert.Len(t, ts.listener(t, c).Console.Lines(), consoleLines)
}

func TestCatalogJSON(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.client(t).do(http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Alex Jean", body.Developer.Name)
	assert.Len(t, body.Projects, 4)
	assert.Len(t, body.Experiences, 3)
	assert.NotEmpty(t, body.Skills)
}

func TestContactForm(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodGet, "/contact-form", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="fullName"`)

	rec = c.do(http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Great set"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your message!")
	require.Len(t, ts.sender.sent, 1)
	assert.Equal(t, "Ada", ts.sender.sent[0].Name)

	rec = c.do(http.MethodPost, "/contact", url.Values{"fullName": {"Ada"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in your name, email and message.")
}

func TestContactDeliveryFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.sender.err = contact.ErrNotConfigured
	rec := ts.client(t).do(http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Great set"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, there was an error sending your message.")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)
	c.do(http.MethodPost, "/play/4", nil)

	rec := c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `devify_plays_total{project="4"} 1`)
	assert.Contains(t, rec.Body.String(), "devify_active_listeners 1")
}

func TestStaticAssets(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.client(t).do(http.MethodGet, "/static/devify.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--accent")
}

func TestWrappedView(t *testing.T) {
	ts := newTestServer(t)
	c := ts.client(t)

	rec := c.do(http.MethodGet, "/views/wrapped", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Top track")
	assert.Contains(t, rec.Body.String(), "E-Commerce Titan")
}

func TestFormatStars(t *testing.T) {
	assert.Equal(t, "950", formatStars(950))
	assert.Equal(t, "2.4k", formatStars(2400))
	assert.Equal(t, "3k", formatStars(3000))
}

func TestSkillCards(t *testing.T) {
	cards := skillCards([]catalog.Skill{{Name: "React"}, {Name: "COBOL"}})
	assert.Equal(t, "#e8115b", cards[0].Color)
	assert.Equal(t, defaultSkillStyle.Color, cards[1].Color)
}
