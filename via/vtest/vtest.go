// Package vtest drives via apps over HTTP in tests: page loads, action
// triggers and the SSE patch stream, with a cookie jar shared across requests.
package vtest

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

const origin = "http://localhost"

// Tester provides ergonomic testing utilities for Via apps.
type Tester struct {
	handler http.Handler
	jar     *cookieJar
}

// New creates a new Tester for the given Via HTTPServeMux.
func New(handler http.Handler) *Tester {
	return &Tester{handler: handler, jar: newCookieJar()}
}

// SetCookie stores c in the tester's jar; it is sent with every later request.
func (t *Tester) SetCookie(c *http.Cookie) {
	t.jar.SetCookies(origin, []*http.Cookie{c})
}

// Cookie returns the jar's cookie with the given name.
func (t *Tester) Cookie(name string) (*http.Cookie, bool) {
	return t.jar.get(name)
}

func (t *Tester) do(req *http.Request, w http.ResponseWriter) {
	for _, c := range t.jar.GetCookies(origin) {
		req.AddCookie(c)
	}
	t.handler.ServeHTTP(w, req)
}

func (t *Tester) record(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	t.do(req, w)
	t.jar.SetCookies(origin, w.Result().Cookies())
	return w
}

// Response wraps an HTTP response with Via-specific helpers.
type Response struct {
	*httptest.ResponseRecorder
	body    string
	visitID string
	signals map[string]any
	tester  *Tester
}

// Get performs a GET request to the given path.
func (t *Tester) Get(path string) *Response {
	w := t.record(httptest.NewRequest(http.MethodGet, path, nil))
	body := w.Body.String()
	signals := extractSignals(body)
	visitID, _ := signals["via-c"].(string)
	return &Response{
		ResponseRecorder: w,
		body:             body,
		visitID:          visitID,
		signals:          signals,
		tester:           t,
	}
}

// VisitID returns the page visit id embedded in the response.
func (r *Response) VisitID() string {
	return r.visitID
}

// Signals returns the initial signal values embedded in the page.
func (r *Response) Signals() map[string]any {
	return r.signals
}

// Body returns the response body.
func (r *Response) Body() string {
	return r.body
}

// AssertStatus asserts the response status code.
func (r *Response) AssertStatus(t testing.TB, expected int) {
	t.Helper()
	if r.Code != expected {
		t.Fatalf("expected status %d, got %d", expected, r.Code)
	}
}

// AssertContains asserts the response body contains the given text.
func (r *Response) AssertContains(t testing.TB, text string) {
	t.Helper()
	if !strings.Contains(r.body, text) {
		t.Fatalf("expected body to contain %q, body:\n%s", text, r.body)
	}
}

// AssertNotContains asserts the response body does not contain the given text.
func (r *Response) AssertNotContains(t testing.TB, text string) {
	t.Helper()
	if strings.Contains(r.body, text) {
		t.Fatalf("expected body not to contain %q, body:\n%s", text, r.body)
	}
}

var actionIDRe = regexp.MustCompile(`/_action/([0-9a-f]+)`)

// ActionIDs returns the ids of all action triggers in the body, in document order.
func (r *Response) ActionIDs() []string {
	var ids []string
	for _, m := range actionIDRe.FindAllStringSubmatch(r.body, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// Trigger calls the action with the page's current signals, overridden by sigs.
func (r *Response) Trigger(t testing.TB, actionID string, sigs map[string]any) *Response {
	t.Helper()
	payload := map[string]any{}
	for k, v := range r.signals {
		payload[k] = v
	}
	for k, v := range sigs {
		payload[k] = v
	}
	payload["via-c"] = r.visitID
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode signals: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/_action/"+actionID+"?datastar="+url.QueryEscape(string(b)), nil)
	w := r.tester.record(req)
	return &Response{
		ResponseRecorder: w,
		body:             w.Body.String(),
		visitID:          r.visitID,
		signals:          r.signals,
		tester:           r.tester,
	}
}

// TriggerAction triggers an action by index (0-based) in document order.
func (r *Response) TriggerAction(t testing.TB, index int) *Response {
	t.Helper()
	ids := r.ActionIDs()
	if index >= len(ids) {
		t.Fatalf("action index %d out of range (found %d actions)", index, len(ids))
	}
	return r.Trigger(t, ids[index], nil)
}

var signalsAttrRe = regexp.MustCompile(`data-signals="([^"]+)"`)

func extractSignals(body string) map[string]any {
	m := signalsAttrRe.FindStringSubmatch(body)
	if len(m) < 2 {
		return map[string]any{}
	}
	var signals map[string]any
	if err := json.Unmarshal([]byte(html.UnescapeString(m[1])), &signals); err != nil {
		return map[string]any{}
	}
	return signals
}

// syncedResponseWriter wraps httptest.ResponseRecorder with synchronized access
type syncedResponseWriter struct {
	*httptest.ResponseRecorder
	mu sync.Mutex
}

func (w *syncedResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ResponseRecorder.Write(b)
}

func (w *syncedResponseWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ResponseRecorder.Flush()
}

func (w *syncedResponseWriter) safeBodyString() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ResponseRecorder.Body.String()
}

// SSE is a live connection to the app's patch stream.
type SSE struct {
	recorder *syncedResponseWriter
	cancel   context.CancelFunc
	done     chan struct{}
}

// SSE connects to the patch stream of the given visit.
func (t *Tester) SSE(visitID string) *SSE {
	ctx, cancel := context.WithCancel(context.Background())
	q := url.QueryEscape(`{"via-c":"` + visitID + `"}`)
	req := httptest.NewRequest(http.MethodGet, "/_sse?datastar="+q, nil).WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")

	w := &syncedResponseWriter{ResponseRecorder: httptest.NewRecorder()}
	s := &SSE{recorder: w, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		t.do(req, w)
	}()
	return s
}

// Events returns the data lines received so far.
func (s *SSE) Events() []string {
	var events []string
	for _, line := range strings.Split(s.recorder.safeBodyString(), "\n") {
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			events = append(events, data)
		}
	}
	return events
}

// WaitFor polls the stream until it contains substr or the timeout passes.
func (s *SSE) WaitFor(substr string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(s.recorder.safeBodyString(), substr) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Count returns how many times substr occurs in the stream so far.
func (s *SSE) Count(substr string) int {
	return strings.Count(s.recorder.safeBodyString(), substr)
}

// Close disconnects the stream and waits for the handler to return.
func (s *SSE) Close() {
	s.cancel()
	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
}
