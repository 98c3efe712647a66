package account

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-via/storefront/internal/catalog"
	"github.com/go-via/storefront/internal/session"
	"github.com/go-via/storefront/via"
	"github.com/go-via/storefront/via/vtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loginReplace = `window.location.replace("/auth/login")`
	loadingText  = "読み込み中…"
	leavingText  = "ログインページへ移動しています…"
)

type fakeSessions struct {
	mu        sync.Mutex
	status    session.Status
	logoutErr error
	panics    bool
	logouts   int
}

func (f *fakeSessions) Resolve(context.Context, *http.Request) session.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeSessions) Logout(_ context.Context, _ *http.Request, cs session.CookieSetter) error {
	f.mu.Lock()
	f.logouts++
	f.mu.Unlock()
	if f.panics {
		panic("session backend exploded")
	}
	cs.SetCookie(&http.Cookie{Name: "auth", MaxAge: -1, Path: "/"})
	return f.logoutErr
}

func newTester(t *testing.T, s Sessions) *vtest.Tester {
	t.Helper()
	v := via.New().Config(via.Options{LogLvl: via.LogLevelError})
	v.Page("/me", Page(Deps{
		Sessions:  s,
		Favorites: catalog.NewStaticProvider(catalog.DefaultFavorites()),
		LoginPath: "/auth/login",
	}))
	return vtest.New(v.HTTPServeMux())
}

func alice() session.Status {
	return session.Authenticated(session.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
}

// signalWithValue finds the id of the page signal whose initial value is v.
func signalWithValue(t *testing.T, resp *vtest.Response, v any) string {
	t.Helper()
	for id, val := range resp.Signals() {
		if id != "via-c" && val == v {
			return id
		}
	}
	t.Fatalf("no signal with value %v", v)
	return ""
}

func actionLabelled(t *testing.T, body, label string) string {
	t.Helper()
	m := regexp.MustCompile(`_action/([0-9a-f]+)[^<]*>` + regexp.QuoteMeta(label) + `<`).FindStringSubmatch(body)
	require.Len(t, m, 2, "no action on %q", label)
	return m[1]
}

// resolved mounts the page, resolves the session and waits until the panels
// arrive on the returned stream.
func resolved(t *testing.T, vt *vtest.Tester) (*vtest.Response, *vtest.SSE) {
	t.Helper()
	resp := vt.Get("/me")
	resp.AssertStatus(t, http.StatusOK)
	sse := vt.SSE(resp.VisitID())
	t.Cleanup(sse.Close)
	resp.Trigger(t, resp.ActionIDs()[0], nil).AssertStatus(t, http.StatusNoContent)
	require.True(t, sse.WaitFor(`id="p-profile"`, time.Second), "panels never rendered")
	return resp, sse
}

func streamed(sse *vtest.SSE) string {
	return strings.Join(sse.Events(), "\n")
}

func TestPage_LoadingRendersOnlyPlaceholder(t *testing.T) {
	vt := newTester(t, &fakeSessions{status: session.Unauthenticated()})

	resp := vt.Get("/me")

	resp.AssertStatus(t, http.StatusOK)
	resp.AssertContains(t, loadingText)
	resp.AssertNotContains(t, `id="p-profile"`)
	resp.AssertNotContains(t, "window.location.replace")
	assert.Len(t, resp.ActionIDs(), 1, "only the resolve trigger")
}

func TestPage_UnauthenticatedRedirectsOnce(t *testing.T) {
	vt := newTester(t, &fakeSessions{status: session.Unauthenticated()})
	resp := vt.Get("/me")
	sse := vt.SSE(resp.VisitID())
	defer sse.Close()

	resolve := resp.ActionIDs()[0]
	resp.Trigger(t, resolve, nil).AssertStatus(t, http.StatusNoContent)
	require.True(t, sse.WaitFor(leavingText, time.Second))

	resp.Trigger(t, resolve, nil)
	resp.Trigger(t, resolve, nil)
	require.Eventually(t, func() bool { return sse.Count(leavingText) >= 3 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, sse.Count(loginReplace))
	for _, e := range sse.Events() {
		assert.NotContains(t, e, `id="p-profile"`)
	}
}

func TestPage_AuthenticatedShowsProfile(t *testing.T) {
	vt := newTester(t, &fakeSessions{status: alice()})
	resp := vt.Get("/me")
	sse := vt.SSE(resp.VisitID())
	defer sse.Close()

	resp.Trigger(t, resp.ActionIDs()[0], nil)

	require.True(t, sse.WaitFor("alice@example.com", time.Second))
	assert.True(t, sse.WaitFor(`value="Alice"`, time.Second))
	assert.True(t, sse.WaitFor(`id="p-profile" class="panel active"`, time.Second))
	assert.Equal(t, 1, sse.Count(`class="panel active"`))
	assert.Zero(t, sse.Count("window.location.replace"))
}

func TestPage_SignedTokenSession(t *testing.T) {
	jwtv := session.NewJWTValidator([]byte("secret"))
	token, err := jwtv.Issue(session.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}, time.Hour)
	require.NoError(t, err)

	vt := newTester(t, session.NewManager(jwtv, "storefront_session"))
	vt.SetCookie(&http.Cookie{Name: "storefront_session", Value: token})

	_, sse := resolved(t, vt)
	assert.True(t, sse.WaitFor(`value="Alice"`, time.Second))
	assert.True(t, sse.WaitFor(`value="alice@example.com"`, time.Second))
}

func TestPage_ServerRenderFollowsSignals(t *testing.T) {
	vt := newTester(t, &fakeSessions{status: alice()})
	resp := vt.Get("/me")
	tabSig := signalWithValue(t, resp, "profile")
	pwSig := signalWithValue(t, resp, false)
	sse := vt.SSE(resp.VisitID())
	defer sse.Close()

	resp.Trigger(t, resp.ActionIDs()[0], map[string]any{tabSig: "favorites", pwSig: true})

	require.True(t, sse.WaitFor(`id="p-favorites" class="panel active"`, time.Second))
	assert.True(t, sse.WaitFor(`id="p-profile" class="panel"`, time.Second))
	assert.True(t, sse.WaitFor(`type="text"`, time.Second))
	assert.True(t, sse.WaitFor(`value="*****"`, time.Second))
}

func TestPage_ResolvesOnEveryMount(t *testing.T) {
	s := &fakeSessions{status: alice()}
	vt := newTester(t, s)
	resolved(t, vt)

	resp := vt.Get("/me")

	resp.AssertContains(t, loadingText)
	resp.AssertNotContains(t, `id="p-profile"`)
	resp.AssertNotContains(t, "Alice")
	resp.AssertNotContains(t, "window.location.replace")
	assert.Len(t, resp.ActionIDs(), 1, "only the resolve trigger")
}

func TestPage_ResolvedPanels(t *testing.T) {
	vt := newTester(t, &fakeSessions{status: alice()})

	_, sse := resolved(t, vt)

	require.True(t, sse.WaitFor("お気に入りから削除", time.Second))
	body := streamed(sse)
	assert.Contains(t, body, `id="p-profile" class="panel active"`)
	assert.Contains(t, body, `id="p-favorites" class="panel"`)
	assert.Contains(t, body, "US $34.99")
	assert.Contains(t, body, "◎ 1 点")
	assert.Contains(t, body, `width="72"`)
	assert.NotContains(t, body, loadingText)
}

func TestPage_MarkerRemovedAfterResolve(t *testing.T) {
	vt := newTester(t, session.NewManager(session.FlagValidator{}, "auth"))
	vt.SetCookie(&http.Cookie{Name: "auth", Value: "true"})
	resolved(t, vt)

	vt.SetCookie(&http.Cookie{Name: "auth", Value: "false"})
	resp := vt.Get("/me")
	resp.AssertContains(t, loadingText)
	resp.AssertNotContains(t, `id="p-profile"`)

	sse := vt.SSE(resp.VisitID())
	defer sse.Close()
	resp.Trigger(t, resp.ActionIDs()[0], nil).AssertStatus(t, http.StatusNoContent)

	require.True(t, sse.WaitFor(loginReplace, time.Second))
	assert.True(t, sse.WaitFor(leavingText, time.Second))
	assert.NotContains(t, streamed(sse), `id="p-profile"`)
}

func TestPage_TokenExpiredAfterResolve(t *testing.T) {
	jwtv := session.NewJWTValidator([]byte("secret"))
	u := session.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	live, err := jwtv.Issue(u, time.Hour)
	require.NoError(t, err)
	expired, err := jwtv.Issue(u, -time.Minute)
	require.NoError(t, err)

	vt := newTester(t, session.NewManager(jwtv, "storefront_session"))
	vt.SetCookie(&http.Cookie{Name: "storefront_session", Value: live})
	resolved(t, vt)
	sid, ok := vt.Cookie("via_sid")
	require.True(t, ok)

	vt.SetCookie(&http.Cookie{Name: "storefront_session", Value: expired})
	resp := vt.Get("/me")
	resp.AssertNotContains(t, "Alice")
	sse := vt.SSE(resp.VisitID())
	defer sse.Close()
	resp.Trigger(t, resp.ActionIDs()[0], nil).AssertStatus(t, http.StatusNoContent)

	require.True(t, sse.WaitFor(loginReplace, time.Second))
	body := streamed(sse)
	assert.NotContains(t, body, `value="Alice"`)
	assert.NotContains(t, body, `id="p-profile"`)

	vt.Get("/me")
	fresh, ok := vt.Cookie("via_sid")
	require.True(t, ok)
	assert.NotEqual(t, sid.Value, fresh.Value, "a lost session drops the browser session")
}

func TestPage_LoadingNeverRedirects(t *testing.T) {
	for name, st := range map[string]session.Status{
		"authenticated":   alice(),
		"unauthenticated": session.Unauthenticated(),
	} {
		t.Run(name, func(t *testing.T) {
			vt := newTester(t, &fakeSessions{status: st})
			resp := vt.Get("/me")
			sse := vt.SSE(resp.VisitID())
			defer sse.Close()

			resp.AssertContains(t, loadingText)
			resp.AssertNotContains(t, "window.location.replace")
			time.Sleep(50 * time.Millisecond)
			assert.Zero(t, sse.Count("window.location.replace"))
		})
	}
}

func TestPage_RemoveFavorite(t *testing.T) {
	vt := newTester(t, &fakeSessions{status: alice()})
	resp, sse := resolved(t, vt)
	require.True(t, sse.WaitFor("ss-lmb-2", time.Second))

	m := regexp.MustCompile(`\$(s[0-9a-f]{16})=&#34;ss-lmb-2&#34;;@get\(&#39;/_action/([0-9a-f]+)`).FindStringSubmatch(streamed(sse))
	require.Len(t, m, 3)

	resp.Trigger(t, m[2], map[string]any{m[1]: "ss-lmb-2"}).AssertStatus(t, http.StatusNoContent)
	require.Eventually(t, func() bool { return sse.Count("fav-list") >= 2 }, time.Second, 5*time.Millisecond)

	_, after := resolved(t, vt)
	require.True(t, after.WaitFor("ss-lmb-1", time.Second))
	assert.NotContains(t, streamed(after), "ss-lmb-2")
}

func TestPage_LogoutAlwaysRedirects(t *testing.T) {
	tests := map[string]*fakeSessions{
		"success": {status: alice()},
		"error":   {status: alice(), logoutErr: errors.New("revocation store down")},
		"panic":   {status: alice(), panics: true},
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			vt := newTester(t, s)
			resp, sse := resolved(t, vt)
			sid, ok := vt.Cookie("via_sid")
			require.True(t, ok)

			logout := actionLabelled(t, streamed(sse), "サインアウト")
			resp.Trigger(t, logout, nil).AssertStatus(t, http.StatusNoContent)

			require.True(t, sse.WaitFor(loginReplace, time.Second))
			assert.Equal(t, 1, sse.Count(loginReplace))
			assert.Equal(t, 1, s.logouts)

			next := vt.Get("/me")
			next.AssertContains(t, loadingText)
			fresh, ok := vt.Cookie("via_sid")
			require.True(t, ok)
			assert.NotEqual(t, sid.Value, fresh.Value)
		})
	}
}
