package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-via/storefront/internal/config"
	"github.com/go-via/storefront/plugins/storetheme"
	"github.com/go-via/storefront/via/vtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.Default()
	cfg.LogLevel = "error"
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	app, err := NewApp(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestApp_RootRedirectsToAccount(t *testing.T) {
	app := newTestApp(t, nil)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, AccountPath, w.Header().Get("Location"))
}

func TestApp_AccountPageLinksTheme(t *testing.T) {
	vt := vtest.New(newTestApp(t, nil).Handler())

	resp := vt.Get(AccountPath)
	resp.AssertStatus(t, http.StatusOK)
	resp.AssertContains(t, storetheme.StylesheetPath)
	resp.AssertContains(t, `lang="ja"`)
}

func TestApp_LoginPage(t *testing.T) {
	vt := vtest.New(newTestApp(t, func(c *config.Config) {
		c.Identity.LoginURL = "https://id.example.com/login"
	}).Handler())

	resp := vt.Get("/auth/login")
	resp.AssertStatus(t, http.StatusOK)
	resp.AssertContains(t, "ログイン")
	resp.AssertContains(t, "https://id.example.com/login")
	resp.AssertNotContains(t, "開発用ログイン")
}

func TestApp_DevLoginThenAccount(t *testing.T) {
	vt := vtest.New(newTestApp(t, func(c *config.Config) { c.DevMode = true }).Handler())

	login := vt.Get("/auth/login")
	login.AssertContains(t, "開発用ログイン")
	sse := vt.SSE(login.VisitID())
	defer sse.Close()

	login.TriggerAction(t, 0).AssertStatus(t, http.StatusNoContent)
	require.True(t, sse.WaitFor(`window.location.replace("/me")`, time.Second))
	c, ok := vt.Cookie("auth")
	require.True(t, ok)
	assert.Equal(t, "true", c.Value)

	account := vt.Get(AccountPath)
	accountSSE := vt.SSE(account.VisitID())
	defer accountSSE.Close()
	account.TriggerAction(t, 0)

	require.True(t, accountSSE.WaitFor(`id="p-profile" class="panel active"`, time.Second))
	assert.True(t, accountSSE.WaitFor("ユーザー１", time.Second))
	assert.Zero(t, accountSSE.Count("window.location.replace"))
}

func TestApp_AccountWithoutSessionRedirects(t *testing.T) {
	vt := vtest.New(newTestApp(t, nil).Handler())

	account := vt.Get(AccountPath)
	sse := vt.SSE(account.VisitID())
	defer sse.Close()
	account.TriggerAction(t, 0)

	assert.True(t, sse.WaitFor(`window.location.replace("/auth/login")`, time.Second))
}

func TestApp_JWTValidatorSelected(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) {
		c.Session.Validator = config.ValidatorJWT
		c.Session.JWTSecret = "s3cret"
		c.Session.CookieName = "storefront_session"
	})
	vt := vtest.New(app.Handler())
	vt.SetCookie(&http.Cookie{Name: "storefront_session", Value: "true"})

	account := vt.Get(AccountPath)
	sse := vt.SSE(account.VisitID())
	defer sse.Close()
	account.TriggerAction(t, 0)

	assert.True(t, sse.WaitFor(`window.location.replace("/auth/login")`, time.Second), "flag marker is not a valid token")
}
