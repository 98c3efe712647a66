package cmd

import (
	"net/http"

	"github.com/go-via/storefront/internal/config"
	"github.com/go-via/storefront/via"
	"github.com/go-via/storefront/via/h"
)

// loginPage is the landing spot for visitors without a session. Sign-in
// itself happens at the identity provider. In dev mode with the flag
// validator it can set the marker cookie directly.
func loginPage(cfg *config.Config) func(*via.Composition) {
	devLogin := cfg.DevMode && cfg.Session.Validator == config.ValidatorFlag
	return func(c *via.Composition) {
		signIn := via.Action(c, func(ctx *via.Context) {
			if !devLogin {
				return
			}
			ctx.SetCookie(&http.Cookie{
				Name:     cfg.Session.CookieName,
				Value:    "true",
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			ctx.Replace(AccountPath)
		})

		c.View(func(ctx *via.Context) h.H {
			return h.Div(h.Class("placeholder"),
				h.H1(h.Text("ログイン")),
				h.If(cfg.Identity.LoginURL != "",
					h.P(h.A(h.Href(cfg.Identity.LoginURL), h.Text("ログインページへ進む"))),
				),
				h.If(devLogin,
					h.Div(h.Class("actions"),
						h.Button(h.Class("btn"), h.Type("button"), signIn.OnClick(), h.Text("開発用ログイン")),
					),
				),
			)
		})
	}
}
