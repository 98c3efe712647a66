// Package account is the storefront's account page: profile, favorites,
// address and settings tabs behind a session gate.
package account

import (
	"context"
	"net/http"

	"github.com/go-via/storefront/internal/catalog"
	"github.com/go-via/storefront/internal/session"
	"github.com/go-via/storefront/via"
	"github.com/go-via/storefront/via/h"
)

// Sessions resolves and ends the visitor's session.
type Sessions interface {
	Resolve(ctx context.Context, r *http.Request) session.Status
	Logout(ctx context.Context, r *http.Request, cs session.CookieSetter) error
}

// Deps are the collaborators of the account page.
type Deps struct {
	Sessions  Sessions
	Favorites catalog.FavoritesProvider
	LoginPath string
}

const guestKey = "guest"

// Page composes the account page.
//
// The session is resolved by an init action on every mount, so each render
// starts at the loading placeholder. The last resolved user is kept in
// browser-session data; a failed resolution or a logout clears it along with
// the browser session.
func Page(d Deps) func(*via.Composition) {
	if d.LoginPath == "" {
		d.LoginPath = "/auth/login"
	}
	identity := via.NewSessionDataHandle[session.User]()

	return func(c *via.Composition) {
		tab := via.Signal(c, string(TabProfile))
		showPassword := via.Signal(c, false)
		visit := via.State(c, NewVisit())

		status := func(ctx *via.Context) session.Status {
			return visit.Get(ctx).Status
		}

		resolve := via.Action(c, func(ctx *via.Context) {
			cur := visit.Get(ctx)
			st := d.Sessions.Resolve(ctx.Context(), ctx.Request())
			prev, known := identity.Get(ctx)
			switch {
			case st.Valid():
				if known && prev.ID != st.User.ID {
					ctx.Infof("session user changed from %q to %q", prev.ID, st.User.ID)
				}
				identity.Set(ctx, *st.User)
			case known:
				identity.Clear(ctx)
			}
			cur.Observe(st, ctx, d.LoginPath)
			ctx.Debugf("session resolved phase=%s", cur.Phase())
			visit.Set(ctx, cur)
		})

		logout := via.Action(c, func(ctx *via.Context) {
			identity.Clear(ctx)
			Logout(ctx.Context(), func(tctx context.Context) error {
				return d.Sessions.Logout(tctx, ctx.Request(), ctx)
			}, ctx, d.LoginPath, ctx.Warnf)
			visit.Set(ctx, Visit{Status: session.Unauthenticated(), Redirected: true})
		})

		favorites := c.Component(favoritesComponent(d.Favorites, status))

		c.View(func(ctx *via.Context) h.H {
			st := status(ctx)
			switch (Visit{Status: st}).Phase() {
			case PhaseLoading:
				return loadingView(resolve)
			case PhaseRedirecting:
				return redirectingView()
			}
			vs := RestoreViewState(tab.Get(ctx), showPassword.Get(ctx))
			return h.Div(h.Class("wrap"),
				sideNav(tab, vs),
				h.Div(
					profilePanel(tab, showPassword, vs, st),
					panel(tab, vs, TabFavorites, favorites.Mount(ctx)),
					addressPanel(tab, vs),
					settingsPanel(tab, vs, logout),
				),
			)
		})
	}
}

func favoritesComponent(p catalog.FavoritesProvider, status func(*via.Context) session.Status) via.ComposeFn {
	return func(c *via.Composition) {
		target := via.Signal(c, "")

		remove := via.Action(c, func(ctx *via.Context) {
			st := status(ctx)
			if !st.Valid() {
				return
			}
			id := target.Get(ctx)
			if err := p.Remove(ctx.Context(), userKey(st), id); err != nil {
				ctx.Warnf("remove favorite %q: %v", id, err)
			}
			ctx.Sync()
		})

		c.View(func(ctx *via.Context) h.H {
			st := status(ctx)
			if !st.Valid() {
				return h.Group()
			}
			items, err := p.Favorites(ctx.Context(), userKey(st))
			if err != nil {
				ctx.Errorf("load favorites: %v", err)
				return favoritesList(nil, remove, target, "お気に入りを読み込めませんでした")
			}
			return favoritesList(items, remove, target, "")
		})
	}
}

func userKey(st session.Status) string {
	if st.User == nil || st.User.ID == "" {
		return guestKey
	}
	return st.User.ID
}
