package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-via/storefront/internal/account"
	"github.com/go-via/storefront/internal/catalog"
	"github.com/go-via/storefront/internal/config"
	"github.com/go-via/storefront/internal/session"
	"github.com/go-via/storefront/plugins/storetheme"
	"github.com/go-via/storefront/via"
	_ "github.com/mattn/go-sqlite3"
)

// AccountPath is where the account page is mounted.
const AccountPath = "/me"

// App is a configured storefront, ready to serve.
type App struct {
	V           *via.V
	db          *sql.DB
	revocations *session.RevocationStore
}

// NewApp opens the database named by cfg, if any, and registers all routes.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	opts := cfg.ViaOptions()
	opts.Plugins = []via.Plugin{storetheme.New()}
	a.V = via.New().Config(opts)

	var favorites catalog.FavoritesProvider = catalog.NewStaticProvider(catalog.DefaultFavorites())
	if cfg.Database.Path != "" {
		db, err := sql.Open("sqlite3", cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		store := catalog.NewSQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate favorites: %w", err)
		}
		if cfg.Database.Seed {
			if err := seedGuest(ctx, store); err != nil {
				a.Close()
				return nil, err
			}
		}
		favorites = store
		a.revocations = session.NewRevocationStore(db)
		if err := a.revocations.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate revocations: %w", err)
		}
	}

	var validator session.Validator = session.FlagValidator{}
	if cfg.Session.Validator == config.ValidatorJWT {
		jwtOpts := []session.JWTOption{session.WithIssuer(cfg.Session.JWTIssuer)}
		if a.revocations != nil {
			jwtOpts = append(jwtOpts, session.WithRevocationList(a.revocations))
		}
		validator = session.NewJWTValidator([]byte(cfg.Session.JWTSecret), jwtOpts...)
	}
	sessions := session.NewManager(validator, cfg.Session.CookieName)

	a.V.Page(AccountPath, account.Page(account.Deps{
		Sessions:  sessions,
		Favorites: favorites,
		LoginPath: cfg.LoginPath,
	}))
	a.V.Page(cfg.LoginPath, loginPage(cfg))
	a.V.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, AccountPath, http.StatusSeeOther)
	})
	return a, nil
}

// seedGuest gives the shared guest account the default cards once.
func seedGuest(ctx context.Context, store *catalog.SQLStore) error {
	existing, err := store.Favorites(ctx, "guest")
	if err != nil {
		return fmt.Errorf("seed favorites: %w", err)
	}
	if existing.Len() > 0 {
		return nil
	}
	items := catalog.DefaultFavorites()
	for i := range items {
		items[i].ID = ""
	}
	if err := store.Seed(ctx, "guest", items); err != nil {
		return fmt.Errorf("seed favorites: %w", err)
	}
	return nil
}

// StartMaintenance purges expired token revocations every interval until
// the app shuts down.
func (a *App) StartMaintenance(interval time.Duration) {
	if a.revocations == nil {
		return
	}
	r := a.V.NewRoutine()
	r.OnInterval(interval, func() {
		n, err := a.revocations.Purge(context.Background(), time.Now())
		if err != nil {
			log.Printf("[warn] purge revocations: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[info] purged %d expired revocations", n)
		}
	})
	r.Start()
}

// Handler returns the HTTP handler of the app.
func (a *App) Handler() http.Handler {
	return a.V.HTTPServeMux()
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
