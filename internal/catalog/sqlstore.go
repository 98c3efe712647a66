package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

const (
	favoritesSchema = `CREATE TABLE IF NOT EXISTS favorites (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1,
	price_cents INTEGER NOT NULL,
	currency TEXT NOT NULL DEFAULT 'USD',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS favorites_user ON favorites (user_id, position);`
	favoritesQuery = `SELECT id, title, quantity, price_cents, currency, thumbnail_url
	FROM favorites WHERE user_id = ? ORDER BY position, id;`
	insertFavorite = `INSERT INTO favorites (id, user_id, title, quantity, price_cents, currency, thumbnail_url, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	deleteFavorite = `DELETE FROM favorites WHERE user_id = ? AND id = ?;`
)

// SQLStore keeps favorites in a SQLite table.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, favoritesSchema)
	return err
}

// Seed stores items for userID in order. Items without an ID get a fresh one.
func (s *SQLStore) Seed(ctx context.Context, userID string, items Items) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertFavorite)
	if err != nil {
		return err
	}
	defer stmt.Close()

	pos := 0
	for f := range items.All() {
		id := f.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, id, userID, f.Title, f.Quantity, f.PriceCents, f.Currency, f.ThumbnailURL, pos); err != nil {
			return fmt.Errorf("seed favorite %q: %w", f.Title, err)
		}
		pos++
	}
	return tx.Commit()
}

func (s *SQLStore) Favorites(ctx context.Context, userID string) (Items, error) {
	rows, err := s.db.QueryContext(ctx, favoritesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items Items
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.Title, &f.Quantity, &f.PriceCents, &f.Currency, &f.ThumbnailURL); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (s *SQLStore) Remove(ctx context.Context, userID, itemID string) error {
	res, err := s.db.ExecContext(ctx, deleteFavorite, userID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
