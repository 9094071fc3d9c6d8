// ABOUTME: SQL-backed ArticleStore shared by the SQLite and PostgreSQL drivers
// ABOUTME: Articles are keyed by source URL; queries are written once and rebound per dialect

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"oddly-enough-api/core/domain"
	coreerrors "oddly-enough-api/core/errors"
)

// dialect captures the few differences between the supported databases
type dialect struct {
	name   string
	driver string
	schema string
	// numbered reports whether placeholders are $1, $2... rather than ?
	numbered bool
}

// SQLStore implements interfaces.ArticleStore on database/sql
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

const selectColumns = `SELECT id, title, summary, source_url, source_name, category, image_url, weirdness_score, published_at FROM articles `

func open(ctx context.Context, d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", d.name, err)
	}
	return newSQLStore(ctx, db, d)
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &coreerrors.UnavailableError{Service: d.name + " store", Cause: err}
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize %s schema: %w", d.name, err)
	}
	return &SQLStore{db: db, dialect: d}, nil
}

// rebind rewrites ? placeholders to $n for numbered dialects
func (s *SQLStore) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Recent returns up to limit articles, newest first
func (s *SQLStore) Recent(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		return []domain.Article{}, nil
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(selectColumns+`ORDER BY published_at DESC, id ASC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0, limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent articles: %w", err)
	}
	return articles, nil
}

// FindByID retrieves the newest article carrying id
func (s *SQLStore) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	return s.findOne(ctx, "id", id)
}

// FindByURL retrieves an article by its source URL
func (s *SQLStore) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	return s.findOne(ctx, "source_url", url)
}

func (s *SQLStore) findOne(ctx context.Context, column, value string) (*domain.Article, error) {
	// column is one of two fixed identifiers, never caller input
	query := s.rebind(selectColumns + `WHERE ` + column + ` = ? ORDER BY published_at DESC LIMIT 1`)

	a, err := scanArticle(s.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: value}
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert inserts or replaces articles keyed by source URL in one transaction
func (s *SQLStore) Upsert(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO articles (id, title, summary, source_url, source_name, category, image_url, weirdness_score, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_url) DO UPDATE SET
			id = excluded.id,
			title = excluded.title,
			summary = excluded.summary,
			source_name = excluded.source_name,
			category = excluded.category,
			image_url = excluded.image_url,
			weirdness_score = COALESCE(excluded.weirdness_score, articles.weirdness_score),
			published_at = excluded.published_at`))
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		var score sql.NullFloat64
		if a.WeirdnessScore != nil {
			score = sql.NullFloat64{Float64: *a.WeirdnessScore, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			a.ID, a.Title, a.Summary, a.URL, a.Source, string(a.Category), a.ImageURL, score, a.PublishedAt.UnixMilli(),
		); err != nil {
			return fmt.Errorf("failed to upsert article %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (domain.Article, error) {
	var (
		a        domain.Article
		category string
		image    sql.NullString
		score    sql.NullFloat64
		millis   int64
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Summary, &a.URL, &a.Source, &category, &image, &score, &millis); err != nil {
		return domain.Article{}, err
	}

	a.Category = domain.Category(category)
	a.ImageURL = image.String
	if score.Valid {
		v := score.Float64
		a.WeirdnessScore = &v
	}
	a.PublishedAt = time.UnixMilli(millis).UTC()
	return a, nil
}
