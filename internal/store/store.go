// Package store persists a request log and a translation memory in SQLite.
// The memory caches final translations per (source text, source language,
// target language, domain) so repeated calls skip the external service.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/termweave/termweave/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_requests (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		domain TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		domain TEXT NOT NULL DEFAULT '',
		final_text TEXT NOT NULL,
		terms_used TEXT,
		service_used TEXT,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, source_lang, target_lang, domain)
	);

	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON translation_memory(source_text, source_lang, target_lang, domain);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveRequest(ctx context.Context, req internal.TranslationRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_requests (id, source_text, source_lang, target_lang, domain, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.SourceText, req.SourceLang, req.TargetLang, req.Domain, req.Timestamp)
	return err
}

// GetCachedTranslation returns the remembered final text and terms for a
// source text, bumping the usage counter on a hit.
func (s *Store) GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang, domain string) (string, []string, bool, error) {
	var finalText string
	var termsUsed sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT final_text, terms_used FROM translation_memory WHERE source_text = ? AND source_lang = ? AND target_lang = ? AND domain = ?`,
		normalizeText(sourceText), sourceLang, targetLang, domain).Scan(&finalText, &termsUsed)

	if err == sql.ErrNoRows {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE translation_memory SET usage_count = usage_count + 1, last_used = ? WHERE source_text = ? AND source_lang = ? AND target_lang = ? AND domain = ?`,
		time.Now(), normalizeText(sourceText), sourceLang, targetLang, domain)

	return finalText, splitTerms(termsUsed.String), true, err
}

// SaveToMemory records a final translation and the glossary terms it used.
func (s *Store) SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, domain, finalText string, termsUsed []string, serviceUsed string) error {
	id := fmt.Sprintf("mem_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translation_memory (id, source_text, source_lang, target_lang, domain, final_text, terms_used, service_used, usage_count, last_used, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		id, normalizeText(sourceText), sourceLang, targetLang, domain, finalText, joinTerms(termsUsed), serviceUsed, time.Now(), time.Now())
	return err
}

// MemoryEntry is a row from the translation_memory table.
type MemoryEntry struct {
	ID          string
	SourceText  string
	SourceLang  string
	TargetLang  string
	Domain      string
	FinalText   string
	TermsUsed   []string
	ServiceUsed string
	UsageCount  int
	LastUsed    time.Time
}

// CacheStats summarises translation memory usage.
type CacheStats struct {
	TotalEntries int
	TotalUsage   int
}

// DeleteMemory permanently removes a translation memory entry by ID.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory WHERE id = ?`, id)
	return err
}

// ClearMemory removes all translation memory entries.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListMemory returns all translation memory entries ordered by most recently used.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, source_lang, target_lang, domain, final_text, terms_used, service_used, usage_count, last_used FROM translation_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		var terms, service sql.NullString
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang, &e.Domain, &e.FinalText, &terms, &service, &e.UsageCount, &e.LastUsed); err != nil {
			return nil, err
		}
		e.TermsUsed = splitTerms(terms.String)
		e.ServiceUsed = service.String
		results = append(results, e)
	}

	return results, rows.Err()
}

// Stats returns summary statistics for the translation memory.
func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(usage_count), 0) FROM translation_memory`).Scan(
		&stats.TotalEntries,
		&stats.TotalUsage,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// for consistent cache key comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// terms_used is stored as a single text column; terms never contain the
// separator because glossary rows are CSV cells.
const termsSep = "\x1f"

func joinTerms(terms []string) string {
	return strings.Join(terms, termsSep)
}

func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, termsSep)
}
