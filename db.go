package psoscreen

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bodgit/psoscreen/capture"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// ErrNotFound is returned when a named capture isn't in the gallery.
var ErrNotFound = errors.New("gallery: capture not found")

// Entry describes a capture stored in the gallery.
type Entry struct {
	Name     string
	Platform capture.Platform
	Created  time.Time
}

// Gallery stores converted captures in a sqlite database.
type Gallery struct {
	db  *sql.DB
	now func() time.Time
}

// NewGallery opens, creating if necessary, the gallery database in file.
func NewGallery(file string) (*Gallery, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS capture (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, platform INTEGER NOT NULL, sha1 TEXT NOT NULL UNIQUE, image BLOB NOT NULL, created INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS capture_created ON capture (created)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Gallery{
		db:  db,
		now: time.Now,
	}, nil
}

// Close closes the underlying database.
func (g *Gallery) Close() error {
	return g.db.Close()
}

// Add stores the encoded image for a raw capture under name. If the same
// raw capture has been stored before, the existing name is returned and
// nothing is added.
func (g *Gallery) Add(name string, platform capture.Platform, raw, image []byte) (string, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(raw))

	if _, err := g.db.Exec("INSERT INTO capture (name, platform, sha1, image, created) VALUES (?, ?, ?, ?, ?) ON CONFLICT (sha1) DO NOTHING", name, int(platform), sha, image, g.now().UnixNano()); err != nil {
		return "", err
	}

	var stored string
	if err := g.db.QueryRow("SELECT name FROM capture WHERE sha1 = ?", sha).Scan(&stored); err != nil {
		return "", err
	}

	return stored, nil
}

// Get returns the encoded image stored under name.
func (g *Gallery) Get(name string) ([]byte, error) {
	var image []byte
	switch err := g.db.QueryRow("SELECT image FROM capture WHERE name = ?", name).Scan(&image); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return image, nil
	default:
		return nil, err
	}
}

// List returns every capture in the gallery, newest first.
func (g *Gallery) List() ([]Entry, error) {
	rows, err := g.db.Query("SELECT name, platform, created FROM capture ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var platform int
		var created int64
		if err := rows.Scan(&e.Name, &platform, &created); err != nil {
			return nil, err
		}
		e.Platform = capture.Platform(platform)
		e.Created = time.Unix(0, created)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Prune removes every capture added before t and returns how many were
// removed.
func (g *Gallery) Prune(t time.Time) (int64, error) {
	result, err := g.db.Exec("DELETE FROM capture WHERE created < ?", t.UnixNano())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
