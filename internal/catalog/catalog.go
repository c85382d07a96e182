// Package catalog persists scan results for decoded spectra in a local
// sqlite database so repeated runs can list and look them up without
// re-reading the files.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	ucsf "github.com/hobofan/ucsf-nmr"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one cataloged spectrum.
type Entry struct {
	ID         string
	SHA1       string
	Path       string
	Dimensions int
	Samples    int
	SizeBytes  int64
	Min        sql.NullFloat64
	Max        sql.NullFloat64
	ScannedAt  time.Time
	Axes       []AxisInfo
}

// AxisInfo mirrors one axis record of a cataloged spectrum.
type AxisInfo struct {
	Position      int
	Nucleus       string
	Points        int
	TileSize      int
	Frequency     float64
	SpectralWidth float64
	Center        float64
}

// Catalog wraps the database handle.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at file.
func Open(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS spectrum (
		id TEXT PRIMARY KEY NOT NULL,
		sha1 TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		dimensions INTEGER NOT NULL,
		samples INTEGER NOT NULL,
		size_bytes INTEGER NOT NULL,
		min REAL,
		max REAL,
		scanned_at TIMESTAMP NOT NULL
	)`); err != nil {
		return nil, err
	}

	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS axis (
		spectrum_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		nucleus TEXT NOT NULL,
		points INTEGER NOT NULL,
		tile_size INTEGER NOT NULL,
		frequency REAL NOT NULL,
		spectral_width REAL NOT NULL,
		center REAL NOT NULL,
		PRIMARY KEY (spectrum_id, position),
		FOREIGN KEY (spectrum_id) REFERENCES spectrum(id)
	)`); err != nil {
		return nil, err
	}

	return &Catalog{db: db}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add records a decoded spectrum, keyed on the file content's SHA-1.
// Adding the same content twice returns the existing entry.
func (c *Catalog) Add(path, sha string, size int64, f *ucsf.File) (*Entry, error) {
	var id string
	switch err := c.db.QueryRow("SELECT id FROM spectrum WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		return c.insert(path, sha, size, f)
	case nil:
		return c.Get(id)
	default:
		return nil, err
	}
}

func (c *Catalog) insert(path, sha string, size int64, f *ucsf.File) (*Entry, error) {
	// Bounds stay NULL when the spectrum has no comparable samples.
	var min, max sql.NullFloat64
	if lo, hi, err := f.Bounds(); err == nil {
		min = sql.NullFloat64{Float64: float64(lo), Valid: true}
		max = sql.NullFloat64{Float64: float64(hi), Valid: true}
	}

	id := uuid.NewString()

	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		"INSERT INTO spectrum (id, sha1, path, dimensions, samples, size_bytes, min, max, scanned_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, sha, path, f.Header.Dimensions, len(f.Data()), size, min, max, time.Now().UTC(),
	); err != nil {
		tx.Rollback()
		return nil, err
	}
	for i, ax := range f.Axes {
		if _, err := tx.Exec(
			"INSERT INTO axis (spectrum_id, position, nucleus, points, tile_size, frequency, spectral_width, center) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, i, ax.Nucleus, ax.DataPoints, ax.TileSize, ax.Frequency, ax.SpectralWidth, ax.Center,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c.Get(id)
}

// Get returns one entry with its axes in order, or nil when absent.
func (c *Catalog) Get(id string) (*Entry, error) {
	var e Entry
	switch err := c.db.QueryRow(
		"SELECT id, sha1, path, dimensions, samples, size_bytes, min, max, scanned_at FROM spectrum WHERE id = ?", id,
	).Scan(&e.ID, &e.SHA1, &e.Path, &e.Dimensions, &e.Samples, &e.SizeBytes, &e.Min, &e.Max, &e.ScannedAt); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	rows, err := c.db.Query(
		"SELECT position, nucleus, points, tile_size, frequency, spectral_width, center FROM axis WHERE spectrum_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ax AxisInfo
		if err := rows.Scan(&ax.Position, &ax.Nucleus, &ax.Points, &ax.TileSize, &ax.Frequency, &ax.SpectralWidth, &ax.Center); err != nil {
			return nil, err
		}
		e.Axes = append(e.Axes, ax)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns every entry, newest first, without axis rows.
func (c *Catalog) List() ([]Entry, error) {
	return c.list("SELECT id, sha1, path, dimensions, samples, size_bytes, min, max, scanned_at FROM spectrum ORDER BY scanned_at DESC, id")
}

// FindByNucleus returns entries with at least one axis observing nucleus.
func (c *Catalog) FindByNucleus(nucleus string) ([]Entry, error) {
	return c.list(
		"SELECT DISTINCT s.id, s.sha1, s.path, s.dimensions, s.samples, s.size_bytes, s.min, s.max, s.scanned_at FROM spectrum AS s JOIN axis AS a ON a.spectrum_id = s.id WHERE a.nucleus = ? ORDER BY s.scanned_at DESC, s.id",
		nucleus,
	)
}

func (c *Catalog) list(query string, args ...any) ([]Entry, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SHA1, &e.Path, &e.Dimensions, &e.Samples, &e.SizeBytes, &e.Min, &e.Max, &e.ScannedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
