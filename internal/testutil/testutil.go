// Package testutil provides sqlite-backed fixtures for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/frases/internal/config"
	"github.com/deppfellow/frases/internal/database"
)

// Schema mirrors the production tables closely enough for every query the
// service runs. personajes and capitulos carry extra columns so dynamic
// rendering of SELECT * is exercised.
const Schema = `
CREATE TABLE personajes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre      TEXT NOT NULL,
	descripcion TEXT
);

CREATE TABLE capitulos (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	titulo   TEXT NOT NULL,
	numero   INTEGER,
	duracion REAL
);

CREATE TABLE frases (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	texto         TEXT NOT NULL,
	marca_tiempo  TEXT,
	descripcion   TEXT,
	personajes_id INTEGER REFERENCES personajes(id),
	capitulos_id  INTEGER REFERENCES capitulos(id)
);
`

// Config returns a development config pointing at a sqlite file at path.
func Config(path string) *config.Config {
	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Name = path
	cfg.Logging.SlowQueryThreshold = 0
	return cfg
}

// NewDatabase opens a fresh sqlite database in a temp dir with Schema
// applied. A file is used instead of :memory: so every pooled connection
// sees the same data. The pool is closed when the test ends.
func NewDatabase(t *testing.T) *database.Database {
	t.Helper()

	cfg := Config(filepath.Join(t.TempDir(), "frases.db"))
	logger := zerolog.Nop()

	db, err := database.Open(cfg, &logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.DB.Close()
	})

	_, err = db.DB.ExecContext(context.Background(), Schema)
	require.NoError(t, err)

	return db
}

// SeedCharacter inserts a character and returns its id.
func SeedCharacter(t *testing.T, db *database.Database, nombre string) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO personajes (nombre, descripcion) VALUES (?, ?)`, nombre, nil)
}

// SeedChapter inserts a chapter and returns its id.
func SeedChapter(t *testing.T, db *database.Database, titulo string, numero int64) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO capitulos (titulo, numero, duracion) VALUES (?, ?, ?)`, titulo, numero, 22.5)
}

// SeedPhrase inserts a phrase and returns its id. Zero ids are stored as NULL.
func SeedPhrase(t *testing.T, db *database.Database, texto string, personajeID, capituloID int64) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO frases (texto, marca_tiempo, descripcion, personajes_id, capitulos_id) VALUES (?, ?, ?, ?, ?)`,
		texto, nil, nil, nullable(personajeID), nullable(capituloID),
	)
}

// CountPhrases returns the number of rows in frases.
func CountPhrases(t *testing.T, db *database.Database) int {
	t.Helper()

	var n int
	require.NoError(t, db.DB.GetContext(context.Background(), &n, `SELECT COUNT(*) FROM frases`))
	return n
}

func insert(t *testing.T, db *database.Database, query string, args ...any) int64 {
	t.Helper()

	res, err := db.DB.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func nullable(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
