// Package repository handles all interactions with the database.
//
// It contains the raw SQL statements, one repository per table. Every
// method takes the Queryer to run on, so the same statement works on a
// leased connection or inside a transaction. Statements are written with
// '?' placeholders and rebound for the driver in use.
package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// Queryer is what a repository needs to run statements. *sqlx.Conn and
// *sqlx.Tx both satisfy it.
type Queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Phrases    *PhraseRepository
	Characters *CharacterRepository
	Chapters   *ChapterRepository
}

// NewRepositories constructs the repository container.
//
// driverName is the database/sql driver name ("mysql", "pgx", "sqlite");
// it decides the placeholder style and how inserted ids are read back.
func NewRepositories(driverName string) *Repositories {
	return &Repositories{
		Phrases:    NewPhraseRepository(driverName),
		Characters: NewCharacterRepository(),
		Chapters:   NewChapterRepository(),
	}
}

type dialect struct {
	bindType int
}

func newDialect(driverName string) dialect {
	return dialect{bindType: sqlx.BindType(driverName)}
}

func (d dialect) rebind(query string) string {
	return sqlx.Rebind(d.bindType, query)
}

// returningID reports whether inserted ids come back through RETURNING
// instead of LastInsertId.
func (d dialect) returningID() bool {
	return d.bindType == sqlx.DOLLAR
}
