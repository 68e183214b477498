package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	phraseColumns = `f.id, f.texto, f.marca_tiempo, f.descripcion`

	listPhrasesQuery = `
		SELECT ` + phraseColumns + `,
		       p.nombre AS personaje_nombre
		FROM frases f
		LEFT JOIN personajes p ON f.personajes_id = p.id`

	getPhraseQuery = listPhrasesQuery + `
		WHERE f.id = ?`

	phraseExistsQuery = `SELECT id FROM frases WHERE id = ?`

	insertPhraseQuery = `
		INSERT INTO frases (texto, marca_tiempo, descripcion, personajes_id)
		VALUES (?, ?, ?, ?)`

	updatePhraseQuery = `
		UPDATE frases
		SET texto = ?, marca_tiempo = ?, descripcion = ?, personajes_id = ?
		WHERE id = ?`

	deletePhraseQuery = `DELETE FROM frases WHERE id = ?`

	phrasesByCharacterQuery = `
		SELECT ` + phraseColumns + `
		FROM frases f
		WHERE f.personajes_id = ?`

	// capitulos_id is only ever read here; insert and update leave it alone.
	phrasesByChapterQuery = `
		SELECT ` + phraseColumns + `
		FROM frases f
		WHERE f.capitulos_id = ?`
)

// PhraseRepository runs the statements over the frases table.
type PhraseRepository struct {
	dialect dialect
}

// NewPhraseRepository creates a PhraseRepository for the given driver.
func NewPhraseRepository(driverName string) *PhraseRepository {
	return &PhraseRepository{dialect: newDialect(driverName)}
}

// List returns every phrase joined with its character name, in store order.
func (r *PhraseRepository) List(ctx context.Context, q Queryer) ([]Phrase, error) {
	phrases := []Phrase{}
	if err := sqlx.SelectContext(ctx, q, &phrases, r.dialect.rebind(listPhrasesQuery)); err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	return phrases, nil
}

// GetByID returns the first phrase with the given id, or ErrNotFound.
func (r *PhraseRepository) GetByID(ctx context.Context, q Queryer, id int64) (*Phrase, error) {
	var phrases []Phrase
	if err := sqlx.SelectContext(ctx, q, &phrases, r.dialect.rebind(getPhraseQuery), id); err != nil {
		return nil, fmt.Errorf("get phrase %d: %w", id, err)
	}
	if len(phrases) == 0 {
		return nil, ErrNotFound
	}
	return &phrases[0], nil
}

// Exists reports whether a phrase with the given id is stored.
func (r *PhraseRepository) Exists(ctx context.Context, q Queryer, id int64) (bool, error) {
	rows, err := q.QueryContext(ctx, r.dialect.rebind(phraseExistsQuery), id)
	if err != nil {
		return false, fmt.Errorf("check phrase %d: %w", id, err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("check phrase %d: %w", id, err)
	}
	return found, nil
}

// Create inserts one phrase and returns the id the store assigned.
func (r *PhraseRepository) Create(ctx context.Context, q Queryer, v PhraseValues) (int64, error) {
	args := []any{v.Texto, v.MarcaTiempo, v.Descripcion, v.PersonajesID}

	if r.dialect.returningID() {
		var id int64
		query := r.dialect.rebind(insertPhraseQuery + ` RETURNING id`)
		if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert phrase: %w", err)
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, r.dialect.rebind(insertPhraseQuery), args...)
	if err != nil {
		return 0, fmt.Errorf("insert phrase: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted phrase id: %w", err)
	}
	return id, nil
}

// Update overwrites the managed columns of one phrase.
func (r *PhraseRepository) Update(ctx context.Context, q Queryer, id int64, v PhraseValues) error {
	_, err := q.ExecContext(ctx, r.dialect.rebind(updatePhraseQuery),
		v.Texto, v.MarcaTiempo, v.Descripcion, v.PersonajesID, id)
	if err != nil {
		return fmt.Errorf("update phrase %d: %w", id, err)
	}
	return nil
}

// Delete removes one phrase.
func (r *PhraseRepository) Delete(ctx context.Context, q Queryer, id int64) error {
	if _, err := q.ExecContext(ctx, r.dialect.rebind(deletePhraseQuery), id); err != nil {
		return fmt.Errorf("delete phrase %d: %w", id, err)
	}
	return nil
}

// ListByCharacter returns the phrases whose personajes_id equals characterID.
func (r *PhraseRepository) ListByCharacter(ctx context.Context, q Queryer, characterID int64) ([]PhraseSummary, error) {
	phrases := []PhraseSummary{}
	if err := sqlx.SelectContext(ctx, q, &phrases, r.dialect.rebind(phrasesByCharacterQuery), characterID); err != nil {
		return nil, fmt.Errorf("list phrases of character %d: %w", characterID, err)
	}
	return phrases, nil
}

// ListByChapter returns the phrases whose capitulos_id equals chapterID.
func (r *PhraseRepository) ListByChapter(ctx context.Context, q Queryer, chapterID int64) ([]PhraseSummary, error) {
	phrases := []PhraseSummary{}
	if err := sqlx.SelectContext(ctx, q, &phrases, r.dialect.rebind(phrasesByChapterQuery), chapterID); err != nil {
		return nil, fmt.Errorf("list phrases of chapter %d: %w", chapterID, err)
	}
	return phrases, nil
}
