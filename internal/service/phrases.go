package service

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/frases/internal/database"
	"github.com/deppfellow/frases/internal/errs"
	"github.com/deppfellow/frases/internal/repository"
)

// MessagePhraseNotFound is returned for every lookup of a missing phrase.
const MessagePhraseNotFound = "Frase no encontrada"

// PhraseInput is what clients submit on create and update.
type PhraseInput struct {
	Texto        string
	MarcaTiempo  *string
	Descripcion  *string
	PersonajesID *int64
}

// Values coalesces absent, empty, and zero optionals to NULL.
func (in PhraseInput) Values() repository.PhraseValues {
	return repository.PhraseValues{
		Texto:        in.Texto,
		MarcaTiempo:  nullIfEmpty(in.MarcaTiempo),
		Descripcion:  nullIfEmpty(in.Descripcion),
		PersonajesID: nullIfZero(in.PersonajesID),
	}
}

// PhraseService implements the phrase operations.
type PhraseService struct {
	db   *database.Database
	repo *repository.PhraseRepository
}

func NewPhraseService(db *database.Database, repo *repository.PhraseRepository) *PhraseService {
	return &PhraseService{db: db, repo: repo}
}

// Create stores a phrase and returns its id.
func (s *PhraseService) Create(ctx context.Context, in PhraseInput) (int64, error) {
	var id int64
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		id, err = s.repo.Create(ctx, conn, in.Values())
		return err
	})
	return id, err
}

// List returns every phrase with its character name.
func (s *PhraseService) List(ctx context.Context) ([]repository.Phrase, error) {
	var phrases []repository.Phrase
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		phrases, err = s.repo.List(ctx, conn)
		return err
	})
	return phrases, err
}

// Get returns one phrase, or a 404 *errs.HTTPError when it does not exist.
func (s *PhraseService) Get(ctx context.Context, id int64) (*repository.Phrase, error) {
	var phrase *repository.Phrase
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		phrase, err = s.repo.GetByID(ctx, conn, id)
		if errors.Is(err, repository.ErrNotFound) {
			return errs.NewNotFoundError(MessagePhraseNotFound)
		}
		return err
	})
	return phrase, err
}

// Update overwrites a phrase. The existence check and the update share one
// transaction, so a concurrent delete cannot slip in between them.
func (s *PhraseService) Update(ctx context.Context, id int64, in PhraseInput) error {
	return s.mutate(ctx, id, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.Update(ctx, tx, id, in.Values())
	})
}

// Delete removes a phrase, with the same transactional existence check as Update.
func (s *PhraseService) Delete(ctx context.Context, id int64) error {
	return s.mutate(ctx, id, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}

// ListByCharacter returns the phrases attributed to a character. No match
// is an empty list, not an error.
func (s *PhraseService) ListByCharacter(ctx context.Context, characterID int64) ([]repository.PhraseSummary, error) {
	var phrases []repository.PhraseSummary
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		phrases, err = s.repo.ListByCharacter(ctx, conn, characterID)
		return err
	})
	return phrases, err
}

// ListByChapter returns the phrases of a chapter. No match is an empty list.
func (s *PhraseService) ListByChapter(ctx context.Context, chapterID int64) ([]repository.PhraseSummary, error) {
	var phrases []repository.PhraseSummary
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		phrases, err = s.repo.ListByChapter(ctx, conn, chapterID)
		return err
	})
	return phrases, err
}

func (s *PhraseService) mutate(ctx context.Context, id int64, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	return s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		return database.RunInTx(ctx, conn, func(ctx context.Context, tx *sqlx.Tx) error {
			exists, err := s.repo.Exists(ctx, tx, id)
			if err != nil {
				return err
			}
			if !exists {
				return errs.NewNotFoundError(MessagePhraseNotFound)
			}
			return fn(ctx, tx)
		})
	})
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nullIfZero(n *int64) *int64 {
	if n == nil || *n == 0 {
		return nil
	}
	return n
}
