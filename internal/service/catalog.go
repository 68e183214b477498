package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/frases/internal/database"
	"github.com/deppfellow/frases/internal/repository"
)

// CatalogService lists the tables phrases refer to.
type CatalogService struct {
	db         *database.Database
	characters *repository.CharacterRepository
	chapters   *repository.ChapterRepository
}

func NewCatalogService(db *database.Database, characters *repository.CharacterRepository, chapters *repository.ChapterRepository) *CatalogService {
	return &CatalogService{db: db, characters: characters, chapters: chapters}
}

// Characters returns every row of personajes.
func (s *CatalogService) Characters(ctx context.Context) ([]repository.Record, error) {
	var records []repository.Record
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		records, err = s.characters.List(ctx, conn)
		return err
	})
	return records, err
}

// Chapters returns every row of capitulos.
func (s *CatalogService) Chapters(ctx context.Context) ([]repository.Record, error) {
	var records []repository.Record
	err := s.db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		var err error
		records, err = s.chapters.List(ctx, conn)
		return err
	})
	return records, err
}
