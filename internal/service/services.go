// Package service contains the business logic.
//
// It sits between the handler and repository layers. It leases one
// connection per call, coalesces optional fields, and runs the
// existence-check-then-mutate pairs inside a transaction.
package service

import (
	"github.com/deppfellow/frases/internal/database"
	"github.com/deppfellow/frases/internal/repository"
)

// Services groups every service the handlers call.
type Services struct {
	Phrases *PhraseService
	Catalog *CatalogService
}

func NewServices(db *database.Database, repos *repository.Repositories) *Services {
	return &Services{
		Phrases: NewPhraseService(db, repos.Phrases),
		Catalog: NewCatalogService(db, repos.Characters, repos.Chapters),
	}
}
