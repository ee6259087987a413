package persistence

import (
	"github.com/helixml/sitekit/domain/document"
	"github.com/helixml/sitekit/internal/database"
)

var _ document.Store = DocumentStore{}

// DocumentStore implements document.Store using GORM.
type DocumentStore struct {
	database.Repository[document.Document, DocumentModel]
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db database.Database) DocumentStore {
	return DocumentStore{
		Repository: database.NewRepository[document.Document, DocumentModel](db, DocumentMapper{}, "document"),
	}
}
