package database

import (
	"context"
	"errors"
	"testing"

	"github.com/helixml/sitekit/domain/repository"
)

type testPage struct {
	id     string
	path   string
	parent *string
	order  int
}

type testPageEntity struct {
	ID        string  `gorm:"primaryKey"`
	Path      string  `gorm:"column:path"`
	ParentID  *string `gorm:"column:parent_id"`
	SortOrder int     `gorm:"column:sort_order"`
}

func (testPageEntity) TableName() string { return "pages" }

type testPageMapper struct{}

func (testPageMapper) ToDomain(e testPageEntity) testPage {
	return testPage{id: e.ID, path: e.Path, parent: e.ParentID, order: e.SortOrder}
}

func (testPageMapper) ToModel(p testPage) testPageEntity {
	return testPageEntity{ID: p.id, Path: p.path, ParentID: p.parent, SortOrder: p.order}
}

func setupPages(t *testing.T) Repository[testPage, testPageEntity] {
	t.Helper()
	db, _ := openFileDB(t)
	if err := db.GORM().AutoMigrate(&testPageEntity{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewRepository[testPage, testPageEntity](db, testPageMapper{}, "page")

	root := "root"
	pages := []testPage{
		{id: "root", path: "/", order: 0},
		{id: "about", path: "/about", parent: &root, order: 0},
		{id: "business", path: "/business", parent: &root, order: 1},
		{id: "investor", path: "/investor", parent: &root, order: 2},
	}
	if err := repo.CreateAll(context.Background(), pages); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func ids(pages []testPage) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.id
	}
	return out
}

func TestRepository_Operators(t *testing.T) {
	ctx := context.Background()
	repo := setupPages(t)
	root := "root"

	tests := []struct {
		name string
		opts []repository.Option
		want []string
	}{
		{"equal", []repository.Option{repository.WithCondition("path", "/about")}, []string{"about"}},
		{"in", []repository.Option{repository.WithIDIn([]string{"about", "investor"}), repository.WithOrderAsc("id")}, []string{"about", "investor"}},
		{"null parent", []repository.Option{repository.WithOptionalString("parent_id", nil)}, []string{"root"}},
		{"parent", []repository.Option{repository.WithOptionalString("parent_id", &root), repository.WithOrderDesc("sort_order")}, []string{"investor", "business", "about"}},
		{"from order", []repository.Option{repository.WithComparison("sort_order", repository.OpGreaterThanOrEqual, 1), repository.WithOrderAsc("sort_order")}, []string{"business", "investor"}},
		{"not null", []repository.Option{repository.WithNotNull("parent_id"), repository.WithOrderAsc("sort_order"), repository.WithLimit(1)}, []string{"about"}},
		{"offset", []repository.Option{repository.WithNotNull("parent_id"), repository.WithOrderAsc("sort_order"), repository.WithLimit(1), repository.WithOffset(2)}, []string{"investor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Find(ctx, tt.opts...)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			got := ids(found)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRepository_FindOne_NotFound(t *testing.T) {
	repo := setupPages(t)

	_, err := repo.FindOne(context.Background(), repository.WithID("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_CountAndExists(t *testing.T) {
	ctx := context.Background()
	repo := setupPages(t)

	count, err := repo.Count(ctx, repository.WithNotNull("parent_id"), repository.WithLimit(1))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("Count ignores limit, expected 3, got %d", count)
	}

	exists, err := repo.Exists(ctx, repository.WithCondition("path", "/careers"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("expected /careers not to exist")
	}
}

func TestRepository_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := setupPages(t)

	page, err := repo.FindOne(ctx, repository.WithID("about"))
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	page.order = 9
	if _, err := repo.Save(ctx, page); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := repo.FindOne(ctx, repository.WithID("about"))
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if reloaded.order != 9 {
		t.Errorf("expected sort order 9, got %d", reloaded.order)
	}

	if err := repo.Delete(ctx, reloaded); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, reloaded); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestRepository_DeleteBy(t *testing.T) {
	ctx := context.Background()
	repo := setupPages(t)

	if _, err := repo.DeleteBy(ctx); err == nil {
		t.Fatal("expected unconditional delete to be refused")
	}

	n, err := repo.DeleteBy(ctx, repository.WithComparison("sort_order", repository.OpGreaterThan, 0))
	if err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows deleted, got %d", n)
	}
}

func TestRepository_WithDatabaseInTransaction(t *testing.T) {
	ctx := context.Background()
	repo := setupPages(t)
	boom := errors.New("boom")

	err := repo.Database().Atomic(ctx, func(tx Database) error {
		txRepo := repo.WithDatabase(tx)
		if _, err := txRepo.DeleteBy(ctx, repository.WithID("about")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	exists, err := repo.Exists(ctx, repository.WithID("about"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("delete should have rolled back")
	}
}
