package mysql

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// seedBook 写入一本图书及其作者、分类
func seedBook(t *testing.T, repo book.Repository, b *book.Book, authors, categories []string) *book.Book {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, b))
	for _, name := range authors {
		a, err := repo.FindOrCreateAuthor(ctx, name)
		require.NoError(t, err)
		require.NoError(t, repo.LinkAuthor(ctx, b.ID, a.ID))
	}
	for _, name := range categories {
		c, err := repo.FindOrCreateCategory(ctx, name)
		require.NoError(t, err)
		require.NoError(t, repo.LinkCategory(ctx, b.ID, c.ID))
	}
	return b
}

func TestBookRepository_FindByID_LoadsAssociations(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	b := seedBook(t, repo, &book.Book{Title: "Dune"}, []string{"Frank Herbert", "Frank Herbert"}, []string{"Fiction"})

	got, err := repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	require.Len(t, got.Authors, 2)
	assert.Equal(t, got.Authors[0].ID, got.Authors[1].ID)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Fiction", got.Categories[0].Name)
}

func TestBookRepository_FindByID_NotFound(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_FindOrCreate_IsIdempotent(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.FindOrCreateAuthor(ctx, "Jane Doe")
	require.NoError(t, err)
	second, err := repo.FindOrCreateAuthor(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// 名字区分大小写
	other, err := repo.FindOrCreateAuthor(ctx, "jane doe")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	c1, err := repo.FindOrCreateCategory(ctx, "Fiction")
	require.NoError(t, err)
	c2, err := repo.FindOrCreateCategory(ctx, "Fiction")
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
}

func TestBookRepository_FindOrCreate_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	var wg sync.WaitGroup
	ids := make([]uint, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := repo.FindOrCreateAuthor(context.Background(), "Shared Author")
			errs[i] = err
			if err == nil {
				ids[i] = a.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	require.NoError(t, db.Model(&AuthorModel{}).Where("name = ?", "Shared Author").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookRepository_Search(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	dune := seedBook(t, repo, &book.Book{Title: "Dune", Publisher: "Chilton"}, []string{"Frank Herbert"}, []string{"Science Fiction"})
	jane := seedBook(t, repo, &book.Book{Title: "Untitled", Description: "notes"}, []string{"Jane Doe"}, nil)
	fic := seedBook(t, repo, &book.Book{Title: "Short Stories"}, nil, []string{"Fiction"})
	seedBook(t, repo, &book.Book{Title: "Cookbook", PublishDate: "1999"}, nil, nil)

	t.Run("匹配作者名", func(t *testing.T) {
		got, err := repo.Search(ctx, "jane", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, jane.ID, got[0].ID)
	})

	t.Run("匹配分类名并按ID升序", func(t *testing.T) {
		got, err := repo.Search(ctx, "FIC", 20)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, dune.ID, got[0].ID)
		assert.Equal(t, fic.ID, got[1].ID)
	})

	t.Run("匹配出版社和出版日期", func(t *testing.T) {
		got, err := repo.Search(ctx, "chil", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = repo.Search(ctx, "1999", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Cookbook", got[0].Title)
	})

	t.Run("通配符按字面匹配", func(t *testing.T) {
		got, err := repo.Search(ctx, "%", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("空关键词", func(t *testing.T) {
		got, err := repo.Search(ctx, "  ", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBookRepository_Search_NonASCII(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBook(t, repo, &book.Book{Title: "Ébène Noire"}, []string{"Ryszard Kapuściński"}, nil)

	for _, term := range []string{"Ébène", "noire", "Kapuściński"} {
		got, err := repo.Search(ctx, term, 0)
		require.NoError(t, err, term)
		require.Len(t, got, 1, term)
		assert.Equal(t, b.ID, got[0].ID)
	}
}

func TestBookRepository_Search_DistinctAndLimit(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	// 同一本书多个作者都命中时只返回一次
	seedBook(t, repo, &book.Book{Title: "Anthology"}, []string{"Ann One", "Ann Two"}, []string{"Ann Cat"})
	for i := 0; i < 25; i++ {
		seedBook(t, repo, &book.Book{Title: fmt.Sprintf("Annals %02d", i)}, nil, nil)
	}

	got, err := repo.Search(ctx, "ann", 20)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, "Anthology", got[0].Title)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID)
	}

	all, err := repo.Search(ctx, "ann", 0)
	require.NoError(t, err)
	require.Len(t, all, 26)
	assert.Equal(t, "Annals 24", all[25].Title)
}

func TestBookRepository_DeleteCascadeInTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	b := seedBook(t, repo, &book.Book{Title: "Dune"}, []string{"Frank Herbert"}, []string{"Fiction", "Classic"})

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := repo.LockByID(ctx, b.ID); err != nil {
			return err
		}
		authors, err := repo.DeleteAuthorLinks(ctx, b.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(1), authors)
		categories, err := repo.DeleteCategoryLinks(ctx, b.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(2), categories)
		return repo.Delete(ctx, b.ID)
	})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	// 作者和分类本身保留
	var authors int64
	require.NoError(t, db.Model(&AuthorModel{}).Count(&authors).Error)
	assert.Equal(t, int64(1), authors)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, &book.Book{Title: "Ghost"}); err != nil {
			return err
		}
		if _, err := repo.FindOrCreateAuthor(ctx, "Ghost Writer"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var books, authors int64
	require.NoError(t, db.Model(&BookModel{}).Count(&books).Error)
	require.NoError(t, db.Model(&AuthorModel{}).Count(&authors).Error)
	assert.Zero(t, books)
	assert.Zero(t, authors)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%dune%", containsPattern("dune"))
	assert.Equal(t, "%100!%%", containsPattern("100%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%wow!!%", containsPattern("wow!"))
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry 'x' for key 'y'")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
}
