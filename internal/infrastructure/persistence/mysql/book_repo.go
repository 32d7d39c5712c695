package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 所有方法通过getDB(ctx)参与调用方开启的事务
// 3. 作者/分类的去重依赖唯一索引,不依赖应用层先查后插
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// searchColumns 参与关键词匹配的列
var searchColumns = []string{
	"books.title",
	"books.sub_title",
	"books.description",
	"books.publisher",
	"books.publish_date",
	"authors.name",
	"categories.name",
}

// Create 创建图书(只写books表,关联行由LinkAuthor/LinkCategory写入)
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:       b.Title,
		SubTitle:    b.SubTitle,
		PublishDate: b.PublishDate,
		Publisher:   b.Publisher,
		Description: b.Description,
	}

	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书(含作者、分类)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := withAssociations(getDB(ctx, r.db)).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// LockByID 悲观锁查询图书
// 教学要点:必须在事务中调用,SELECT ... FOR UPDATE锁定到事务结束
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// Search 关键词搜索
// 实现:
// 1. 子查询LEFT JOIN作者和分类,找出任一列命中的图书ID(DISTINCT去重)
// 2. 外层按ID升序取前limit条(limit<=0不限制),再预加载作者和分类
func (r *bookRepository) Search(ctx context.Context, term string, limit int) ([]*book.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*book.Book{}, nil
	}

	// LOWER()对非ASCII字符的折叠依赖数据库(MySQL/PostgreSQL按Unicode,SQLite只折叠ASCII),
	// 所以同时按原样匹配一次,保证大小写一致的关键词在所有方言下都能命中
	lowered := containsPattern(strings.ToLower(term))
	verbatim := containsPattern(term)
	conds := make([]string, len(searchColumns))
	args := make([]interface{}, 0, 2*len(searchColumns))
	for i, col := range searchColumns {
		conds[i] = "(LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "' OR " +
			col + " LIKE ? ESCAPE '" + likeEscape + "')"
		args = append(args, lowered, verbatim)
	}

	db := getDB(ctx, r.db)
	matched := db.Session(&gorm.Session{NewDB: true}).
		Table("books").
		Select("DISTINCT books.id").
		Joins("LEFT JOIN book_authors ON book_authors.book_id = books.id").
		Joins("LEFT JOIN authors ON authors.id = book_authors.author_id").
		Joins("LEFT JOIN book_categories ON book_categories.book_id = books.id").
		Joins("LEFT JOIN categories ON categories.id = book_categories.category_id").
		Where(strings.Join(conds, " OR "), args...)

	query := withAssociations(db).
		Where("id IN (?)", matched).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []BookModel
	err := query.Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// FindOrCreateAuthor 查找或创建作者
// 教学要点(并发安全):
// 1. INSERT ... ON CONFLICT DO NOTHING:名字已存在时不报错
// 2. 再用SELECT ... FOR UPDATE按名字取回,两个事务同时创建同名作者时,
//    后到的一方在唯一索引上等待,先到的提交后读到同一行
func (r *bookRepository) FindOrCreateAuthor(ctx context.Context, name string) (*book.Author, error) {
	db := getDB(ctx, r.db)

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&AuthorModel{Name: name}).Error
	if err != nil && !isDuplicateError(err) {
		return nil, apperrors.Wrap(err, "创建作者失败")
	}

	var model AuthorModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return &book.Author{ID: model.ID, Name: model.Name}, nil
}

// FindOrCreateCategory 查找或创建分类,并发处理同FindOrCreateAuthor
func (r *bookRepository) FindOrCreateCategory(ctx context.Context, name string) (*book.Category, error) {
	db := getDB(ctx, r.db)

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&CategoryModel{Name: name}).Error
	if err != nil && !isDuplicateError(err) {
		return nil, apperrors.Wrap(err, "创建分类失败")
	}

	var model CategoryModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return &book.Category{ID: model.ID, Name: model.Name}, nil
}

// LinkAuthor 写入图书-作者关联行
func (r *bookRepository) LinkAuthor(ctx context.Context, bookID, authorID uint) error {
	link := &BookAuthorModel{BookID: bookID, AuthorID: authorID}
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(link).Error; err != nil {
		return apperrors.Wrap(err, "关联作者失败")
	}
	return nil
}

// LinkCategory 写入图书-分类关联行
func (r *bookRepository) LinkCategory(ctx context.Context, bookID, categoryID uint) error {
	link := &BookCategoryModel{BookID: bookID, CategoryID: categoryID}
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(link).Error; err != nil {
		return apperrors.Wrap(err, "关联分类失败")
	}
	return nil
}

// DeleteAuthorLinks 删除图书的全部作者关联行
func (r *bookRepository) DeleteAuthorLinks(ctx context.Context, bookID uint) (int64, error) {
	result := getDB(ctx, r.db).Where("book_id = ?", bookID).Delete(&BookAuthorModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除作者关联失败")
	}
	return result.RowsAffected, nil
}

// DeleteCategoryLinks 删除图书的全部分类关联行
func (r *bookRepository) DeleteCategoryLinks(ctx context.Context, bookID uint) (int64, error) {
	result := getDB(ctx, r.db).Where("book_id = ?", bookID).Delete(&BookCategoryModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除分类关联失败")
	}
	return result.RowsAffected, nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// =========================================
// 辅助函数
// =========================================

// withAssociations 预加载作者和分类,关联行按写入顺序排列
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Authors", func(tx *gorm.DB) *gorm.DB { return tx.Order("book_authors.id ASC") }).
		Preload("Authors.Author").
		Preload("Categories", func(tx *gorm.DB) *gorm.DB { return tx.Order("book_categories.id ASC") }).
		Preload("Categories.Category")
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		SubTitle:    model.SubTitle,
		PublishDate: model.PublishDate,
		Publisher:   model.Publisher,
		Description: model.Description,
		Authors:     make([]book.Author, 0, len(model.Authors)),
		Categories:  make([]book.Category, 0, len(model.Categories)),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	for _, link := range model.Authors {
		b.Authors = append(b.Authors, book.Author{ID: link.Author.ID, Name: link.Author.Name})
	}
	for _, link := range model.Categories {
		b.Categories = append(b.Categories, book.Category{ID: link.Category.ID, Name: link.Category.Name})
	}
	return b
}
