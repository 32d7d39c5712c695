package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 所有方法都从ctx中取事务（如果有），入库和删除的多步操作由调用方放进同一事务
// 3. 存储层没有级联删除，删除图书前必须先删关联行
type Repository interface {
	// Create 创建图书（只写books表）
	Create(ctx context.Context, book *Book) error

	// FindByID 查询图书及其作者、分类
	// 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// LockByID 加行锁查询图书（SELECT ... FOR UPDATE），只返回books表字段
	// 不存在返回ErrBookNotFound
	LockByID(ctx context.Context, id uint) (*Book, error)

	// Search 不区分大小写的包含匹配
	// 匹配范围：书名、副标题、简介、出版社、出版日期、关联的作者名、关联的分类名
	// 结果按ID升序、去重，limit<=0时不限条数
	Search(ctx context.Context, term string, limit int) ([]*Book, error)

	// FindOrCreateAuthor 按名字精确查找作者，不存在则创建
	// 并发创建同名作者时只会留下一行（唯一索引 + 冲突忽略）
	FindOrCreateAuthor(ctx context.Context, name string) (*Author, error)

	// FindOrCreateCategory 同FindOrCreateAuthor
	FindOrCreateCategory(ctx context.Context, name string) (*Category, error)

	// LinkAuthor 创建图书-作者关联行（同一对可以重复）
	LinkAuthor(ctx context.Context, bookID, authorID uint) error

	// LinkCategory 创建图书-分类关联行
	LinkCategory(ctx context.Context, bookID, categoryID uint) error

	// DeleteAuthorLinks 删除图书的全部作者关联行，返回删除行数
	DeleteAuthorLinks(ctx context.Context, bookID uint) (int64, error)

	// DeleteCategoryLinks 删除图书的全部分类关联行，返回删除行数
	DeleteCategoryLinks(ctx context.Context, bookID uint) (int64, error)

	// Delete 删除图书行（调用前必须已删除关联行）
	Delete(ctx context.Context, id uint) error
}
