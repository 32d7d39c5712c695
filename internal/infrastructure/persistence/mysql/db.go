package mysql

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. auto_migrate打开时自动迁移表结构
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	// 1. 连接数据库（默认MySQL，也支持PostgreSQL）
	dialector := mysql.Open(cfg.Database.DSN())
	if cfg.Database.Driver == "postgres" {
		dialector = postgres.Open(cfg.Database.DSN())
	}
	db, err := Open(dialector, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 2. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 3. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功", "driver", db.Dialector.Name(), "host", cfg.Database.Host, "db", cfg.Database.DBName)

	// 4. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Info("数据库迁移完成")
	}

	return db, nil
}

// Open 使用指定方言打开GORM连接
// 测试中传入sqlite方言，生产使用mysql方言
func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info // 开发环境打印SQL
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 唯一索引冲突翻译为gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
}

// Migrate 迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 名字和邮箱要求区分大小写的精确匹配，MySQL默认排序规则不区分大小写，
//    所以迁移后把这几列改成utf8mb4_bin（PostgreSQL和SQLite默认就区分大小写）
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&AccountModel{},
		&BookModel{},
		&AuthorModel{},
		&CategoryModel{},
		&BookAuthorModel{},
		&BookCategoryModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "mysql" {
		return nil
	}

	statements := []string{
		"ALTER TABLE accounts MODIFY email VARCHAR(360) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		"ALTER TABLE authors MODIFY name VARCHAR(200) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		"ALTER TABLE categories MODIFY name VARCHAR(200) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("修改排序规则失败: %w", err)
		}
	}
	return nil
}

// AccountModel GORM账号模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/account/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 没有软删除列：邮箱唯一索引只对应一个可登录的账号
type AccountModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:360;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（可逆加密密文）"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AccountModel) TableName() string {
	return "accounts"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 标题不唯一，同一外部图书多次入库会产生多行
// 2. 删除是物理删除，关联行需要先删
// 3. 作者和分类通过关联表多对多引用
type BookModel struct {
	ID          uint                `gorm:"primaryKey"`
	Title       string              `gorm:"size:200;not null;comment:书名"`
	SubTitle    string              `gorm:"size:200;comment:副标题"`
	PublishDate string              `gorm:"size:32;comment:出版日期（自由文本）"`
	Publisher   string              `gorm:"size:200;comment:出版社"`
	Description string              `gorm:"type:text;comment:简介"`
	Authors     []BookAuthorModel   `gorm:"foreignKey:BookID"`
	Categories  []BookCategoryModel `gorm:"foreignKey:BookID"`
	CreatedAt   time.Time           `gorm:"comment:创建时间"`
	UpdatedAt   time.Time           `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// AuthorModel GORM作者模型，名字唯一
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:200;not null;comment:作者名"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel GORM分类模型，名字唯一
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:200;not null;comment:分类名"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// BookAuthorModel 图书-作者关联
// 教学要点:
// 1. 关联行有自己的主键，同一对(BookID, AuthorID)允许重复
// 2. 删除图书前必须先删这里的行
type BookAuthorModel struct {
	ID       uint        `gorm:"primaryKey"`
	BookID   uint        `gorm:"index;not null;comment:图书ID"`
	AuthorID uint        `gorm:"index;not null;comment:作者ID"`
	Author   AuthorModel `gorm:"foreignKey:AuthorID"`
}

// TableName 指定表名
func (BookAuthorModel) TableName() string {
	return "book_authors"
}

// BookCategoryModel 图书-分类关联
type BookCategoryModel struct {
	ID         uint          `gorm:"primaryKey"`
	BookID     uint          `gorm:"index;not null;comment:图书ID"`
	CategoryID uint          `gorm:"index;not null;comment:分类ID"`
	Category   CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName 指定表名
func (BookCategoryModel) TableName() string {
	return "book_categories"
}
