package book

import (
	"context"
	"strings"
)

// MaxSearchResults 单个外部数据源的搜索结果上限
// 本地搜索不设上限，返回全部命中的图书
const MaxSearchResults = 20

// Service 图书领域服务接口
// 设计说明：
// 1. 封装查询规则和入库前的业务校验
// 2. 跨多个仓储调用的事务编排在应用层完成
type Service interface {
	// SearchLocal 本地搜索，返回全部命中结果，空关键词直接返回空列表
	SearchLocal(ctx context.Context, term string) ([]*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// PrepareMaterialization 校验外部记录并构建待入库的图书实体
	// 返回规范化后的作者名和分类名（保留原始顺序和重复项，跳过空名字）
	PrepareMaterialization(rec *ExternalBookRecord) (*Book, []string, []string, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SearchLocal(ctx context.Context, term string) ([]*Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*Book{}, nil
	}
	return s.repo.Search(ctx, term, 0)
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	if id == 0 {
		return nil, ErrBookNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// PrepareMaterialization 业务规则：
// 1. 书名是必填列，外部记录没有书名时视为找不到该图书，不写入任何数据
// 2. 同一条记录里重复的作者名保留，每次出现各建一条关联
func (s *service) PrepareMaterialization(rec *ExternalBookRecord) (*Book, []string, []string, error) {
	if rec == nil {
		return nil, nil, nil, ErrBookNotFound
	}

	b := NewBookFromExternal(rec)
	if b.Title == "" {
		return nil, nil, nil, ErrBookNotFound
	}

	return b, normalizeNames(rec.Authors), normalizeNames(rec.Categories), nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = NormalizeName(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
