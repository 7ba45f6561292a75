package memory

import (
	"context"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	domainRepo "github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type articleRepository struct {
	l *ledger
}

func findArticle(st *state, id string) *entity.Article {
	for _, a := range st.articles {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	r.l.write(func(st *state) {
		if article.ID == "" {
			article.ID = newID()
		}
		now := r.l.now()
		article.CreatedAt = now
		article.UpdatedAt = now
		st.articles = append(st.articles, article.Clone())
	})
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	var found *entity.Article
	r.l.read(func(st *state) {
		if a := findArticle(st, id); a != nil {
			found = a.Clone()
		}
	})
	return found, nil
}

func (r *articleRepository) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	var found *entity.Article
	r.l.read(func(st *state) {
		for _, a := range st.articles {
			if strings.EqualFold(a.Code1, code) {
				found = a.Clone()
				return
			}
		}
	})
	return found, nil
}

func (r *articleRepository) Save(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	var saved *entity.Article
	r.l.write(func(st *state) {
		for i, a := range st.articles {
			if a.ID != article.ID {
				continue
			}
			next := article.Clone()
			next.CreatedAt = a.CreatedAt
			next.UpdatedAt = r.l.now()
			st.articles[i] = next
			saved = next.Clone()
			return
		}
	})
	return saved, nil
}

func (r *articleRepository) Update(ctx context.Context, id string, patch *entity.ArticlePatch) (*entity.Article, error) {
	var updated *entity.Article
	r.l.write(func(st *state) {
		a := findArticle(st, id)
		if a == nil {
			return
		}
		patch.Apply(a)
		a.UpdatedAt = r.l.now()
		updated = a.Clone()
	})
	return updated, nil
}

func (r *articleRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	deleted := true
	updated, err := r.Update(ctx, id, &entity.ArticlePatch{Deleted: &deleted})
	return updated != nil, err
}

func (r *articleRepository) List(ctx context.Context, params *domainRepo.ArticleFilterParams) ([]entity.Article, error) {
	filter := enum.ArticleFilterActive
	search := ""
	if params != nil {
		if params.Filter != "" {
			filter = params.Filter
		}
		search = strings.TrimSpace(params.Search)
	}

	var articles []entity.Article
	r.l.read(func(st *state) {
		for _, a := range st.articles {
			switch filter {
			case enum.ArticleFilterActive:
				if !a.IsSelectable() {
					continue
				}
			case enum.ArticleFilterDeleted:
				if !a.Deleted {
					continue
				}
			}
			if search != "" && !containsFold(a.Name, search) {
				continue
			}
			articles = append(articles, *a.Clone())
		}
	})
	return articles, nil
}

func (r *articleRepository) Search(ctx context.Context, query string, limit int) ([]entity.Article, error) {
	query = strings.TrimSpace(query)
	var articles []entity.Article
	r.l.read(func(st *state) {
		for _, a := range st.articles {
			if !a.IsSelectable() {
				continue
			}
			if query != "" && !containsFold(a.Code1, query) && !containsFold(a.Name, query) &&
				(a.Code2 == nil || !containsFold(*a.Code2, query)) {
				continue
			}
			articles = append(articles, *a.Clone())
			if limit > 0 && len(articles) == limit {
				return
			}
		}
	})
	return articles, nil
}

func (r *articleRepository) GetLowStock(ctx context.Context) ([]entity.Article, error) {
	var articles []entity.Article
	r.l.read(func(st *state) {
		for _, a := range st.articles {
			if !a.Deleted && a.IsLowStock() {
				articles = append(articles, *a.Clone())
			}
		}
	})
	return articles, nil
}

func (r *articleRepository) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		a := findArticle(st, id)
		if a == nil {
			return
		}
		found = true
		stock := a.CurrentStock.Add(delta)
		if stock.IsNegative() {
			stock = decimal.Zero
		}
		a.CurrentStock = stock
		a.UpdatedAt = r.l.now()
	})
	return found, nil
}

func (r *articleRepository) SetCost(ctx context.Context, id string, cost decimal.Decimal) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		a := findArticle(st, id)
		if a == nil {
			return
		}
		found = true
		a.Cost = cost
		a.UpdatedAt = r.l.now()
	})
	return found, nil
}

func (r *articleRepository) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	r.l.read(func(st *state) {
		codes = make([]string, 0, len(st.articles))
		for _, a := range st.articles {
			codes = append(codes, a.Code1)
		}
	})
	return codes, nil
}
