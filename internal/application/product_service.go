package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
	"github.com/secondchance/marketplace/pkg/helpers"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("forbidden")
)

// ProductService owns listings: persistence, image storage, the search
// index, and the aggregated storefront sections.
type ProductService struct {
	Repo        repository.ProductRepository
	History     repository.SearchHistoryRepository
	GCS         *storage.Client
	GCSBucket   string
	Redis       *redis.Client
	ES          *elasticsearch.Client
	ESIndex     string
	Logger      *logrus.Logger
	HomepageTTL time.Duration
}

type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	SellerID    string
	SellerPhone string

	// Image upload; optional.
	Image       io.Reader
	ImageName   string
	ContentType string
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		SellerID:    in.SellerID,
		SellerPhone: in.SellerPhone,
	}

	if in.Image != nil {
		url, err := s.uploadImage(ctx, in.SellerID, in.Image, in.ImageName, in.ContentType)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Index failures are logged, never fatal; Postgres stays authoritative.
	_ = s.indexProduct(ctx, p)
	s.invalidateHomepage(ctx)
	return p, nil
}

func (s *ProductService) uploadImage(ctx context.Context, sellerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", sellerID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	return s.Repo.List(ctx, repository.ProductFilter{})
}

// Delete removes a listing. Only the seller or an admin may delete.
func (s *ProductService) Delete(ctx context.Context, id string, actor *entity.User) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if p.SellerID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteFromIndex(ctx, id)
	s.invalidateHomepage(ctx)
	return nil
}

// HomepageSections groups listings by storefront section. Cached in Redis
// for a short window since every visitor hits it.
type HomepageSections struct {
	AddedRecently []*entity.Product            `json:"addedRecently"`
	Sections      map[string][]*entity.Product `json:"sections"`
}

func (s *ProductService) Homepage(ctx context.Context) (*HomepageSections, error) {
	if s.Redis != nil {
		var cached HomepageSections
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, helpers.KeyHomepageSections(), &cached); ok {
			return &cached, nil
		}
	}

	out := &HomepageSections{Sections: make(map[string][]*entity.Product, len(entity.Categories))}
	recent, err := s.Repo.ListRecent(ctx, 20)
	if err != nil {
		return nil, err
	}
	out.AddedRecently = recent

	for _, cat := range entity.Categories {
		ps, err := s.Repo.ListByCategory(ctx, cat)
		if err != nil {
			return nil, err
		}
		out.Sections[cat] = ps
	}

	if s.Redis != nil {
		ttl := s.HomepageTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := helpers.RedisSetJSON(ctx, s.Redis, helpers.KeyHomepageSections(), out, ttl); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("homepage cache write failed")
		}
	}
	return out, nil
}

func (s *ProductService) invalidateHomepage(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.KeyHomepageSections()); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("homepage cache invalidation failed")
	}
}

// SearchInput mirrors the storefront search form.
type SearchInput struct {
	Query        string
	Category     string
	PriceMin     float64
	PriceMax     float64
	Alphabetical bool
	Page         int
	Limit        int
}

type SearchResult struct {
	Products    []*entity.Product `json:"products"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// Search runs the product query against Elasticsearch and bumps the search
// counters feeding the popular-products section. Without a configured
// search cluster it degrades to a plain store listing with filters.
func (s *ProductService) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}

	if s.ES == nil || s.ESIndex == "" || in.Query == "" {
		products, err := s.Repo.List(ctx, repository.ProductFilter{
			Category:     in.Category,
			PriceMin:     in.PriceMin,
			PriceMax:     in.PriceMax,
			Alphabetical: in.Alphabetical,
			Limit:        in.Limit,
			Offset:       (in.Page - 1) * in.Limit,
		})
		if err != nil {
			return nil, err
		}
		s.bumpHistory(ctx, products)
		return &SearchResult{Products: products, TotalPages: in.Page, CurrentPage: in.Page}, nil
	}

	ids, total, err := s.searchIndex(ctx, in)
	if err != nil {
		return nil, err
	}
	products, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.bumpHistory(ctx, products)

	pages := int((total + int64(in.Limit) - 1) / int64(in.Limit))
	if pages < 1 {
		pages = 1
	}
	return &SearchResult{Products: products, TotalPages: pages, CurrentPage: in.Page}, nil
}

func (s *ProductService) bumpHistory(ctx context.Context, products []*entity.Product) {
	if s.History == nil {
		return
	}
	for _, p := range products {
		if err := s.History.Bump(ctx, p.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("search history bump failed")
		}
	}
}

func (s *ProductService) searchIndex(ctx context.Context, in SearchInput) ([]string, int64, error) {
	must := []map[string]any{{
		"multi_match": map[string]any{
			"query":  in.Query,
			"fields": []string{"name^2", "description", "category"},
		},
	}}
	var filter []map[string]any
	if in.Category != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"category": in.Category}})
	}
	if in.PriceMin > 0 || in.PriceMax > 0 {
		rng := map[string]any{}
		if in.PriceMin > 0 {
			rng["gte"] = in.PriceMin
		}
		if in.PriceMax > 0 {
			rng["lte"] = in.PriceMax
		}
		filter = append(filter, map[string]any{"range": map[string]any{"price": rng}})
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"must": must, "filter": filter},
		},
		"from":    (in.Page - 1) * in.Limit,
		"size":    in.Limit,
		"_source": false,
	}
	if in.Alphabetical {
		query["sort"] = []map[string]any{
			{"name.keyword": map[string]any{"order": "asc"}},
			{"created_at": map[string]any{"order": "desc"}},
		}
	}

	b, _ := json.Marshal(query)
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
		s.ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}

// Suggest returns up to five quick matches for the search-as-you-type box.
func (s *ProductService) Suggest(ctx context.Context, q string) ([]*entity.Product, error) {
	if q == "" || s.ES == nil || s.ESIndex == "" {
		return []*entity.Product{}, nil
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"type":   "phrase_prefix",
				"fields": []string{"name^2", "description", "category"},
			},
		},
		"size":    5,
		"_source": false,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return s.Repo.ListByIDs(ctx, ids)
}

// Popular returns the most-searched products, falling back to the most
// recent listings when there is no history yet.
func (s *ProductService) Popular(ctx context.Context) ([]*entity.Product, error) {
	if s.History != nil {
		ids, err := s.History.TopProductIDs(ctx, 5)
		if err == nil && len(ids) > 0 {
			products, err := s.Repo.ListByIDs(ctx, ids)
			if err == nil && len(products) > 0 {
				return products, nil
			}
		}
	}
	return s.Repo.ListRecent(ctx, 5)
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"category":     p.Category,
		"price":        p.Price,
		"image_url":    p.ImageURL,
		"seller_id":    p.SellerID,
		"seller_phone": p.SellerPhone,
		"created_at":   p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *ProductService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
