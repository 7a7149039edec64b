package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/internal/domain/entity"
)

func seedProducts(t *testing.T, repo *memProductRepo, names ...string) []*entity.Product {
	t.Helper()
	out := make([]*entity.Product, 0, len(names))
	for _, name := range names {
		p := &entity.Product{Name: name, Category: "Kitchen", Price: 10, SellerID: "seller-1", SellerPhone: "+100"}
		require.NoError(t, repo.Create(context.Background(), p))
		out = append(out, p)
	}
	return out
}

func TestProductSearchFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("no search cluster degrades to store listing", func(t *testing.T) {
		repo := newMemProductRepo()
		history := newMemHistoryRepo()
		svc := &application.ProductService{Repo: repo, History: history}
		seedProducts(t, repo, "Mixer", "Kettle")

		res, err := svc.Search(ctx, application.SearchInput{Query: "mixer", Category: "Kitchen"})
		require.NoError(t, err)
		assert.Len(t, res.Products, 2)
		assert.Equal(t, 1, res.CurrentPage)
	})

	t.Run("results bump the popularity counters", func(t *testing.T) {
		repo := newMemProductRepo()
		history := newMemHistoryRepo()
		svc := &application.ProductService{Repo: repo, History: history}
		ps := seedProducts(t, repo, "Mixer")

		_, err := svc.Search(ctx, application.SearchInput{Query: "mixer"})
		require.NoError(t, err)

		top, err := history.TopProductIDs(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{ps[0].ID}, top)
	})
}

func TestPopularProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("ranked by search count", func(t *testing.T) {
		repo := newMemProductRepo()
		history := newMemHistoryRepo()
		svc := &application.ProductService{Repo: repo, History: history}
		ps := seedProducts(t, repo, "A", "B")

		require.NoError(t, history.Bump(ctx, ps[1].ID))
		require.NoError(t, history.Bump(ctx, ps[1].ID))
		require.NoError(t, history.Bump(ctx, ps[0].ID))

		popular, err := svc.Popular(ctx)
		require.NoError(t, err)
		require.Len(t, popular, 2)
		assert.Equal(t, ps[1].ID, popular[0].ID)
	})

	t.Run("falls back to recent listings without history", func(t *testing.T) {
		repo := newMemProductRepo()
		svc := &application.ProductService{Repo: repo, History: newMemHistoryRepo()}
		seedProducts(t, repo, "A", "B", "C")

		popular, err := svc.Popular(ctx)
		require.NoError(t, err)
		assert.Len(t, popular, 3)
	})
}

func TestProductDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("seller may delete own listing", func(t *testing.T) {
		repo := newMemProductRepo()
		svc := &application.ProductService{Repo: repo}
		ps := seedProducts(t, repo, "Mixer")

		actor := &entity.User{ID: "seller-1", Role: entity.RoleUser}
		require.NoError(t, svc.Delete(ctx, ps[0].ID, actor))
	})

	t.Run("admin may delete any listing", func(t *testing.T) {
		repo := newMemProductRepo()
		svc := &application.ProductService{Repo: repo}
		ps := seedProducts(t, repo, "Mixer")

		actor := &entity.User{ID: "someone-else", Role: entity.RoleAdmin}
		require.NoError(t, svc.Delete(ctx, ps[0].ID, actor))
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		repo := newMemProductRepo()
		svc := &application.ProductService{Repo: repo}
		ps := seedProducts(t, repo, "Mixer")

		actor := &entity.User{ID: "someone-else", Role: entity.RoleUser}
		err := svc.Delete(ctx, ps[0].ID, actor)
		assert.ErrorIs(t, err, application.ErrForbidden)
	})

	t.Run("missing listing", func(t *testing.T) {
		svc := &application.ProductService{Repo: newMemProductRepo()}
		err := svc.Delete(ctx, "missing", &entity.User{ID: "x", Role: entity.RoleAdmin})
		assert.ErrorIs(t, err, application.ErrProductNotFound)
	})
}

func TestHomepageWithoutCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemProductRepo()
	svc := &application.ProductService{Repo: repo}
	seedProducts(t, repo, "Mixer", "Kettle")

	sections, err := svc.Homepage(ctx)
	require.NoError(t, err)
	assert.Len(t, sections.AddedRecently, 2)
	assert.Len(t, sections.Sections["Kitchen"], 2)
	assert.Empty(t, sections.Sections["Phones"])
}
