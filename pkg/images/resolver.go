// Package images turns product image references into URLs the storefront can load.
package images

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

var ErrNoImage = errors.New("product has no image reference")

// Resolver maps a product's image reference to a loadable URL.
type Resolver interface {
	Resolve(ctx context.Context, ref, category string) (string, error)
}

type ResolverFunc func(ctx context.Context, ref, category string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, ref, category string) (string, error) {
	return f(ctx, ref, category)
}

// StaticResolver serves assets from one folder per category under BaseURL.
type StaticResolver struct {
	BaseURL string
}

// Folder returns the asset folder for a category. Unknown categories share
// the chat folder, matching how the shop laid out its assets.
func Folder(category string) string {
	switch category {
	case models.CategorySweets:
		return "sweets"
	case models.CategoryKaram:
		return "kaaram"
	default:
		return "chat"
	}
}

func (r StaticResolver) Resolve(ctx context.Context, ref, category string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// absolute references are already loadable
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	ref = strings.TrimLeft(ref, "/")
	if ref == "" {
		return "", ErrNoImage
	}
	return strings.TrimRight(r.BaseURL, "/") + "/" + Folder(category) + "/" + url.PathEscape(ref), nil
}

// Pool resolves images for many products at once with bounded concurrency.
type Pool struct {
	Resolver    Resolver
	Placeholder string
	Limit       int
	// OnFailure is called for every product whose image could not be resolved.
	OnFailure func(p models.Product, err error)
}

// Resolve returns the image URL for one product, or the placeholder.
func (p *Pool) Resolve(ctx context.Context, product models.Product) string {
	u, err := p.Resolver.Resolve(ctx, product.ImageRef, product.Category)
	if err != nil {
		global.Logger.Warn("Image resolution failed",
			zap.Int("product_id", product.ID), zap.String("ref", product.ImageRef), zap.Error(err))
		if p.OnFailure != nil {
			p.OnFailure(product, err)
		}
		return p.Placeholder
	}
	return u
}

// ResolveAll resolves every product's image independently and returns URLs
// keyed by product id. Failures become the placeholder and never abort the batch.
func (p *Pool) ResolveAll(ctx context.Context, products []models.Product) map[int]string {
	urls := make([]string, len(products))

	g, gctx := errgroup.WithContext(ctx)
	if p.Limit > 0 {
		g.SetLimit(p.Limit)
	}
	for i := range products {
		g.Go(func() error {
			urls[i] = p.Resolve(gctx, products[i])
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[int]string, len(products))
	for i, product := range products {
		out[product.ID] = urls[i]
	}
	return out
}
