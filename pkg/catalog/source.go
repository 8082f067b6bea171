package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// Source fetches the raw product records that make up the catalog.
type Source interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]models.Product, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]models.Product, error) { return f(ctx) }

// Load fetches and validates the catalog. Every failure, whether the source
// is unreachable or returns malformed records, is reported as ErrDataUnavailable.
func Load(ctx context.Context, source Source) (*Catalog, error) {
	products, err := source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: source returned no products", ErrDataUnavailable)
	}

	c, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	global.Logger.Debug("Catalog loaded", zap.Int("products", c.Len()))
	return c, nil
}

// FileSource reads the catalog from a JSON or YAML file, picked by extension.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		var products []models.Product
		if err := yaml.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
		return products, nil
	default:
		return decodeProducts(data)
	}
}

// HTTPSource fetches the catalog from a read endpoint returning either a bare
// JSON array of products or the API envelope with the array under "data".
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]models.Product, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}
	return decodeProducts(body)
}

func decodeProducts(data []byte) ([]models.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []models.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
		return products, nil
	}

	var envelope struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse catalog json: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("catalog json has no product list")
	}
	return envelope.Data, nil
}
