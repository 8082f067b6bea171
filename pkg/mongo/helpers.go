package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// ProductSource reads the catalog from a products collection in display order.
type ProductSource struct {
	Collection *mongo.Collection
}

func findProductsOptions() *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "id", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}})
}

func (s ProductSource) Fetch(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.Collection.Find(ctx, bson.D{}, findProductsOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// SeedProducts fills an empty products collection. A collection that already
// holds documents is left alone so edits made in the database survive restarts.
func SeedProducts(ctx context.Context, collection *mongo.Collection, products []models.Product) (int, error) {
	count, err := collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}

	global.Logger.Info("Seeded products collection", zap.Int("products", len(result.InsertedIDs)))
	return len(result.InsertedIDs), nil
}
