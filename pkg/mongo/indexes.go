package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Index 1: Product id is the catalog's primary key
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_product_id_unique"),
		},
	},
	// Index 2: Display order for the sorted catalog fetch
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "order", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_order"),
		},
	},
	// Index 3: Category and sub-category for filtering
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "sub_category", Value: 1},
			},
			Options: options.Index().SetName("idx_category_sub_category"),
		},
	},
	// Index 4: Text index for search on name and description
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_product_text_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "description", Value: 1},
				}),
		},
	},
}

// EnsureIndexes creates the catalog indexes. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	global.Logger.Debug("Starting index creation", zap.Int("indexes", len(requiredIndexes)))

	for _, idxConfig := range requiredIndexes {
		indexName, err := db.Collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			global.Logger.Error("Error creating index",
				zap.String("collection", idxConfig.CollectionName), zap.Error(err))
			return err
		}

		global.Logger.Debug("Created index",
			zap.String("index", indexName), zap.String("collection", idxConfig.CollectionName))
	}

	return nil
}
