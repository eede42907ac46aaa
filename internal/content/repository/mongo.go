package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ng-portfolio/backend/internal/content"
)

// MongoStore keeps the single portfolio document in a collection under a fixed
// key. The key is threaded through the constructor so nothing downstream bakes
// in the singleton assumption.
type MongoStore struct {
	col *mongo.Collection
	key string
}

// persistedContent wraps the document for Mongo storage; the well-known key
// doubles as _id so Save is a plain upsert.
type persistedContent struct {
	Key  string                    `bson:"_id"`
	Data *content.PortfolioContent `bson:"data"`
}

func NewMongoStore(col *mongo.Collection, key string) *MongoStore {
	return &MongoStore{col: col, key: key}
}

func (s *MongoStore) Load() (*content.PortfolioContent, error) {
	var pc persistedContent
	err := s.col.FindOne(context.Background(), bson.M{"_id": s.key}).Decode(&pc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return content.Defaults(), nil
		}
		return nil, fmt.Errorf("load portfolio data: %w", err)
	}
	if pc.Data == nil {
		return content.Defaults(), nil
	}
	return pc.Data, nil
}

func (s *MongoStore) Save(doc *content.PortfolioContent) error {
	opts := options.Update().SetUpsert(true)
	rec := bson.M{"$set": bson.M{"data": doc}}
	if _, err := s.col.UpdateOne(context.Background(), bson.M{"_id": s.key}, rec, opts); err != nil {
		return fmt.Errorf("save portfolio data: %w", err)
	}
	return nil
}

func (s *MongoStore) Reset() (*content.PortfolioContent, error) {
	doc := content.Defaults()
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
