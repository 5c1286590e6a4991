package organization

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the MongoDB collection used by MongoStorage.
const CollectionName = "organizations"

// MongoStorage stores organizations in a MongoDB collection with a unique
// index on key.
type MongoStorage struct {
	coll *mongo.Collection
}

type mongoOrganization struct {
	ID        string    `bson:"_id"`
	Key       string    `bson:"key"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewMongoStorage ensures the unique key index exists.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	coll := db.Collection(CollectionName)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("organizations_key_unique"),
	})
	if err != nil {
		return nil, errors.Join(ErrCreateFailed, err)
	}
	return &MongoStorage{coll: coll}, nil
}

func (s *MongoStorage) GetByKey(ctx context.Context, key string) (*Organization, error) {
	var doc mongoOrganization
	if err := s.coll.FindOne(ctx, bson.D{{Key: "key", Value: key}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrLookupFailed, err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	return &Organization{ID: id, Key: doc.Key, Name: doc.Name, CreatedAt: doc.CreatedAt}, nil
}

func (s *MongoStorage) Create(ctx context.Context, org *Organization) error {
	_, err := s.coll.InsertOne(ctx, mongoOrganization{
		ID:        org.ID.String(),
		Key:       org.Key,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrKeyTaken
		}
		return errors.Join(ErrCreateFailed, err)
	}
	return nil
}
