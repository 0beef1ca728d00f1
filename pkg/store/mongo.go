package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// Mongo layout.
const (
	DefaultMongoDatabase = "tldrviz"
	MongoCollection      = "classifications"
	mongoLatestID        = "latest"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI      string
	Database string // defaults to DefaultMongoDatabase
	Timeout  time.Duration
}

type mongoDocument struct {
	ID                        string `bson:"_id"`
	model.ClassificationsData `bson:",inline"`
	UpdatedAt                 time.Time `bson:"updatedAt"`
}

// MongoStore keeps the result as a single document.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and checks the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "mongo store needs a URI (TLDRVIZ_MONGO_URI)")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	timeout := max(cfg.Timeout, time.Second)

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "connect to mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(MongoCollection),
	}, nil
}

func (s *MongoStore) Name() string { return BackendMongo }

func (s *MongoStore) Load(ctx context.Context) (*model.ClassificationsData, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": mongoLatestID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	if err := model.Validate(doc.ClassificationsData); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "stored classifications")
	}
	return &doc.ClassificationsData, nil
}

func (s *MongoStore) Save(ctx context.Context, data *model.ClassificationsData) error {
	doc := mongoDocument{ID: mongoLatestID, ClassificationsData: *data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": mongoLatestID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
