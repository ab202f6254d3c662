package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/domain/models"
)

const disconnectTimeout = 5 * time.Second

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("document already exists")

const (
	carbonCollection          = "carbons"
	plantCollection           = "plants"
	locationCollection        = "locations"
	plantationCollection      = "plantations"
	certificateCollection     = "certificates"
	dailyReportCollection     = "daily_reports"
	homeTypeCollection        = "hometypes"
	transportTypeCollection   = "transporttypes"
	electricityTypeCollection = "electricitytypes"
	foodTypeCollection        = "foodtypes"
)

var carbonTypeCollections = map[models.CarbonTypeKind]string{
	models.CarbonTypeHome:        homeTypeCollection,
	models.CarbonTypeTransport:   transportTypeCollection,
	models.CarbonTypeElectricity: electricityTypeCollection,
	models.CarbonTypeFood:        foodTypeCollection,
}

// Store is the MongoDB-backed implementation of every repository in this package.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		// ctx may already be done; the disconnect gets its own deadline.
		disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if derr := client.Disconnect(disconnectCtx); derr != nil {
			logger.Warn("disconnect after failed ping", zap.Error(derr))
		}
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// EnsureIndexes creates the indexes queries and uniqueness rules rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	userByDate := mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "createdAt", Value: -1}}}

	indexes := map[string][]mongo.IndexModel{
		carbonCollection:     {userByDate, {Keys: bson.D{{Key: "createdAt", Value: 1}}}},
		plantationCollection: {userByDate, {Keys: bson.D{{Key: "createdAt", Value: 1}}}},
		certificateCollection: {
			userByDate,
			{Keys: bson.D{{Key: "certificate_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "qr_code", Value: 1}}},
		},
	}
	for _, coll := range carbonTypeCollections {
		indexes[coll] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		}
	}

	for coll, specs := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		s.logger.Debug("indexes ensured", zap.String("collection", coll), zap.Int("count", len(specs)))
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) (any, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return res.InsertedID, nil
}

// findOne decodes the first match into out and reports whether one existed.
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any, opts ...*options.FindOneOptions) (bool, error) {
	err := coll.FindOne(ctx, filter, opts...).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to find in %s: %w", coll.Name(), err)
	}
	return true, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}
