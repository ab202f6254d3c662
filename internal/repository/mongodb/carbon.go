package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/geotree/internal/domain/models"
)

// CarbonRepository persists footprint submissions and the survey selector catalogs.
type CarbonRepository interface {
	SaveCarbonResult(ctx context.Context, result *models.CarbonResult) error
	LatestCarbonResult(ctx context.Context, userID string) (models.CarbonResult, bool, error)
	ListCarbonTypes(ctx context.Context, kind models.CarbonTypeKind) ([]models.CarbonType, error)
	InsertCarbonType(ctx context.Context, kind models.CarbonTypeKind, item *models.CarbonType) error
}

var _ CarbonRepository = (*Store)(nil)

// SaveCarbonResult inserts a submission and sets its ID.
func (s *Store) SaveCarbonResult(ctx context.Context, result *models.CarbonResult) error {
	id, err := insertOne(ctx, s.collection(carbonCollection), result)
	if err != nil {
		return err
	}
	result.ID = objectID(id)
	return nil
}

// LatestCarbonResult returns the newest submission of a user. The boolean is
// false when the user never submitted.
func (s *Store) LatestCarbonResult(ctx context.Context, userID string) (models.CarbonResult, bool, error) {
	var result models.CarbonResult
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	found, err := findOne(ctx, s.collection(carbonCollection), bson.M{"user_id": userID}, &result, opts)
	if err != nil {
		return models.CarbonResult{}, false, err
	}
	return result, found, nil
}

// ListCarbonTypes returns one selector catalog sorted by name.
func (s *Store) ListCarbonTypes(ctx context.Context, kind models.CarbonTypeKind) ([]models.CarbonType, error) {
	coll, err := s.carbonTypeCollection(kind)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.CarbonType](ctx, s.collection(coll), bson.M{}, opts)
}

// InsertCarbonType adds an entry to a selector catalog. Names are unique per
// catalog; a clash returns ErrDuplicate.
func (s *Store) InsertCarbonType(ctx context.Context, kind models.CarbonTypeKind, item *models.CarbonType) error {
	coll, err := s.carbonTypeCollection(kind)
	if err != nil {
		return err
	}
	id, err := insertOne(ctx, s.collection(coll), item)
	if err != nil {
		return err
	}
	item.ID = objectID(id)
	return nil
}

func (s *Store) carbonTypeCollection(kind models.CarbonTypeKind) (string, error) {
	coll, ok := carbonTypeCollections[kind]
	if !ok {
		return "", fmt.Errorf("unknown carbon type kind %q", kind)
	}
	return coll, nil
}
