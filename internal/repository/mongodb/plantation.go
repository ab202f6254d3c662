package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/geotree/internal/domain/models"
)

// CertificateQuery selects a certificate. The first non-empty field wins, in
// field order; UserID matches the user's newest certificate.
type CertificateQuery struct {
	CertificateID string
	QRCode        string
	UserID        string
}

// PlantationRepository persists the plantation catalog, plantations and certificates.
type PlantationRepository interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	InsertPlant(ctx context.Context, plant *models.Plant) error
	ListLocations(ctx context.Context) ([]models.Location, error)
	InsertLocation(ctx context.Context, location *models.Location) error
	InsertPlantation(ctx context.Context, plantation *models.Plantation) error
	FindPlantation(ctx context.Context, id primitive.ObjectID) (models.Plantation, bool, error)
	ListPlantations(ctx context.Context, userID string) ([]models.Plantation, error)
	InsertCertificate(ctx context.Context, certificate *models.Certificate) error
	FindCertificate(ctx context.Context, query CertificateQuery) (models.Certificate, bool, error)
}

var _ PlantationRepository = (*Store)(nil)

// ListPlants returns plants sorted by name.
func (s *Store) ListPlants(ctx context.Context) ([]models.Plant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "plant_name", Value: 1}})
	return findAll[models.Plant](ctx, s.collection(plantCollection), bson.M{}, opts)
}

// InsertPlant adds a plant and sets its ID.
func (s *Store) InsertPlant(ctx context.Context, plant *models.Plant) error {
	id, err := insertOne(ctx, s.collection(plantCollection), plant)
	if err != nil {
		return err
	}
	plant.ID = objectID(id)
	return nil
}

// ListLocations returns locations sorted by name.
func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	opts := options.Find().SetSort(bson.D{{Key: "location_name", Value: 1}})
	return findAll[models.Location](ctx, s.collection(locationCollection), bson.M{}, opts)
}

// InsertLocation adds a location and sets its ID.
func (s *Store) InsertLocation(ctx context.Context, location *models.Location) error {
	id, err := insertOne(ctx, s.collection(locationCollection), location)
	if err != nil {
		return err
	}
	location.ID = objectID(id)
	return nil
}

// InsertPlantation stores a plantation and sets its ID.
func (s *Store) InsertPlantation(ctx context.Context, plantation *models.Plantation) error {
	id, err := insertOne(ctx, s.collection(plantationCollection), plantation)
	if err != nil {
		return err
	}
	plantation.ID = objectID(id)
	return nil
}

// FindPlantation loads a plantation by ID.
func (s *Store) FindPlantation(ctx context.Context, id primitive.ObjectID) (models.Plantation, bool, error) {
	var plantation models.Plantation
	found, err := findOne(ctx, s.collection(plantationCollection), bson.M{"_id": id}, &plantation)
	return plantation, found, err
}

// ListPlantations returns a user's plantations, newest first.
func (s *Store) ListPlantations(ctx context.Context, userID string) ([]models.Plantation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Plantation](ctx, s.collection(plantationCollection), bson.M{"user_id": userID}, opts)
}

// InsertCertificate stores a certificate. Certificate IDs are unique.
func (s *Store) InsertCertificate(ctx context.Context, certificate *models.Certificate) error {
	id, err := insertOne(ctx, s.collection(certificateCollection), certificate)
	if err != nil {
		return err
	}
	certificate.ID = objectID(id)
	return nil
}

// FindCertificate resolves a CertificateQuery.
func (s *Store) FindCertificate(ctx context.Context, query CertificateQuery) (models.Certificate, bool, error) {
	var (
		certificate models.Certificate
		filter      bson.M
		opts        = options.FindOne()
	)

	switch {
	case query.CertificateID != "":
		filter = bson.M{"certificate_id": query.CertificateID}
	case query.QRCode != "":
		filter = bson.M{"qr_code": query.QRCode}
	case query.UserID != "":
		filter = bson.M{"user_id": query.UserID}
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	default:
		return models.Certificate{}, false, nil
	}

	found, err := findOne(ctx, s.collection(certificateCollection), filter, &certificate, opts)
	return certificate, found, err
}

func objectID(id any) primitive.ObjectID {
	oid, _ := id.(primitive.ObjectID)
	return oid
}
