// Package plantation records plantings and issues their certificates.
package plantation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/repository/mongodb"
)

const (
	certificatePrefix = "CERT-"
	qrPrefix          = "QR-"
)

// Service manages plants, locations, plantations and certificates.
type Service struct {
	repo    mongodb.PlantationRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires a new plantation service.
func NewService(repo mongodb.PlantationRepository, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return ulid.Make().String() },
	}
}

// ListPlants returns the plant catalog.
func (s *Service) ListPlants(ctx context.Context) ([]models.Plant, error) {
	plants, err := s.repo.ListPlants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	if plants == nil {
		plants = []models.Plant{}
	}
	return plants, nil
}

// AddPlant stores a new plant name.
func (s *Service) AddPlant(ctx context.Context, name string) (models.Plant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Plant{}, ErrMissingPlantName
	}

	now := s.now().UTC()
	plant := models.Plant{PlantName: name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.InsertPlant(ctx, &plant); err != nil {
		return models.Plant{}, fmt.Errorf("insert plant: %w", err)
	}
	return plant, nil
}

// ListLocations returns the location catalog.
func (s *Service) ListLocations(ctx context.Context) ([]models.Location, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	if locations == nil {
		locations = []models.Location{}
	}
	return locations, nil
}

// AddLocation stores a new location name.
func (s *Service) AddLocation(ctx context.Context, name string) (models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Location{}, ErrMissingLocationName
	}

	now := s.now().UTC()
	location := models.Location{LocationName: name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.InsertLocation(ctx, &location); err != nil {
		return models.Location{}, fmt.Errorf("insert location: %w", err)
	}
	return location, nil
}

// Submit records a plantation and issues its certificate. When the request
// carries no tree count the plant quantities are summed instead.
func (s *Service) Submit(ctx context.Context, req models.PlantationRequest) (models.PlantationReceipt, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return models.PlantationReceipt{}, ErrMissingUserID
	}

	now := s.now().UTC()
	plants := req.Plants
	if plants == nil {
		plants = []models.PlantQuantity{}
	}
	trees := req.TreesCount
	if trees <= 0 {
		trees = SumQuantities(plants)
	}
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.UTC()
	}

	plantation := models.Plantation{
		UserID:     userID,
		TreesCount: trees,
		Plants:     plants,
		Name:       strings.TrimSpace(req.Name),
		Date:       date,
		Message:    req.Message,
		Location:   strings.TrimSpace(req.Location),
		OccasionID: strings.TrimSpace(req.OccasionID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertPlantation(ctx, &plantation); err != nil {
		return models.PlantationReceipt{}, fmt.Errorf("insert plantation: %w", err)
	}

	certificateID := certificatePrefix + s.newID()
	certificate := models.Certificate{
		UserID:        userID,
		CertificateID: certificateID,
		QRCode:        qrPrefix + certificateID,
		PlantationID:  plantation.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.InsertCertificate(ctx, &certificate); err != nil {
		return models.PlantationReceipt{}, fmt.Errorf("insert certificate: %w", err)
	}

	s.metrics.IncCertificates()
	s.logger.Info("plantation submitted",
		zap.String("user_id", userID),
		zap.Float64("trees", trees),
		zap.String("certificate_id", certificateID),
	)

	return models.PlantationReceipt{
		Plantation: plantation,
		Certificate: models.CertificateRef{
			CertificateID: certificate.CertificateID,
			QRCode:        certificate.QRCode,
		},
	}, nil
}

// History lists a user's plantations, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]models.Plantation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUserID
	}

	plantations, err := s.repo.ListPlantations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plantations: %w", err)
	}
	if plantations == nil {
		plantations = []models.Plantation{}
	}
	return plantations, nil
}

// CertificateDetails finds a certificate by its identifier or, failing that,
// the latest one issued to userID.
func (s *Service) CertificateDetails(ctx context.Context, certificateID, userID string) (models.CertificateDetails, bool, error) {
	query := mongodb.CertificateQuery{
		CertificateID: strings.TrimSpace(certificateID),
		UserID:        strings.TrimSpace(userID),
	}
	if query.CertificateID != "" {
		query.UserID = ""
	} else if query.UserID == "" {
		return models.CertificateDetails{}, false, ErrMissingLookupKey
	}
	return s.lookupCertificate(ctx, query)
}

// DownloadCertificate finds a certificate by its identifier.
func (s *Service) DownloadCertificate(ctx context.Context, certificateID string) (models.CertificateDetails, bool, error) {
	certificateID = strings.TrimSpace(certificateID)
	if certificateID == "" {
		return models.CertificateDetails{}, false, ErrMissingCertificate
	}
	return s.lookupCertificate(ctx, mongodb.CertificateQuery{CertificateID: certificateID})
}

// VerifyCertificate finds the certificate a QR code belongs to.
func (s *Service) VerifyCertificate(ctx context.Context, qrCode string) (models.CertificateDetails, bool, error) {
	qrCode = strings.TrimSpace(qrCode)
	if qrCode == "" {
		return models.CertificateDetails{}, false, ErrMissingQRCode
	}
	return s.lookupCertificate(ctx, mongodb.CertificateQuery{QRCode: qrCode})
}

func (s *Service) lookupCertificate(ctx context.Context, query mongodb.CertificateQuery) (models.CertificateDetails, bool, error) {
	certificate, found, err := s.repo.FindCertificate(ctx, query)
	if err != nil {
		return models.CertificateDetails{}, false, fmt.Errorf("find certificate: %w", err)
	}
	if !found {
		return models.CertificateDetails{}, false, nil
	}

	details := models.CertificateDetails{Certificate: certificate}
	plantation, ok, err := s.repo.FindPlantation(ctx, certificate.PlantationID)
	if err != nil {
		return models.CertificateDetails{}, false, fmt.Errorf("find plantation: %w", err)
	}
	if ok {
		details.Plantation = &plantation
	} else {
		s.logger.Warn("certificate without plantation", zap.String("certificate_id", certificate.CertificateID))
	}
	return details, true, nil
}
