package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/service/plantation"
)

// PlantationService is the plantation behaviour the HTTP layer relies on.
type PlantationService interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	AddPlant(ctx context.Context, name string) (models.Plant, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	AddLocation(ctx context.Context, name string) (models.Location, error)
	Submit(ctx context.Context, req models.PlantationRequest) (models.PlantationReceipt, error)
	History(ctx context.Context, userID string) ([]models.Plantation, error)
	CertificateDetails(ctx context.Context, certificateID, userID string) (models.CertificateDetails, bool, error)
	DownloadCertificate(ctx context.Context, certificateID string) (models.CertificateDetails, bool, error)
	VerifyCertificate(ctx context.Context, qrCode string) (models.CertificateDetails, bool, error)
}

// PlantationHandler serves plants, locations, plantations and certificates.
type PlantationHandler struct {
	svc    PlantationService
	logger *zap.Logger
}

// NewPlantationHandler constructs the HTTP handler adapter.
func NewPlantationHandler(svc PlantationService, logger *zap.Logger) *PlantationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlantationHandler{svc: svc, logger: logger}
}

// ListPlants serves the plant catalog.
func (h *PlantationHandler) ListPlants(c *gin.Context) {
	plants, err := h.svc.ListPlants(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, "list plants", err)
		return
	}
	respondOK(c, "Plant list fetched", plants)
}

// AddPlant stores a plant name.
func (h *PlantationHandler) AddPlant(c *gin.Context) {
	payload, err := decodePayload(c)
	if err != nil {
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	plant, err := h.svc.AddPlant(c.Request.Context(), stringField(payload, "plant_name"))
	if h.handleError(c, "add plant", err) {
		return
	}
	respondOK(c, "Plant added successfully", plant)
}

// ListLocations serves the location catalog.
func (h *PlantationHandler) ListLocations(c *gin.Context) {
	locations, err := h.svc.ListLocations(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, "list locations", err)
		return
	}
	respondOK(c, "Location list fetched", locations)
}

// AddLocation stores a location name.
func (h *PlantationHandler) AddLocation(c *gin.Context) {
	payload, err := decodePayload(c)
	if err != nil {
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	location, err := h.svc.AddLocation(c.Request.Context(), stringField(payload, "location_name"))
	if h.handleError(c, "add location", err) {
		return
	}
	respondOK(c, "Location added successfully", location)
}

// Submit records a plantation and returns its certificate.
func (h *PlantationHandler) Submit(c *gin.Context) {
	payload, err := decodePayload(c)
	if err != nil {
		h.logger.Warn("invalid plantation payload", zap.Error(err))
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	userID := stringField(payload, carbon.KeyUserID)
	if userID == "" {
		respondBadRequest(c, plantation.ErrMissingUserID.Error())
		return
	}

	plants, err := plantation.DecodePlants(payload["plants"])
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	date, err := dateField(payload, "date")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.svc.Submit(c.Request.Context(), models.PlantationRequest{
		UserID:     userID,
		TreesCount: carbon.ToNumber(payload["trees_count"]),
		Plants:     plants,
		Name:       stringField(payload, "name"),
		Date:       date,
		Message:    stringField(payload, "message"),
		Location:   stringField(payload, "location"),
		OccasionID: stringField(payload, "occasion_id"),
	})
	if h.handleError(c, "submit plantation", err) {
		return
	}
	respondOK(c, "Plantation submitted successfully", receipt)
}

// History lists the plantations of the user_id given in the query or body.
func (h *PlantationHandler) History(c *gin.Context) {
	userID, err := lookupParam(c, carbon.KeyUserID)
	if err != nil {
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	plantations, err := h.svc.History(c.Request.Context(), userID)
	if h.handleError(c, "plantation history", err) {
		return
	}
	respondOK(c, "Plantation history fetched", plantations)
}

// CertificateDetails finds a certificate by certificate_id, or the latest for user_id.
func (h *PlantationHandler) CertificateDetails(c *gin.Context) {
	details, found, err := h.svc.CertificateDetails(c.Request.Context(), c.Query("certificate_id"), c.Query(carbon.KeyUserID))
	h.respondCertificate(c, "certificate details", details, found, err, "Certificate not found", "Certificate details fetched")
}

// DownloadCertificate returns the certificate data for rendering.
func (h *PlantationHandler) DownloadCertificate(c *gin.Context) {
	details, found, err := h.svc.DownloadCertificate(c.Request.Context(), c.Query("certificate_id"))
	h.respondCertificate(c, "download certificate", details, found, err, "Certificate not found", "Certificate data")
}

// VerifyCertificate resolves a scanned QR code.
func (h *PlantationHandler) VerifyCertificate(c *gin.Context) {
	details, found, err := h.svc.VerifyCertificate(c.Request.Context(), c.Query("qr_code"))
	h.respondCertificate(c, "verify certificate", details, found, err, "Invalid QR code", "Certificate verified")
}

func (h *PlantationHandler) respondCertificate(c *gin.Context, op string, details models.CertificateDetails, found bool, err error, missing, ok string) {
	if h.handleError(c, op, err) {
		return
	}
	if !found {
		respondNotFound(c, missing)
		return
	}
	respondOK(c, ok, details)
}

// handleError writes the response for err and reports whether it did.
func (h *PlantationHandler) handleError(c *gin.Context, op string, err error) bool {
	switch {
	case err == nil:
		return false
	case plantation.IsValidation(err):
		respondBadRequest(c, err.Error())
	default:
		respondServerError(c, h.logger, op, err)
	}
	return true
}
