package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/service/footprint"
)

// CarbonService is the footprint behaviour the HTTP layer relies on.
type CarbonService interface {
	Submit(ctx context.Context, payload map[string]any) (models.CarbonResult, error)
	LatestResult(ctx context.Context, userID string) (models.CarbonResult, bool, error)
	ListTypes(ctx context.Context, kind models.CarbonTypeKind) ([]models.CarbonType, error)
	ListAllTypes(ctx context.Context) (models.CarbonTypeLists, error)
	AddAllTypes(ctx context.Context, req models.BulkCarbonTypesRequest) (models.BulkCarbonTypesResult, error)
	Species() footprint.SpeciesOverview
}

// CarbonHandler serves the footprint survey endpoints.
type CarbonHandler struct {
	svc    CarbonService
	logger *zap.Logger
}

// NewCarbonHandler constructs the HTTP handler adapter.
func NewCarbonHandler(svc CarbonService, logger *zap.Logger) *CarbonHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CarbonHandler{svc: svc, logger: logger}
}

var typeListMessages = map[models.CarbonTypeKind]string{
	models.CarbonTypeHome:        "Home type list fetched",
	models.CarbonTypeTransport:   "Transport type list fetched",
	models.CarbonTypeElectricity: "Electricity list fetched",
	models.CarbonTypeFood:        "Food type list fetched",
}

// ListTypes returns a handler serving one selector catalog.
func (h *CarbonHandler) ListTypes(kind models.CarbonTypeKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.svc.ListTypes(c.Request.Context(), kind)
		if err != nil {
			respondServerError(c, h.logger, "list "+string(kind), err)
			return
		}
		respondOK(c, typeListMessages[kind], items)
	}
}

// ListAllTypes serves the four catalogs in one response.
func (h *CarbonHandler) ListAllTypes(c *gin.Context) {
	lists, err := h.svc.ListAllTypes(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, "list carbon types", err)
		return
	}
	respondOK(c, "Carbon type lists fetched", lists)
}

// AddAllTypes bulk-inserts selector entries.
func (h *CarbonHandler) AddAllTypes(c *gin.Context) {
	var req models.BulkCarbonTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid carbon types payload", zap.Error(err))
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	result, err := h.svc.AddAllTypes(c.Request.Context(), req)
	if err != nil {
		respondServerError(c, h.logger, "add carbon types", err)
		return
	}

	message := fmt.Sprintf("Added %d items successfully", result.Count())
	if n := len(result.Errors); n > 0 {
		message += fmt.Sprintf(", %d errors", n)
	}
	respondOK(c, message, result)
}

// Submit stores an activity or legacy survey.
func (h *CarbonHandler) Submit(c *gin.Context) {
	payload, err := decodePayload(c)
	if err != nil {
		h.logger.Warn("invalid carbon payload", zap.Error(err))
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, carbon.ErrMissingUserID) {
			respondBadRequest(c, err.Error())
			return
		}
		respondServerError(c, h.logger, "submit carbon", err)
		return
	}
	respondOK(c, "Carbon data submitted successfully", result)
}

// Result returns the newest submission of the user_id given in the query or body.
func (h *CarbonHandler) Result(c *gin.Context) {
	userID, err := lookupParam(c, carbon.KeyUserID)
	if err != nil {
		respondBadRequest(c, msgInvalidPayload)
		return
	}

	result, found, err := h.svc.LatestResult(c.Request.Context(), userID)
	switch {
	case errors.Is(err, carbon.ErrMissingUserID):
		respondBadRequest(c, err.Error())
	case err != nil:
		respondServerError(c, h.logger, "load carbon result", err)
	case !found:
		respondNotFound(c, "No carbon data found")
	default:
		respondOK(c, "Carbon result fetched", result)
	}
}

// Species returns the species catalog and planting mix.
func (h *CarbonHandler) Species(c *gin.Context) {
	respondOK(c, "Species catalog fetched", h.svc.Species())
}
