package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prekeyd/internal/auth"
	"prekeyd/internal/logger"
	"prekeyd/internal/model"
)

// allDevices is the device selector for all-devices mode.
const allDevices = "*"

// KeysService defines the retrieval entry point consumed by the handler.
type KeysService interface {
	Retrieve(ctx context.Context, creds model.Credentials, target string, deviceID *int64) (model.PreKeyBundleList, error)
}

// Keys handles HTTP endpoints for prekey retrieval.
type Keys struct {
	service KeysService
	logger  *logger.Logger
}

// NewKeys creates a new Keys handler.
func NewKeys(service KeysService, logger *logger.Logger) *Keys {
	return &Keys{
		service: service,
		logger:  logger,
	}
}

// GetMasterKey serves the legacy single-device fetch: the target's master
// device is implied.
func (h *Keys) GetMasterKey(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "number")
	creds, err := auth.ParseBasicHeader(r.Header.Get("Authorization"))
	if err != nil {
		handleError(w, model.ErrUnauthorized)
		return
	}

	deviceID := model.MasterDeviceID
	bundle, err := h.service.Retrieve(r.Context(), creds, target, &deviceID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bundle.Keys[0])
}

// GetKeys serves the device-selector fetch: "*" selects every device,
// a numeric id selects one device.
func (h *Keys) GetKeys(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "number")
	device := chi.URLParam(r, "device")
	creds, err := auth.ParseBasicHeader(r.Header.Get("Authorization"))
	if err != nil {
		handleError(w, model.ErrUnauthorized)
		return
	}

	var deviceID *int64
	if device != allDevices {
		id, err := strconv.ParseInt(device, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid device selector")
			return
		}
		deviceID = &id
	}

	bundle, err := h.service.Retrieve(r.Context(), creds, target, deviceID)
	if err != nil {
		handleError(w, err)
		return
	}

	if deviceID != nil {
		respondJSON(w, http.StatusOK, bundle.Keys[0])
		return
	}
	respondJSON(w, http.StatusOK, bundle)
}
