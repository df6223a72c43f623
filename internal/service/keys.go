package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"prekeyd/internal/logger"
	"prekeyd/internal/metrics"
	"prekeyd/internal/model"
)

// KeyRetrieval orchestrates an authenticated, rate-limited prekey fetch.
// Each request passes authenticate, rate-limit and lookup in that order;
// the first gate that fails terminates the request, and the store is only
// touched once both gates pass.
type KeyRetrieval struct {
	authenticator model.Authenticator
	limiter       model.Limiter
	keys          model.KeyStore
	logger        *logger.Logger
}

// NewKeyRetrieval creates a KeyRetrieval service. The limiter must be the
// one dedicated to the key-fetch request class.
func NewKeyRetrieval(
	authenticator model.Authenticator,
	limiter model.Limiter,
	keys model.KeyStore,
	logger *logger.Logger,
) *KeyRetrieval {
	return &KeyRetrieval{
		authenticator: authenticator,
		limiter:       limiter,
		keys:          keys,
		logger:        logger,
	}
}

// Retrieve fetches key material for the target account. A nil deviceID
// selects all-devices mode; otherwise only that device is queried. Any
// authenticated caller may fetch any account's public key material; the
// rate limit is keyed by the caller, not the target.
//
// Errors are model.ErrUnauthorized, model.ErrRateLimited, model.ErrNotFound,
// or a wrapped infrastructure fault.
func (s *KeyRetrieval) Retrieve(ctx context.Context, creds model.Credentials, target string, deviceID *int64) (model.PreKeyBundleList, error) {
	account, err := s.authenticator.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			s.logger.Debug("Keys service: caller rejected")
			metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
			return model.PreKeyBundleList{}, model.ErrUnauthorized
		}
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeError).Inc()
		return model.PreKeyBundleList{}, fmt.Errorf("failed to authenticate caller: %w", err)
	}

	if !s.limiter.TryAcquire(ctx, account.Number) {
		s.logger.Info("Keys service: caller throttled",
			"caller", account.Number)
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeRateLimited).Inc()
		return model.PreKeyBundleList{}, model.ErrRateLimited
	}

	keys, err := s.lookup(ctx, target, deviceID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeNotFound).Inc()
			return model.PreKeyBundleList{}, model.ErrNotFound
		}
		s.logger.Error("Keys service: key lookup failed",
			"target", target,
			"error", err.Error())
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeError).Inc()
		return model.PreKeyBundleList{}, err
	}

	metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeFulfilled).Inc()
	return model.NewPreKeyBundleList(strip(keys)), nil
}

func (s *KeyRetrieval) lookup(ctx context.Context, target string, deviceID *int64) ([]model.PreKey, error) {
	if deviceID != nil {
		key, err := s.keys.GetByNumberAndDevice(ctx, target, *deviceID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.ErrNotFound
			}
			return nil, fmt.Errorf("failed to look up device key: %w", err)
		}
		return []model.PreKey{key}, nil
	}

	keys, err := s.keys.GetByNumber(ctx, target)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up account keys: %w", err)
	}
	return keys, nil
}

// strip clears identifying fields before the records leave the service. The
// caller supplied the account and device in the request; echoing them back
// is an information-leak surface.
func strip(keys []model.PreKey) []model.PreKey {
	stripped := make([]model.PreKey, len(keys))
	for i, key := range keys {
		key.ID = uuid.Nil
		key.Number = ""
		key.DeviceID = 0
		key.RegistrationID = 0
		stripped[i] = key
	}
	return stripped
}
