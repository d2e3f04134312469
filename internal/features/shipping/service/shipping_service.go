package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"carrier-gateway/internal/core/cache"
	"carrier-gateway/internal/features/shipping/domain"
	"carrier-gateway/internal/features/shipping/ports"
)

const rateQuoteKeyPrefix = "rates:"

// ShippingService orchestrates carrier operations, memoizing rate quotes in
// the cache. A nil cache disables memoization.
type ShippingService struct {
	carrier  ports.Carrier
	cache    cache.Cache
	quoteTTL time.Duration
	logger   *zap.Logger
}

// NewShippingService creates a new ShippingService.
func NewShippingService(carrier ports.Carrier, c cache.Cache, quoteTTL time.Duration, log *zap.Logger) *ShippingService {
	return &ShippingService{
		carrier:  carrier,
		cache:    c,
		quoteTTL: quoteTTL,
		logger:   log,
	}
}

type rateQuoteKey struct {
	Origin      domain.Location       `json:"origin"`
	Destination domain.Location       `json:"destination"`
	Packages    []domain.Package      `json:"packages"`
	Options     domain.RequestOptions `json:"options"`
}

// quoteCacheKey derives a stable key from the full quote input.
func quoteCacheKey(origin, destination domain.Location, packages []domain.Package, opts domain.RequestOptions) (string, error) {
	payload, err := json.Marshal(rateQuoteKey{
		Origin:      origin,
		Destination: destination,
		Packages:    packages,
		Options:     opts,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return rateQuoteKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// GetRates shops rates for the given shipment, serving repeated quotes from
// the cache. Cache failures degrade to a live carrier call.
func (s *ShippingService) GetRates(ctx context.Context, origin, destination domain.Location, packages []domain.Package, opts domain.RequestOptions) (*domain.RateResult, error) {
	key, keyErr := quoteCacheKey(origin, destination, packages, opts)

	if s.cache != nil && keyErr == nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var result domain.RateResult
			if err := json.Unmarshal(cached, &result); err == nil {
				s.logger.Debug("Rate quote served from cache", zap.String("key", key))
				return &result, nil
			}
			s.logger.Warn("Discarding malformed cached rate quote", zap.String("key", key))
		}
	}

	result, err := s.carrier.FindRates(origin, destination, packages, opts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && keyErr == nil && result.Success {
		payload, err := json.Marshal(result)
		if err == nil {
			if err := s.cache.Set(ctx, key, payload, s.quoteTTL); err != nil {
				s.logger.Warn("Failed to cache rate quote", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return result, nil
}

// GetTrackingInfo retrieves the tracking history for a tracking number.
func (s *ShippingService) GetTrackingInfo(trackingNumber string) (*domain.TrackingResult, error) {
	return s.carrier.FindTrackingInfo(trackingNumber)
}

// CreateShipment runs the two-step shipment workflow: confirm, then accept
// with the returned digest. A rejected confirmation is returned without an
// acceptance attempt.
func (s *ShippingService) CreateShipment(req domain.ShipmentRequest) (*domain.ShipmentOutcome, error) {
	confirmation, err := s.carrier.ConfirmShipment(req)
	if err != nil {
		return nil, err
	}

	outcome := &domain.ShipmentOutcome{Confirmation: confirmation}
	if !confirmation.Success {
		s.logger.Info("Shipment confirmation rejected",
			zap.String("message", confirmation.Message),
		)
		return outcome, nil
	}

	acceptance, err := s.carrier.AcceptShipment(confirmation.Digest, req.Options)
	if err != nil {
		return nil, err
	}
	outcome.Acceptance = acceptance

	return outcome, nil
}

// VoidShipment cancels a shipment, or individual packages of it.
func (s *ShippingService) VoidShipment(identificationNumber string, trackingNumbers []string, opts domain.RequestOptions) (*domain.VoidResult, error) {
	return s.carrier.VoidShipment(identificationNumber, trackingNumbers, opts)
}

// ValidateAddress returns candidate corrections for an address.
func (s *ShippingService) ValidateAddress(address domain.Location, opts domain.RequestOptions) (*domain.AddressValidationResult, error) {
	return s.carrier.ValidateAddress(address, opts)
}
