package ports

import "carrier-gateway/internal/features/shipping/domain"

// Carrier defines the operations a parcel carrier integration must provide.
// Implementations return a result with Success=false for vendor rejections;
// an error is returned only for transport or malformed-response failures.
type Carrier interface {
	// FindRates shops every service the carrier offers for the given
	// origin/destination/package set.
	FindRates(origin, destination domain.Location, packages []domain.Package, opts domain.RequestOptions) (*domain.RateResult, error)

	// FindTrackingInfo retrieves the tracking history for a tracking number.
	FindTrackingInfo(trackingNumber string) (*domain.TrackingResult, error)

	// ConfirmShipment registers a shipment and returns the digest required
	// by AcceptShipment.
	ConfirmShipment(req domain.ShipmentRequest) (*domain.ShipmentConfirmation, error)

	// AcceptShipment finalizes a confirmed shipment. The digest must be the
	// unmodified token returned by a prior confirmation.
	AcceptShipment(digest string, opts domain.RequestOptions) (*domain.ShipmentAcceptance, error)

	// VoidShipment cancels a shipment, or individual packages of it when
	// tracking numbers are supplied.
	VoidShipment(identificationNumber string, trackingNumbers []string, opts domain.RequestOptions) (*domain.VoidResult, error)

	// ValidateAddress returns candidate corrections for an address.
	ValidateAddress(address domain.Location, opts domain.RequestOptions) (*domain.AddressValidationResult, error)
}
