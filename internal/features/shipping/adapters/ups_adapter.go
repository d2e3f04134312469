package adapter

import (
	"time"

	"go.uber.org/zap"

	"carrier-gateway/internal/core/config"
	"carrier-gateway/internal/features/shipping/domain"
	"carrier-gateway/internal/features/shipping/ports"
)

// resolvedOptions is the effective option set for one request: per-request
// options layered over the configured defaults.
type resolvedOptions struct {
	pickupType             string
	customerClassification string
	originAccount          string
	destinationAccount     string
	shipperAccountLocation *domain.Location
	test                   bool
	labelPrintCode         string
	labelFormatCode        string
	userAgent              string
}

// UPSAdapter implements the carrier port against the UPS XML API.
type UPSAdapter struct {
	cfg       config.UPSConfig
	transport Transport
	logger    *zap.Logger
	now       func() time.Time
}

var _ ports.Carrier = (*UPSAdapter)(nil)

func NewUPSAdapter(cfg config.UPSConfig, transport Transport, log *zap.Logger) *UPSAdapter {
	return &UPSAdapter{
		cfg:       cfg,
		transport: transport,
		logger:    log,
		now:       time.Now,
	}
}

func (a *UPSAdapter) resolve(opts domain.RequestOptions) resolvedOptions {
	resolved := resolvedOptions{
		pickupType:             a.cfg.PickupType,
		customerClassification: a.cfg.CustomerClassification,
		originAccount:          a.cfg.OriginAccount,
		destinationAccount:     a.cfg.DestinationAccount,
		test:                   a.cfg.TestMode,
		labelPrintCode:         a.cfg.LabelPrintCode,
		labelFormatCode:        a.cfg.LabelFormatCode,
		userAgent:              a.cfg.HTTPUserAgent,
	}

	if opts.PickupType != "" {
		resolved.pickupType = opts.PickupType
	}
	if opts.CustomerClassification != "" {
		resolved.customerClassification = opts.CustomerClassification
	}
	if opts.OriginAccount != "" {
		resolved.originAccount = opts.OriginAccount
	}
	if opts.DestinationAccount != "" {
		resolved.destinationAccount = opts.DestinationAccount
	}
	if opts.ShipperAccountLocation != nil {
		resolved.shipperAccountLocation = opts.ShipperAccountLocation
	}
	if opts.Test != nil {
		resolved.test = *opts.Test
	}
	if opts.LabelPrintCode != "" {
		resolved.labelPrintCode = opts.LabelPrintCode
	}
	if opts.LabelFormatCode != "" {
		resolved.labelFormatCode = opts.LabelFormatCode
	}
	if opts.HTTPUserAgent != "" {
		resolved.userAgent = opts.HTTPUserAgent
	}

	if resolved.customerClassification == "" {
		resolved.customerClassification = defaultCustomerClassification(resolved.pickupType)
	}

	return resolved
}

// upsifyLocation rewrites US territories addressed as states into their own
// country codes, which is how the carrier expects them.
func upsifyLocation(loc domain.Location) domain.Location {
	if loc.Country == "US" && usTerritoryCodes[loc.Province] {
		loc.Country = loc.Province
		loc.Province = ""
	}
	return loc
}

// assembleBody concatenates the credential document and the operation
// document, each behind its own XML declaration. The gateway parses the two
// documents from a single POST body.
func (a *UPSAdapter) assembleBody(operationDoc string) (string, error) {
	accessDoc, err := buildAccessRequest(a.cfg.AccessKey, a.cfg.UserID, a.cfg.Password)
	if err != nil {
		return "", err
	}
	return "<?xml version='1.0' ?>" + accessDoc +
		"<?xml version='1.0' encoding='UTF-8' ?>" + operationDoc, nil
}

func (a *UPSAdapter) submit(endpoint, operationDoc string, test bool) (string, []byte, error) {
	body, err := a.assembleBody(operationDoc)
	if err != nil {
		return "", nil, err
	}

	a.logger.Debug("Submitting carrier request",
		zap.String("endpoint", endpoint),
		zap.Bool("test", test),
	)

	raw, err := a.transport.Submit(endpoint, body, test)
	if err != nil {
		return body, nil, err
	}

	return body, raw, nil
}

func (a *UPSAdapter) FindRates(origin, destination domain.Location, packages []domain.Package, opts domain.RequestOptions) (*domain.RateResult, error) {
	resolved := a.resolve(opts)
	origin = upsifyLocation(origin)
	destination = upsifyLocation(destination)

	doc, err := buildRateRequest(origin, destination, packages, resolved)
	if err != nil {
		return nil, err
	}

	body, raw, err := a.submit(endpointRates, doc, resolved.test)
	if err != nil {
		return nil, err
	}

	result, err := parseRateResponse(raw, origin.Country, a.now())
	if err != nil {
		return nil, err
	}
	result.RawRequest = body
	result.RawResponse = string(raw)
	return result, nil
}

func (a *UPSAdapter) FindTrackingInfo(trackingNumber string) (*domain.TrackingResult, error) {
	resolved := a.resolve(domain.RequestOptions{})

	doc, err := buildTrackingRequest(trackingNumber)
	if err != nil {
		return nil, err
	}

	body, raw, err := a.submit(endpointTrack, doc, resolved.test)
	if err != nil {
		return nil, err
	}

	result, err := parseTrackingResponse(raw)
	if err != nil {
		return nil, err
	}
	if result.Success && result.Status == "" {
		a.logger.Warn("Unknown tracking status code",
			zap.String("tracking_number", trackingNumber),
			zap.String("status_code", result.StatusCode),
		)
	}
	result.RawRequest = body
	result.RawResponse = string(raw)
	return result, nil
}

func (a *UPSAdapter) ConfirmShipment(req domain.ShipmentRequest) (*domain.ShipmentConfirmation, error) {
	resolved := a.resolve(req.Options)
	req.Origin = upsifyLocation(req.Origin)
	req.Destination = upsifyLocation(req.Destination)

	doc, err := buildConfirmationRequest(req, resolved, a.now())
	if err != nil {
		return nil, err
	}

	body, raw, err := a.submit(endpointShipmentConfirm, doc, resolved.test)
	if err != nil {
		return nil, err
	}

	result, err := parseConfirmResponse(raw)
	if err != nil {
		return nil, err
	}
	result.RawRequest = body
	result.RawResponse = string(raw)
	return result, nil
}

func (a *UPSAdapter) AcceptShipment(digest string, opts domain.RequestOptions) (*domain.ShipmentAcceptance, error) {
	resolved := a.resolve(opts)

	doc, err := buildAcceptanceRequest(digest)
	if err != nil {
		return nil, err
	}

	body, raw, err := a.submit(endpointShipmentAccept, doc, resolved.test)
	if err != nil {
		return nil, err
	}

	result, err := parseAcceptResponse(raw)
	if err != nil {
		return nil, err
	}
	result.RawRequest = body
	result.RawResponse = string(raw)
	return result, nil
}

func (a *UPSAdapter) VoidShipment(identificationNumber string, trackingNumbers []string, opts domain.RequestOptions) (*domain.VoidResult, error) {
	resolved := a.resolve(opts)

	doc, err := buildVoidRequest(identificationNumber, trackingNumbers)
	if err != nil {
		return nil, err
	}

	body, raw, err := a.submit(endpointVoid, doc, resolved.test)
	if err != nil {
		return nil, err
	}

	result, err := parseVoidResponse(raw)
	if err != nil {
		return nil, err
	}
	result.RawRequest = body
	result.RawResponse = string(raw)
	return result, nil
}

func (a *UPSAdapter) ValidateAddress(address domain.Location, opts domain.RequestOptions) (*domain.AddressValidationResult, error) {
	resolved := a.resolve(opts)
	address = upsifyLocation(address)

	doc, err := buildAddressValidationRequest(address)
	if err != nil {
		return nil, err
	}

	body, raw, err := a.submit(endpointAddressValidation, doc, resolved.test)
	if err != nil {
		return nil, err
	}

	result, err := parseAddressValidationResponse(raw)
	if err != nil {
		return nil, err
	}
	result.RawRequest = body
	result.RawResponse = string(raw)
	return result, nil
}
