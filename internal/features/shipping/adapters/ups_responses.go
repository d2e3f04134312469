package adapter

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"carrier-gateway/internal/features/shipping/domain"
)

// Response documents of the carrier's XML contract.

type responseHeader struct {
	ResponseStatusCode        string `xml:"ResponseStatusCode"`
	ResponseStatusDescription string `xml:"ResponseStatusDescription"`
	Error                     struct {
		ErrorDescription string `xml:"ErrorDescription"`
	} `xml:"Error"`
}

// succeeded reports the shared success convention: a fixed OK sentinel in the
// top-level status code.
func (h responseHeader) succeeded() bool {
	return h.ResponseStatusCode == "1"
}

// message prefers the vendor error description, falling back to the status
// description.
func (h responseHeader) message() string {
	if h.Error.ErrorDescription != "" {
		return h.Error.ErrorDescription
	}
	return h.ResponseStatusDescription
}

type ratedShipment struct {
	Service                  codeNode     `xml:"Service"`
	GuaranteedDaysToDelivery string       `xml:"GuaranteedDaysToDelivery"`
	TotalCharges             monetaryNode `xml:"TotalCharges"`
	NegotiatedRates          struct {
		NetSummaryCharges struct {
			GrandTotal monetaryNode `xml:"GrandTotal"`
		} `xml:"NetSummaryCharges"`
	} `xml:"NegotiatedRates"`
}

type rateResponse struct {
	Response       responseHeader  `xml:"Response"`
	RatedShipments []ratedShipment `xml:"RatedShipment"`
}

type confirmResponse struct {
	Response                     responseHeader `xml:"Response"`
	ShipmentIdentificationNumber string         `xml:"ShipmentIdentificationNumber"`
	TotalCharges                 monetaryNode   `xml:"TotalCharges"`
	ShipmentDigest               string         `xml:"ShipmentDigest"`
}

type labelImage struct {
	LabelImageFormat codeNode `xml:"LabelImageFormat"`
	GraphicImage     string   `xml:"GraphicImage"`
	HTMLImage        string   `xml:"HTMLImage"`
}

type packageResult struct {
	TrackingNumber        string       `xml:"TrackingNumber"`
	ServiceOptionsCharges monetaryNode `xml:"ServiceOptionsCharges"`
	LabelImage            labelImage   `xml:"LabelImage"`
}

type controlLogReceipt struct {
	ImageFormat  codeNode `xml:"ImageFormat"`
	GraphicImage string   `xml:"GraphicImage"`
}

type shipmentResults struct {
	ShipmentCharges struct {
		TotalCharges monetaryNode `xml:"TotalCharges"`
	} `xml:"ShipmentCharges"`
	BillingWeight struct {
		UnitOfMeasurement codeNode `xml:"UnitOfMeasurement"`
		Weight            string   `xml:"Weight"`
	} `xml:"BillingWeight"`
	ShipmentIdentificationNumber string             `xml:"ShipmentIdentificationNumber"`
	PackageResults               []packageResult    `xml:"PackageResults"`
	ControlLogReceipt            *controlLogReceipt `xml:"ControlLogReceipt"`
}

type acceptResponse struct {
	Response        responseHeader  `xml:"Response"`
	ShipmentResults shipmentResults `xml:"ShipmentResults"`
}

type packageLevelResult struct {
	TrackingNumber string `xml:"TrackingNumber"`
	StatusCode     string `xml:"StatusCode"`
	Description    string `xml:"Description"`
}

type voidResponse struct {
	Response responseHeader `xml:"Response"`
	Status   struct {
		StatusType codeNode `xml:"StatusType"`
		StatusCode codeNode `xml:"StatusCode"`
	} `xml:"Status"`
	PackageLevelResults []packageLevelResult `xml:"PackageLevelResults"`
}

type addressValidationResponse struct {
	Response          responseHeader     `xml:"Response"`
	AddressKeyFormats []addressKeyFormat `xml:"AddressKeyFormat"`
}

type trackAddress struct {
	AddressLine1      string `xml:"AddressLine1"`
	AddressLine2      string `xml:"AddressLine2"`
	AddressLine3      string `xml:"AddressLine3"`
	City              string `xml:"City"`
	StateProvinceCode string `xml:"StateProvinceCode"`
	PostalCode        string `xml:"PostalCode"`
	CountryCode       string `xml:"CountryCode"`
}

type trackParty struct {
	Address *trackAddress `xml:"Address"`
}

type trackActivity struct {
	Status struct {
		StatusType struct {
			Code        string `xml:"Code"`
			Description string `xml:"Description"`
		} `xml:"StatusType"`
	} `xml:"Status"`
	ActivityLocation *trackParty `xml:"ActivityLocation"`
	Date             string      `xml:"Date"`
	Time             string      `xml:"Time"`
}

type trackPackage struct {
	TrackingNumber string          `xml:"TrackingNumber"`
	Activities     []trackActivity `xml:"Activity"`
}

type trackShipment struct {
	ShipmentIdentificationNumber string         `xml:"ShipmentIdentificationNumber"`
	ScheduledDeliveryDate        string         `xml:"ScheduledDeliveryDate"`
	Shipper                      *trackParty    `xml:"Shipper"`
	ShipTo                       *trackParty    `xml:"ShipTo"`
	Packages                     []trackPackage `xml:"Package"`
}

type trackResponse struct {
	Response  responseHeader  `xml:"Response"`
	Shipments []trackShipment `xml:"Shipment"`
}

var outForDeliveryPattern = regexp.MustCompile(`(?i)out.*delivery`)

func unmarshalResponse(raw []byte, doc interface{}) error {
	if err := xml.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("failed to parse carrier response: %w", err)
	}
	return nil
}

// locationFromAddress maps an address block to a domain location, nil when
// the block is absent.
func locationFromAddress(addr *trackAddress) *domain.Location {
	if addr == nil {
		return nil
	}
	return &domain.Location{
		Address1:   addr.AddressLine1,
		Address2:   addr.AddressLine2,
		Address3:   addr.AddressLine3,
		City:       addr.City,
		Province:   addr.StateProvinceCode,
		PostalCode: addr.PostalCode,
		Country:    addr.CountryCode,
	}
}

// parseUPSTimestamp assembles a UTC timestamp from the carrier's split
// fixed-width date (YYYYMMDD) and time (HHMMSS) fields. An absent time means
// midnight.
func parseUPSTimestamp(date, clock string) (time.Time, error) {
	if len(date) < 8 {
		return time.Time{}, fmt.Errorf("malformed activity date %q", date)
	}
	digits := digitsOnly(clock)
	for len(digits) < 6 {
		digits += "0"
	}
	return time.Parse("20060102150405", date[:8]+digits[:6])
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseRateResponse(raw []byte, originCountry string, now time.Time) (*domain.RateResult, error) {
	var doc rateResponse
	if err := unmarshalResponse(raw, &doc); err != nil {
		return nil, err
	}

	result := &domain.RateResult{
		ResponseMeta: domain.ResponseMeta{
			Success: doc.Response.succeeded(),
			Message: doc.Response.message(),
		},
	}
	if !result.Success {
		return result, nil
	}

	for _, rated := range doc.RatedShipments {
		estimate := domain.RateEstimate{
			Carrier:        upsCarrierName,
			ServiceName:    serviceNameFor(originCountry, rated.Service.Code),
			ServiceCode:    rated.Service.Code,
			TotalPrice:     parseFloat(rated.TotalCharges.MonetaryValue),
			Currency:       rated.TotalCharges.CurrencyCode,
			NegotiatedRate: parseFloat(rated.NegotiatedRates.NetSummaryCharges.GrandTotal.MonetaryValue),
		}
		if days, err := strconv.Atoi(rated.GuaranteedDaysToDelivery); err == nil && days >= 1 {
			estimate.DeliveryDate = now.AddDate(0, 0, days).Format("2006-01-02")
		}
		result.Rates = append(result.Rates, estimate)
	}

	return result, nil
}

func parseConfirmResponse(raw []byte) (*domain.ShipmentConfirmation, error) {
	var doc confirmResponse
	if err := unmarshalResponse(raw, &doc); err != nil {
		return nil, err
	}

	result := &domain.ShipmentConfirmation{
		ResponseMeta: domain.ResponseMeta{
			Success: doc.Response.succeeded(),
			Message: doc.Response.message(),
		},
	}
	if !result.Success {
		return result, nil
	}

	if doc.ShipmentIdentificationNumber == "" || doc.ShipmentDigest == "" {
		return nil, fmt.Errorf("confirm response missing identification number or digest")
	}

	result.IdentificationNumber = doc.ShipmentIdentificationNumber
	result.TotalPrice = parseFloat(doc.TotalCharges.MonetaryValue)
	result.Currency = doc.TotalCharges.CurrencyCode
	result.Digest = doc.ShipmentDigest
	return result, nil
}

func parseAcceptResponse(raw []byte) (*domain.ShipmentAcceptance, error) {
	var doc acceptResponse
	if err := unmarshalResponse(raw, &doc); err != nil {
		return nil, err
	}

	result := &domain.ShipmentAcceptance{
		ResponseMeta: domain.ResponseMeta{
			Success: doc.Response.succeeded(),
			Message: doc.Response.message(),
		},
	}
	if !result.Success {
		return result, nil
	}

	results := doc.ShipmentResults
	result.IdentificationNumber = results.ShipmentIdentificationNumber
	result.ShipmentCharges = parseFloat(results.ShipmentCharges.TotalCharges.MonetaryValue)
	result.Currency = results.ShipmentCharges.TotalCharges.CurrencyCode
	result.BillingWeight = parseFloat(results.BillingWeight.Weight)
	result.BillingWeightUnit = results.BillingWeight.UnitOfMeasurement.Code

	if results.ControlLogReceipt != nil {
		result.HighValueReportImage = results.ControlLogReceipt.GraphicImage
		result.HighValueReportFormat = results.ControlLogReceipt.ImageFormat.Code
	}

	for _, pkg := range results.PackageResults {
		result.Packages = append(result.Packages, domain.PackageResult{
			TrackingNumber:       pkg.TrackingNumber,
			ServiceOptionCharges: parseFloat(pkg.ServiceOptionsCharges.MonetaryValue),
			Currency:             pkg.ServiceOptionsCharges.CurrencyCode,
			LabelFormat:          pkg.LabelImage.LabelImageFormat.Code,
			GraphicImage:         pkg.LabelImage.GraphicImage,
			HTMLImage:            pkg.LabelImage.HTMLImage,
		})
	}

	return result, nil
}

func parseVoidResponse(raw []byte) (*domain.VoidResult, error) {
	var doc voidResponse
	if err := unmarshalResponse(raw, &doc); err != nil {
		return nil, err
	}

	result := &domain.VoidResult{
		ResponseMeta: domain.ResponseMeta{
			Success: doc.Response.succeeded(),
			Message: doc.Response.message(),
		},
	}
	if !result.Success {
		return result, nil
	}

	result.StatusType = doc.Status.StatusType.Code
	result.StatusCode = doc.Status.StatusCode.Code

	for _, pkg := range doc.PackageLevelResults {
		code, _ := strconv.Atoi(pkg.StatusCode)
		result.Packages = append(result.Packages, domain.PackageVoidResult{
			TrackingNumber: pkg.TrackingNumber,
			StatusCode:     code,
			Description:    pkg.Description,
		})
	}

	return result, nil
}

// parseAddressValidationResponse maps candidate addresses. The address-line
// mapping is positional: the first two AddressLine nodes become line 1 and
// line 2, anything further is dropped.
func parseAddressValidationResponse(raw []byte) (*domain.AddressValidationResult, error) {
	var doc addressValidationResponse
	if err := unmarshalResponse(raw, &doc); err != nil {
		return nil, err
	}

	result := &domain.AddressValidationResult{
		ResponseMeta: domain.ResponseMeta{
			Success: doc.Response.succeeded(),
			Message: doc.Response.message(),
		},
	}
	if !result.Success {
		return result, nil
	}

	for _, format := range doc.AddressKeyFormats {
		candidate := domain.AddressCandidate{
			City:       format.PoliticalDivision2,
			Province:   format.PoliticalDivision1,
			PostalCode: format.PostcodePrimaryLow,
			Country:    format.CountryCode,
		}
		if len(format.AddressLines) > 0 {
			candidate.Address1 = format.AddressLines[0]
		}
		if len(format.AddressLines) > 1 {
			candidate.Address2 = format.AddressLines[1]
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	return result, nil
}

// parseTrackingResponse extracts the tracking result, reconstructing what
// the carrier strips: it re-sorts activities chronologically, synthesizes an
// origin event for archived shipments, and backfills the destination on
// delivered shipments.
func parseTrackingResponse(raw []byte) (*domain.TrackingResult, error) {
	var doc trackResponse
	if err := unmarshalResponse(raw, &doc); err != nil {
		return nil, err
	}

	result := &domain.TrackingResult{
		ResponseMeta: domain.ResponseMeta{
			Success: doc.Response.succeeded(),
			Message: doc.Response.message(),
		},
	}
	if !result.Success {
		return result, nil
	}

	if len(doc.Shipments) == 0 {
		return nil, fmt.Errorf("tracking response contains no shipment")
	}
	shipment := doc.Shipments[0]
	if len(shipment.Packages) == 0 {
		return nil, fmt.Errorf("tracking response contains no package")
	}
	firstPackage := shipment.Packages[0]
	if len(firstPackage.Activities) == 0 {
		return nil, fmt.Errorf("tracking response contains no activity")
	}

	result.TrackingNumber = shipment.ShipmentIdentificationNumber
	if result.TrackingNumber == "" {
		result.TrackingNumber = firstPackage.TrackingNumber
	}

	latest := firstPackage.Activities[0].Status.StatusType
	result.StatusCode = latest.Code
	result.StatusDescription = latest.Description
	result.Status = trackingStatusCodes[latest.Code]
	if outForDeliveryPattern.MatchString(latest.Description) {
		result.Status = domain.TrackingStatusOutForDelivery
	}

	var origin, destination *domain.Location
	if shipment.Shipper != nil {
		origin = locationFromAddress(shipment.Shipper.Address)
	}
	if shipment.ShipTo != nil {
		destination = locationFromAddress(shipment.ShipTo.Address)
	}

	if result.Status != domain.TrackingStatusDelivered && shipment.ScheduledDeliveryDate != "" {
		if scheduled, err := parseUPSTimestamp(shipment.ScheduledDeliveryDate, ""); err == nil {
			result.ScheduledDelivery = &scheduled
		}
	}

	events := make([]domain.ShipmentEvent, 0, len(firstPackage.Activities))
	for _, activity := range firstPackage.Activities {
		timestamp, err := parseUPSTimestamp(activity.Date, activity.Time)
		if err != nil {
			return nil, err
		}
		var location *domain.Location
		if activity.ActivityLocation != nil {
			location = locationFromAddress(activity.ActivityLocation.Address)
		}
		events = append(events, domain.ShipmentEvent{
			Description: activity.Status.StatusType.Description,
			Time:        timestamp,
			Location:    location,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	// The carrier archives old shipments, stripping all activity except the
	// delivery event while still reporting the origin in the shipment header.
	// Re-seat the origin into the event sequence in that case: replace the
	// earliest event when it already sits at the origin, prepend otherwise.
	if origin != nil && !(len(events) == 1 && result.Status == domain.TrackingStatusDelivered) {
		first := events[0]
		sameCountry := first.Location != nil && first.Location.Country == origin.Country
		sameOrBlankCity := first.Location != nil && (first.Location.City == "" || first.Location.City == origin.City)
		originEvent := domain.ShipmentEvent{
			Description: first.Description,
			Time:        first.Time,
			Location:    origin,
		}
		if sameCountry && sameOrBlankCity {
			events[0] = originEvent
		} else {
			events = append([]domain.ShipmentEvent{originEvent}, events...)
		}
	}

	if result.Status == domain.TrackingStatusDelivered {
		if destination == nil {
			destination = events[len(events)-1].Location
		}
		events[len(events)-1].Location = destination
	}

	result.Events = events
	result.Origin = origin
	result.Destination = destination
	return result, nil
}
