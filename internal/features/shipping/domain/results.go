package domain

import "time"

// TrackingStatus represents the coarse status of a shipment.
type TrackingStatus string

const (
	// TrackingStatusInTransit indicates the shipment is moving through the network.
	TrackingStatusInTransit TrackingStatus = "IN_TRANSIT"
	// TrackingStatusDelivered indicates the shipment has been delivered.
	TrackingStatusDelivered TrackingStatus = "DELIVERED"
	// TrackingStatusException indicates an exception is blocking delivery.
	TrackingStatusException TrackingStatus = "EXCEPTION"
	// TrackingStatusPickup indicates the shipment has been picked up.
	TrackingStatusPickup TrackingStatus = "PICKUP"
	// TrackingStatusManifestPickup indicates the shipment is manifested for pickup.
	TrackingStatusManifestPickup TrackingStatus = "MANIFEST_PICKUP"
	// TrackingStatusOutForDelivery overrides the mapped code when the status
	// description matches an out-for-delivery phrase.
	TrackingStatusOutForDelivery TrackingStatus = "OUT_FOR_DELIVERY"
)

// ResponseMeta carries the outcome fields shared by every operation result.
// Operation-specific fields are only meaningful when Success is true.
type ResponseMeta struct {
	// Success reports whether the carrier accepted the request.
	Success bool `json:"success"`
	// Message is the vendor error description or status description.
	Message string `json:"message,omitempty"`
	// RawRequest is the request body as transmitted, kept for diagnostics.
	RawRequest string `json:"-"`
	// RawResponse is the response body as received, kept for diagnostics.
	RawResponse string `json:"-"`
}

// RateEstimate is one service quoted for a given origin/destination/package set.
type RateEstimate struct {
	// Carrier is the carrier display name.
	Carrier string `json:"carrier"`
	// ServiceName is the resolved, origin-specific service display name.
	ServiceName string `json:"service_name"`
	// ServiceCode is the carrier service code.
	ServiceCode string `json:"service_code"`
	// TotalPrice is the published total charge.
	TotalPrice float64 `json:"total_price"`
	// Currency qualifies TotalPrice.
	Currency string `json:"currency"`
	// DeliveryDate is the estimated delivery date (YYYY-MM-DD), empty when the
	// carrier guarantees no day count.
	DeliveryDate string `json:"delivery_date,omitempty"`
	// NegotiatedRate is the account-discounted total, zero when absent.
	NegotiatedRate float64 `json:"negotiated_rate,omitempty"`
}

// RateResult is the outcome of a rate shopping request.
type RateResult struct {
	ResponseMeta
	// Rates holds one estimate per offered service.
	Rates []RateEstimate `json:"rates"`
}

// ShipmentEvent is a single tracking milestone.
type ShipmentEvent struct {
	// Description is the carrier's activity description.
	Description string `json:"description"`
	// Time is the UTC timestamp of the event.
	Time time.Time `json:"time"`
	// Location is where the event occurred; nil when the carrier omits it.
	Location *Location `json:"location,omitempty"`
}

// TrackingResult is the outcome of a tracking lookup.
type TrackingResult struct {
	ResponseMeta
	// TrackingNumber identifies the shipment.
	TrackingNumber string `json:"tracking_number"`
	// Status is the coarse shipment status.
	Status TrackingStatus `json:"status"`
	// StatusCode is the raw carrier status code.
	StatusCode string `json:"status_code"`
	// StatusDescription is the raw carrier status description.
	StatusDescription string `json:"status_description"`
	// ScheduledDelivery is the scheduled delivery date; nil once delivered.
	ScheduledDelivery *time.Time `json:"scheduled_delivery,omitempty"`
	// Events are the shipment milestones, sorted ascending by time.
	Events []ShipmentEvent `json:"events"`
	// Origin is the resolved shipment origin, when known.
	Origin *Location `json:"origin,omitempty"`
	// Destination is the resolved shipment destination, when known.
	Destination *Location `json:"destination,omitempty"`
}

// ShipmentConfirmation is the outcome of a shipment confirm request. The
// Digest must be passed unchanged to acceptance.
type ShipmentConfirmation struct {
	ResponseMeta
	// IdentificationNumber identifies the confirmed shipment.
	IdentificationNumber string `json:"identification_number"`
	// TotalPrice is the quoted shipment charge.
	TotalPrice float64 `json:"total_price"`
	// Currency qualifies TotalPrice.
	Currency string `json:"currency"`
	// Digest is the opaque token required to accept the shipment.
	Digest string `json:"-"`
}

// PackageResult is the per-package outcome of shipment acceptance.
type PackageResult struct {
	// TrackingNumber is the tracking number assigned to this package.
	TrackingNumber string `json:"tracking_number"`
	// ServiceOptionCharges is the per-package service option charge.
	ServiceOptionCharges float64 `json:"service_option_charges"`
	// Currency qualifies ServiceOptionCharges.
	Currency string `json:"currency"`
	// LabelFormat is the label image format code.
	LabelFormat string `json:"label_format"`
	// GraphicImage is the encoded raster label.
	GraphicImage string `json:"graphic_image"`
	// HTMLImage is the encoded HTML rendering of the label.
	HTMLImage string `json:"html_image"`
}

// ShipmentAcceptance is the outcome of a shipment accept request.
type ShipmentAcceptance struct {
	ResponseMeta
	// IdentificationNumber identifies the accepted shipment.
	IdentificationNumber string `json:"identification_number"`
	// ShipmentCharges is the total shipment charge.
	ShipmentCharges float64 `json:"shipment_charges"`
	// Currency qualifies ShipmentCharges.
	Currency string `json:"currency"`
	// BillingWeight is the billable weight.
	BillingWeight float64 `json:"billing_weight"`
	// BillingWeightUnit is the unit code for BillingWeight.
	BillingWeightUnit string `json:"billing_weight_unit"`
	// HighValueReportImage is the encoded high value report, when present.
	HighValueReportImage string `json:"high_value_report_image,omitempty"`
	// HighValueReportFormat is the image format of the high value report.
	HighValueReportFormat string `json:"high_value_report_format,omitempty"`
	// Packages holds one result per shipped package, in document order.
	Packages []PackageResult `json:"packages"`
}

// PackageVoidResult is the per-tracking-number outcome of a void request.
type PackageVoidResult struct {
	// TrackingNumber is the voided package's tracking number.
	TrackingNumber string `json:"tracking_number"`
	// StatusCode is the numeric void status code.
	StatusCode int `json:"status_code"`
	// Description describes the per-package outcome.
	Description string `json:"description"`
}

// VoidResult is the outcome of a shipment void request.
type VoidResult struct {
	ResponseMeta
	// StatusType is the overall void status type code.
	StatusType string `json:"status_type"`
	// StatusCode is the overall void status code.
	StatusCode string `json:"status_code"`
	// Packages holds per-tracking-number outcomes for expanded voids.
	Packages []PackageVoidResult `json:"packages"`
}

// AddressCandidate is a normalized address returned by validation. Only the
// first two address-line nodes of a candidate are mapped; further lines are
// dropped.
type AddressCandidate struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// AddressValidationResult is the outcome of an address validation request.
type AddressValidationResult struct {
	ResponseMeta
	// Candidates holds zero or more corrected addresses in document order.
	Candidates []AddressCandidate `json:"candidates"`
}
