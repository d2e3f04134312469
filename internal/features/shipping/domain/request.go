package domain

// RequestOptions are per-call overrides for the client-level defaults. Zero
// values leave the corresponding default in effect.
type RequestOptions struct {
	// PickupType selects the pickup arrangement (e.g., daily_pickup).
	PickupType string `json:"pickup_type,omitempty"`
	// CustomerClassification overrides the classification derived from PickupType.
	CustomerClassification string `json:"customer_classification,omitempty"`
	// OriginAccount attaches a shipper account number to the origin.
	OriginAccount string `json:"origin_account,omitempty"`
	// DestinationAccount attaches a shipper-assigned identification to the recipient.
	DestinationAccount string `json:"destination_account,omitempty"`
	// ShipperAccountLocation is the shipper's account address when it differs
	// from the physical origin; it becomes the rated shipper while the origin
	// is emitted as the ship-from location.
	ShipperAccountLocation *Location `json:"shipper_account_location,omitempty"`
	// Test overrides the client-level test/live endpoint selection.
	Test *bool `json:"test,omitempty"`
	// LabelPrintCode overrides the label print method code.
	LabelPrintCode string `json:"label_print_code,omitempty"`
	// LabelFormatCode overrides the label image format code.
	LabelFormatCode string `json:"label_format_code,omitempty"`
	// HTTPUserAgent overrides the user agent sent in the label specification.
	HTTPUserAgent string `json:"http_user_agent,omitempty"`
}

// ShipmentRequest carries the inputs of the confirm step of the shipment workflow.
type ShipmentRequest struct {
	// Origin is the shipper location, including company and contact names.
	Origin Location `json:"origin"`
	// Destination is the recipient location.
	Destination Location `json:"destination"`
	// Packages are the physical units to ship.
	Packages []Package `json:"packages"`
	// ServiceCode selects the carrier service; blank picks the default.
	ServiceCode string `json:"service_code,omitempty"`
	// Options are per-call overrides.
	Options RequestOptions `json:"options,omitempty"`
}

// ShipmentOutcome is the result of the confirm -> accept workflow. Acceptance
// is nil when confirmation was rejected by the carrier.
type ShipmentOutcome struct {
	Confirmation *ShipmentConfirmation `json:"confirmation"`
	Acceptance   *ShipmentAcceptance   `json:"acceptance,omitempty"`
}
