package adapter

import "carrier-gateway/internal/features/shipping/domain"

const (
	upsCarrierName = "UPS"

	upsTestURL = "https://wwwcie.ups.com"
	upsLiveURL = "https://onlinetools.ups.com"
)

// Endpoint paths of the carrier's XML API, one per operation.
const (
	endpointRates             = "ups.app/xml/Rate"
	endpointTrack             = "ups.app/xml/Track"
	endpointShipmentConfirm   = "ups.app/xml/ShipConfirm"
	endpointShipmentAccept    = "ups.app/xml/ShipAccept"
	endpointVoid              = "ups.app/xml/Void"
	endpointAddressValidation = "ups.app/xml/XAV"
)

var pickupCodes = map[string]string{
	"daily_pickup":           "01",
	"customer_counter":       "03",
	"one_time_pickup":        "06",
	"on_call_air":            "07",
	"suggested_retail_rates": "11",
	"letter_center":          "19",
	"air_service_center":     "20",
}

var customerClassifications = map[string]string{
	"wholesale":  "01",
	"occasional": "03",
	"retail":     "04",
}

// defaultCustomerClassification returns the classification the carrier's docs
// pair with each pickup type. The vendor does not apply these defaults
// reliably server-side, so they are resolved client-side.
func defaultCustomerClassification(pickupType string) string {
	switch pickupType {
	case "daily_pickup":
		return "wholesale"
	case "customer_counter":
		return "retail"
	default:
		return "occasional"
	}
}

var defaultServices = map[string]string{
	"01": "UPS Next Day Air",
	"02": "UPS Second Day Air",
	"03": "UPS Ground",
	"07": "UPS Worldwide Express",
	"08": "UPS Worldwide Expedited",
	"11": "UPS Standard",
	"12": "UPS Three-Day Select",
	"13": "UPS Next Day Air Saver",
	"14": "UPS Next Day Air Early A.M.",
	"54": "UPS Worldwide Express Plus",
	"59": "UPS Second Day Air A.M.",
	"65": "UPS Saver",
	"82": "UPS Today Standard",
	"83": "UPS Today Dedicated Courier",
	"84": "UPS Today Intercity",
	"85": "UPS Today Express",
	"86": "UPS Today Express Saver",
}

var canadaOriginServices = map[string]string{
	"01": "UPS Express",
	"02": "UPS Expedited",
	"14": "UPS Express Early A.M.",
}

var mexicoOriginServices = map[string]string{
	"07": "UPS Express",
	"08": "UPS Expedited",
	"54": "UPS Express Plus",
}

var euOriginServices = map[string]string{
	"07": "UPS Express",
	"08": "UPS Expedited",
}

var otherNonUSOriginServices = map[string]string{
	"07": "UPS Express",
}

// EU membership snapshot the vendor's service tables are keyed against.
var euCountryCodes = map[string]bool{
	"GB": true, "AT": true, "BE": true, "BG": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true,
}

// US-administered territories that must be addressed as countries.
var usTerritoryCodes = map[string]bool{
	"AS": true, "FM": true, "GU": true, "MH": true,
	"MP": true, "PW": true, "PR": true, "VI": true,
}

var trackingStatusCodes = map[string]domain.TrackingStatus{
	"I": domain.TrackingStatusInTransit,
	"D": domain.TrackingStatusDelivered,
	"X": domain.TrackingStatusException,
	"P": domain.TrackingStatusPickup,
	"M": domain.TrackingStatusManifestPickup,
}

// Countries whose origins are rated in inches and pounds.
var imperialOriginCountries = map[string]bool{
	"US": true,
	"LR": true,
	"MM": true,
}

// serviceNameFor resolves a service code to its display name for the given
// origin country. The tables overlap on codes, so the lookup order matters:
// origin-specific table, then the non-US fallback, then the default table.
func serviceNameFor(originCountry, code string) string {
	var name string
	switch {
	case originCountry == "CA":
		name = canadaOriginServices[code]
	case originCountry == "MX":
		name = mexicoOriginServices[code]
	case euCountryCodes[originCountry]:
		name = euOriginServices[code]
	}
	if name == "" && originCountry != "US" {
		name = otherNonUSOriginServices[code]
	}
	if name == "" {
		name = defaultServices[code]
	}
	return name
}
