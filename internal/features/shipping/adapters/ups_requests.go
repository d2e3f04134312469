package adapter

import (
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"carrier-gateway/internal/features/shipping/domain"
)

// Request documents of the carrier's XML contract. Field order defines
// element order, which the vendor schema requires.

type accessRequest struct {
	XMLName             xml.Name `xml:"AccessRequest"`
	AccessLicenseNumber string   `xml:"AccessLicenseNumber"`
	UserID              string   `xml:"UserId"`
	Password            string   `xml:"Password"`
}

type requestHeader struct {
	RequestAction string `xml:"RequestAction"`
	RequestOption string `xml:"RequestOption,omitempty"`
}

type codeNode struct {
	Code string `xml:"Code"`
}

type monetaryNode struct {
	CurrencyCode  string `xml:"CurrencyCode"`
	MonetaryValue string `xml:"MonetaryValue"`
}

type addressNode struct {
	AddressLine1                string `xml:"AddressLine1,omitempty"`
	AddressLine2                string `xml:"AddressLine2,omitempty"`
	AddressLine3                string `xml:"AddressLine3,omitempty"`
	City                        string `xml:"City,omitempty"`
	StateProvinceCode           string `xml:"StateProvinceCode,omitempty"`
	PostalCode                  string `xml:"PostalCode,omitempty"`
	CountryCode                 string `xml:"CountryCode,omitempty"`
	ResidentialAddressIndicator string `xml:"ResidentialAddressIndicator,omitempty"`
}

type locationNode struct {
	PhoneNumber                         string      `xml:"PhoneNumber,omitempty"`
	FaxNumber                           string      `xml:"FaxNumber,omitempty"`
	ShipperNumber                       string      `xml:"ShipperNumber,omitempty"`
	ShipperAssignedIdentificationNumber string      `xml:"ShipperAssignedIdentificationNumber,omitempty"`
	Address                             addressNode `xml:"Address"`
}

type dimensionsNode struct {
	UnitOfMeasurement codeNode `xml:"UnitOfMeasurement"`
	Length            string   `xml:"Length"`
	Width             string   `xml:"Width"`
	Height            string   `xml:"Height"`
}

type weightNode struct {
	UnitOfMeasurement codeNode `xml:"UnitOfMeasurement"`
	Weight            string   `xml:"Weight"`
}

type packageServiceOptions struct {
	InsuredValue monetaryNode `xml:"InsuredValue"`
}

type packageNode struct {
	PackagingType         codeNode               `xml:"PackagingType"`
	Dimensions            dimensionsNode         `xml:"Dimensions"`
	PackageWeight         weightNode             `xml:"PackageWeight"`
	PackageServiceOptions *packageServiceOptions `xml:"PackageServiceOptions,omitempty"`
}

type rateInformation struct {
	NegotiatedRatesIndicator struct{} `xml:"NegotiatedRatesIndicator"`
}

type rateShipment struct {
	Shipper         locationNode     `xml:"Shipper"`
	ShipTo          locationNode     `xml:"ShipTo"`
	ShipFrom        *locationNode    `xml:"ShipFrom,omitempty"`
	Packages        []packageNode    `xml:"Package"`
	RateInformation *rateInformation `xml:"RateInformation,omitempty"`
}

type rateRequest struct {
	XMLName                xml.Name      `xml:"RatingServiceSelectionRequest"`
	Request                requestHeader `xml:"Request"`
	PickupType             codeNode      `xml:"PickupType"`
	CustomerClassification codeNode      `xml:"CustomerClassification"`
	Shipment               rateShipment  `xml:"Shipment"`
}

type trackRequest struct {
	XMLName        xml.Name      `xml:"TrackRequest"`
	Request        requestHeader `xml:"Request"`
	TrackingNumber string        `xml:"TrackingNumber"`
}

type blanketPeriod struct {
	BeginDate string `xml:"BeginDate"`
	EndDate   string `xml:"EndDate"`
}

type contactsNode struct {
	Producer struct {
		Option string `xml:"Option"`
	} `xml:"Producer"`
}

type productUnit struct {
	Number            string   `xml:"Number"`
	UnitOfMeasurement codeNode `xml:"UnitOfMeasurement"`
	Value             string   `xml:"Value"`
}

type productWeight struct {
	UnitOfMeasurement codeNode `xml:"UnitOfMeasurement"`
	Weight            string   `xml:"Weight"`
}

type productNode struct {
	Description                  string        `xml:"Description"`
	Unit                         productUnit   `xml:"Unit"`
	CommodityCode                string        `xml:"CommodityCode"`
	PartNumber                   string        `xml:"PartNumber"`
	OriginCountryCode            string        `xml:"OriginCountryCode"`
	NetCostCode                  string        `xml:"NetCostCode"`
	PreferenceCriteria           string        `xml:"PreferenceCriteria"`
	ProducerInfo                 string        `xml:"ProducerInfo"`
	NumberOfPackagesPerCommodity string        `xml:"NumberOfPackagesPerCommodity"`
	ProductWeight                productWeight `xml:"ProductWeight"`
}

type internationalForms struct {
	FormTypes        []string      `xml:"FormType"`
	BlanketPeriod    blanketPeriod `xml:"BlanketPeriod"`
	Contacts         contactsNode  `xml:"Contacts"`
	Products         []productNode `xml:"Product"`
	InvoiceDate      string        `xml:"InvoiceDate"`
	ReasonForExport  string        `xml:"ReasonForExport"`
	TermsOfShipment  string        `xml:"TermsOfShipment"`
	CurrencyCode     string        `xml:"CurrencyCode"`
	ExportDate       string        `xml:"ExportDate"`
	ExportingCarrier string        `xml:"ExportingCarrier"`
}

type shipmentServiceOptions struct {
	InternationalForms internationalForms `xml:"InternationalForms"`
}

type shipperNode struct {
	Name          string      `xml:"Name"`
	AttentionName string      `xml:"AttentionName,omitempty"`
	ShipperNumber string      `xml:"ShipperNumber"`
	PhoneNumber   string      `xml:"PhoneNumber,omitempty"`
	Address       addressNode `xml:"Address"`
}

type shipToNode struct {
	CompanyName   string      `xml:"CompanyName"`
	AttentionName string      `xml:"AttentionName,omitempty"`
	PhoneNumber   string      `xml:"PhoneNumber,omitempty"`
	Address       addressNode `xml:"Address"`
}

type soldToNode struct {
	CompanyName   string      `xml:"CompanyName"`
	AttentionName string      `xml:"AttentionName,omitempty"`
	PhoneNumber   string      `xml:"PhoneNumber,omitempty"`
	Option        string      `xml:"Option"`
	Address       addressNode `xml:"Address"`
}

type serviceNode struct {
	Code        string `xml:"Code"`
	Description string `xml:"Description"`
}

type accountNode struct {
	AccountNumber string `xml:"AccountNumber"`
}

type shipmentCharge struct {
	Type        string      `xml:"Type"`
	BillShipper accountNode `xml:"BillShipper"`
}

type itemizedPaymentInformation struct {
	ShipmentCharges []shipmentCharge `xml:"ShipmentCharge"`
}

type paymentInformation struct {
	Prepaid struct {
		BillShipper accountNode `xml:"BillShipper"`
	} `xml:"Prepaid"`
}

// confirmPackage emits an optional shipment-level Description element
// immediately before its Package element. The schema interleaves the two,
// which a plain struct field cannot express.
type confirmPackage struct {
	Description string
	Package     packageNode
}

func (p confirmPackage) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if p.Description != "" {
		if err := e.EncodeElement(p.Description, xml.StartElement{Name: xml.Name{Local: "Description"}}); err != nil {
			return err
		}
	}
	return e.EncodeElement(p.Package, xml.StartElement{Name: xml.Name{Local: "Package"}})
}

type confirmShipment struct {
	Description                string                      `xml:"Description,omitempty"`
	InvoiceLineTotal           *monetaryNode               `xml:"InvoiceLineTotal,omitempty"`
	ShipmentServiceOptions     *shipmentServiceOptions     `xml:"ShipmentServiceOptions,omitempty"`
	Shipper                    shipperNode                 `xml:"Shipper"`
	ShipTo                     shipToNode                  `xml:"ShipTo"`
	SoldTo                     soldToNode                  `xml:"SoldTo"`
	Service                    serviceNode                 `xml:"Service"`
	ItemizedPaymentInformation *itemizedPaymentInformation `xml:"ItemizedPaymentInformation,omitempty"`
	PaymentInformation         *paymentInformation         `xml:"PaymentInformation,omitempty"`
	Packages                   []confirmPackage            `xml:"Package"`
}

type labelSpecification struct {
	LabelPrintMethod codeNode `xml:"LabelPrintMethod"`
	HTTPUserAgent    string   `xml:"HTTPUserAgent"`
	LabelImageFormat codeNode `xml:"LabelImageFormat"`
}

type confirmRequest struct {
	XMLName            xml.Name           `xml:"ShipmentConfirmRequest"`
	Request            requestHeader      `xml:"Request"`
	Shipment           confirmShipment    `xml:"Shipment"`
	LabelSpecification labelSpecification `xml:"LabelSpecification"`
}

type acceptRequest struct {
	XMLName        xml.Name      `xml:"ShipmentAcceptRequest"`
	Request        requestHeader `xml:"Request"`
	ShipmentDigest string        `xml:"ShipmentDigest"`
}

type expandedVoidShipment struct {
	ShipmentIdentificationNumber string   `xml:"ShipmentIdentificationNumber"`
	TrackingNumbers              []string `xml:"TrackingNumber"`
}

type voidShipmentRequest struct {
	XMLName                      xml.Name              `xml:"VoidShipmentRequest"`
	Request                      requestHeader         `xml:"Request"`
	ShipmentIdentificationNumber string                `xml:"ShipmentIdentificationNumber,omitempty"`
	ExpandedVoidShipment         *expandedVoidShipment `xml:"ExpandedVoidShipment,omitempty"`
}

type addressKeyFormat struct {
	AddressLines       []string `xml:"AddressLine"`
	PoliticalDivision2 string   `xml:"PoliticalDivision2"`
	PoliticalDivision1 string   `xml:"PoliticalDivision1"`
	PostcodePrimaryLow string   `xml:"PostcodePrimaryLow"`
	CountryCode        string   `xml:"CountryCode"`
}

type addressValidationRequest struct {
	XMLName          xml.Name         `xml:"AddressValidationRequest"`
	Request          requestHeader    `xml:"Request"`
	AddressKeyFormat addressKeyFormat `xml:"AddressKeyFormat"`
}

var nonDigits = regexp.MustCompile(`\D`)

func digitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// truncate35 trims contact names to the 35-character limit the schema imposes.
func truncate35(s string) string {
	if len(s) > 35 {
		return s[:35]
	}
	return s
}

// roundMeasurement rounds to three decimals and floors at the carrier's
// non-zero minimum of 0.1.
func roundMeasurement(v float64) float64 {
	v = math.Round(v*1000) / 1000
	if v < 0.1 {
		return 0.1
	}
	return v
}

func formatMeasurement(v float64) string {
	return strconv.FormatFloat(roundMeasurement(v), 'f', -1, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}

const upsDateLayout = "20060102"

func marshalDoc(doc interface{}) (string, error) {
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request document: %w", err)
	}
	return string(out), nil
}

func buildAccessRequest(accessKey, userID, password string) (string, error) {
	return marshalDoc(accessRequest{
		AccessLicenseNumber: accessKey,
		UserID:              userID,
		Password:            password,
	})
}

// buildAddressNode maps a location to the shared address block. The
// residential indicator defaults to true so that the carrier quotes the
// safe rate for destinations it does not recognize.
func buildAddressNode(loc domain.Location) addressNode {
	node := addressNode{
		AddressLine1:      loc.Address1,
		AddressLine2:      loc.Address2,
		AddressLine3:      loc.Address3,
		City:              loc.City,
		StateProvinceCode: loc.Province,
		PostalCode:        loc.PostalCode,
		CountryCode:       loc.Country,
	}
	if !loc.Commercial {
		node.ResidentialAddressIndicator = "true"
	}
	return node
}

// buildLocationNode maps a location to a shipper/recipient block. Account
// numbers attach according to role: origin accounts to the shipper element,
// destination accounts to the recipient as an assigned identification.
func buildLocationNode(loc domain.Location, originAccount, destinationAccount string) locationNode {
	return locationNode{
		PhoneNumber:                         digitsOnly(loc.Phone),
		FaxNumber:                           digitsOnly(loc.Fax),
		ShipperNumber:                       originAccount,
		ShipperAssignedIdentificationNumber: destinationAccount,
		Address:                             buildAddressNode(loc),
	}
}

func buildPackageNode(pkg domain.Package, imperial bool) packageNode {
	dimensionUnit, weightUnit := "CM", "KGS"
	if imperial {
		dimensionUnit, weightUnit = "IN", "LBS"
	}

	length, width, height := pkg.DimensionsIn(imperial)

	node := packageNode{
		PackagingType: codeNode{Code: "02"},
		Dimensions: dimensionsNode{
			UnitOfMeasurement: codeNode{Code: dimensionUnit},
			Length:            formatMeasurement(length),
			Width:             formatMeasurement(width),
			Height:            formatMeasurement(height),
		},
		PackageWeight: weightNode{
			UnitOfMeasurement: codeNode{Code: weightUnit},
			Weight:            formatMeasurement(pkg.WeightIn(imperial)),
		},
	}

	if pkg.Value > 0 {
		node.PackageServiceOptions = &packageServiceOptions{
			InsuredValue: monetaryNode{
				CurrencyCode:  currencyOrDefault(pkg.Currency),
				MonetaryValue: formatMoney(pkg.Value),
			},
		}
	}

	return node
}

func buildRateRequest(origin, destination domain.Location, packages []domain.Package, opts resolvedOptions) (string, error) {
	shipper := origin
	if opts.shipperAccountLocation != nil {
		shipper = *opts.shipperAccountLocation
	}

	doc := rateRequest{
		Request: requestHeader{
			RequestAction: "Rate",
			RequestOption: "Shop",
		},
		PickupType:             codeNode{Code: pickupCodes[opts.pickupType]},
		CustomerClassification: codeNode{Code: customerClassifications[opts.customerClassification]},
		Shipment: rateShipment{
			Shipper: buildLocationNode(shipper, opts.originAccount, ""),
			ShipTo:  buildLocationNode(destination, "", opts.destinationAccount),
		},
	}

	if opts.shipperAccountLocation != nil && *opts.shipperAccountLocation != origin {
		shipFrom := buildLocationNode(origin, "", "")
		doc.Shipment.ShipFrom = &shipFrom
	}

	imperial := imperialOriginCountries[origin.Country]
	for _, pkg := range packages {
		doc.Shipment.Packages = append(doc.Shipment.Packages, buildPackageNode(pkg, imperial))
	}

	if opts.originAccount != "" {
		doc.Shipment.RateInformation = &rateInformation{}
	}

	return marshalDoc(doc)
}

func buildTrackingRequest(trackingNumber string) (string, error) {
	return marshalDoc(trackRequest{
		Request: requestHeader{
			RequestAction: "Track",
			RequestOption: "1",
		},
		TrackingNumber: trackingNumber,
	})
}

// buildConfirmationRequest builds the shipment confirm document. A shipment
// is international when any package declares customs products; international
// shipments carry the full forms block and itemized payment entries.
func buildConfirmationRequest(req domain.ShipmentRequest, opts resolvedOptions, now time.Time) (string, error) {
	imperial := imperialOriginCountries[req.Origin.Country]

	international := false
	for _, pkg := range req.Packages {
		if len(pkg.Products) > 0 {
			international = true
			break
		}
	}

	serviceCode := req.ServiceCode
	if serviceCode == "" {
		serviceCode = "14"
	}
	serviceDescription := defaultServices[serviceCode]
	if serviceDescription == "" {
		serviceDescription = defaultServices["14"]
	}

	shipment := confirmShipment{
		Shipper: shipperNode{
			Name:          req.Origin.CompanyName,
			AttentionName: truncate35(req.Origin.AttentionName),
			ShipperNumber: opts.originAccount,
			PhoneNumber:   digitsOnly(req.Origin.Phone),
			Address:       buildAddressNode(req.Origin),
		},
		ShipTo: shipToNode{
			CompanyName:   truncate35(req.Destination.CompanyName),
			AttentionName: truncate35(req.Destination.AttentionName),
			PhoneNumber:   digitsOnly(req.Destination.Phone),
			Address:       buildAddressNode(req.Destination),
		},
		SoldTo: soldToNode{
			CompanyName:   truncate35(req.Destination.CompanyName),
			AttentionName: truncate35(req.Destination.AttentionName),
			PhoneNumber:   digitsOnly(req.Destination.Phone),
			Option:        "01",
			Address:       buildAddressNode(req.Destination),
		},
		Service: serviceNode{
			Code:        serviceCode,
			Description: serviceDescription,
		},
	}

	if international {
		shipment.Description = "Clothes and clothing accessories"

		if req.Destination.Country == "CA" {
			var total float64
			for _, pkg := range req.Packages {
				for _, product := range pkg.Products {
					total += product.Value
				}
			}
			shipment.InvoiceLineTotal = &monetaryNode{
				CurrencyCode:  "USD",
				MonetaryValue: strconv.Itoa(int(total)),
			}
		}

		weightUnit := "KGS"
		if imperial {
			weightUnit = "LBS"
		}

		forms := internationalForms{
			FormTypes: []string{"01", "03", "04"},
			BlanketPeriod: blanketPeriod{
				BeginDate: now.Format(upsDateLayout),
				EndDate:   now.AddDate(0, 11, 0).Format(upsDateLayout),
			},
			InvoiceDate:      now.Format(upsDateLayout),
			ReasonForExport:  "SALE",
			TermsOfShipment:  "DDP",
			CurrencyCode:     "USD",
			ExportDate:       now.Format(upsDateLayout),
			ExportingCarrier: "UPS",
		}
		forms.Contacts.Producer.Option = "02"

		for _, pkg := range req.Packages {
			for _, product := range pkg.Products {
				forms.Products = append(forms.Products, productNode{
					Description: product.Description,
					Unit: productUnit{
						Number:            "1",
						UnitOfMeasurement: codeNode{Code: "PC"},
						Value:             formatMoney(product.Value),
					},
					CommodityCode:                product.TariffCode,
					PartNumber:                   "1",
					OriginCountryCode:            "US",
					NetCostCode:                  "NO",
					PreferenceCriteria:           "B",
					ProducerInfo:                 "No[1]",
					NumberOfPackagesPerCommodity: "1",
					ProductWeight: productWeight{
						UnitOfMeasurement: codeNode{Code: weightUnit},
						Weight:            "3",
					},
				})
			}
		}

		shipment.ShipmentServiceOptions = &shipmentServiceOptions{InternationalForms: forms}

		shipment.ItemizedPaymentInformation = &itemizedPaymentInformation{
			ShipmentCharges: []shipmentCharge{
				{Type: "01", BillShipper: accountNode{AccountNumber: opts.originAccount}},
				{Type: "02", BillShipper: accountNode{AccountNumber: opts.originAccount}},
			},
		}
	} else {
		payment := &paymentInformation{}
		payment.Prepaid.BillShipper.AccountNumber = opts.originAccount
		shipment.PaymentInformation = payment
	}

	for _, pkg := range req.Packages {
		shipment.Packages = append(shipment.Packages, confirmPackage{
			Description: pkg.Description,
			Package:     buildPackageNode(pkg, imperial),
		})
	}

	doc := confirmRequest{
		Request: requestHeader{
			RequestAction: "ShipConfirm",
			RequestOption: "nonvalidate",
		},
		Shipment: shipment,
		LabelSpecification: labelSpecification{
			LabelPrintMethod: codeNode{Code: opts.labelPrintCode},
			HTTPUserAgent:    opts.userAgent,
			LabelImageFormat: codeNode{Code: opts.labelFormatCode},
		},
	}

	return marshalDoc(doc)
}

func buildAcceptanceRequest(digest string) (string, error) {
	return marshalDoc(acceptRequest{
		Request:        requestHeader{RequestAction: "ShipAccept"},
		ShipmentDigest: digest,
	})
}

// buildVoidRequest voids a whole shipment, or individual packages of it when
// tracking numbers are supplied (expanded void).
func buildVoidRequest(identificationNumber string, trackingNumbers []string) (string, error) {
	doc := voidShipmentRequest{
		Request: requestHeader{
			RequestAction: "Void",
			RequestOption: "1",
		},
	}

	if len(trackingNumbers) == 0 {
		doc.ShipmentIdentificationNumber = identificationNumber
	} else {
		doc.ExpandedVoidShipment = &expandedVoidShipment{
			ShipmentIdentificationNumber: identificationNumber,
			TrackingNumbers:              trackingNumbers,
		}
	}

	return marshalDoc(doc)
}

func buildAddressValidationRequest(address domain.Location) (string, error) {
	return marshalDoc(addressValidationRequest{
		Request: requestHeader{RequestAction: "XAV"},
		AddressKeyFormat: addressKeyFormat{
			AddressLines:       []string{address.Address1, address.Address2},
			PoliticalDivision2: address.City,
			PoliticalDivision1: address.Province,
			PostcodePrimaryLow: address.PostalCode,
			CountryCode:        address.Country,
		},
	})
}
