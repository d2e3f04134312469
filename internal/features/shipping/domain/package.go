package domain

const (
	cmPerInch = 2.54
	lbsPerKg  = 2.20462262
)

// Product is a customs line item declared for an international shipment.
type Product struct {
	// Description is the commodity description shown on customs forms.
	Description string `json:"description"`
	// Value is the declared monetary value of the product.
	Value float64 `json:"value"`
	// TariffCode is the harmonized tariff / commodity code.
	TariffCode string `json:"tariff_code,omitempty"`
}

// Package is a physical shipment unit. Dimensions are stored in centimeters
// and weight in kilograms; imperial values are derived on request depending
// on the shipment origin.
type Package struct {
	// Length, Width and Height are the package dimensions in centimeters.
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Weight is the package weight in kilograms.
	Weight float64 `json:"weight"`
	// Value is the declared monetary value; zero means no insured value block.
	Value float64 `json:"value,omitempty"`
	// Currency qualifies Value; defaults to USD when blank.
	Currency string `json:"currency,omitempty"`
	// Description is an optional human-readable description of the contents.
	Description string `json:"description,omitempty"`
	// Products lists customs declarations; a non-empty list makes the shipment international.
	Products []Product `json:"products,omitempty"`
}

// DimensionsIn returns length, width and height in inches when imperial is
// true, centimeters otherwise.
func (p Package) DimensionsIn(imperial bool) (length, width, height float64) {
	if imperial {
		return p.Length / cmPerInch, p.Width / cmPerInch, p.Height / cmPerInch
	}
	return p.Length, p.Width, p.Height
}

// WeightIn returns the weight in pounds when imperial is true, kilograms otherwise.
func (p Package) WeightIn(imperial bool) float64 {
	if imperial {
		return p.Weight * lbsPerKg
	}
	return p.Weight
}
