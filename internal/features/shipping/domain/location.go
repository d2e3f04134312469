package domain

// Location represents a postal address participating in a carrier request or response.
type Location struct {
	// CompanyName is the company at this address, when known.
	CompanyName string `json:"company_name,omitempty"`
	// AttentionName is the contact person at this address.
	AttentionName string `json:"attention_name,omitempty"`
	// Address1 is the first street address line.
	Address1 string `json:"address1,omitempty"`
	// Address2 is the second street address line.
	Address2 string `json:"address2,omitempty"`
	// Address3 is the third street address line.
	Address3 string `json:"address3,omitempty"`
	// City is the city or locality.
	City string `json:"city,omitempty"`
	// Province is the state or province code.
	Province string `json:"province,omitempty"`
	// PostalCode is the postal or ZIP code.
	PostalCode string `json:"postal_code,omitempty"`
	// Country is the ISO 3166-1 alpha-2 country code.
	Country string `json:"country"`
	// Phone is a contact phone number; non-digits are stripped before transmission.
	Phone string `json:"phone,omitempty"`
	// Fax is a contact fax number; non-digits are stripped before transmission.
	Fax string `json:"fax,omitempty"`
	// Commercial marks the address as a business destination. Unknown addresses
	// are treated as residential so the carrier quotes the safe, non-discounted rate.
	Commercial bool `json:"commercial,omitempty"`
}
