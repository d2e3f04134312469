package adapter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carrier-gateway/internal/core/config"
	"carrier-gateway/internal/features/shipping/domain"
)

// stubTransport records the submitted request and replies with a canned body.
type stubTransport struct {
	endpoint string
	body     string
	test     bool
	response []byte
	err      error
}

func (s *stubTransport) Submit(endpoint, body string, test bool) ([]byte, error) {
	s.endpoint = endpoint
	s.body = body
	s.test = test
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func testUPSConfig() config.UPSConfig {
	return config.UPSConfig{
		AccessKey:       "key",
		UserID:          "user",
		Password:        "secret",
		TestMode:        true,
		PickupType:      "daily_pickup",
		LabelPrintCode:  "GIF",
		LabelFormatCode: "GIF",
		HTTPUserAgent:   "Mozilla/4.5",
	}
}

func newTestAdapter(transport Transport) *UPSAdapter {
	return NewUPSAdapter(testUPSConfig(), transport, zap.NewNop())
}

// TestUPSAdapter_FindRates verifies endpoint selection, the two-document
// request body and raw request/response capture.
func TestUPSAdapter_FindRates(t *testing.T) {
	transport := &stubTransport{response: []byte(rateSuccessXML)}
	ups := newTestAdapter(transport)

	origin := domain.Location{City: "Fulton", Province: "MO", Country: "US"}
	destination := domain.Location{City: "Ottawa", Province: "ON", Country: "CA"}
	packages := []domain.Package{{Length: 10, Width: 10, Height: 10, Weight: 1}}

	result, err := ups.FindRates(origin, destination, packages, domain.RequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ups.app/xml/Rate", transport.endpoint)
	assert.True(t, transport.test)

	accessIdx := strings.Index(transport.body, "<AccessRequest>")
	rateIdx := strings.Index(transport.body, "<RatingServiceSelectionRequest>")
	require.GreaterOrEqual(t, accessIdx, 0)
	require.GreaterOrEqual(t, rateIdx, 0)
	assert.Less(t, accessIdx, rateIdx)
	assert.Equal(t, 2, strings.Count(transport.body, "<?xml"))

	assert.True(t, result.Success)
	assert.Len(t, result.Rates, 2)
	assert.Equal(t, transport.body, result.RawRequest)
	assert.Equal(t, rateSuccessXML, result.RawResponse)
}

// TestUPSAdapter_FindRates_LiveOverride verifies the per-request test flag
// overrides the configured default.
func TestUPSAdapter_FindRates_LiveOverride(t *testing.T) {
	transport := &stubTransport{response: []byte(rateSuccessXML)}
	ups := newTestAdapter(transport)

	live := false
	_, err := ups.FindRates(domain.Location{Country: "US"}, domain.Location{Country: "US"},
		[]domain.Package{{Length: 1, Width: 1, Height: 1, Weight: 1}},
		domain.RequestOptions{Test: &live})
	require.NoError(t, err)

	assert.False(t, transport.test)
}

// TestUPSAdapter_FindRates_ClassificationDefault verifies the classification
// code derives from the pickup type when not set explicitly.
func TestUPSAdapter_FindRates_ClassificationDefault(t *testing.T) {
	transport := &stubTransport{response: []byte(rateSuccessXML)}
	ups := newTestAdapter(transport)

	_, err := ups.FindRates(domain.Location{Country: "US"}, domain.Location{Country: "US"},
		[]domain.Package{{Length: 1, Width: 1, Height: 1, Weight: 1}},
		domain.RequestOptions{PickupType: "customer_counter"})
	require.NoError(t, err)

	assert.Contains(t, transport.body, "<PickupType><Code>03</Code></PickupType>")
	assert.Contains(t, transport.body, "<CustomerClassification><Code>04</Code></CustomerClassification>")
}

// TestUPSAdapter_USTerritories verifies territories addressed as US states
// are rewritten into their own country codes.
func TestUPSAdapter_USTerritories(t *testing.T) {
	transport := &stubTransport{response: []byte(rateSuccessXML)}
	ups := newTestAdapter(transport)

	destination := domain.Location{City: "San Juan", Province: "PR", Country: "US"}
	_, err := ups.FindRates(domain.Location{Country: "US"}, destination,
		[]domain.Package{{Length: 1, Width: 1, Height: 1, Weight: 1}},
		domain.RequestOptions{})
	require.NoError(t, err)

	assert.Contains(t, transport.body, "<CountryCode>PR</CountryCode>")
	assert.NotContains(t, transport.body, "<StateProvinceCode>PR</StateProvinceCode>")
}

func TestUPSAdapter_FindTrackingInfo(t *testing.T) {
	transport := &stubTransport{response: []byte(trackingDeliveredXML)}
	ups := newTestAdapter(transport)

	result, err := ups.FindTrackingInfo("1Z12345E0291980793")
	require.NoError(t, err)

	assert.Equal(t, "ups.app/xml/Track", transport.endpoint)
	assert.Contains(t, transport.body, "<TrackingNumber>1Z12345E0291980793</TrackingNumber>")
	assert.Equal(t, domain.TrackingStatusDelivered, result.Status)
}

func TestUPSAdapter_ConfirmShipment(t *testing.T) {
	transport := &stubTransport{response: []byte(confirmSuccessXML)}
	ups := newTestAdapter(transport)

	result, err := ups.ConfirmShipment(domain.ShipmentRequest{
		Origin:      domain.Location{CompanyName: "Acme", Country: "US"},
		Destination: domain.Location{CompanyName: "Globex", Country: "US"},
		Packages:    []domain.Package{{Length: 10, Width: 10, Height: 10, Weight: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "ups.app/xml/ShipConfirm", transport.endpoint)
	assert.True(t, result.Success)
	assert.Equal(t, "rO0ABXNyAC9jb20=", result.Digest)
}

// TestUPSAdapter_AcceptShipment verifies the digest travels to the gateway
// unmodified.
func TestUPSAdapter_AcceptShipment(t *testing.T) {
	transport := &stubTransport{response: []byte(acceptSuccessXML)}
	ups := newTestAdapter(transport)

	digest := "rO0ABXNyAC9jb20="
	result, err := ups.AcceptShipment(digest, domain.RequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ups.app/xml/ShipAccept", transport.endpoint)
	assert.Contains(t, transport.body, "<ShipmentDigest>"+digest+"</ShipmentDigest>")
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "1Z12345E8791315509", result.Packages[0].TrackingNumber)
}

func TestUPSAdapter_VoidShipment(t *testing.T) {
	transport := &stubTransport{response: []byte(voidSuccessXML)}
	ups := newTestAdapter(transport)

	result, err := ups.VoidShipment("1Z12345E0390817264",
		[]string{"1Z12345E0193075439"}, domain.RequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ups.app/xml/Void", transport.endpoint)
	assert.Contains(t, transport.body, "<ExpandedVoidShipment>")
	assert.True(t, result.Success)
}

func TestUPSAdapter_ValidateAddress(t *testing.T) {
	transport := &stubTransport{response: []byte(addressValidationXML)}
	ups := newTestAdapter(transport)

	result, err := ups.ValidateAddress(domain.Location{
		Address1: "100 Main St", City: "Fulton", Province: "MO",
		PostalCode: "65251", Country: "US",
	}, domain.RequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ups.app/xml/XAV", transport.endpoint)
	assert.Len(t, result.Candidates, 2)
}

func TestUPSAdapter_TransportError(t *testing.T) {
	transport := &stubTransport{err: errors.New("connection refused")}
	ups := newTestAdapter(transport)

	_, err := ups.FindTrackingInfo("1Z12345E0291980793")
	assert.Error(t, err)
}
