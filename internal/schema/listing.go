// Package schema defines the canonical listing shape returned by the
// auto.dev listings API, the decoder that validates raw API records into it,
// and the text-normalization rules applied to vehicle model, make, and fuel.
package schema

import (
	"encoding/json"
	"fmt"
)

// Location is a (latitude, longitude) pair, encoded on the wire as a
// two-element JSON array.
type Location [2]float64

// MarshalJSON encodes the location as a JSON array.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64(l))
}

// UnmarshalJSON decodes a two-element JSON array into the location.
func (l *Location) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("location must have exactly 2 elements, got %d", len(pair))
	}
	l[0], l[1] = pair[0], pair[1]
	return nil
}

// Lat returns the latitude component.
func (l Location) Lat() float64 { return l[0] }

// Lon returns the longitude component.
func (l Location) Lon() float64 { return l[1] }

// Vehicle describes the vehicle attached to a listing. Model, Make, and Fuel
// hold normalized text. Optional descriptive fields are nil when the API
// omits them.
type Vehicle struct {
	BaseInvoice   *float64 `json:"baseInvoice,omitempty"`
	BaseMsrp      *float64 `json:"baseMsrp,omitempty"`
	BodyStyle     *string  `json:"bodyStyle,omitempty"`
	Confidence    float64  `json:"confidence"`
	Doors         *int     `json:"doors,omitempty"`
	Drivetrain    *string  `json:"drivetrain,omitempty"`
	Engine        *string  `json:"engine,omitempty"`
	ExteriorColor *string  `json:"exteriorColor,omitempty"`
	InteriorColor *string  `json:"interiorColor,omitempty"`
	Fuel          string   `json:"fuel"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	Seats         *int     `json:"seats,omitempty"`
	Series        *string  `json:"series,omitempty"`
	SquishVin     string   `json:"squishVin"`
	Style         *string  `json:"style,omitempty"`
	Transmission  *string  `json:"transmission,omitempty"`
	Trim          *string  `json:"trim,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Vin           *string  `json:"vin,omitempty"`
	Year          int      `json:"year"`
}

// RetailListing describes the retail offer attached to a listing.
// Price is nil when the dealer has not disclosed one.
type RetailListing struct {
	CarfaxURL    string   `json:"carfaxUrl"`
	City         string   `json:"city"`
	Cpo          *bool    `json:"cpo,omitempty"`
	Dealer       string   `json:"dealer"`
	PhotoCount   int      `json:"photoCount"`
	Price        *float64 `json:"price,omitempty"`
	PrimaryImage string   `json:"primaryImage"`
	State        string   `json:"state"`
	Used         *bool    `json:"used,omitempty"`
	Vdp          string   `json:"vdp"`
	Zip          *string  `json:"zip,omitempty"`
	Miles        *float64 `json:"miles,omitempty"`
}

// History holds vehicle-history data. The API returns null when no history
// is available, in which case the whole record is absent.
type History struct {
	AccidentCount *int    `json:"accidentCount,omitempty"`
	Accidents     *bool   `json:"accidents,omitempty"`
	OneOwner      *bool   `json:"oneOwner,omitempty"`
	OwnerCount    *int    `json:"ownerCount,omitempty"`
	PersonalUse   *bool   `json:"personalUse,omitempty"`
	UsageType     *string `json:"usageType,omitempty"`
}

// Listing is one vehicle offer. Identity (ID, VIN) is immutable once
// constructed.
type Listing struct {
	ID         string        `json:"@id"`
	VIN        string        `json:"vin"`
	CreatedAt  string        `json:"createdAt"`
	Location   Location      `json:"location"`
	Online     bool          `json:"online"`
	Vehicle    Vehicle       `json:"vehicle"`
	Retail     RetailListing `json:"retailListing"`
	History    *History      `json:"history"`
}

// IsCpo reports whether the listing is certified pre-owned.
func (l Listing) IsCpo() bool {
	return l.Retail.Cpo != nil && *l.Retail.Cpo
}

// CachedListings is the snapshot written to the cache store after a full
// fetch: the fetch time in epoch milliseconds plus every listing retrieved.
type CachedListings struct {
	Timestamp int64     `json:"timestamp"`
	Listings  []Listing `json:"listings"`
}

// EncodeCached serializes a cache snapshot. Listings are already normalized,
// so encoding is the identity on their text fields.
func EncodeCached(c CachedListings) ([]byte, error) {
	return json.Marshal(c)
}
