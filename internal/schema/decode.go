package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports a decode failure, naming the path of the offending
// field ("data[3].vehicle.year").
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid listing: %s: %s", e.Path, e.Reason)
}

func missing(path string) error {
	return &ValidationError{Path: path, Reason: "required field is missing"}
}

// rawVehicle mirrors the wire shape of a vehicle record. Required fields are
// pointers so absence is distinguishable from the zero value; trim may be a
// string or a number on the wire.
type rawVehicle struct {
	BaseInvoice   *float64        `json:"baseInvoice"`
	BaseMsrp      *float64        `json:"baseMsrp"`
	BodyStyle     *string         `json:"bodyStyle"`
	Confidence    *float64        `json:"confidence"`
	Doors         *int            `json:"doors"`
	Drivetrain    *string         `json:"drivetrain"`
	Engine        *string         `json:"engine"`
	ExteriorColor *string         `json:"exteriorColor"`
	InteriorColor *string         `json:"interiorColor"`
	Fuel          *string         `json:"fuel"`
	Make          *string         `json:"make"`
	Model         json.RawMessage `json:"model"`
	Seats         *int            `json:"seats"`
	Series        *string         `json:"series"`
	SquishVin     *string         `json:"squishVin"`
	Style         *string         `json:"style"`
	Transmission  *string         `json:"transmission"`
	Trim          json.RawMessage `json:"trim"`
	Type          *string         `json:"type"`
	Vin           *string         `json:"vin"`
	Year          *int            `json:"year"`
}

type rawRetail struct {
	CarfaxURL    *string  `json:"carfaxUrl"`
	City         *string  `json:"city"`
	Cpo          *bool    `json:"cpo"`
	Dealer       *string  `json:"dealer"`
	PhotoCount   *int     `json:"photoCount"`
	Price        *float64 `json:"price"`
	PrimaryImage *string  `json:"primaryImage"`
	State        *string  `json:"state"`
	Used         *bool    `json:"used"`
	Vdp          *string  `json:"vdp"`
	Zip          *string  `json:"zip"`
	Miles        *float64 `json:"miles"`
}

type rawListing struct {
	ID        *string         `json:"@id"`
	VIN       *string         `json:"vin"`
	CreatedAt *string         `json:"createdAt"`
	Location  json.RawMessage `json:"location"`
	Online    *bool           `json:"online"`
	Vehicle   *rawVehicle     `json:"vehicle"`
	Retail    *rawRetail      `json:"retailListing"`
	History   *History        `json:"history"`
}

// DecodeListing validates one raw API record and returns the canonical
// Listing with model, make, and fuel normalized. A missing or mistyped
// required field yields a *ValidationError carrying the field path.
func DecodeListing(data []byte) (Listing, error) {
	return decodeListing(data, "")
}

func decodeListing(data []byte, path string) (Listing, error) {
	var raw rawListing
	if err := json.Unmarshal(data, &raw); err != nil {
		return Listing{}, &ValidationError{Path: join(path, "$"), Reason: err.Error()}
	}
	return buildListing(raw, path)
}

//nolint:gocognit // Field-by-field validation is a flat sequence of presence checks.
func buildListing(raw rawListing, path string) (Listing, error) {
	if raw.ID == nil {
		return Listing{}, missing(join(path, "@id"))
	}
	if raw.VIN == nil {
		return Listing{}, missing(join(path, "vin"))
	}
	if raw.CreatedAt == nil {
		return Listing{}, missing(join(path, "createdAt"))
	}
	if raw.Online == nil {
		return Listing{}, missing(join(path, "online"))
	}

	var loc Location
	if raw.Location == nil {
		return Listing{}, missing(join(path, "location"))
	}
	if err := json.Unmarshal(raw.Location, &loc); err != nil {
		return Listing{}, &ValidationError{Path: join(path, "location"), Reason: err.Error()}
	}

	if raw.Vehicle == nil {
		return Listing{}, missing(join(path, "vehicle"))
	}
	vehicle, err := buildVehicle(*raw.Vehicle, join(path, "vehicle"))
	if err != nil {
		return Listing{}, err
	}

	if raw.Retail == nil {
		return Listing{}, missing(join(path, "retailListing"))
	}
	retail, err := buildRetail(*raw.Retail, join(path, "retailListing"))
	if err != nil {
		return Listing{}, err
	}

	return Listing{
		ID:        *raw.ID,
		VIN:       *raw.VIN,
		CreatedAt: *raw.CreatedAt,
		Location:  loc,
		Online:    *raw.Online,
		Vehicle:   vehicle,
		Retail:    retail,
		History:   raw.History,
	}, nil
}

func buildVehicle(raw rawVehicle, path string) (Vehicle, error) {
	if raw.Confidence == nil {
		return Vehicle{}, missing(join(path, "confidence"))
	}
	if raw.Year == nil {
		return Vehicle{}, missing(join(path, "year"))
	}
	if raw.Fuel == nil {
		return Vehicle{}, missing(join(path, "fuel"))
	}
	if raw.Make == nil {
		return Vehicle{}, missing(join(path, "make"))
	}
	if raw.SquishVin == nil {
		return Vehicle{}, missing(join(path, "squishVin"))
	}
	if raw.Model == nil {
		return Vehicle{}, missing(join(path, "model"))
	}

	// The API declares model as string-or-number; both decode to text
	// before normalization.
	model, err := coerceString(raw.Model)
	if err != nil {
		return Vehicle{}, &ValidationError{Path: join(path, "model"), Reason: err.Error()}
	}

	var trim *string
	if raw.Trim != nil {
		t, trimErr := coerceString(raw.Trim)
		if trimErr != nil {
			return Vehicle{}, &ValidationError{Path: join(path, "trim"), Reason: trimErr.Error()}
		}
		trim = &t
	}

	return Vehicle{
		BaseInvoice:   raw.BaseInvoice,
		BaseMsrp:      raw.BaseMsrp,
		BodyStyle:     raw.BodyStyle,
		Confidence:    *raw.Confidence,
		Doors:         raw.Doors,
		Drivetrain:    raw.Drivetrain,
		Engine:        raw.Engine,
		ExteriorColor: raw.ExteriorColor,
		InteriorColor: raw.InteriorColor,
		Fuel:          NormalizeSimple(*raw.Fuel),
		Make:          NormalizeSimple(*raw.Make),
		Model:         NormalizeModel(model),
		Seats:         raw.Seats,
		Series:        raw.Series,
		SquishVin:     *raw.SquishVin,
		Style:         raw.Style,
		Transmission:  raw.Transmission,
		Trim:          trim,
		Type:          raw.Type,
		Vin:           raw.Vin,
		Year:          *raw.Year,
	}, nil
}

func buildRetail(raw rawRetail, path string) (RetailListing, error) {
	if raw.CarfaxURL == nil {
		return RetailListing{}, missing(join(path, "carfaxUrl"))
	}
	if raw.City == nil {
		return RetailListing{}, missing(join(path, "city"))
	}
	if raw.Dealer == nil {
		return RetailListing{}, missing(join(path, "dealer"))
	}
	if raw.PhotoCount == nil {
		return RetailListing{}, missing(join(path, "photoCount"))
	}
	if raw.PrimaryImage == nil {
		return RetailListing{}, missing(join(path, "primaryImage"))
	}
	if raw.State == nil {
		return RetailListing{}, missing(join(path, "state"))
	}
	if raw.Vdp == nil {
		return RetailListing{}, missing(join(path, "vdp"))
	}

	return RetailListing{
		CarfaxURL:    *raw.CarfaxURL,
		City:         *raw.City,
		Cpo:          raw.Cpo,
		Dealer:       *raw.Dealer,
		PhotoCount:   *raw.PhotoCount,
		Price:        raw.Price,
		PrimaryImage: *raw.PrimaryImage,
		State:        *raw.State,
		Used:         raw.Used,
		Vdp:          *raw.Vdp,
		Zip:          raw.Zip,
		Miles:        raw.Miles,
	}, nil
}

// DecodeAPIResponse validates one page body of the listings endpoint,
// shaped as {"data": [...]}.
func DecodeAPIResponse(body []byte) ([]Listing, error) {
	var page struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &ValidationError{Path: "$", Reason: err.Error()}
	}
	if page.Data == nil {
		return nil, missing("data")
	}

	listings := make([]Listing, 0, len(page.Data))
	for i, raw := range page.Data {
		l, err := decodeListing(raw, fmt.Sprintf("data[%d]", i))
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// DecodeCached validates a cache-store value. Cached listings were written
// already normalized, so decoding them again is the identity transform.
func DecodeCached(data []byte) (CachedListings, error) {
	var raw struct {
		Timestamp *int64            `json:"timestamp"`
		Listings  []json.RawMessage `json:"listings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return CachedListings{}, &ValidationError{Path: "$", Reason: err.Error()}
	}
	if raw.Timestamp == nil {
		return CachedListings{}, missing("timestamp")
	}
	if raw.Listings == nil {
		return CachedListings{}, missing("listings")
	}

	listings := make([]Listing, 0, len(raw.Listings))
	for i, data := range raw.Listings {
		l, err := decodeListing(data, fmt.Sprintf("listings[%d]", i))
		if err != nil {
			return CachedListings{}, err
		}
		listings = append(listings, l)
	}
	return CachedListings{Timestamp: *raw.Timestamp, Listings: listings}, nil
}

// coerceString accepts a JSON string or number and returns its text form.
func coerceString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("expected string or number, got %s", strings.TrimSpace(string(raw)))
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
