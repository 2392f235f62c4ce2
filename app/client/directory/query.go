package directory

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultLimit       = 20
	defaultMaxDistance = 500000
	defaultFields      = "basic"
)

// Point is a geographic coordinate pair as returned by the directory.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Query describes one point-of-interest search. Zero-value optional fields
// are left out of the request entirely, the API treats a missing filter as
// "no filtering".
type Query struct {
	// Pagination start item index
	Skip int
	// Pagination page size, defaults to 20
	Limit int

	// Geo coordinates for nearby search
	Latitude  *float64
	Longitude *float64

	// Nearby search distance bounds in meters; MaxDistance defaults to 500 km
	MinDistance int
	MaxDistance int

	// Filter the points by categories, logical OR
	Categories []string
	// Filter the points by organizations
	Organizations []string

	City    string
	Country string

	Approved *bool
	Active   *bool

	// Filter by author/admin username
	Author string
	Admin  string

	// Format of the returned points: "compact", "basic" or "full"
	Fields string
}

func (q Query) withDefaults() Query {
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.MaxDistance == 0 {
		q.MaxDistance = defaultMaxDistance
	}
	if q.Fields == "" {
		q.Fields = defaultFields
	}

	return q
}

func (q Query) values() url.Values {
	params := url.Values{}

	params.Set("skip", strconv.Itoa(q.Skip))
	params.Set("limit", strconv.Itoa(q.Limit))

	if q.Latitude != nil {
		params.Set("latitude", strconv.FormatFloat(*q.Latitude, 'f', -1, 64))
	}
	if q.Longitude != nil {
		params.Set("longitude", strconv.FormatFloat(*q.Longitude, 'f', -1, 64))
	}

	params.Set("min_distance", strconv.Itoa(q.MinDistance))
	params.Set("max_distance", strconv.Itoa(q.MaxDistance))

	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ", "))
	}
	if len(q.Organizations) > 0 {
		params.Set("organizations", strings.Join(q.Organizations, ", "))
	}

	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.Country != "" {
		params.Set("country", q.Country)
	}

	if q.Approved != nil {
		params.Set("approved", strconv.FormatBool(*q.Approved))
	}
	if q.Active != nil {
		params.Set("active", strconv.FormatBool(*q.Active))
	}

	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if q.Admin != "" {
		params.Set("admin", q.Admin)
	}

	params.Set("add_distance", "true")
	params.Set("fields", q.Fields)

	return params
}
