package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLocation = errors.New("invalid event location")

type LocationKind string

const (
	LocationAddress  LocationKind = "address"
	LocationGeoPoint LocationKind = "geo_point"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is where the event takes place: either a free-text address or a
// geographic point. Kind selects which of Address or Point is meaningful.
type Location struct {
	Kind    LocationKind
	Address string
	Point   GeoPoint
}

func AddressLocation(address string) Location {
	return Location{Kind: LocationAddress, Address: strings.TrimSpace(address)}
}

func GeoPointLocation(lat, lon float64) Location {
	return Location{Kind: LocationGeoPoint, Point: GeoPoint{Latitude: lat, Longitude: lon}}
}

func (l Location) Validate() error {
	switch l.Kind {
	case LocationAddress:
		if strings.TrimSpace(l.Address) == "" {
			return fmt.Errorf("%w: address is empty", ErrInvalidLocation)
		}
	case LocationGeoPoint:
		if l.Point.Latitude < -90 || l.Point.Latitude > 90 {
			return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, l.Point.Latitude)
		}
		if l.Point.Longitude < -180 || l.Point.Longitude > 180 {
			return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, l.Point.Longitude)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidLocation, l.Kind)
	}
	return nil
}

func (l Location) String() string {
	switch l.Kind {
	case LocationAddress:
		return l.Address
	case LocationGeoPoint:
		return fmt.Sprintf("%.6f,%.6f", l.Point.Latitude, l.Point.Longitude)
	}
	return ""
}

type locationWire struct {
	Kind      LocationKind `json:"kind,omitempty"`
	Address   *string      `json:"address,omitempty"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Longitude *float64     `json:"longitude,omitempty"`
}

func (l Location) MarshalJSON() ([]byte, error) {
	w := locationWire{Kind: l.Kind}
	switch l.Kind {
	case LocationAddress:
		w.Address = &l.Address
	case LocationGeoPoint:
		w.Latitude = &l.Point.Latitude
		w.Longitude = &l.Point.Longitude
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidLocation, l.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the tagged form as well as a bare address string or a
// bare {latitude, longitude} object.
func (l *Location) UnmarshalJSON(data []byte) error {
	var address string
	if err := json.Unmarshal(data, &address); err == nil {
		*l = AddressLocation(address)
		return nil
	}

	var w locationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	kind := w.Kind
	if kind == "" {
		switch {
		case w.Latitude != nil && w.Longitude != nil:
			kind = LocationGeoPoint
		case w.Address != nil:
			kind = LocationAddress
		}
	}

	switch kind {
	case LocationAddress:
		if w.Address == nil {
			return fmt.Errorf("%w: address missing", ErrInvalidLocation)
		}
		*l = AddressLocation(*w.Address)
	case LocationGeoPoint:
		if w.Latitude == nil || w.Longitude == nil {
			return fmt.Errorf("%w: latitude and longitude required", ErrInvalidLocation)
		}
		*l = GeoPointLocation(*w.Latitude, *w.Longitude)
	default:
		return fmt.Errorf("%w: cannot determine location kind", ErrInvalidLocation)
	}
	return nil
}
