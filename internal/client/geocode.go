package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geocode"
)

// Geocode resolves an address through the backend's cached geocoding proxy.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Point, error) {
	resp := &Coordinates{}
	if err := c.do(ctx, http.MethodGet, "/geocode", url.Values{"address": {address}}, nil, resp); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return geo.Point{}, geocode.ErrNotFound
		}
		return geo.Point{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	return geo.Point{Lat: resp.Lat, Lng: resp.Lng}, nil
}
