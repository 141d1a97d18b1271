package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geocode"
)

func (a *Api) geocodeHandler(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		a.failedValidationResponse(w, r, map[string]string{"address": "address must be provided"})
		return
	}

	p, err := a.geocoder.Geocode(r.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrNotFound):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("geocode %q: %w", address, err))
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, &coordinatesResp{Lat: p.Lat, Lng: p.Lng}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
