package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-navigator/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValhallaDirections_Route(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req valhallaRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pedestrian", req.Costing)
		if assert.Len(t, req.Locations, 2) {
			assert.Equal(t, 12.8225, req.Locations[0].Lat)
			assert.Equal(t, 80.0470, req.Locations[1].Lon)
		}

		w.Write([]byte(`{"trip":{
			"summary":{"length":0.43,"time":330},
			"legs":[{
				"shape":"_p~iF~ps|U",
				"maneuvers":[
					{"type":1,"instruction":"Walk north.","length":0.2,"time":150},
					{"type":4,"instruction":"You have arrived at your destination.","length":0.23,"time":180}
				]
			}]
		}}`))
	}))
	defer srv.Close()

	v := NewValhallaDirections(srv.URL+"/", time.Second)
	route, err := v.Route(context.Background(), walkToSports)
	require.NoError(t, err)

	assert.InDelta(t, 430, route.DistanceMeters, 1e-9)
	assert.Equal(t, 330.0, route.DurationSeconds)
	require.Len(t, route.Steps, 2)
	assert.Equal(t, "Walk north.", route.Steps[0].Instruction)
	assert.InDelta(t, 200, route.Steps[0].DistanceMeters, 1e-9)
	require.Len(t, route.Path, 1)
	assert.InDelta(t, 3.85, route.Path[0].Lat, 1e-9)
}

func TestValhallaDirections_NoPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code":442,"error":"No path could be found for input","status_code":400}`))
	}))
	defer srv.Close()

	_, err := NewValhallaDirections(srv.URL, time.Second).Route(context.Background(), walkToSports)
	assert.ErrorIs(t, err, navigation.ErrRouteNotFound)
}

func TestValhallaDirections_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewValhallaDirections(srv.URL, time.Second).Route(context.Background(), walkToSports)
	assert.ErrorIs(t, err, navigation.ErrProvider)
	assert.NotErrorIs(t, err, navigation.ErrRouteNotFound)
}
