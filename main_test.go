package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"campus-navigator/catalog"
	"campus-navigator/config"
	"campus-navigator/model"
	"campus-navigator/navigation"
	"campus-navigator/provider"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedDirections struct {
	route *model.Route
	err   error
}

func (f fixedDirections) Route(context.Context, navigation.RouteRequest) (*model.Route, error) {
	return f.route, f.err
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("12.8240, 80.0445")
	require.NoError(t, err)
	assert.Equal(t, model.Point{Lat: 12.8240, Lng: 80.0445}, p)

	for _, bad := range []string{"", "12.8", "a,b", "91,0", "0,181"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewDirections(t *testing.T) {
	d, err := newDirections(config.DirectionsConfig{Provider: config.ProviderGoogle, GoogleAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &provider.GoogleDirections{}, d)

	d, err = newDirections(config.DirectionsConfig{Provider: config.ProviderValhalla, ValhallaURL: "http://localhost:8002"})
	require.NoError(t, err)
	assert.IsType(t, &provider.ValhallaDirections{}, d)

	_, err = newDirections(config.DirectionsConfig{Provider: "osrm"})
	assert.Error(t, err)
}

func testCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestRunDirections(t *testing.T) {
	cmd, out, errOut := testCommand()
	route := &model.Route{
		DistanceMeters:  850,
		DurationSeconds: 610,
		Steps:           []model.Step{{Instruction: "Head south", DistanceMeters: 120}},
	}
	geoCfg := config.GeolocationConfig{Timeout: time.Second, FallbackLat: 12.8230, FallbackLng: 80.0444}

	err := runDirections(context.Background(), cmd, catalog.Default(), provider.Unsupported{},
		fixedDirections{route: route}, geoCfg, 7)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "To:       Food Court")
	assert.Contains(t, out.String(), "Distance: 850 m")
	assert.Contains(t, out.String(), "Duration: 10 min")
	assert.Contains(t, out.String(), "1. Head south (120 m)")
	assert.Contains(t, out.String(), "fallback-default")
	assert.Contains(t, out.String(), "Near:     Main Building (0 m)")
	assert.Contains(t, errOut.String(), "Location access denied")
	assert.Contains(t, errOut.String(), "Directions loaded")
}

func TestRunDirections_Errors(t *testing.T) {
	geoCfg := config.GeolocationConfig{Timeout: time.Second, FallbackLat: 12.8230, FallbackLng: 80.0444}
	here := provider.FixedGeolocation{Point: model.Point{Lat: 12.8240, Lng: 80.0445}}

	cmd, _, _ := testCommand()
	err := runDirections(context.Background(), cmd, catalog.Default(), here, fixedDirections{}, geoCfg, 99)
	assert.ErrorContains(t, err, "99")

	cmd, _, errOut := testCommand()
	err = runDirections(context.Background(), cmd, catalog.Default(), here,
		fixedDirections{err: navigation.ErrRouteNotFound}, geoCfg, 2)
	assert.ErrorIs(t, err, navigation.ErrRouteNotFound)
	assert.Contains(t, errOut.String(), "Error getting directions")
}

func TestLocationsCommand(t *testing.T) {
	t.Setenv("CAMPUS_CATALOG_FILE", "")

	cmd := newLocationsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"block", "--category", "residence"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Hostel Block A")
	assert.Contains(t, out.String(), "Hostel Block B")
	assert.NotContains(t, out.String(), "Engineering Block")

	cmd = newLocationsCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--category", "parking"})
	assert.Error(t, cmd.Execute())
}
