package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"campus-navigator/model"
	"campus-navigator/navigation"
	"campus-navigator/utils"
)

// GoogleDirectionsURL Google Directions API 地址
const GoogleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

type googleValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type googleStep struct {
	HTMLInstructions string      `json:"html_instructions"`
	Distance         googleValue `json:"distance"`
	Duration         googleValue `json:"duration"`
}

type googleLeg struct {
	Distance googleValue  `json:"distance"`
	Duration googleValue  `json:"duration"`
	Steps    []googleStep `json:"steps"`
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs             []googleLeg `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// GoogleDirections 基于 Google Directions API 的方向服务
type GoogleDirections struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewGoogleDirections 创建 Google 方向服务，baseURL 为空时使用官方地址
func NewGoogleDirections(apiKey, baseURL string, timeout time.Duration) *GoogleDirections {
	if baseURL == "" {
		baseURL = GoogleDirectionsURL
	}
	return &GoogleDirections{
		APIKey:  apiKey,
		BaseURL: baseURL,
		client:  newHTTPClient(timeout),
	}
}

func googleMode(mode model.TravelMode) string {
	if mode == "" {
		return string(model.ModeWalking)
	}
	return string(mode)
}

// Route 实现 navigation.DirectionsProvider
func (g *GoogleDirections) Route(ctx context.Context, req navigation.RouteRequest) (*model.Route, error) {
	params := url.Values{
		"origin":      {req.Origin.String()},
		"destination": {req.Destination.String()},
		"mode":        {googleMode(req.Mode)},
		"key":         {g.APIKey},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", navigation.ErrProvider, requestError(err))
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request google directions: %v", navigation.ErrProvider, requestError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", navigation.ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: google directions returned status %d: %s", navigation.ErrProvider, resp.StatusCode, string(body))
	}

	var gResp googleResponse
	if err := json.Unmarshal(body, &gResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", navigation.ErrProvider, err)
	}

	switch gResp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, fmt.Errorf("%w: google status %s", navigation.ErrRouteNotFound, gResp.Status)
	default:
		return nil, fmt.Errorf("%w: google status %s: %s", navigation.ErrProvider, gResp.Status, gResp.ErrorMessage)
	}

	if len(gResp.Routes) == 0 || len(gResp.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: google returned no legs", navigation.ErrRouteNotFound)
	}

	// 只有两个途经点，所以只有一段 leg；多段时累加
	first := gResp.Routes[0]
	route := &model.Route{}
	for _, leg := range first.Legs {
		route.DistanceMeters += leg.Distance.Value
		route.DurationSeconds += leg.Duration.Value
		for _, step := range leg.Steps {
			route.Steps = append(route.Steps, model.Step{
				Instruction:     plainText(step.HTMLInstructions),
				DistanceMeters:  step.Distance.Value,
				DurationSeconds: step.Duration.Value,
			})
		}
	}

	path, err := utils.DecodePolyline(first.OverviewPolyline.Points, 5)
	if err != nil {
		return nil, fmt.Errorf("%w: decode polyline: %v", navigation.ErrProvider, err)
	}
	route.Path = path

	return route, nil
}
