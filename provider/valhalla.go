package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"campus-navigator/model"
	"campus-navigator/navigation"
	"campus-navigator/utils"
)

type valhallaLocation struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
}

type valhallaRequest struct {
	Locations []valhallaLocation `json:"locations"`
	Costing   string             `json:"costing"`
	Units     string             `json:"units"`
}

type valhallaManeuver struct {
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	Length      float64 `json:"length"` // 公里
	Time        float64 `json:"time"`   // 秒
}

type valhallaLeg struct {
	Maneuvers []valhallaManeuver `json:"maneuvers"`
	Shape     string             `json:"shape"`
}

type valhallaResponse struct {
	Trip struct {
		Legs    []valhallaLeg `json:"legs"`
		Summary struct {
			Time   float64 `json:"time"`
			Length float64 `json:"length"`
		} `json:"summary"`
	} `json:"trip"`
}

type valhallaError struct {
	ErrorCode int    `json:"error_code"`
	Error     string `json:"error"`
}

// Valhalla "找不到路径" 相关错误码
var valhallaNoRouteCodes = map[int]bool{
	171: true, // No suitable edges near location
	442: true, // No path could be found for input
	443: true, // Exact route match algorithm failed to find path
}

// ValhallaDirections 基于自建 Valhalla 的方向服务
type ValhallaDirections struct {
	BaseURL string
	client  *http.Client
}

// NewValhallaDirections 创建 Valhalla 方向服务
func NewValhallaDirections(baseURL string, timeout time.Duration) *ValhallaDirections {
	return &ValhallaDirections{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

func valhallaCosting(mode model.TravelMode) string {
	switch mode {
	case model.ModeWalking, "":
		return "pedestrian"
	default:
		return string(mode)
	}
}

// Route 实现 navigation.DirectionsProvider
func (v *ValhallaDirections) Route(ctx context.Context, req navigation.RouteRequest) (*model.Route, error) {
	vReq := valhallaRequest{
		Locations: []valhallaLocation{
			{Lat: req.Origin.Lat, Lon: req.Origin.Lng, Type: "break"},
			{Lat: req.Destination.Lat, Lon: req.Destination.Lng, Type: "break"},
		},
		Costing: valhallaCosting(req.Mode),
		Units:   "kilometers",
	}

	payload, err := json.Marshal(vReq)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", navigation.ErrProvider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+"/route", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", navigation.ErrProvider, requestError(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request valhalla: %v", navigation.ErrProvider, requestError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", navigation.ErrProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		var vErr valhallaError
		if json.Unmarshal(body, &vErr) == nil && valhallaNoRouteCodes[vErr.ErrorCode] {
			return nil, fmt.Errorf("%w: valhalla %d: %s", navigation.ErrRouteNotFound, vErr.ErrorCode, vErr.Error)
		}
		return nil, fmt.Errorf("%w: valhalla returned status %d: %s", navigation.ErrProvider, resp.StatusCode, string(body))
	}

	var vResp valhallaResponse
	if err := json.Unmarshal(body, &vResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", navigation.ErrProvider, err)
	}
	if len(vResp.Trip.Legs) == 0 {
		return nil, fmt.Errorf("%w: valhalla returned no legs", navigation.ErrRouteNotFound)
	}

	route := &model.Route{
		DistanceMeters:  vResp.Trip.Summary.Length * 1000,
		DurationSeconds: vResp.Trip.Summary.Time,
	}
	for _, leg := range vResp.Trip.Legs {
		for _, m := range leg.Maneuvers {
			route.Steps = append(route.Steps, model.Step{
				Instruction:     m.Instruction,
				DistanceMeters:  m.Length * 1000,
				DurationSeconds: m.Time,
			})
		}
		// Valhalla 的 shape 精度为 6
		points, err := utils.DecodePolyline(leg.Shape, 6)
		if err != nil {
			return nil, fmt.Errorf("%w: decode shape: %v", navigation.ErrProvider, err)
		}
		route.Path = append(route.Path, points...)
	}

	return route, nil
}
