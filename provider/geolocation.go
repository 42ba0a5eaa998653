package provider

import (
	"context"
	"fmt"

	"campus-navigator/model"
	"campus-navigator/navigation"
)

// 定位错误，都包装 navigation.ErrGeoUnavailable
var (
	ErrPermissionDenied       = fmt.Errorf("%w: permission denied", navigation.ErrGeoUnavailable)
	ErrPositionTimeout        = fmt.Errorf("%w: timeout", navigation.ErrGeoUnavailable)
	ErrPositionUnavailable    = fmt.Errorf("%w: position unavailable", navigation.ErrGeoUnavailable)
	ErrGeolocationUnsupported = fmt.Errorf("%w: unsupported", navigation.ErrGeoUnavailable)
)

// 浏览器 GeolocationPositionError 对应的错误码
const (
	CodePermissionDenied    = "permission_denied"
	CodePositionUnavailable = "position_unavailable"
	CodeTimeout             = "timeout"
	CodeUnsupported         = "unsupported"
)

// FixedGeolocation 固定坐标 (命令行、开发环境)
type FixedGeolocation struct {
	Point model.Point
}

func (g FixedGeolocation) CurrentPosition(ctx context.Context) (model.Point, error) {
	if err := ctx.Err(); err != nil {
		return model.Point{}, err
	}
	return g.Point, nil
}

// Unsupported 没有定位能力 (服务端默认)
type Unsupported struct{}

func (Unsupported) CurrentPosition(context.Context) (model.Point, error) {
	return model.Point{}, ErrGeolocationUnsupported
}

// Reported 浏览器上报的定位结果，一次请求对应一次定位
type Reported struct {
	Point *model.Point
	Code  string // 浏览器定位失败时的错误码
}

// CurrentPosition 实现 navigation.GeolocationProvider
func (r Reported) CurrentPosition(ctx context.Context) (model.Point, error) {
	if r.Code != "" {
		return model.Point{}, CodeError(r.Code)
	}
	if r.Point == nil {
		return model.Point{}, ErrGeolocationUnsupported
	}
	return *r.Point, nil
}

// CodeError 浏览器错误码转换为定位错误
func CodeError(code string) error {
	switch code {
	case CodePermissionDenied:
		return ErrPermissionDenied
	case CodeTimeout:
		return ErrPositionTimeout
	case CodePositionUnavailable:
		return ErrPositionUnavailable
	case CodeUnsupported:
		return ErrGeolocationUnsupported
	default:
		return fmt.Errorf("%w: %s", navigation.ErrGeoUnavailable, code)
	}
}
