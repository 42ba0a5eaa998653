package navigation

import (
	"errors"
	"fmt"
)

// 定位失败 (权限被拒、无硬件、超时) —— 在控制器内部兜底，不会向外传播
var ErrGeoUnavailable = errors.New("geolocation unavailable")

// 方向服务失败
var (
	ErrRouteNotFound = errors.New("no route found")
	ErrProvider      = errors.New("directions provider error")
)

// 前置条件不满足，同步拒绝，不发起网络请求
var (
	ErrNoDestination = errors.New("no destination selected")
	ErrNoPosition    = errors.New("no user position yet")
	ErrBusy          = errors.New("directions request already in flight")
)

// ErrSuperseded 请求返回时选择已经变化，结果被丢弃
var ErrSuperseded = errors.New("directions request superseded")

// PreconditionError 前置条件错误
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot get directions: %v", e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// RouteError 可恢复的路线错误，会话回到 LocationSelected
type RouteError struct {
	LocationID int
	Err        error
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("directions to location %d failed: %v", e.LocationID, e.Err)
}

func (e *RouteError) Unwrap() error { return e.Err }

// IsPrecondition 判断是否为前置条件错误
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
