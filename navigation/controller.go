package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"campus-navigator/catalog"
	"campus-navigator/model"

	"github.com/google/uuid"
)

// DefaultGeolocationTimeout 定位的最长等待时间，超时按定位失败处理
const DefaultGeolocationTimeout = 10 * time.Second

// 方向请求结果 (用于指标)
const (
	OutcomeSuccess       = "success"
	OutcomeNotFound      = "not_found"
	OutcomeProviderError = "provider_error"
	OutcomeSuperseded    = "superseded"
	OutcomeRejected      = "rejected"
)

// Options 控制器配置
type Options struct {
	Fallback           model.Point   // 定位失败时使用的校园中心
	GeolocationTimeout time.Duration // 0 表示使用默认值
	Logger             *slog.Logger
	Notifier           Notifier
	Recorder           Recorder
}

// Controller 导航控制器，独占 Session
//
// 锁只在状态迁移时持有，调用外部服务时不持锁。
// 每次发出的方向请求都带着发出时的 generation，SelectLocation / ClearRoute
// 会递增 generation，过期请求返回时直接丢弃结果 (逻辑取消)。
type Controller struct {
	catalog    *catalog.Catalog
	geo        GeolocationProvider
	directions DirectionsProvider
	opts       Options
	log        *slog.Logger

	mu          sync.Mutex
	session     Session
	position    *model.UserPosition
	generation  uint64
	version     uint64
	selections  uint64
	positionSeq uint64 // 已发出的定位请求序号
	appliedSeq  uint64 // 已生效的定位请求序号
	observers   []Observer
}

// NewController 创建控制器，初始状态为 Idle
func NewController(cat *catalog.Catalog, geo GeolocationProvider, directions DirectionsProvider, opts Options) *Controller {
	if opts.GeolocationTimeout <= 0 {
		opts.GeolocationTimeout = DefaultGeolocationTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	return &Controller{
		catalog:    cat,
		geo:        geo,
		directions: directions,
		opts:       opts,
		log:        opts.Logger,
	}
}

// Catalog 控制器使用的地点目录
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Subscribe 注册观察者，并立即推送一次当前快照
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	o.SessionChanged(snap)
}

// SelectLocation 选择目的地：清除旧路线，并让正在进行的方向请求失效
func (c *Controller) SelectLocation(loc model.Location) {
	c.mu.Lock()
	selected := loc
	c.generation++
	c.selections++
	c.session = Session{Selected: &selected}
	snap, observers := c.changedLocked()
	c.mu.Unlock()

	c.log.Debug("选择地点", "location_id", loc.ID, "name", loc.Name)
	c.publish(observers, snap)
}

// SelectLocationByID 按 ID 选择目的地 (地图标记点击也走这里)
func (c *Controller) SelectLocationByID(id int) error {
	loc, err := c.catalog.Get(id)
	if err != nil {
		return err
	}
	c.SelectLocation(loc)
	return nil
}

// ClearRoute 清除路线，幂等
func (c *Controller) ClearRoute() {
	c.mu.Lock()
	if !c.session.RouteActive && c.session.Route == nil && !c.session.LoadingDirections {
		c.mu.Unlock()
		return
	}
	c.generation++
	c.session.RouteActive = false
	c.session.Route = nil
	c.session.LoadingDirections = false
	snap, observers := c.changedLocked()
	c.mu.Unlock()

	c.publish(observers, snap)
}

// AcquireUserPosition 使用控制器自带的定位服务获取用户位置
func (c *Controller) AcquireUserPosition(ctx context.Context) model.UserPosition {
	return c.AcquireUserPositionFrom(ctx, c.geo)
}

// AcquireUserPositionFrom 使用指定的定位服务获取用户位置
//
// 定位失败 (拒绝、超时、不支持) 时退回校园中心并发出提示，
// 调用结束后用户一定有一个可用的位置。
func (c *Controller) AcquireUserPositionFrom(ctx context.Context, geo GeolocationProvider) model.UserPosition {
	c.mu.Lock()
	c.positionSeq++
	seq := c.positionSeq
	c.mu.Unlock()

	pos := model.UserPosition{Source: model.SourceDevice}
	p, err := c.locate(ctx, geo)
	if err != nil {
		c.log.Warn("定位失败, 使用校园中心坐标", "error", err)
		pos = model.UserPosition{Position: c.opts.Fallback, Source: model.SourceFallback}
	} else {
		pos.Position = p
	}
	pos.AcquiredAt = time.Now()

	c.mu.Lock()
	if seq < c.appliedSeq {
		// 更新的定位结果已经生效
		current := *c.position
		c.mu.Unlock()
		return current
	}
	c.appliedSeq = seq
	c.position = &pos
	snap, observers := c.changedLocked()
	c.mu.Unlock()

	c.opts.Recorder.PositionAcquired(pos.Source)
	if pos.IsFallback() {
		c.opts.Notifier.Notify(Notice{
			Title:       "Location access denied",
			Description: "Using the campus center as your starting point. Enable location access for accurate directions",
			Variant:     NoticeDestructive,
		})
	}
	c.publish(observers, snap)
	return pos
}

// locate 在限定时间内等待定位结果；定位服务不理会 ctx 时也不会卡住调用方
func (c *Controller) locate(ctx context.Context, geo GeolocationProvider) (model.Point, error) {
	if geo == nil {
		return model.Point{}, fmt.Errorf("%w: no geolocation provider", ErrGeoUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.GeolocationTimeout)
	defer cancel()

	type result struct {
		p   model.Point
		err error
	}
	ch := make(chan result, 1)
	go func() {
		p, err := geo.CurrentPosition(ctx)
		ch <- result{p: p, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, ErrGeoUnavailable) {
				return model.Point{}, r.err
			}
			return model.Point{}, fmt.Errorf("%w: %w", ErrGeoUnavailable, r.err)
		}
		if !r.p.Valid() {
			return model.Point{}, fmt.Errorf("%w: invalid coordinate %s", ErrGeoUnavailable, r.p)
		}
		return r.p, nil
	case <-ctx.Done():
		return model.Point{}, fmt.Errorf("%w: %w", ErrGeoUnavailable, ctx.Err())
	}
}

// RequestDirections 从用户位置到选中地点请求步行路线
//
// 前置条件不满足或已有请求在进行时同步拒绝，不调用方向服务，状态不变。
// 服务失败时会话回到 LocationSelected，返回 *RouteError，不自动重试。
func (c *Controller) RequestDirections(ctx context.Context) (*model.Route, error) {
	c.mu.Lock()
	var precondition error
	switch {
	case c.session.Selected == nil:
		precondition = ErrNoDestination
	case c.position == nil:
		precondition = ErrNoPosition
	case c.session.LoadingDirections:
		c.mu.Unlock()
		c.opts.Recorder.DirectionsResult(OutcomeRejected)
		return nil, &PreconditionError{Err: ErrBusy}
	}
	if precondition != nil {
		c.mu.Unlock()
		c.opts.Recorder.DirectionsResult(OutcomeRejected)
		c.opts.Notifier.Notify(Notice{
			Title:       "Cannot get directions",
			Description: "Please ensure location access is enabled and a destination is selected",
			Variant:     NoticeDestructive,
		})
		return nil, &PreconditionError{Err: precondition}
	}

	tag := c.generation
	dest := *c.session.Selected
	req := RouteRequest{
		Origin:      c.position.Position,
		Destination: dest.Position,
		Mode:        model.ModeWalking,
	}
	c.session.LoadingDirections = true
	snap, observers := c.changedLocked()
	c.mu.Unlock()
	c.publish(observers, snap)

	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "location_id", dest.ID)
	log.Info("请求路线", "origin", req.Origin.String(), "destination", req.Destination.String())

	route, err := c.directions.Route(ctx, req)
	if err == nil && route == nil {
		err = fmt.Errorf("%w: empty response", ErrProvider)
	}

	c.mu.Lock()
	if tag != c.generation {
		c.mu.Unlock()
		log.Info("选择已变化, 丢弃过期的路线结果")
		c.opts.Recorder.DirectionsResult(OutcomeSuperseded)
		return nil, ErrSuperseded
	}

	c.session.LoadingDirections = false
	if err != nil {
		c.session.RouteActive = false
		c.session.Route = nil
		snap, observers = c.changedLocked()
		c.mu.Unlock()

		routeErr := &RouteError{LocationID: dest.ID, Err: classify(err)}
		outcome := OutcomeProviderError
		if errors.Is(routeErr, ErrRouteNotFound) {
			outcome = OutcomeNotFound
		}
		log.Warn("路线请求失败", "error", err)
		c.opts.Recorder.DirectionsResult(outcome)
		c.opts.Notifier.Notify(Notice{
			Title:       "Error getting directions",
			Description: "Could not calculate route to the selected location",
			Variant:     NoticeDestructive,
		})
		c.publish(observers, snap)
		return nil, routeErr
	}

	c.session.Route = cloneRoute(route)
	c.session.RouteActive = true
	snap, observers = c.changedLocked()
	c.mu.Unlock()

	log.Info("路线已加载", "distance_m", route.DistanceMeters, "duration_s", route.DurationSeconds)
	c.opts.Recorder.DirectionsResult(OutcomeSuccess)
	c.opts.Notifier.Notify(Notice{
		Title:       "Directions loaded",
		Description: fmt.Sprintf("Route to %s found", dest.Name),
		Variant:     NoticeDefault,
	})
	c.publish(observers, snap)
	return cloneRoute(route), nil
}

// classify 没有标明类型的服务错误统一归为 ErrProvider
func classify(err error) error {
	if errors.Is(err, ErrRouteNotFound) || errors.Is(err, ErrProvider) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProvider, err)
}

// Snapshot 当前会话的只读快照
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Position 当前用户位置，尚未定位时返回 false
func (c *Controller) Position() (model.UserPosition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.position == nil {
		return model.UserPosition{}, false
	}
	return *c.position, true
}

func (c *Controller) changedLocked() (Snapshot, []Observer) {
	c.version++
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	return c.snapshotLocked(), observers
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Version:           c.version,
		Selection:         c.selections,
		State:             c.session.State(),
		RouteActive:       c.session.RouteActive,
		Route:             cloneRoute(c.session.Route),
		LoadingDirections: c.session.LoadingDirections,
	}
	if c.session.Selected != nil {
		loc := *c.session.Selected
		s.Selected = &loc
	}
	if c.position != nil {
		pos := *c.position
		s.Position = &pos
	}
	if s.Route != nil {
		s.Display = NewDisplay(s.Route)
	}
	return s
}

func (c *Controller) publish(observers []Observer, s Snapshot) {
	for _, o := range observers {
		o.SessionChanged(s)
	}
}
