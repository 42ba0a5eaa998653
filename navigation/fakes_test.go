package navigation

import (
	"context"
	"sync"

	"campus-navigator/model"

	"github.com/stretchr/testify/mock"
)

type fakeGeo struct {
	p     model.Point
	err   error
	block bool // 无视 ctx 一直阻塞
}

func (g *fakeGeo) CurrentPosition(ctx context.Context) (model.Point, error) {
	if g.block {
		select {}
	}
	return g.p, g.err
}

type mockDirections struct {
	mock.Mock
}

func (m *mockDirections) Route(ctx context.Context, req RouteRequest) (*model.Route, error) {
	args := m.Called(ctx, req)
	route, _ := args.Get(0).(*model.Route)
	return route, args.Error(1)
}

type reply struct {
	route *model.Route
	err   error
}

// gatedDirections 每次调用都把请求发到 calls，然后等待测试通过 replies 放行
type gatedDirections struct {
	calls   chan RouteRequest
	replies chan reply
}

func newGatedDirections() *gatedDirections {
	return &gatedDirections{
		calls:   make(chan RouteRequest, 4),
		replies: make(chan reply),
	}
}

func (g *gatedDirections) Route(ctx context.Context, req RouteRequest) (*model.Route, error) {
	g.calls <- req
	r := <-g.replies
	return r.route, r.err
}

type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *noticeLog) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *noticeLog) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.notices))
	for _, notice := range n.notices {
		out = append(out, notice.Title)
	}
	return out
}

type countingRecorder struct {
	mu        sync.Mutex
	outcomes  map[string]int
	positions map[model.PositionSource]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		outcomes:  map[string]int{},
		positions: map[model.PositionSource]int{},
	}
}

func (r *countingRecorder) DirectionsResult(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

func (r *countingRecorder) PositionAcquired(source model.PositionSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions[source]++
}

func (r *countingRecorder) outcome(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[name]
}

type rendererCall struct {
	op      string
	id      int
	markers int
	route   *model.Route
	center  model.Point
	zoom    int
}

type recordingRenderer struct {
	mu    sync.Mutex
	calls []rendererCall
}

func (r *recordingRenderer) record(c rendererCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *recordingRenderer) SetMarkers(locations []model.Location) {
	r.record(rendererCall{op: "markers", markers: len(locations)})
}

func (r *recordingRenderer) Highlight(id int) {
	r.record(rendererCall{op: "highlight", id: id})
}

func (r *recordingRenderer) DrawRoute(route *model.Route) {
	r.record(rendererCall{op: "route", route: route})
}

func (r *recordingRenderer) CenterOn(center model.Point, zoom int) {
	r.record(rendererCall{op: "center", center: center, zoom: zoom})
}

func (r *recordingRenderer) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.op)
	}
	return out
}

func (r *recordingRenderer) last(op string) (rendererCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].op == op {
			return r.calls[i], true
		}
	}
	return rendererCall{}, false
}

func (r *recordingRenderer) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
