package grpc

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/queries"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
)

// stubMediator records the last request it received and returns a
// preconfigured response, so serviceImpl's bridging can be tested without
// a live warehouse.Store or real handlers wired up.
type stubMediator struct {
	lastRequest mediator.Request
	response    mediator.Response
	err         error
}

func (m *stubMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.lastRequest = request
	return m.response, m.err
}

func (m *stubMediator) Register(reflect.Type, mediator.RequestHandler) error { return nil }
func (m *stubMediator) RegisterMiddleware(mediator.Middleware)               {}

func TestServiceImplTickBridging(t *testing.T) {
	m := &stubMediator{response: &commands.TickResponse{Tick: 7}}
	s := &serviceImpl{mediator: m}

	resp, err := s.Tick(context.Background(), &warehousepb.TickRequest{})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Tick)
	assert.IsType(t, &commands.TickCommand{}, m.lastRequest)
}

func TestServiceImplSubmitOrderBridging(t *testing.T) {
	m := &stubMediator{response: &commands.SubmitOrderResponse{ID: 42}}
	s := &serviceImpl{mediator: m}

	req := &warehousepb.SubmitOrderRequest{ID: 42, Kind: 0, GateID: 1, Items: map[int]int{5: 3}}
	resp, err := s.SubmitOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 42, resp.ID)

	sent, ok := m.lastRequest.(*commands.SubmitOrderCommand)
	require.True(t, ok)
	assert.Equal(t, 42, sent.ID)
	assert.Equal(t, 1, sent.GateID)
	assert.Equal(t, map[int]int{5: 3}, sent.Items)
}

func TestServiceImplRunStateBridging(t *testing.T) {
	m := &stubMediator{response: &commands.RunStateResponse{State: control.Paused}}
	s := &serviceImpl{mediator: m}

	resp, err := s.Pause(context.Background(), &warehousepb.PauseRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(control.Paused), resp.State)
	assert.IsType(t, &commands.PauseCommand{}, m.lastRequest)
}

func TestServiceImplGetWarehouseSnapshotBridging(t *testing.T) {
	m := &stubMediator{response: &queries.GetWarehouseSnapshotResponse{
		Tick: 3,
		Agents: []queries.AgentSnapshot{{ID: 1, Status: "READY", Row: 0, Col: 0}},
	}}
	s := &serviceImpl{mediator: m}

	resp, err := s.GetWarehouseSnapshot(context.Background(), &warehousepb.GetWarehouseSnapshotRequest{GateID: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Tick)
	require.Len(t, resp.Agents, 1)
	assert.Equal(t, "READY", resp.Agents[0].Status)

	sent, ok := m.lastRequest.(*queries.GetWarehouseSnapshotQuery)
	require.True(t, ok)
	assert.Equal(t, 2, sent.GateID)
}
