package shard

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardkeep/dshard/control"
	"github.com/shardkeep/dshard/gateway"
)

func testRuntime(t *testing.T) (*Runtime, *control.Channel) {
	t.Helper()
	ctrl := control.NewChannel()
	logger := logrus.New()
	logger.Out = io.Discard
	opts := gateway.Options{Shard: gateway.ShardID{ID: 1, Total: 4}}
	rt := New(opts, ctrl, logrus.NewEntry(logger))

	// Run normally starts the control loop that turns a manager grant into
	// an Admit/Await wake-up; these tests drive Admit/Await without Run.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go rt.controlLoop(ctx)

	return rt, ctrl
}

func TestOnDebugRedactsToken(t *testing.T) {
	ctrl := control.NewChannel()
	logger := logrus.New()
	logger.Out = io.Discard
	opts := gateway.Options{Shard: gateway.ShardID{ID: 1, Total: 4}, Token: "super-secret-token"}
	rt := New(opts, ctrl, logrus.NewEntry(logger))

	rt.OnDebug("sending identify with token super-secret-token")

	msg := <-ctrl.RecvFromShard()
	assert.Equal(t, control.ToManagerDebug, msg.Kind)
	assert.NotContains(t, msg.Debug, "super-secret-token")
	assert.Contains(t, msg.Debug, "[redacted]")
}

func TestAdmitBlocksUntilGranted(t *testing.T) {
	rt, ctrl := testRuntime(t)

	admitted := make(chan error, 1)
	go func() {
		admitted <- rt.Admit(context.Background(), true)
	}()

	select {
	case msg := <-ctrl.RecvFromShard():
		assert.Equal(t, control.ToManagerIdentify, msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected an Identify admission request")
	}

	select {
	case <-admitted:
		t.Fatal("Admit returned before grant was sent")
	case <-time.After(10 * time.Millisecond):
	}

	require.NoError(t, ctrl.SendToShard(context.Background(), control.ToShard{Kind: control.ToShardIdentify}))

	select {
	case err := <-admitted:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Admit did not unblock after grant")
	}
}

func TestAdmitScheduleIdentifyUsesScheduleKind(t *testing.T) {
	rt, ctrl := testRuntime(t)

	go func() { _ = rt.Admit(context.Background(), false) }()

	select {
	case msg := <-ctrl.RecvFromShard():
		assert.Equal(t, control.ToManagerScheduleIdentify, msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected a ScheduleIdentify admission request")
	}
}

func TestAwaitBlocksWithoutRequestingAdmission(t *testing.T) {
	rt, ctrl := testRuntime(t)

	awaited := make(chan error, 1)
	go func() { awaited <- rt.Await(context.Background()) }()

	select {
	case msg := <-ctrl.RecvFromShard():
		t.Fatalf("Await sent an unexpected admission request: %+v", msg)
	case <-time.After(10 * time.Millisecond):
	}

	require.NoError(t, ctrl.SendToShard(context.Background(), control.ToShard{Kind: control.ToShardIdentify}))

	select {
	case err := <-awaited:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Await did not unblock after grant")
	}
}

func TestAdmitAbortsOnContextCancel(t *testing.T) {
	rt, ctrl := testRuntime(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- rt.Admit(ctx, true) }()

	<-ctrl.RecvFromShard()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Admit did not respect context cancellation")
	}
}

func TestObserverMethodsForwardOverControl(t *testing.T) {
	rt, ctrl := testRuntime(t)

	rt.OnDispatch(gateway.Dispatch{Type: "MESSAGE_CREATE", Seq: 5})
	msg := <-ctrl.RecvFromShard()
	assert.Equal(t, control.ToManagerDispatch, msg.Kind)
	assert.Equal(t, "MESSAGE_CREATE", msg.Dispatch.Type)

	rt.OnPing(42)
	msg = <-ctrl.RecvFromShard()
	assert.Equal(t, control.ToManagerUpdatePing, msg.Kind)
	assert.EqualValues(t, 42, msg.PingMs)

	rt.OnGatewayStatus(gateway.GatewayStatusInvalidSession)
	msg = <-ctrl.RecvFromShard()
	assert.Equal(t, control.ToManagerGatewayStatus, msg.Kind)
	assert.False(t, msg.GatewayReady)

	rt.OnConnectionStatus(gateway.StatusReady)
	msg = <-ctrl.RecvFromShard()
	assert.Equal(t, control.ToManagerConnectionStatus, msg.Kind)
	assert.Equal(t, gateway.StatusReady, msg.ConnectionStatus)
}
