// Package manager implements the Shard Manager: it owns the fleet of shard
// runtimes, the global identify admission queue, dispatch fan-out to
// subscribers, and restart policy. Grounded on jdshardmanager.Manager (fleet
// bookkeeping and its Event/EventType status stream) and bot.go's
// identifyRatelimiter (serialized identify admission), generalized from a
// single-process Discord bot's shard list into a standalone reusable
// scheduler.
package manager

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shardkeep/dshard/control"
	"github.com/shardkeep/dshard/gateway"
	"github.com/shardkeep/dshard/logging"
	"github.com/shardkeep/dshard/rest"
	"github.com/shardkeep/dshard/shard"
)

// Options configures a Manager. Grounded on jdshardmanager.Manager's
// exported configuration fields, collected into a struct handed to New
// since this domain's config surface (spec.md §6) is fixed at spawn time
// rather than mutated on a live value afterward.
type Options struct {
	Token string

	// Shards selects the fleet per spec.md §4.3: nil or "auto" queries the
	// gateway for the recommended count; an int gives an explicit shard
	// count; a []int or []string gives an explicit id list, in which case
	// TotalShards must also be set.
	Shards      interface{}
	TotalShards int

	GatewayVersion int
	Intents        int64
	Properties     gateway.IdentifyProperties
	LargeThreshold int
	Presence       interface{}
	Compressed     bool

	IdentifyTimeout  time.Duration
	IdentifyCooldown time.Duration

	RESTClient *rest.Client
	Logger     *logrus.Logger

	// OnEvent, if set, is called for every fleet-level event in addition to
	// the structured log line the manager always emits.
	OnEvent func(FleetEvent)
}

// EventType classifies a FleetEvent, grounded on jdshardmanager.EventType.
type EventType int

const (
	EventConnected EventType = iota
	EventDisconnected
	EventReady
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventReady:
		return "ready"
	case EventError:
		return "error"
	}
	return "unknown"
}

// FleetEvent is a status event about one shard, grounded on
// jdshardmanager.Event.
type FleetEvent struct {
	Type    EventType
	ShardID int
	Msg     string
	Time    time.Time
}

type shardHandle struct {
	ctrl   *control.Channel
	cancel context.CancelFunc
}

// Manager owns the shard fleet.
type Manager struct {
	opts   Options
	logger *logrus.Logger
	rest   *rest.Client

	admission *admissionQueue
	subs      *subscriberRegistry

	mu         sync.RWMutex
	shards     map[int]*shardHandle
	pings      map[int]int64
	total      int
	gatewayURL string
	cancel     context.CancelFunc

	sessionReqMu sync.Mutex
	sessionReqs  map[int]chan control.SessionSnapshot
}

// New builds a Manager. It does not contact the gateway or spawn any
// shards until Start is called.
func New(opts Options) (*Manager, error) {
	if opts.Token == "" {
		return nil, gateway.ErrMissingToken
	}
	if opts.GatewayVersion == 0 {
		opts.GatewayVersion = 10
	}
	if opts.IdentifyTimeout == 0 {
		opts.IdentifyTimeout = 60 * time.Second
	}
	if opts.IdentifyCooldown == 0 {
		opts.IdentifyCooldown = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("")
	}
	if opts.RESTClient == nil {
		opts.RESTClient = rest.NewClient(opts.Token)
	}

	m := &Manager{
		opts:        opts,
		logger:      opts.Logger,
		rest:        opts.RESTClient,
		subs:        newSubscriberRegistry(),
		shards:      make(map[int]*shardHandle),
		pings:       make(map[int]int64),
		sessionReqs: make(map[int]chan control.SessionSnapshot),
	}

	m.admission = newAdmissionQueue(
		func(ctx context.Context) (gateway.Info, error) { return m.rest.GatewayBot(ctx) },
		func(ctx context.Context, shardID int) error {
			return m.sendToShard(ctx, shardID, control.ToShard{Kind: control.ToShardIdentify})
		},
		opts.IdentifyTimeout,
		opts.IdentifyCooldown,
	)

	return m, nil
}

// Start fetches gateway info, computes the shard list per spec.md §4.3, and
// spawns every shard.
func (m *Manager) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	info, err := m.rest.GatewayBot(ctx)
	if err != nil {
		cancel()
		return errors.WithMessage(err, "manager: fetching gateway info")
	}
	m.gatewayURL = info.URL

	ids, total, err := m.computeShardIDs(info)
	if err != nil {
		cancel()
		return err
	}
	m.total = total

	go m.admission.Run(ctx)

	for _, id := range ids {
		m.spawnShard(ctx, id, total)
	}

	return nil
}

// Stop destroys every shard (discarding their sessions) and cancels the
// fleet's background work.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.RLock()
	handles := make([]*shardHandle, 0, len(m.shards))
	for _, h := range m.shards {
		handles = append(handles, h)
	}
	m.mu.RUnlock()

	for _, h := range handles {
		_ = h.ctrl.SendToShard(ctx, control.ToShard{Kind: control.ToShardDestroy})
	}
	if m.cancel != nil {
		m.cancel()
	}
}

// Subscribe registers h for eventName ("" subscribes to every dispatch).
func (m *Manager) Subscribe(eventName string, h DispatchHandler) {
	m.subs.Subscribe(eventName, h)
}

// AveragePing is the arithmetic mean of the most recent ping sample from
// each shard, per spec.md §4.3.
func (m *Manager) AveragePing() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.pings) == 0 {
		return 0
	}
	var total int64
	for _, p := range m.pings {
		total += p
	}
	return float64(total) / float64(len(m.pings))
}

// ShardIDForGuild returns which shard owns guildID under Discord's standard
// sharding formula, grounded directly on bot.go's own guild-count-by-shard
// computation: `(guildID >> 22) % totalShards`.
func ShardIDForGuild(guildID int64, total int) int {
	if total <= 0 {
		return 0
	}
	return int((guildID >> 22) % int64(total))
}

// SendToGuildShard forwards payload to whichever shard owns guildID, e.g. a
// VOICE_STATE_UPDATE that must be sent on a specific guild's shard.
func (m *Manager) SendToGuildShard(ctx context.Context, guildID int64, payload gateway.OutgoingPayload) error {
	m.mu.RLock()
	total := m.total
	m.mu.RUnlock()
	return m.sendToShard(ctx, ShardIDForGuild(guildID, total), control.ToShard{Kind: control.ToShardPayloadDispatch, Payload: payload})
}

// SessionSnapshot requests and waits for shardID's current session
// snapshot, per spec.md §4.2's FetchSessionData round trip.
func (m *Manager) SessionSnapshot(ctx context.Context, shardID int) (control.SessionSnapshot, error) {
	respCh := make(chan control.SessionSnapshot, 1)
	m.sessionReqMu.Lock()
	m.sessionReqs[shardID] = respCh
	m.sessionReqMu.Unlock()

	if err := m.sendToShard(ctx, shardID, control.ToShard{Kind: control.ToShardFetchSessionData}); err != nil {
		return control.SessionSnapshot{}, err
	}

	select {
	case snap := <-respCh:
		return snap, nil
	case <-ctx.Done():
		return control.SessionSnapshot{}, ctx.Err()
	}
}

// RequestGuildMembers sends an opcode 8 REQUEST_GUILD_MEMBERS on shardID,
// the same PayloadDispatch path used for every other manager-initiated send.
func (m *Manager) RequestGuildMembers(ctx context.Context, shardID int, data gateway.RequestGuildMembersData) error {
	return m.sendToShard(ctx, shardID, control.ToShard{
		Kind:    control.ToShardPayloadDispatch,
		Payload: gateway.OutgoingPayload{Op: gateway.OpRequestGuildMembers, Data: data},
	})
}

// UpdatePresence sends an opcode 3 STATUS_UPDATE on shardID, updating that
// shard's presence after it has already identified.
func (m *Manager) UpdatePresence(ctx context.Context, shardID int, presence interface{}) error {
	return m.sendToShard(ctx, shardID, control.ToShard{
		Kind:    control.ToShardPayloadDispatch,
		Payload: gateway.OutgoingPayload{Op: gateway.OpStatusUpdate, Data: presence},
	})
}

func (m *Manager) spawnShard(ctx context.Context, id, total int) {
	ctrl := control.NewChannel()
	shardCtx, cancel := context.WithCancel(ctx)

	gwOpts := gateway.Options{
		GatewayURL:     m.gatewayURL,
		GatewayVersion: m.opts.GatewayVersion,
		Token:          m.opts.Token,
		Shard:          gateway.ShardID{ID: id, Total: total},
		Intents:        m.opts.Intents,
		Properties:     m.opts.Properties,
		LargeThreshold: m.opts.LargeThreshold,
		Presence:       m.opts.Presence,
		Compressed:     m.opts.Compressed,
	}

	rt := shard.New(gwOpts, ctrl, logging.ForShard(m.logger, id))

	m.mu.Lock()
	m.shards[id] = &shardHandle{ctrl: ctrl, cancel: cancel}
	m.mu.Unlock()

	go m.fanIn(shardCtx, ctrl)
	go rt.Run(shardCtx)
}

func (m *Manager) fanIn(ctx context.Context, ctrl *control.Channel) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ctrl.RecvFromShard():
			m.handleShardMessage(ctx, msg)
		}
	}
}

func (m *Manager) handleShardMessage(ctx context.Context, msg control.ToManager) {
	switch msg.Kind {
	case control.ToManagerDebug:
		m.logger.WithField("shard", msg.ShardID).Debug(msg.Debug)
	case control.ToManagerDispatch:
		m.subs.Dispatch(msg.ShardID, msg.Dispatch)
	case control.ToManagerIdentify, control.ToManagerScheduleIdentify:
		m.admission.Enqueue(msg.ShardID)
	case control.ToManagerUpdatePing:
		m.setPing(msg.ShardID, msg.PingMs)
	case control.ToManagerGatewayStatus:
		m.admission.Resolve(msg.ShardID, msg.GatewayReady)
	case control.ToManagerConnectionStatus:
		m.handleConnectionStatus(msg.ShardID, msg.ConnectionStatus)
	case control.ToManagerCannotReconnect:
		m.handleCannotReconnect(ctx, msg.ShardID, msg.CannotReconnect)
	case control.ToManagerPayloadDispatch:
		m.logger.WithField("shard", msg.ShardID).Warn("dropped a shard-originated payload dispatch with no routing target")
	case control.ToManagerFetchSessionData:
		m.deliverSessionSnapshot(msg.ShardID, msg.Session)
	}
}

func (m *Manager) handleConnectionStatus(shardID int, status gateway.Status) {
	switch status {
	case gateway.StatusWaitingForHello:
		m.emit(FleetEvent{Type: EventConnected, ShardID: shardID, Time: time.Now()})
	case gateway.StatusReady:
		m.emit(FleetEvent{Type: EventReady, ShardID: shardID, Time: time.Now()})
	case gateway.StatusClosed:
		m.emit(FleetEvent{Type: EventDisconnected, ShardID: shardID, Time: time.Now()})
	case gateway.StatusReconnecting:
		// the shard resumes itself; nothing for the manager to do here.
	}
}

// handleCannotReconnect implements spec.md §4.3's restart policy: fatal
// close codes surface an error and stop; anything else respawns the shard
// fresh.
func (m *Manager) handleCannotReconnect(ctx context.Context, shardID int, info control.CannotReconnectInfo) {
	m.mu.Lock()
	if handle, ok := m.shards[shardID]; ok {
		handle.cancel()
		delete(m.shards, shardID)
	}
	total := m.total
	m.mu.Unlock()

	if info.Fatal {
		m.emit(FleetEvent{Type: EventError, ShardID: shardID, Msg: info.Reason, Time: time.Now()})
		return
	}

	m.emit(FleetEvent{Type: EventDisconnected, ShardID: shardID, Msg: info.Reason, Time: time.Now()})

	if ctx.Err() != nil {
		return
	}
	m.spawnShard(ctx, shardID, total)
}

func (m *Manager) setPing(shardID int, ms int64) {
	m.mu.Lock()
	m.pings[shardID] = ms
	m.mu.Unlock()
}

func (m *Manager) deliverSessionSnapshot(shardID int, snap control.SessionSnapshot) {
	m.sessionReqMu.Lock()
	ch, ok := m.sessionReqs[shardID]
	if ok {
		delete(m.sessionReqs, shardID)
	}
	m.sessionReqMu.Unlock()
	if ok {
		ch <- snap
	}
}

func (m *Manager) emit(evt FleetEvent) {
	m.logger.WithFields(logrus.Fields{"shard": evt.ShardID, "event": evt.Type.String()}).Info(evt.Msg)
	if m.opts.OnEvent != nil {
		go m.opts.OnEvent(evt)
	}
}

func (m *Manager) sendToShard(ctx context.Context, shardID int, msg control.ToShard) error {
	m.mu.RLock()
	handle, ok := m.shards[shardID]
	m.mu.RUnlock()
	if !ok {
		return errors.Errorf("manager: unknown shard %d", shardID)
	}
	return handle.ctrl.SendToShard(ctx, msg)
}

func idRange(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// computeShardIDs implements spec.md §4.3's three shard-list modes.
func (m *Manager) computeShardIDs(info gateway.Info) ([]int, int, error) {
	switch v := m.opts.Shards.(type) {
	case nil:
		return recommendedShardIDs(info)
	case string:
		if v == "" || v == "auto" {
			return recommendedShardIDs(info)
		}
		return nil, 0, errors.Errorf("manager: unrecognized Shards value %q", v)
	case int:
		if v < 1 {
			return nil, 0, gateway.ErrBadShardConfig
		}
		return idRange(v), v, nil
	case []int:
		if m.opts.TotalShards < 1 {
			return nil, 0, gateway.ErrBadShardConfig
		}
		ids := append([]int(nil), v...)
		sort.Ints(ids)
		return ids, m.opts.TotalShards, nil
	case []string:
		if m.opts.TotalShards < 1 {
			return nil, 0, gateway.ErrBadShardConfig
		}
		ids := make([]int, 0, len(v))
		for _, s := range v {
			id, err := strconv.Atoi(s)
			if err != nil {
				continue // filter non-numeric entries, per spec.md §4.3
			}
			ids = append(ids, id)
		}
		sort.Ints(ids)
		return ids, m.opts.TotalShards, nil
	default:
		return nil, 0, gateway.ErrBadShardConfig
	}
}

func recommendedShardIDs(info gateway.Info) ([]int, int, error) {
	total := info.RecommendedShards
	if total < 1 {
		total = 1
	}
	return idRange(total), total, nil
}
