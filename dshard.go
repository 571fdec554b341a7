// Package dshard is the public facade: dshard.New(token, opts...) builds a
// fleet Client, mirroring jdshardmanager.New + discordgo.New's
// construct-then-Start shape, generalized into the functional-options
// pattern the manager's larger configuration surface calls for.
package dshard

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shardkeep/dshard/control"
	"github.com/shardkeep/dshard/gateway"
	"github.com/shardkeep/dshard/manager"
	"github.com/shardkeep/dshard/rest"
)

// Option configures a Client at construction time.
type Option func(*manager.Options)

// WithShards selects the fleet: nil/"auto" for the recommended count, an int
// for an explicit count, or a []int/[]string id list (paired with
// WithTotalShards).
func WithShards(shards interface{}) Option {
	return func(o *manager.Options) { o.Shards = shards }
}

// WithTotalShards sets the fleet-wide shard total, required alongside an
// explicit id list passed to WithShards.
func WithTotalShards(total int) Option {
	return func(o *manager.Options) { o.TotalShards = total }
}

// WithIntents sets the gateway intents bitmask sent with IDENTIFY.
func WithIntents(intents int64) Option {
	return func(o *manager.Options) { o.Intents = intents }
}

// WithProperties overrides the {os, browser, device} identify triple.
func WithProperties(p gateway.IdentifyProperties) Option {
	return func(o *manager.Options) { o.Properties = p }
}

// WithLargeThreshold overrides the member-list large-guild threshold.
func WithLargeThreshold(n int) Option {
	return func(o *manager.Options) { o.LargeThreshold = n }
}

// WithPresence sets the initial presence sent with every IDENTIFY.
func WithPresence(presence interface{}) Option {
	return func(o *manager.Options) { o.Presence = presence }
}

// WithCompression enables the zlib-stream payload codec.
func WithCompression(enabled bool) Option {
	return func(o *manager.Options) { o.Compressed = enabled }
}

// WithIdentifyTimeout overrides how long a granted identify slot waits for
// a Ready or InvalidSession before the admission queue reclaims it.
func WithIdentifyTimeout(d time.Duration) Option {
	return func(o *manager.Options) { o.IdentifyTimeout = d }
}

// WithIdentifyCooldown overrides the delay the admission queue holds after
// a successful identify before granting the next one.
func WithIdentifyCooldown(d time.Duration) Option {
	return func(o *manager.Options) { o.IdentifyCooldown = d }
}

// WithRESTClient overrides the REST client used to fetch gateway metadata,
// primarily for tests.
func WithRESTClient(c *rest.Client) Option {
	return func(o *manager.Options) { o.RESTClient = c }
}

// WithLogger overrides the structured logger every package logs through.
func WithLogger(l *logrus.Logger) Option {
	return func(o *manager.Options) { o.Logger = l }
}

// WithEventHandler installs a callback for fleet-level lifecycle events
// (connected, ready, disconnected, error).
func WithEventHandler(fn func(manager.FleetEvent)) Option {
	return func(o *manager.Options) { o.OnEvent = fn }
}

// Client is a running (or not-yet-started) shard fleet.
type Client struct {
	mgr *manager.Manager
}

// New builds a Client. token may be empty if the DISCORD_TOKEN environment
// variable is set, matching spec.md §6's environment fallback.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, gateway.ErrMissingToken
	}

	mgrOpts := manager.Options{Token: token}
	for _, opt := range opts {
		opt(&mgrOpts)
	}

	mgr, err := manager.New(mgrOpts)
	if err != nil {
		return nil, err
	}
	return &Client{mgr: mgr}, nil
}

// Start fetches gateway metadata, computes the fleet's shard list, and
// spawns every shard. It returns once every shard has been launched; it does
// not wait for any of them to reach Ready.
func (c *Client) Start(ctx context.Context) error {
	return c.mgr.Start(ctx)
}

// Stop destroys every shard's session and stops the fleet.
func (c *Client) Stop(ctx context.Context) {
	c.mgr.Stop(ctx)
}

// Subscribe registers a handler for dispatch events. An empty eventName
// subscribes to every dispatch.
func (c *Client) Subscribe(eventName string, h manager.DispatchHandler) {
	c.mgr.Subscribe(eventName, h)
}

// AveragePing is the fleet-wide mean of each shard's most recent heartbeat
// round trip, in milliseconds.
func (c *Client) AveragePing() float64 {
	return c.mgr.AveragePing()
}

// SendToGuildShard routes payload to whichever shard owns guildID under the
// standard `(guildID >> 22) % totalShards` sharding formula.
func (c *Client) SendToGuildShard(ctx context.Context, guildID int64, payload gateway.OutgoingPayload) error {
	return c.mgr.SendToGuildShard(ctx, guildID, payload)
}

// SessionSnapshot fetches a point-in-time copy of one shard's session state.
func (c *Client) SessionSnapshot(ctx context.Context, shardID int) (control.SessionSnapshot, error) {
	return c.mgr.SessionSnapshot(ctx, shardID)
}

// RequestGuildMembers sends an opcode 8 REQUEST_GUILD_MEMBERS on shardID.
func (c *Client) RequestGuildMembers(ctx context.Context, shardID int, data gateway.RequestGuildMembersData) error {
	return c.mgr.RequestGuildMembers(ctx, shardID, data)
}

// UpdatePresence sends an opcode 3 STATUS_UPDATE on shardID.
func (c *Client) UpdatePresence(ctx context.Context, shardID int, presence interface{}) error {
	return c.mgr.UpdatePresence(ctx, shardID, presence)
}
