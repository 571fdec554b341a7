package gateway

// Intent is a gateway intent bit. Intents select which dispatch families the
// gateway will send to a connection; construction of the composed bitfield
// from a set of intents is otherwise an external collaborator per spec.md §1,
// but the bit values themselves are part of the wire protocol this package
// speaks, so they live here rather than being left entirely opaque.
//
// Grounded on discordgo/gateway.go's GatewayIntent constants.
type Intent int64

const (
	IntentGuilds                 Intent = 1 << 0
	IntentGuildMembers           Intent = 1 << 1
	IntentGuildModeration        Intent = 1 << 2
	IntentGuildExpressions       Intent = 1 << 3
	IntentGuildIntegrations      Intent = 1 << 4
	IntentGuildWebhooks          Intent = 1 << 5
	IntentGuildInvites           Intent = 1 << 6
	IntentGuildVoiceStates       Intent = 1 << 7
	IntentGuildPresences         Intent = 1 << 8
	IntentGuildMessages          Intent = 1 << 9
	IntentGuildMessageReactions  Intent = 1 << 10
	IntentGuildMessageTyping     Intent = 1 << 11
	IntentDirectMessages         Intent = 1 << 12
	IntentDirectMessageReactions Intent = 1 << 13
	IntentDirectMessageTyping    Intent = 1 << 14
	IntentMessageContent         Intent = 1 << 15
	IntentGuildScheduledEvents   Intent = 1 << 16
)

// Bitfield ORs together a set of intents into the single integer the
// identify payload expects.
func Bitfield(intents ...Intent) int64 {
	var out int64
	for _, i := range intents {
		out |= int64(i)
	}
	return out
}
