package gateway

import "testing"

func TestBitfieldCombinesIntents(t *testing.T) {
	got := Bitfield(IntentGuilds, IntentGuildMessages, IntentMessageContent)
	want := int64(IntentGuilds) | int64(IntentGuildMessages) | int64(IntentMessageContent)
	if got != want {
		t.Fatalf("Bitfield() = %d, want %d", got, want)
	}
}

func TestBitfieldEmpty(t *testing.T) {
	if got := Bitfield(); got != 0 {
		t.Fatalf("Bitfield() with no intents = %d, want 0", got)
	}
}
