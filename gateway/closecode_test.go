package gateway

import "testing"

func TestClassifyCloseFatalAuth(t *testing.T) {
	for _, code := range []CloseCode{CloseNotAuthenticated, CloseAuthenticationFailed} {
		if got := ClassifyClose(code); got != DispositionFatalAuth {
			t.Errorf("ClassifyClose(%d) = %v, want DispositionFatalAuth", code, got)
		}
	}
}

func TestClassifyCloseFatalConfig(t *testing.T) {
	for _, code := range []CloseCode{
		CloseInvalidShard, CloseShardingRequired, CloseInvalidAPIVersion,
		CloseInvalidIntents, CloseDisallowedIntents,
	} {
		if got := ClassifyClose(code); got != DispositionFatalConfig {
			t.Errorf("ClassifyClose(%d) = %v, want DispositionFatalConfig", code, got)
		}
	}
}

func TestClassifyCloseDefaultsResumable(t *testing.T) {
	for _, code := range []CloseCode{
		CloseUnknownError, CloseUnknownOpcode, CloseDecodeError, CloseAlreadyAuthenticated,
		CloseInvalidSeq, CloseRateLimited, CloseSessionTimedOut, CloseCode(9999),
	} {
		if got := ClassifyClose(code); got != DispositionResumable {
			t.Errorf("ClassifyClose(%d) = %v, want DispositionResumable", code, got)
		}
	}
}
