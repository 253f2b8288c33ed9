package metrics

import (
	"testing"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

func TestExtractComposerData(t *testing.T) {
	records := []logstore.Record{
		{Key: keyComposerData, Value: `{"allComposers":[{"composerId":"c1"},{"composerId":"c2"}],"selectedComposerIds":["c2"]}`},
		{Key: keyInteractiveSessions, Value: `[{"sessionId":"s1"}]`},
		{Key: keyComposerViewPane, Value: `{"size":300}`},
	}

	cd := ExtractComposerData(records)

	if len(cd.Composers) != 2 {
		t.Errorf("Composers = %d, want 2", len(cd.Composers))
	}
	if cd.ActiveComposer != "c2" {
		t.Errorf("ActiveComposer = %q, want c2", cd.ActiveComposer)
	}
	if len(cd.ChatSessions) != 1 {
		t.Errorf("ChatSessions = %d, want 1", len(cd.ChatSessions))
	}
	if cd.ComposerStates["size"] != float64(300) {
		t.Errorf("ComposerStates = %v", cd.ComposerStates)
	}
}

func TestComposerDataEmptyNotMeaningful(t *testing.T) {
	if ExtractComposerData(nil).Meaningful() {
		t.Error("empty ComposerData should not be meaningful")
	}
}

func TestComposerDataInvalidJSONIgnored(t *testing.T) {
	cd := ExtractComposerData([]logstore.Record{
		{Key: keyComposerData, Value: `{broken`},
	})
	if cd.Meaningful() {
		t.Errorf("invalid composer data should yield nothing: %+v", cd)
	}
}
