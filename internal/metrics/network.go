package metrics

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

var (
	ipv4Pattern = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
	ipv6Pattern = regexp.MustCompile(`\b(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}\b`)
)

var browserSignatures = []string{"mozilla", "chrome", "safari", "firefox", "edge"}

// networkAccumulator mines records for network identity hints. When the
// record set is non-empty but no hints surface, IDE/localhost defaults
// stand in so the category reflects the local-Electron reality.
type networkAccumulator struct {
	out          NetworkInfo
	sawRecord    bool
	sawCursorKey bool
	sawLocalhost bool
}

func newNetworkAccumulator() *networkAccumulator {
	return &networkAccumulator{
		out: NetworkInfo{RemoteConnections: []KeyValue{}},
	}
}

func (a *networkAccumulator) register(reg *registry) {
	reg.scan(a.onEveryRecord)
}

func (a *networkAccumulator) onEveryRecord(rec logstore.Record) {
	a.sawRecord = true

	if ip := ipv4Pattern.FindString(rec.Value); ip != "" {
		a.out.IPAddress = ip
	} else if a.out.IPAddress == "" {
		if ip := ipv6Pattern.FindString(rec.Value); ip != "" {
			a.out.IPAddress = ip
		}
	}

	if ua, ok := userAgentFrom(rec.Value); ok {
		a.out.UserAgent = ua
	}

	lower := strings.ToLower(rec.Value)
	if strings.Contains(lower, "remote") ||
		strings.Contains(lower, "ssh") ||
		strings.Contains(lower, "connection") ||
		strings.Contains(lower, "network") {
		a.out.RemoteConnections = append(a.out.RemoteConnections, KeyValue{Key: rec.Key, Value: rec.Value})
	}

	if strings.Contains(rec.Key, "cursor") {
		a.sawCursorKey = true
	}
	if strings.Contains(lower, "localhost") || strings.Contains(lower, "127.0.0.1") {
		a.sawLocalhost = true
	}
}

func (a *networkAccumulator) finalize() NetworkInfo {
	if !a.sawRecord {
		return a.out
	}
	if a.out.UserAgent == "" {
		if a.sawCursorKey {
			a.out.UserAgent = "Cursor IDE (Electron-based)"
		} else {
			a.out.UserAgent = "Unknown Browser/IDE"
		}
	}
	if a.out.IPAddress == "" {
		if a.sawLocalhost {
			a.out.IPAddress = "127.0.0.1 (localhost)"
		} else {
			a.out.IPAddress = "Local Development"
		}
	}
	return a.out
}

// userAgentFrom recognizes a browser-like user agent either directly in the
// value or inside an embedded JSON object's common UA fields.
func userAgentFrom(value string) (string, bool) {
	if looksLikeUserAgent(value) {
		return value, true
	}
	if !strings.HasPrefix(strings.TrimSpace(value), "{") {
		return "", false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(value), &obj); err != nil {
		return "", false
	}
	for _, field := range []string{"userAgent", "ua", "agent"} {
		if s, ok := obj[field].(string); ok && looksLikeUserAgent(s) {
			return s, true
		}
	}
	if headers, ok := obj["headers"].(map[string]any); ok {
		if s, ok := headers["user-agent"].(string); ok && looksLikeUserAgent(s) {
			return s, true
		}
	}
	return "", false
}

func looksLikeUserAgent(s string) bool {
	lower := strings.ToLower(s)
	for _, sig := range browserSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// ExtractNetworkInfo runs only the network extractor over records.
func ExtractNetworkInfo(records []logstore.Record) NetworkInfo {
	reg := newRegistry()
	acc := newNetworkAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}
