package media

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"
)

// SourceKind discriminates what a media string actually is.
type SourceKind string

const (
	// SourceText is a lookup key: the word or sentence to speak.
	SourceText SourceKind = "text"
	// SourceURL points at already-persisted media.
	SourceURL SourceKind = "url"
	// SourceInline is a base64 payload carried inline.
	SourceInline SourceKind = "inline"
)

// Source tags a media string with its kind so resolution never has to
// guess. Core paths pass explicit sources; only the outermost playback
// entry point classifies raw strings.
type Source struct {
	Kind  SourceKind
	Value string
}

// TextSource tags value as a lookup key.
func TextSource(value string) Source { return Source{Kind: SourceText, Value: value} }

// URLSource tags value as a remote location.
func URLSource(value string) Source { return Source{Kind: SourceURL, Value: value} }

// InlineSource tags value as an inline payload.
func InlineSource(value string) Source { return Source{Kind: SourceInline, Value: value} }

const (
	// inlineHintMin is the minimum length for a stored source value to
	// count as a real payload rather than a stray key.
	inlineHintMin = 100
	// playbackInlineMin is the classification threshold at the playback
	// entry point; inline audio payloads are far longer than prose.
	playbackInlineMin = 500
	// cachedSourceMin guards reuse of a source already stored on a card.
	cachedSourceMin = 50
)

// ClassifySource guesses the kind of a raw string arriving from the
// outside (card fields, playback requests). This is a heuristic, not a
// guarantee: a very long unbroken string without spaces is assumed to
// be an inline payload. Inside the core, construct tagged Sources
// directly instead of relying on this.
func ClassifySource(raw string) Source {
	switch {
	case strings.HasPrefix(raw, "http"):
		return URLSource(raw)
	case len(raw) > playbackInlineMin && !strings.ContainsRune(raw, ' '):
		return InlineSource(raw)
	default:
		return TextSource(raw)
	}
}

func isURL(s string) bool { return strings.HasPrefix(s, "http") }

// looksInline reports whether a stored string is a payload worth
// reusing (long enough and not a URL).
func looksInline(s string, min int) bool {
	return len(s) > min && !isURL(s)
}

// EncodeInline renders raw bytes as an inline payload string.
func EncodeInline(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeInline parses an inline payload, tolerating data-URI prefixes
// and embedded whitespace.
func DecodeInline(payload string) ([]byte, error) {
	if idx := strings.IndexByte(payload, ','); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	payload = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if raw, rerr := base64.RawStdEncoding.DecodeString(payload); rerr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("decode inline payload: %w", err)
	}
	return data, nil
}

// hashKey derives a short cache key for inline payloads so the buffer
// map never holds megabyte-long keys.
func hashKey(payload string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(payload))
	return fmt.Sprintf("h%d", h.Sum32())
}
