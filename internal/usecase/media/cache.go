// Package media resolves text to playable audio and displayable images
// through a layered cache: decoded buffers, in-process sources, the
// cross-user global store, and on-demand generation. Concurrent
// requests for the same key share one in-flight resolution.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/lusolab/lusocards/internal/entity"
)

// Mode selects synthesis voice settings.
type Mode string

const (
	ModeCard  Mode = "card"  // slower, flatter; single terms and examples
	ModeStory Mode = "story" // natural pace for narratives
)

// Synthesizer is the external audio-synthesis collaborator.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, mode Mode) ([]byte, error)
}

// ImageGenerator is the external image-synthesis collaborator.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GlobalStore is the cross-user media cache: lookups by normalized word
// return a canonical URL ("" on miss); saves upload the payload and
// index it, keeping the first write canonical.
type GlobalStore interface {
	FindAudio(ctx context.Context, word string) (string, error)
	SaveAudio(ctx context.Context, word string, data []byte) (string, error)
	FindImage(ctx context.Context, word string) (string, error)
	SaveImage(ctx context.Context, word string, data []byte) (string, error)
}

// Sink plays decoded audio on the platform output.
type Sink interface {
	Play(pcm *PCM, rate float64) error
}

// Cache is the layered media resolver. Construct once per process and
// inject wherever media is needed; a fresh instance per test isolates
// all cache state.
type Cache struct {
	global   GlobalStore
	synth    Synthesizer
	imageGen ImageGenerator
	sink     Sink
	httpc    *http.Client
	logger   *logrus.Logger

	sampleRate int

	group singleflight.Group

	mu      sync.Mutex
	buffers map[string]*PCM   // decoded audio, process lifetime
	sources map[string]string // resolved URL or inline payload per key

	bg sync.WaitGroup // detached global-persist tasks
}

// NewCache wires the resolver. sink may be nil when the host never
// plays audio locally (API-only deployments).
func NewCache(global GlobalStore, synth Synthesizer, imageGen ImageGenerator, sink Sink, logger *logrus.Logger) *Cache {
	return &Cache{
		global:     global,
		synth:      synth,
		imageGen:   imageGen,
		sink:       sink,
		httpc:      &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		sampleRate: DefaultSampleRate,
		buffers:    make(map[string]*PCM),
		sources:    make(map[string]string),
	}
}

// ResolveAudio returns decoded audio for text. hint, when non-nil,
// supplies an already-known source (a URL or inline payload stored on a
// card); the global cache is still consulted first so a canonical URL
// wins over a stale inline copy. Concurrent callers for the same text
// share a single resolution.
func (c *Cache) ResolveAudio(ctx context.Context, text string, hint *Source) (*PCM, error) {
	if pcm, ok := c.cachedBuffer(text); ok {
		return pcm, nil
	}

	v, err, _ := c.group.Do(text, func() (any, error) {
		if pcm, ok := c.cachedBuffer(text); ok {
			return pcm, nil
		}
		raw, err := c.resolveRawAudio(ctx, text, hint)
		if err != nil {
			return nil, err
		}
		pcm, err := DecodeAudio(raw, c.sampleRate)
		if err != nil {
			return nil, fmt.Errorf("decode audio for %q: %w", text, err)
		}
		c.mu.Lock()
		c.buffers[text] = pcm
		c.mu.Unlock()
		return pcm, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PCM), nil
}

// resolveRawAudio walks the source tiers: global store, supplied hint,
// in-process source cache, then generation.
func (c *Cache) resolveRawAudio(ctx context.Context, text string, hint *Source) ([]byte, error) {
	key := entity.NormalizeWordToken(text)

	// The global cache may hold a canonical URL by now even when the
	// caller supplied a hint, so it is always consulted first.
	source := ""
	if url, err := c.global.FindAudio(ctx, key); err != nil {
		c.logger.WithError(err).WithField("word", key).Debug("global audio lookup failed")
	} else if url != "" {
		source = url
		c.setSource(text, url)
	}

	if source == "" && hint != nil {
		switch hint.Kind {
		case SourceInline:
			if looksInline(hint.Value, inlineHintMin) {
				data, err := DecodeInline(hint.Value)
				if err != nil {
					return nil, err
				}
				// Push the payload to the global cache for other users.
				c.persistGlobalAudio(text, key, data)
				c.setSource(text, hint.Value)
				return data, nil
			}
		case SourceURL:
			source = hint.Value
			c.setSource(text, hint.Value)
		}
	}

	if source == "" {
		if cached, ok := c.getSource(text); ok {
			source = cached
		}
	}

	if source == "" {
		data, err := c.synth.Synthesize(ctx, text, ModeCard)
		if err != nil {
			return nil, err
		}
		c.persistGlobalAudio(text, key, data)
		c.setSource(text, EncodeInline(data))
		return data, nil
	}

	if isURL(source) {
		return c.fetch(ctx, source)
	}
	return DecodeInline(source)
}

// persistGlobalAudio pushes generated audio to the global cache without
// blocking the caller. Failures are logged and swallowed: the cache is
// best-effort and must never fail the triggering resolution.
func (c *Cache) persistGlobalAudio(text, key string, data []byte) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		url, err := c.global.SaveAudio(context.Background(), key, data)
		if err != nil {
			c.logger.WithError(err).WithField("word", key).Warn("global audio persist failed")
			return
		}
		if url != "" {
			c.setSource(text, url)
		}
	}()
}

// ResolveImage returns a URL (or inline data URI) for word, generating
// via prompt only on a global-cache miss. The dedup key is the word,
// not the prompt: prompts vary per generation but word identity is
// stable.
func (c *Cache) ResolveImage(ctx context.Context, prompt, word string) (string, error) {
	key := entity.NormalizeWordToken(word)

	if url, err := c.global.FindImage(ctx, key); err != nil {
		c.logger.WithError(err).WithField("word", key).Debug("global image lookup failed")
	} else if url != "" {
		return url, nil
	}

	data, err := c.imageGen.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	url, err := c.global.SaveImage(ctx, key, data)
	if err != nil {
		c.logger.WithError(err).WithField("word", key).Warn("global image persist failed")
	}
	if url != "" {
		return url, nil
	}
	return "data:image/png;base64," + EncodeInline(data), nil
}

// GetOrGenerateAudio resolves the string-tier source for text: the
// value suitable for storing on a card (URL preferred, else inline
// payload). cached short-circuits when the card already carries one.
func (c *Cache) GetOrGenerateAudio(ctx context.Context, text, cached string, mode Mode) (string, error) {
	if looksInline(cached, cachedSourceMin) || isURL(cached) {
		return cached, nil
	}
	if s, ok := c.getSource(text); ok {
		return s, nil
	}

	key := entity.NormalizeWordToken(text)
	if url, err := c.global.FindAudio(ctx, key); err != nil {
		c.logger.WithError(err).WithField("word", key).Debug("global audio lookup failed")
	} else if url != "" {
		c.setSource(text, url)
		return url, nil
	}

	data, err := c.synth.Synthesize(ctx, text, mode)
	if err != nil {
		return "", err
	}
	url, err := c.global.SaveAudio(ctx, key, data)
	if err != nil {
		c.logger.WithError(err).WithField("word", key).Warn("global audio persist failed")
	}
	result := url
	if result == "" {
		result = EncodeInline(data)
	}
	c.setSource(text, result)
	return result, nil
}

// Play resolves raw (text, URL or inline payload) and plays it at the
// requested rate. Inline payloads are keyed by hash so the buffer map
// never grows long keys.
func (c *Cache) Play(ctx context.Context, raw string, rate float64) error {
	if c.sink == nil {
		return fmt.Errorf("no audio sink configured")
	}
	src := ClassifySource(raw)

	key := src.Value
	var hint *Source
	switch src.Kind {
	case SourceInline:
		key = hashKey(src.Value)
		hint = &src
	case SourceURL:
		key = src.Value
		hint = &src
	}

	pcm, err := c.ResolveAudio(ctx, key, hint)
	if err != nil {
		return err
	}
	return c.sink.Play(pcm, rate)
}

// Preload warms the cache for text without surfacing errors; misses
// during preload are non-fatal by definition.
func (c *Cache) Preload(ctx context.Context, text string, hint *Source) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		if _, err := c.ResolveAudio(ctx, text, hint); err != nil {
			c.logger.WithError(err).WithField("text", text).Debug("audio preload failed")
		}
	}()
}

// Flush waits for detached background persists; used on shutdown and
// in tests.
func (c *Cache) Flush() {
	c.bg.Wait()
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch audio: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Cache) cachedBuffer(key string) (*PCM, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pcm, ok := c.buffers[key]
	return pcm, ok
}

func (c *Cache) getSource(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sources[key]
	return s, ok
}

func (c *Cache) setSource(key, value string) {
	c.mu.Lock()
	c.sources[key] = value
	c.mu.Unlock()
}
