package repository

import "context"

// GlobalMediaRepository is the cross-user, content-addressed index of
// generated media, keyed by normalized word. Writes use
// upsert-ignore-on-conflict semantics: the first persisted URL for a
// word stays canonical.
type GlobalMediaRepository interface {
	// Lookup* return "" (no error) on a cache miss.
	LookupAudio(ctx context.Context, word string) (string, error)
	SaveAudio(ctx context.Context, word, url string) error
	LookupImage(ctx context.Context, word string) (string, error)
	SaveImage(ctx context.Context, word, url string) error
}

// ObjectStore persists raw media payloads and returns a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	// Fetch resolves an object by its path for serving.
	Fetch(ctx context.Context, path string) (data []byte, contentType string, err error)
}
