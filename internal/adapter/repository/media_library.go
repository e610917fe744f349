package repository

import (
	"context"
	"fmt"

	"github.com/lusolab/lusocards/internal/repository"
	"github.com/lusolab/lusocards/internal/usecase/media"
)

type mediaLibrary struct {
	index   repository.GlobalMediaRepository
	objects repository.ObjectStore
}

// NewMediaLibrary composes the global media index with the object
// store into the media.GlobalStore the cache consumes: a save uploads
// the payload and records the word -> URL mapping.
func NewMediaLibrary(index repository.GlobalMediaRepository, objects repository.ObjectStore) media.GlobalStore {
	return &mediaLibrary{index: index, objects: objects}
}

func (l *mediaLibrary) FindAudio(ctx context.Context, word string) (string, error) {
	return l.index.LookupAudio(ctx, word)
}

func (l *mediaLibrary) SaveAudio(ctx context.Context, word string, data []byte) (string, error) {
	path := fmt.Sprintf("global/audio/%s-%s.mp3", SanitizePath(word), RandomName())
	url, err := l.objects.Upload(ctx, path, "audio/mpeg", data)
	if err != nil {
		return "", err
	}
	if err := l.index.SaveAudio(ctx, word, url); err != nil {
		return "", err
	}
	// Another writer may have won the insert race; serve whichever URL
	// the index holds.
	canonical, err := l.index.LookupAudio(ctx, word)
	if err != nil || canonical == "" {
		return url, nil
	}
	return canonical, nil
}

func (l *mediaLibrary) FindImage(ctx context.Context, word string) (string, error) {
	return l.index.LookupImage(ctx, word)
}

func (l *mediaLibrary) SaveImage(ctx context.Context, word string, data []byte) (string, error) {
	path := fmt.Sprintf("global/images/%s-%s.png", SanitizePath(word), RandomName())
	url, err := l.objects.Upload(ctx, path, "image/png", data)
	if err != nil {
		return "", err
	}
	if err := l.index.SaveImage(ctx, word, url); err != nil {
		return "", err
	}
	canonical, err := l.index.LookupImage(ctx, word)
	if err != nil || canonical == "" {
		return url, nil
	}
	return canonical, nil
}
