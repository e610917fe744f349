package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lusolab/lusocards/internal/repository"
)

type objectStore struct {
	db      *gorm.DB
	baseURL string
}

// NewObjectStore persists raw media payloads in the database and
// serves them under baseURL (the public /media mount).
func NewObjectStore(db *gorm.DB, baseURL string) repository.ObjectStore {
	return &objectStore{db: db, baseURL: strings.TrimSuffix(baseURL, "/")}
}

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizePath renders a word safe for use inside an object path:
// diacritics folded, anything outside [a-z0-9._-] replaced.
func SanitizePath(s string) string {
	folded, _, err := transform.String(asciiFold, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-', r == '/':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// RandomName generates a short collision-resistant object name.
func RandomName() string {
	id, err := gonanoid.New()
	if err != nil {
		// nanoid only fails when the entropy source does.
		panic(err)
	}
	return id
}

func (s *objectStore) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("objectstore: empty payload")
	}
	clean := SanitizePath(path)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			UpdateAll: true,
		}).
		Create(&mediaObjectModel{Path: clean, ContentType: contentType, Data: data}).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.baseURL, clean), nil
}

func (s *objectStore) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	var model mediaObjectModel
	err := s.db.WithContext(ctx).Where("path = ?", SanitizePath(path)).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return model.Data, model.ContentType, nil
}
