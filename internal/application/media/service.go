package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/homefix-api/internal/domain"
	"github.com/homefix-api/internal/pkg/id"
	"go.uber.org/zap"
)

// DefaultFeedLimit is used when the caller gives no positive limit.
const DefaultFeedLimit = 10

// MsgFileTooLarge is returned when an upload exceeds the variant's cap.
const MsgFileTooLarge = "File too large"

// File is an incoming upload: the client's file name and its content.
type File struct {
	Name string
	Body io.Reader
}

type Service interface {
	Variant() Variant
	Upload(ctx context.Context, userID string, f File) (*domain.Media, error)
	Feed(ctx context.Context, userID string, limit int) ([]*domain.Media, error)
	ListMine(ctx context.Context, userID string) ([]*domain.Media, error)
	Delete(ctx context.Context, userID, mediaID string) (*domain.Media, error)
}

type mediaStore interface {
	Put(ctx context.Context, m *domain.Media) error
	Get(ctx context.Context, mediaID string) (*domain.Media, error)
	Delete(ctx context.Context, mediaID, userID string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Media, error)
	ListOthers(ctx context.Context, kind, userID string, limit int) ([]*domain.Media, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	variant   Variant
	repo      mediaStore
	objects   objectStore
	users     userStore
	uploadDir string
	log       *zap.Logger
	now       func() time.Time
	shuffle   func(n int, swap func(i, j int))
}

type ServiceDeps struct {
	Variant   Variant
	MediaRepo mediaStore
	Objects   objectStore
	UserRepo  userStore
	UploadDir string
	Logger    *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		variant:   deps.Variant,
		repo:      deps.MediaRepo,
		objects:   deps.Objects,
		users:     deps.UserRepo,
		uploadDir: deps.UploadDir,
		log:       log.With(zap.String("variant", deps.Variant.Kind)),
		now:       time.Now,
		shuffle:   rand.Shuffle,
	}
}

func (s *service) Variant() Variant { return s.variant }

// Upload stages the file locally, checks its content, stores the object and
// records its metadata. The staged copy is removed on every path, and the
// stored object is removed again when the metadata insert fails.
func (s *service) Upload(ctx context.Context, userID string, f File) (*domain.Media, error) {
	ext := strings.ToLower(filepath.Ext(f.Name))
	fileType, ok := s.variant.Extensions[ext]
	if !ok {
		return nil, domain.NewError(domain.ErrBadRequest, s.variant.MsgBadType)
	}

	staged, size, err := s.stage(f.Body, ext)
	if staged != nil {
		defer func() {
			_ = staged.Close()
			if rmErr := os.Remove(staged.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				s.log.Warn("could not remove staged upload", zap.String("path", staged.Name()), zap.Error(rmErr))
			}
		}()
	}
	if err != nil {
		return nil, err
	}

	mt, err := mimetype.DetectReader(staged)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), s.variant.MIMETypes...) {
		return nil, domain.NewError(domain.ErrBadRequest, s.variant.MsgBadType)
	}
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind staged upload: %w", err)
	}

	fileName := uuid.NewString() + ext
	key := s.variant.ObjectKey(userID, fileName, fileType)
	url, err := s.objects.Upload(ctx, key, staged, size, mt.String())
	if err != nil {
		s.log.Error("object upload failed", zap.String("key", key), zap.Error(err))
		return nil, domain.NewError(domain.ErrInternal, s.variant.MsgUploadFailed)
	}

	m := &domain.Media{
		MediaID:    id.New(),
		UserID:     userID,
		Kind:       s.variant.Kind,
		FileName:   fileName,
		ObjectKey:  key,
		FileURL:    url,
		FileType:   fileType,
		FileSize:   size,
		MimeType:   mt.String(),
		UploadDate: s.now().UTC(),
	}
	if err := s.repo.Put(ctx, m); err != nil {
		s.log.Error("metadata insert failed", zap.String("key", key), zap.Error(err))
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			s.log.Error("could not remove orphaned object", zap.String("key", key), zap.Error(delErr))
		}
		return nil, domain.NewError(domain.ErrInternal, s.variant.MsgSaveFailed)
	}
	return m, nil
}

// stage copies body into a temp file under uploadDir, enforcing MaxBytes.
// The returned file is positioned at its start.
func (s *service) stage(body io.Reader, ext string) (*os.File, int64, error) {
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return nil, 0, fmt.Errorf("create upload dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.uploadDir, s.variant.FormField+"-*"+ext)
	if err != nil {
		return nil, 0, fmt.Errorf("stage upload: %w", err)
	}
	n, err := io.Copy(tmp, io.LimitReader(body, s.variant.MaxBytes+1))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return tmp, n, domain.NewError(domain.ErrTooLarge, MsgFileTooLarge)
		}
		return tmp, n, fmt.Errorf("stage upload: %w", err)
	}
	if n > s.variant.MaxBytes {
		return tmp, n, domain.NewError(domain.ErrTooLarge, MsgFileTooLarge)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return tmp, n, fmt.Errorf("rewind staged upload: %w", err)
	}
	return tmp, n, nil
}

// Feed returns up to limit items: the newest from other users, topped up
// with the caller's own, in random order.
func (s *service) Feed(ctx context.Context, userID string, limit int) ([]*domain.Media, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	items, err := s.repo.ListOthers(ctx, s.variant.Kind, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	if remaining := limit - len(items); remaining > 0 {
		own, err := s.repo.ListByUser(ctx, userID, remaining)
		if err != nil {
			return nil, fmt.Errorf("list own media: %w", err)
		}
		items = append(items, own...)
	}
	if err := s.attachOwners(ctx, items); err != nil {
		return nil, err
	}
	s.shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return items, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*domain.Media, error) {
	items, err := s.repo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list own media: %w", err)
	}
	return items, nil
}

// Delete removes the caller's item. The metadata row goes first; a failed
// object removal afterwards is logged and does not fail the call.
func (s *service) Delete(ctx context.Context, userID, mediaID string) (*domain.Media, error) {
	m, err := s.repo.Get(ctx, mediaID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, s.variant.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	if m.UserID != userID {
		return nil, domain.NewError(domain.ErrNotFound, s.variant.MsgNotFound)
	}

	if err := s.repo.Delete(ctx, mediaID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, s.variant.MsgNotFound)
		}
		return nil, fmt.Errorf("delete media metadata: %w", err)
	}
	if err := s.objects.Delete(ctx, m.ObjectKey); err != nil {
		s.log.Warn("metadata deleted but object removal failed",
			zap.String("media_id", mediaID), zap.String("key", m.ObjectKey), zap.Error(err))
	}
	return m, nil
}

// attachOwners sets the public owner summary on each item, one lookup per distinct user.
func (s *service) attachOwners(ctx context.Context, items []*domain.Media) error {
	owners := make(map[string]*domain.MediaOwner)
	for _, m := range items {
		owner, ok := owners[m.UserID]
		if !ok {
			u, err := s.users.Get(ctx, m.UserID)
			switch {
			case err == nil:
				owner = &domain.MediaOwner{UserID: u.UserID, FullName: u.FullName}
			case errors.Is(err, domain.ErrNotFound):
				owner = &domain.MediaOwner{UserID: m.UserID}
			default:
				return fmt.Errorf("load media owner: %w", err)
			}
			owners[m.UserID] = owner
		}
		m.Owner = owner
	}
	return nil
}
