package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/storage"
)

const defaultImageFolder = "coffees"

type imageService struct {
	store    storage.ObjectStore
	log      logrus.FieldLogger
	observer UseCaseObserver
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewImageService uploads through store. A nil store makes every call fail
// with storage.ErrNotConfigured.
func NewImageService(store storage.ObjectStore, log logrus.FieldLogger, observers ...UseCaseObserver) ImageService {
	seed := uint64(time.Now().UnixNano())
	return &imageService{
		store:    store,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
		rnd:      rand.New(rand.NewPCG(seed, seed>>17)),
	}
}

func (s *imageService) Upload(ctx context.Context, in UploadInput) (url string, err error) {
	fields := map[string]any{"folder": in.Folder, "size": in.Size}
	defer observe(ctx, s.observer, "image-upload", fields)(&err)

	if s.store == nil {
		return "", storage.ErrNotConfigured
	}
	if err = storage.ValidateUpload(in.Filename, in.Size); err != nil {
		return "", err
	}

	folder := in.Folder
	if folder == "" {
		folder = defaultImageFolder
	}
	s.mu.Lock()
	key := storage.NewKey(folder, in.Filename, s.now(), s.rnd)
	s.mu.Unlock()
	fields["key"] = key

	if err = s.store.Put(ctx, key, in.Body, in.Size, in.ContentType); err != nil {
		return "", err
	}
	return s.store.PublicURL(key), nil
}

func (s *imageService) Delete(ctx context.Context, url string) error {
	if s.store == nil {
		return storage.ErrNotConfigured
	}
	key, ok := s.store.KeyFromURL(url)
	if !ok {
		s.log.WithField("url", url).Debug("image url outside object store, skipping delete")
		return nil
	}
	return s.store.Delete(ctx, key)
}
