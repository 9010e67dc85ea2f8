package usecase

import (
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/service/notify"
	"github.com/secmon-lab/kottos/pkg/service/storage"
	"github.com/secmon-lab/kottos/pkg/utils/metrics"
)

type UseCases struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier
	storage  interfaces.AssetStorage
	metrics  *metrics.Metrics

	Collections  *Registry
	Confirmation *ConfirmationUseCase
	Upload       *UploadUseCase
}

type Option func(*UseCases)

func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

func WithStorage(s interfaces.AssetStorage) Option {
	return func(uc *UseCases) {
		uc.storage = s
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		notifier: notify.Log{},
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.storage == nil {
		uc.storage = storage.NewMemory(storage.DefaultAssetPath)
	}

	uc.Collections = NewRegistry(repo, uc.notifier, uc.metrics)
	uc.Confirmation = NewConfirmationUseCase(uc.Collections, uc.metrics)
	uc.Upload = NewUploadUseCase(repo.UploadTasks(), uc.storage, uc.Collections, uc.notifier, uc.metrics)

	return uc
}
