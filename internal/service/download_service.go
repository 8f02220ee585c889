package service

import (
	"context"

	"megawarez/internal/auth"
	dom "megawarez/internal/domain"
	"megawarez/internal/logging"
	"megawarez/internal/repo"
)

// DownloadService records and lists downloads.
type DownloadService struct {
	store    repo.Store
	sessions *auth.SessionStore
	log      logging.Logger
}

func NewDownloadService(store repo.Store, sessions *auth.SessionStore, log logging.Logger) *DownloadService {
	return &DownloadService{store: store, sessions: sessions, log: log}
}

// Record logs that userID downloaded productID. token must belong to userID.
func (s *DownloadService) Record(ctx context.Context, token string, userID, productID int64) (dom.DownloadView, error) {
	if _, err := s.sessions.Authorize(ctx, token, userID); err != nil {
		return dom.DownloadView{}, err
	}
	var view dom.DownloadView
	err := s.store.InTx(ctx, func(ctx context.Context, tx repo.Store) error {
		d, err := tx.Downloads().Create(ctx, userID, productID)
		if err != nil {
			return err
		}
		view, err = tx.Downloads().GetView(ctx, d.ID)
		return err
	})
	if err != nil {
		return dom.DownloadView{}, err
	}
	s.log.Debug(ctx, "download recorded", "user_id", userID, "product_id", productID)
	return view, nil
}

func (s *DownloadService) List(ctx context.Context) ([]dom.DownloadView, error) {
	return orEmpty(s.store.Downloads().ListViews(ctx))
}

func (s *DownloadService) Get(ctx context.Context, id int64) (dom.DownloadView, error) {
	return s.store.Downloads().GetView(ctx, id)
}

// ListByUser lists userID's downloads for a caller holding one of its sessions.
func (s *DownloadService) ListByUser(ctx context.Context, token string, userID int64) ([]dom.DownloadView, error) {
	if _, err := s.sessions.Authorize(ctx, token, userID); err != nil {
		return nil, err
	}
	return orEmpty(s.store.Downloads().ListViewsByUser(ctx, userID))
}
