package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
	"github.com/vfg2006/traffic-dashboard-api/pkg/metrics"
	"github.com/vfg2006/traffic-dashboard-api/pkg/utils"
)

var (
	// ErrLoadFailed indica que o loader não conseguiu entregar os registros
	ErrLoadFailed = errors.New(LoadFailedMessage)
	// ErrSuperseded indica que uma carga mais recente foi iniciada antes desta terminar
	ErrSuperseded = errors.New("dashboard load superseded by a newer request")
	// ErrCampaignNotFound indica que a campanha não existe nos registros carregados
	ErrCampaignNotFound = errors.New("campaign not found")
)

// StatusWriter persiste o status de uma campanha fora da memória
type StatusWriter interface {
	UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error
}

// Store guarda o estado atual e serializa as ações aplicadas a ele
type Store struct {
	mu       sync.RWMutex
	toggleMu sync.Mutex
	state    State
	loader   Loader
	requests atomic.Uint64
	now      func() time.Time
	newID    func() (string, error)
}

func New(loader Loader, filters domain.Filters) *Store {
	return &Store{
		state:  NewState(filters),
		loader: loader,
		now:    time.Now,
		newID:  utils.GenerateID,
	}
}

// State devolve uma cópia do estado atual. As coleções não devem ser alteradas pelo chamador.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Dispatch aplica a ação e devolve o estado resultante
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(action)
}

// apply exige s.mu travado
func (s *Store) apply(action Action) State {
	s.state = Reduce(s.state, action)

	logrus.WithFields(logrus.Fields{
		"action":  action.Type(),
		"status":  s.state.Status,
		"version": s.state.Version,
	}).Debug("store: action dispatched")

	return s.state
}

// ToggleCampaign alterna o status da campanha e, com writer, persiste o novo
// status. Alternâncias são serializadas até a escrita terminar, de modo que a
// ordem das escritas segue a ordem em memória. Se a escrita falhar, o status
// anterior é restaurado, a menos que a campanha já tenha sido alterada por outra ação.
func (s *Store) ToggleCampaign(ctx context.Context, campaignID string, writer StatusWriter) (domain.Campaign, error) {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()

	s.mu.Lock()
	campaign, found := s.state.Campaign(campaignID)
	if !found {
		s.mu.Unlock()
		return domain.Campaign{}, ErrCampaignNotFound
	}
	previous := campaign.Status
	campaign.Status = previous.Toggle()
	s.apply(SetCampaignStatus{CampaignID: campaignID, Status: campaign.Status, Expect: previous})
	s.mu.Unlock()

	if writer == nil {
		return campaign, nil
	}

	if err := writer.UpdateCampaignStatus(ctx, campaignID, campaign.Status); err != nil {
		s.Dispatch(SetCampaignStatus{CampaignID: campaignID, Status: previous, Expect: campaign.Status})
		return domain.Campaign{}, errors.Wrap(err, "failed to persist campaign status")
	}

	return campaign, nil
}

// Refresh executa uma carga completa. Se outra carga for iniciada enquanto esta
// estiver em andamento, o resultado desta é descartado e ErrSuperseded é retornado.
func (s *Store) Refresh(ctx context.Context) error {
	requestID := s.requests.Add(1)
	s.Dispatch(LoadStarted{RequestID: requestID})

	start := time.Now()
	bundle, err := s.loader.Load(ctx)
	metrics.DashboardLoadDuration.Observe(time.Since(start).Seconds())

	if err == nil && bundle == nil {
		err = errors.New("loader returned no records")
	}

	if err != nil {
		next := s.Dispatch(LoadFailed{RequestID: requestID, Message: LoadFailedMessage})
		if next.LatestRequest != requestID {
			metrics.DashboardLoads.WithLabelValues("superseded").Inc()
			return ErrSuperseded
		}

		metrics.DashboardLoads.WithLabelValues("failure").Inc()
		logrus.WithError(err).WithField("request_id", requestID).Error("store: dashboard load failed")
		return errors.Wrap(ErrLoadFailed, err.Error())
	}

	snapshotID, err := s.newID()
	if err != nil {
		s.Dispatch(LoadFailed{RequestID: requestID, Message: LoadFailedMessage})
		metrics.DashboardLoads.WithLabelValues("failure").Inc()
		return errors.Wrap(err, "failed to generate snapshot id")
	}

	next := s.Dispatch(LoadSucceeded{
		RequestID:  requestID,
		Bundle:     *bundle,
		SnapshotID: snapshotID,
		LoadedAt:   s.now(),
	})
	if next.LatestRequest != requestID {
		metrics.DashboardLoads.WithLabelValues("superseded").Inc()
		return ErrSuperseded
	}

	metrics.DashboardLoads.WithLabelValues("success").Inc()
	logrus.WithFields(logrus.Fields{
		"request_id":  requestID,
		"snapshot_id": snapshotID,
		"campaigns":   len(bundle.Campaigns),
		"trends":      len(bundle.Trends),
		"duration":    time.Since(start).String(),
	}).Info("store: dashboard data loaded")

	return nil
}

// RefreshAsync inicia uma carga em background e retorna imediatamente
func (s *Store) RefreshAsync(ctx context.Context) {
	go func() {
		if err := s.Refresh(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, ErrSuperseded) {
			logrus.WithError(err).Warn("store: background refresh failed")
		}
	}()
}
