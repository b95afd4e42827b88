package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sojith29034/menu-saas/internal/domain"
	"github.com/sojith29034/menu-saas/internal/queue"
	"github.com/sojith29034/menu-saas/internal/service"
	"go.uber.org/zap"
)

// ShopAuditWorker consumes shop change events and writes the audit trail.
type ShopAuditWorker struct {
	shopService *service.ShopService
	broker      queue.Broker
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewShopAuditWorker(
	shopService *service.ShopService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *ShopAuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &ShopAuditWorker{
		shopService: shopService,
		broker:      broker,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *ShopAuditWorker) Start() error {
	w.logger.Info("starting shop audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueShopEvents, w.handleMessage)
}

func (w *ShopAuditWorker) Stop() {
	w.logger.Info("stopping shop audit worker")
	w.cancel()
}

func (w *ShopAuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.ShopEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal shop event", "error", err)
		return fmt.Errorf("failed to unmarshal shop event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing shop event", "shop_id", event.ShopID, "event_type", event.EventType)

	if err := w.shopService.ProcessShopEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process shop event", "shop_id", event.ShopID, "error", err)
		return err
	}

	return nil
}
