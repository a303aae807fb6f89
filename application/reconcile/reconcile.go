package reconcile

import (
	"context"
	"time"

	"github.com/asetku/marketplace/cmd/config"
	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/model"
	orderrepo "github.com/asetku/marketplace/repository/order"
	productrepo "github.com/asetku/marketplace/repository/product"
	txrepo "github.com/asetku/marketplace/repository/tx"
	"github.com/asetku/marketplace/thirdparty/snapgw"
	"github.com/asetku/marketplace/utils/errors"
	"github.com/asetku/marketplace/utils/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ReconcileApp interface {
	HandleNotification(ctx context.Context, notif *model.PaymentNotification) error
	ReconcileOrder(ctx context.Context, businessOrderID string) error
	SweepPending(ctx context.Context) (*model.SweepResult, error)
}

type reconcileAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	gateway     snapgw.Client
}

func NewReconcileApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, gateway snapgw.Client) ReconcileApp {
	return &reconcileAppImpl{
		config:      config,
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		gateway:     gateway,
	}
}

// mapGatewayStatus translates the gateway vocabulary into the order taxonomy.
func mapGatewayStatus(gatewayStatus string) constant.OrderStatus {
	switch gatewayStatus {
	case constant.GatewayStatusSettlement:
		return constant.OrderStatusCompleted
	case constant.GatewayStatusCapture, constant.GatewayStatusDeny, constant.GatewayStatusCancel, constant.GatewayStatusExpire:
		return constant.OrderStatusFailed
	default:
		return constant.OrderStatusPending
	}
}

// HandleNotification processes a gateway webhook call. It tolerates repeats
// and unknown order ids: the gateway expects an acknowledgment either way, so
// a no-op lookup is logged, never an error.
func (s *reconcileAppImpl) HandleNotification(ctx context.Context, notif *model.PaymentNotification) error {
	status := mapGatewayStatus(notif.TransactionStatus)
	if status == constant.OrderStatusPending {
		logger.Info("[HandleNotification] non-terminal status, nothing to do",
			zap.String("business_order_id", notif.OrderID), zap.String("gateway_status", notif.TransactionStatus))
		return nil
	}

	return s.transitionOrder(ctx, notif.OrderID, status)
}

// ReconcileOrder asks the gateway for the authoritative status of one order
// and applies it. Used by the delayed-message consumer and the sweep; never
// completes an order the gateway has not confirmed.
func (s *reconcileAppImpl) ReconcileOrder(ctx context.Context, businessOrderID string) error {
	gatewayStatus, err := s.gateway.CheckStatus(ctx, businessOrderID)
	if err != nil {
		logger.Error("[ReconcileOrder] gateway check status",
			zap.String("business_order_id", businessOrderID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrGateway)
	}

	status := mapGatewayStatus(gatewayStatus)
	if status == constant.OrderStatusPending {
		logger.Info("[ReconcileOrder] still pending at gateway", zap.String("business_order_id", businessOrderID))
		return nil
	}

	return s.transitionOrder(ctx, businessOrderID, status)
}

// SweepPending walks every stale pending order and reconciles it against the
// gateway. Orders the gateway still reports as pending are left alone.
func (s *reconcileAppImpl) SweepPending(ctx context.Context) (*model.SweepResult, error) {
	ids, err := s.orderRepo.ListStalePending(ctx, s.config.Order.StaleAfter)
	if err != nil {
		logger.Error("[SweepPending] list stale pending", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	result := &model.SweepResult{}
	for _, businessOrderID := range ids {
		result.Checked++

		gatewayStatus, err := s.gateway.CheckStatus(ctx, businessOrderID)
		if err != nil {
			logger.Error("[SweepPending] gateway check status",
				zap.String("business_order_id", businessOrderID), zap.String("error", err.Error()))
			continue
		}

		status := mapGatewayStatus(gatewayStatus)
		if status == constant.OrderStatusPending {
			continue
		}

		if err := s.transitionOrder(ctx, businessOrderID, status); err != nil {
			logger.Error("[SweepPending] transition order",
				zap.String("business_order_id", businessOrderID), zap.String("error", err.Error()))
			continue
		}

		switch status {
		case constant.OrderStatusCompleted:
			result.Completed++
		case constant.OrderStatusFailed:
			result.Failed++
		}
	}

	return result, nil
}

// transitionOrder moves one order from pending to a terminal status and, on
// the first transition to completed, decrements stock for its lines. The
// guarded status update and the decrement share one DB transaction, so stock
// moves exactly once no matter how many times the same outcome is delivered.
func (s *reconcileAppImpl) transitionOrder(ctx context.Context, businessOrderID string, status constant.OrderStatus) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[transitionOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByBusinessIDTx(ctx, tx, businessOrderID)
	if err != nil {
		logger.Error("[transitionOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		// The gateway may notify before the order is visible, or for an id
		// that was never ours. Soft failure, the endpoint still acks.
		logger.Warn("[transitionOrder] unknown order", zap.String("business_order_id", businessOrderID))
		return nil
	}

	var paymentTime *time.Time
	if status == constant.OrderStatusCompleted {
		now := time.Now().UTC()
		paymentTime = &now
	}

	changed, err := s.orderRepo.MarkStatusTx(ctx, tx, order.ID, status, paymentTime)
	if err != nil {
		logger.Error("[transitionOrder] mark status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	// Stock moves only for the transition performed by this invocation.
	if changed && status == constant.OrderStatusCompleted {
		if err := s.decrementLines(ctx, tx, order.ID); err != nil {
			return err
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[transitionOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if changed {
		logger.Info("[transitionOrder] order transitioned",
			zap.String("business_order_id", businessOrderID), zap.String("status", string(status)))
	}
	return nil
}

func (s *reconcileAppImpl) decrementLines(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	lines, err := s.orderRepo.GetOrderLinesTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[transitionOrder] get order lines", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	for _, line := range lines {
		if err := s.productRepo.DecrementStockTx(ctx, tx, line.ProductID, line.Quantity); err != nil {
			logger.Error("[transitionOrder] decrement stock", zap.Uint64("product_id", line.ProductID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}
	return nil
}
