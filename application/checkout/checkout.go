package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asetku/marketplace/cmd/config"
	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/model"
	lockrepo "github.com/asetku/marketplace/repository/lock"
	orderrepo "github.com/asetku/marketplace/repository/order"
	productrepo "github.com/asetku/marketplace/repository/product"
	txrepo "github.com/asetku/marketplace/repository/tx"
	userrepo "github.com/asetku/marketplace/repository/user"
	"github.com/asetku/marketplace/thirdparty/rabbitmq"
	"github.com/asetku/marketplace/thirdparty/snapgw"
	"github.com/asetku/marketplace/utils/errors"
	"github.com/asetku/marketplace/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutApp interface {
	Checkout(ctx context.Context, userID uint64, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}

type checkoutAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	locker      lockrepo.Locker
	gateway     snapgw.Client
	publisher   *rabbitmq.Publisher
}

func NewCheckoutApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, userRepo userrepo.UserRepository, locker lockrepo.Locker, gateway snapgw.Client, publisher *rabbitmq.Publisher) CheckoutApp {
	return &checkoutAppImpl{
		config:      config,
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		locker:      locker,
		gateway:     gateway,
		publisher:   publisher,
	}
}

// Checkout runs one purchase attempt end to end: lock on the
// (product, client timestamp) pair, snapshot the price inside a DB
// transaction, write the order and its line, open a gateway payment session,
// persist the token and commit. Any failure after the lock rolls the whole
// transaction back; the lock is always released.
func (s *checkoutAppImpl) Checkout(ctx context.Context, userID uint64, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req.ProductID == 0 || req.Quantity <= 0 || req.ClientTS == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if userID == 0 {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[Checkout] get user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// Serialize duplicate submissions of the same request. Different client
	// timestamps for the same product proceed in parallel on purpose.
	lockKey := fmt.Sprintf("checkout:%d:%d", req.ProductID, req.ClientTS)
	lease, err := s.locker.Acquire(ctx, lockKey, s.config.Lock.WaitTimeout)
	if err != nil {
		if err.Error() == errors.SetCustomError(constant.ErrLockConflict).Error() {
			logger.Info("[Checkout] lock conflict", zap.String("key", lockKey))
			return nil, errors.SetCustomError(constant.ErrLockConflict)
		}
		logger.Error("[Checkout] acquire lock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	defer func() {
		if err := s.locker.Release(context.Background(), lease); err != nil {
			logger.Error("[Checkout] release lock", zap.String("key", lockKey), zap.String("error", err.Error()))
		}
	}()

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Checkout] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// price snapshot is taken here, the client amount is never trusted
	product, err := s.productRepo.GetForUpdateTx(ctx, tx, req.ProductID)
	if err != nil {
		logger.Error("[Checkout] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if product.Stock < int64(req.Quantity) {
		logger.Info("[Checkout] insufficient stock", zap.Uint64("product_id", req.ProductID), zap.Int("need", req.Quantity), zap.Int64("available", product.Stock))
		return nil, errors.SetCustomError(constant.ErrInsufficientStock)
	}

	totalAmount := product.Price * float64(req.Quantity)
	businessOrderID := newBusinessOrderID(userID)

	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		UserID:          userID,
		BusinessOrderID: businessOrderID,
		TotalAmount:     totalAmount,
		Status:          constant.OrderStatusPending,
	})
	if err != nil {
		logger.Error("[Checkout] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertOrderLineTx(ctx, tx, orderID, &model.InsertOrderLineTxItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: product.Price,
		Subtotal:  totalAmount,
	}); err != nil {
		logger.Error("[Checkout] insert order line", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	session, err := s.gateway.CreateSession(ctx, &snapgw.SessionRequest{
		OrderID:       businessOrderID,
		GrossAmount:   totalAmount,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
	})
	if err != nil {
		logger.Error("[Checkout] gateway create session", zap.String("business_order_id", businessOrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrGateway)
	}

	if err := s.orderRepo.SetSnapTokenTx(ctx, tx, orderID, session.Token); err != nil {
		logger.Error("[Checkout] set snap token", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		// The gateway session already exists at this point and cannot be
		// rolled back; leave an audit breadcrumb for manual reconciliation.
		logger.Error("[Checkout] commit tx, orphaned gateway session",
			zap.String("business_order_id", businessOrderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	// Schedule a reconcile check at the end of the payment window, in case
	// the gateway webhook never arrives.
	if s.publisher != nil {
		msg := rabbitmq.OrderReconcileMessage{
			BusinessOrderID: businessOrderID,
			UserID:          userID,
			ReconcileAt:     time.Now().Add(s.config.Order.PaymentWindow),
		}
		if err := s.publisher.PublishOrderReconcile(msg); err != nil {
			logger.Error("[Checkout] publish order reconcile", zap.String("error", err.Error()))
		}
	}

	return &model.CheckoutResponse{
		OrderID:         orderID,
		BusinessOrderID: businessOrderID,
		SnapToken:       session.Token,
	}, nil
}

// newBusinessOrderID builds the gateway correlation key:
// TRX-<unix timestamp>-<user id>-<random suffix>.
func newBusinessOrderID(userID uint64) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("TRX-%d-%d-%s", time.Now().Unix(), userID, suffix)
}
