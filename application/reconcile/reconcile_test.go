package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appreconcile "github.com/asetku/marketplace/application/reconcile"
	"github.com/asetku/marketplace/cmd/config"
	"github.com/asetku/marketplace/constant"
	ordermocks "github.com/asetku/marketplace/mocks/repository/order"
	productmocks "github.com/asetku/marketplace/mocks/repository/product"
	txmocks "github.com/asetku/marketplace/mocks/repository/tx"
	gwmocks "github.com/asetku/marketplace/mocks/thirdparty/snapgw"
	"github.com/asetku/marketplace/model"
	cerr "github.com/asetku/marketplace/utils/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	config      *config.Config
	txRepo      *txmocks.TxRepository
	orderRepo   *ordermocks.OrderRepository
	productRepo *productmocks.ProductRepository
	gateway     *gwmocks.Client
}

func newFields(t *testing.T) fields {
	return fields{
		config: &config.Config{
			Order: config.OrderConfig{StaleAfter: 15 * time.Minute},
		},
		txRepo:      txmocks.NewTxRepository(t),
		orderRepo:   ordermocks.NewOrderRepository(t),
		productRepo: productmocks.NewProductRepository(t),
		gateway:     gwmocks.NewClient(t),
	}
}

func newApp(f fields) appreconcile.ReconcileApp {
	return appreconcile.NewReconcileApp(f.config, f.txRepo, f.orderRepo, f.productRepo, f.gateway)
}

func assertErrCode(t *testing.T, err error, errType constant.ErrorType) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	ce, ok := err.(cerr.CustomError)
	if !ok {
		t.Fatalf("expected CustomError, got %T", err)
	}
	want := cerr.SetCustomError(errType)
	if ce.ErrorCode() != want.ErrorCode() {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), want.ErrorCode())
	}
}

func TestReconcileApp_HandleNotification(t *testing.T) {
	order := &model.OrderDetail{ID: 7, UserID: 1, BusinessOrderID: "TRX-1700000000-1-abc", Status: constant.OrderStatusPending}
	lines := []model.OrderLine{{ID: 11, OrderID: 7, ProductID: 42, Quantity: 3, UnitPrice: 10000, Subtotal: 30000}}

	tests := []struct {
		name     string
		notif    *model.PaymentNotification
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "settlement completes the order and decrements stock once per line",
			notif: &model.PaymentNotification{OrderID: "TRX-1700000000-1-abc", TransactionStatus: constant.GatewayStatusSettlement},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-1700000000-1-abc").Return(order, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, tx, uint64(7), constant.OrderStatusCompleted, mock.MatchedBy(func(pt *time.Time) bool {
					return pt != nil
				})).Return(true, nil).Once()
				f.orderRepo.On("GetOrderLinesTx", mock.Anything, tx, uint64(7)).Return(lines, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(42), 3).Return(nil).Once()
			},
		},
		{
			name:  "repeated settlement is a no-op, stock is not decremented again",
			notif: &model.PaymentNotification{OrderID: "TRX-1700000000-1-abc", TransactionStatus: constant.GatewayStatusSettlement},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				completed := &model.OrderDetail{ID: 7, BusinessOrderID: "TRX-1700000000-1-abc", Status: constant.OrderStatusCompleted}
				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-1700000000-1-abc").Return(completed, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, tx, uint64(7), constant.OrderStatusCompleted, mock.Anything).Return(false, nil).Once()
			},
		},
		{
			name:  "expire fails the order without touching stock",
			notif: &model.PaymentNotification{OrderID: "TRX-1700000000-1-abc", TransactionStatus: constant.GatewayStatusExpire},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-1700000000-1-abc").Return(order, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, tx, uint64(7), constant.OrderStatusFailed, (*time.Time)(nil)).Return(true, nil).Once()
			},
		},
		{
			name:     "pending transaction status is acknowledged without opening a transaction",
			notif:    &model.PaymentNotification{OrderID: "TRX-1700000000-1-abc", TransactionStatus: constant.GatewayStatusPending},
			mockCall: nil,
		},
		{
			name:  "unknown order id is acknowledged, not an error",
			notif: &model.PaymentNotification{OrderID: "TRX-nope", TransactionStatus: constant.GatewayStatusSettlement},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-nope").Return(nil, nil).Once()
			},
		},
		{
			name:  "decrement failure rolls the whole transition back",
			notif: &model.PaymentNotification{OrderID: "TRX-1700000000-1-abc", TransactionStatus: constant.GatewayStatusSettlement},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-1700000000-1-abc").Return(order, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, tx, uint64(7), constant.OrderStatusCompleted, mock.Anything).Return(true, nil).Once()
				f.orderRepo.On("GetOrderLinesTx", mock.Anything, tx, uint64(7)).Return(lines, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(42), 3).Return(errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			err := newApp(f).HandleNotification(context.Background(), tt.notif)
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if err != nil {
				t.Fatalf("HandleNotification() unexpected error: %v", err)
			}
		})
	}
}

func TestReconcileApp_ReconcileOrder(t *testing.T) {
	order := &model.OrderDetail{ID: 7, BusinessOrderID: "TRX-1700000000-1-abc", Status: constant.OrderStatusPending}

	tests := []struct {
		name     string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "gateway settlement completes the order",
			mockCall: func(f fields) {
				f.gateway.On("CheckStatus", mock.Anything, "TRX-1700000000-1-abc").Return(constant.GatewayStatusSettlement, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-1700000000-1-abc").Return(order, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, tx, uint64(7), constant.OrderStatusCompleted, mock.Anything).Return(true, nil).Once()
				f.orderRepo.On("GetOrderLinesTx", mock.Anything, tx, uint64(7)).Return([]model.OrderLine{}, nil).Once()
			},
		},
		{
			name: "gateway still pending leaves the order alone",
			mockCall: func(f fields) {
				f.gateway.On("CheckStatus", mock.Anything, "TRX-1700000000-1-abc").Return(constant.GatewayStatusPending, nil).Once()
			},
		},
		{
			name: "gateway error surfaces as gateway failure",
			mockCall: func(f fields) {
				f.gateway.On("CheckStatus", mock.Anything, "TRX-1700000000-1-abc").Return("", errors.New("status returned 503")).Once()
			},
			wantErr: true,
			errCode: constant.ErrGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			err := newApp(f).ReconcileOrder(context.Background(), "TRX-1700000000-1-abc")
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if err != nil {
				t.Fatalf("ReconcileOrder() unexpected error: %v", err)
			}
		})
	}
}

func TestReconcileApp_SweepPending(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.SweepResult
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "mixed gateway outcomes are counted and pending is skipped",
			mockCall: func(f fields) {
				f.orderRepo.On("ListStalePending", mock.Anything, 15*time.Minute).
					Return([]string{"TRX-a", "TRX-b", "TRX-c"}, nil).Once()

				f.gateway.On("CheckStatus", mock.Anything, "TRX-a").Return(constant.GatewayStatusSettlement, nil).Once()
				f.gateway.On("CheckStatus", mock.Anything, "TRX-b").Return(constant.GatewayStatusExpire, nil).Once()
				f.gateway.On("CheckStatus", mock.Anything, "TRX-c").Return(constant.GatewayStatusPending, nil).Once()

				txA := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(txA, nil).Twice()
				f.txRepo.On("CommitTx", txA).Return(nil).Twice()

				orderA := &model.OrderDetail{ID: 1, BusinessOrderID: "TRX-a", Status: constant.OrderStatusPending}
				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, txA, "TRX-a").Return(orderA, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, txA, uint64(1), constant.OrderStatusCompleted, mock.Anything).Return(true, nil).Once()
				f.orderRepo.On("GetOrderLinesTx", mock.Anything, txA, uint64(1)).
					Return([]model.OrderLine{{OrderID: 1, ProductID: 5, Quantity: 2}}, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, txA, uint64(5), 2).Return(nil).Once()

				orderB := &model.OrderDetail{ID: 2, BusinessOrderID: "TRX-b", Status: constant.OrderStatusPending}
				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, txA, "TRX-b").Return(orderB, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, txA, uint64(2), constant.OrderStatusFailed, (*time.Time)(nil)).Return(true, nil).Once()
			},
			want: &model.SweepResult{Checked: 3, Completed: 1, Failed: 1},
		},
		{
			name: "gateway error on one order does not abort the sweep",
			mockCall: func(f fields) {
				f.orderRepo.On("ListStalePending", mock.Anything, 15*time.Minute).
					Return([]string{"TRX-a", "TRX-b"}, nil).Once()

				f.gateway.On("CheckStatus", mock.Anything, "TRX-a").Return("", errors.New("status returned 503")).Once()
				f.gateway.On("CheckStatus", mock.Anything, "TRX-b").Return(constant.GatewayStatusCancel, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				orderB := &model.OrderDetail{ID: 2, BusinessOrderID: "TRX-b", Status: constant.OrderStatusPending}
				f.orderRepo.On("GetByBusinessIDTx", mock.Anything, tx, "TRX-b").Return(orderB, nil).Once()
				f.orderRepo.On("MarkStatusTx", mock.Anything, tx, uint64(2), constant.OrderStatusFailed, (*time.Time)(nil)).Return(true, nil).Once()
			},
			want: &model.SweepResult{Checked: 2, Completed: 0, Failed: 1},
		},
		{
			name: "no stale orders",
			mockCall: func(f fields) {
				f.orderRepo.On("ListStalePending", mock.Anything, 15*time.Minute).Return([]string{}, nil).Once()
			},
			want: &model.SweepResult{},
		},
		{
			name: "listing failure aborts the sweep",
			mockCall: func(f fields) {
				f.orderRepo.On("ListStalePending", mock.Anything, 15*time.Minute).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := newApp(f).SweepPending(context.Background())
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if err != nil {
				t.Fatalf("SweepPending() unexpected error: %v", err)
			}
			if got.Checked != tt.want.Checked || got.Completed != tt.want.Completed || got.Failed != tt.want.Failed {
				t.Fatalf("SweepPending() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
