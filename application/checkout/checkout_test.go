package checkout_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appcheckout "github.com/asetku/marketplace/application/checkout"
	"github.com/asetku/marketplace/cmd/config"
	"github.com/asetku/marketplace/constant"
	lockmocks "github.com/asetku/marketplace/mocks/repository/lock"
	ordermocks "github.com/asetku/marketplace/mocks/repository/order"
	productmocks "github.com/asetku/marketplace/mocks/repository/product"
	txmocks "github.com/asetku/marketplace/mocks/repository/tx"
	usermocks "github.com/asetku/marketplace/mocks/repository/user"
	gwmocks "github.com/asetku/marketplace/mocks/thirdparty/snapgw"
	"github.com/asetku/marketplace/model"
	lockrepo "github.com/asetku/marketplace/repository/lock"
	"github.com/asetku/marketplace/thirdparty/snapgw"
	cerr "github.com/asetku/marketplace/utils/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Lock: config.LockConfig{
			WaitTimeout: 10 * time.Second,
		},
		Order: config.OrderConfig{
			PaymentWindow: 30 * time.Minute,
		},
	}
}

func TestCheckoutApp_Checkout(t *testing.T) {
	type fields struct {
		config      *config.Config
		txRepo      *txmocks.TxRepository
		orderRepo   *ordermocks.OrderRepository
		productRepo *productmocks.ProductRepository
		userRepo    *usermocks.UserRepository
		locker      *lockmocks.Locker
		gateway     *gwmocks.Client
	}
	type args struct {
		ctx    context.Context
		userID uint64
		req    *model.CheckoutRequest
	}

	newFields := func(t *testing.T) fields {
		return fields{
			config:      testConfig(),
			txRepo:      txmocks.NewTxRepository(t),
			orderRepo:   ordermocks.NewOrderRepository(t),
			productRepo: productmocks.NewProductRepository(t),
			userRepo:    usermocks.NewUserRepository(t),
			locker:      lockmocks.NewLocker(t),
			gateway:     gwmocks.NewClient(t),
		}
	}

	buyer := &model.UserEntity{ID: 1, Name: "Budi", Email: "budi@example.com", Role: "member"}

	tests := []struct {
		name      string
		args      args
		mockCall  func(f fields)
		wantToken string
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name: "success: order for quantity 3 at price 10000 totals 30000",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()

				lease := &lockrepo.Lease{Key: "checkout:42:1700000000", Token: "tok"}
				f.locker.On("Acquire", mock.Anything, "checkout:42:1700000000", 10*time.Second).Return(lease, nil).Once()
				f.locker.On("Release", mock.Anything, lease).Return(nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(42)).Return(&model.ProductRow{ID: 42, Price: 10000, Stock: 5}, nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertOrderTxItem) bool {
					return req.UserID == 1 &&
						req.Status == constant.OrderStatusPending &&
						req.TotalAmount == 30000 &&
						strings.HasPrefix(req.BusinessOrderID, "TRX-")
				})).Return(uint64(7), nil).Once()

				f.orderRepo.On("InsertOrderLineTx", mock.Anything, tx, uint64(7), &model.InsertOrderLineTxItem{
					ProductID: 42,
					Quantity:  3,
					UnitPrice: 10000,
					Subtotal:  30000,
				}).Return(nil).Once()

				f.gateway.On("CreateSession", mock.Anything, mock.MatchedBy(func(req *snapgw.SessionRequest) bool {
					return req.GrossAmount == 30000 && req.CustomerEmail == "budi@example.com" && strings.HasPrefix(req.OrderID, "TRX-")
				})).Return(&snapgw.Session{Token: "snap-token-123"}, nil).Once()

				f.orderRepo.On("SetSnapTokenTx", mock.Anything, tx, uint64(7), "snap-token-123").Return(nil).Once()
			},
			wantToken: "snap-token-123",
			wantErr:   false,
		},
		{
			name: "error: missing client timestamp",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: zero quantity",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 0, ClientTS: 1700000000},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: no session",
			args: args{
				ctx:    context.Background(),
				userID: 0,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3, ClientTS: 1700000000},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrUnauthorize,
		},
		{
			name: "error: lock held by concurrent attempt",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()
				f.locker.On("Acquire", mock.Anything, "checkout:42:1700000000", 10*time.Second).
					Return(nil, cerr.SetCustomError(constant.ErrLockConflict)).Once()
			},
			wantErr: true,
			errCode: constant.ErrLockConflict,
		},
		{
			name: "error: product not found rolls back and releases lock",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 99, Quantity: 1, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()

				lease := &lockrepo.Lease{Key: "checkout:99:1700000000", Token: "tok"}
				f.locker.On("Acquire", mock.Anything, "checkout:99:1700000000", 10*time.Second).Return(lease, nil).Once()
				f.locker.On("Release", mock.Anything, lease).Return(nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(99)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: insufficient stock",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 10, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()

				lease := &lockrepo.Lease{Key: "checkout:42:1700000000", Token: "tok"}
				f.locker.On("Acquire", mock.Anything, "checkout:42:1700000000", 10*time.Second).Return(lease, nil).Once()
				f.locker.On("Release", mock.Anything, lease).Return(nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(42)).Return(&model.ProductRow{ID: 42, Price: 10000, Stock: 5}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: gateway failure rolls back whole order and releases lock",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()

				lease := &lockrepo.Lease{Key: "checkout:42:1700000000", Token: "tok"}
				f.locker.On("Acquire", mock.Anything, "checkout:42:1700000000", 10*time.Second).Return(lease, nil).Once()
				f.locker.On("Release", mock.Anything, lease).Return(nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(42)).Return(&model.ProductRow{ID: 42, Price: 10000, Stock: 5}, nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(7), nil).Once()
				f.orderRepo.On("InsertOrderLineTx", mock.Anything, tx, uint64(7), mock.Anything).Return(nil).Once()

				f.gateway.On("CreateSession", mock.Anything, mock.Anything).
					Return(nil, errors.New("create session returned status 502")).Once()
			},
			wantErr: true,
			errCode: constant.ErrGateway,
		},
		{
			name: "error: BeginTx returns error",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()

				lease := &lockrepo.Lease{Key: "checkout:42:1700000000", Token: "tok"}
				f.locker.On("Acquire", mock.Anything, "checkout:42:1700000000", 10*time.Second).Return(lease, nil).Once()
				f.locker.On("Release", mock.Anything, lease).Return(nil).Once()

				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("tx error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: commit failure after gateway success",
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req:    &model.CheckoutRequest{ProductID: 42, Quantity: 3, ClientTS: 1700000000},
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(buyer, nil).Once()

				lease := &lockrepo.Lease{Key: "checkout:42:1700000000", Token: "tok"}
				f.locker.On("Acquire", mock.Anything, "checkout:42:1700000000", 10*time.Second).Return(lease, nil).Once()
				f.locker.On("Release", mock.Anything, lease).Return(nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(errors.New("commit error")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.productRepo.On("GetForUpdateTx", mock.Anything, tx, uint64(42)).Return(&model.ProductRow{ID: 42, Price: 10000, Stock: 5}, nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(7), nil).Once()
				f.orderRepo.On("InsertOrderLineTx", mock.Anything, tx, uint64(7), mock.Anything).Return(nil).Once()
				f.gateway.On("CreateSession", mock.Anything, mock.Anything).Return(&snapgw.Session{Token: "snap-token-123"}, nil).Once()
				f.orderRepo.On("SetSnapTokenTx", mock.Anything, tx, uint64(7), "snap-token-123").Return(nil).Once()
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

			app := appcheckout.NewCheckoutApp(f.config, f.txRepo, f.orderRepo, f.productRepo, f.userRepo, f.locker, f.gateway, nil)
			got, err := app.Checkout(tt.args.ctx, tt.args.userID, tt.args.req)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Checkout() expected error, got nil")
				}
				ce, ok := err.(cerr.CustomError)
				if !ok {
					t.Fatalf("Checkout() expected CustomError, got %T", err)
				}
				if ce.ErrorCode() != cerr.SetCustomError(tt.errCode).ErrorCode() {
					t.Fatalf("Checkout() error code = %s, want %s", ce.ErrorCode(), cerr.SetCustomError(tt.errCode).ErrorCode())
				}
				return
			}

			if err != nil {
				t.Fatalf("Checkout() unexpected error: %v", err)
			}
			if got.OrderID != 7 {
				t.Errorf("Checkout() OrderID = %d, want 7", got.OrderID)
			}
			if got.SnapToken != tt.wantToken {
				t.Errorf("Checkout() SnapToken = %s, want %s", got.SnapToken, tt.wantToken)
			}
			if !strings.HasPrefix(got.BusinessOrderID, "TRX-") {
				t.Errorf("Checkout() BusinessOrderID = %s, want TRX- prefix", got.BusinessOrderID)
			}
		})
	}
}
