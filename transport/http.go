package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	authapp "github.com/asetku/marketplace/application/auth"
	catalogapp "github.com/asetku/marketplace/application/catalog"
	checkoutapp "github.com/asetku/marketplace/application/checkout"
	reconcileapp "github.com/asetku/marketplace/application/reconcile"
	"github.com/asetku/marketplace/cmd/config"
	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/model"
	utilsContext "github.com/asetku/marketplace/utils/context"
	"github.com/asetku/marketplace/utils/errors"
	validatorx "github.com/asetku/marketplace/utils/validator"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	AuthApp      authapp.AuthApp
	CatalogApp   catalogapp.CatalogApp
	CheckoutApp  checkoutapp.CheckoutApp
	ReconcileApp reconcileapp.ReconcileApp
}

func NewTransport(cfg *config.Config, authApp authapp.AuthApp, catalogApp catalogapp.CatalogApp, checkoutApp checkoutapp.CheckoutApp, reconcileApp reconcileapp.ReconcileApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		AuthApp:      authApp,
		CatalogApp:   catalogApp,
		CheckoutApp:  checkoutApp,
		ReconcileApp: reconcileApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/models", rh.ListModels).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/models/{id}", rh.GetModel).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/payment/notification", rh.PaymentNotification).Methods(http.MethodPost)

	// protected routes
	router.HandleFunc("/api/v1/checkout", rh.Checkout).Methods(http.MethodPost)

	// internal routes (scheduler / reconcile consumer)
	internal := router.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))
	internal.HandleFunc("/reconcile/sweep", rh.SweepPending).Methods(http.MethodPost)
	internal.HandleFunc("/order/{businessOrderID}/reconcile", rh.ReconcileOrder).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(authApp))

	return router
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListModels handler
// @Summary List 3D model assets
// @Tags Catalog
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.AssetListResponse
// @Router /api/v1/models [get]
func (s *RestHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	res, err := s.CatalogApp.ListAssets(ctx, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetModel handler
// @Summary Get one 3D model asset
// @Tags Catalog
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} model.AssetDetail
// @Failure 400 {object} errors.CustomError
// @Router /api/v1/models/{id} [get]
func (s *RestHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.GetAsset(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Checkout handler
// @Summary Purchase a 3D model asset
// @Description Creates an order and a hosted payment session for one product
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body model.CheckoutRequest true "Checkout Request"
// @Success 200 {object} model.CheckoutResponse
// @Failure 400 {object} errors.CustomError
// @Failure 401 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /api/v1/checkout [post]
func (s *RestHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CheckoutApp.Checkout(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PaymentNotification handler
// @Summary Payment gateway webhook
// @Description Receives asynchronous transaction status callbacks from the gateway
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body model.PaymentNotification true "Gateway Notification"
// @Success 200 {object} map[string]bool
// @Router /api/v1/payment/notification [post]
func (s *RestHandler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var notif model.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notif); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&notif); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	// Unknown orders and repeated statuses are no-ops inside the app; the
	// gateway still expects a 2xx acknowledgment for those.
	if err := s.ReconcileApp.HandleNotification(ctx, &notif); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]bool{"success": true})
}

// SweepPending handler
// @Summary Reconcile all stale pending orders
// @Tags Internal
// @Produce json
// @Success 200 {object} model.SweepResult
// @Router /internal/v1/reconcile/sweep [post]
func (s *RestHandler) SweepPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.ReconcileApp.SweepPending(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReconcileOrder handler
// @Summary Reconcile one order against the gateway
// @Tags Internal
// @Produce json
// @Param businessOrderID path string true "Business order ID"
// @Success 200 {object} map[string]bool
// @Router /internal/v1/order/{businessOrderID}/reconcile [post]
func (s *RestHandler) ReconcileOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	businessOrderID := mux.Vars(r)["businessOrderID"]
	if businessOrderID == "" {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ReconcileApp.ReconcileOrder(ctx, businessOrderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]bool{"success": true})
}
