package constant

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Transaction status vocabulary of the payment gateway callback/status API.
const (
	GatewayStatusSettlement = "settlement"
	GatewayStatusCapture    = "capture"
	GatewayStatusDeny       = "deny"
	GatewayStatusCancel     = "cancel"
	GatewayStatusExpire     = "expire"
	GatewayStatusPending    = "pending"
)
