package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidPassword
	ErrInsufficientStock
	ErrLockConflict
	ErrGateway
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "error internal",
	ErrNotFound:          "data not found",
	ErrInvalidRequest:    "invalid request",
	ErrUnauthorize:       "unauthorize request",
	ErrInvalidPassword:   "password invalid",
	ErrInsufficientStock: "insufficient stock",
	ErrLockConflict:      "transaction is being processed, please retry",
	ErrGateway:           "payment gateway failure",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrNotFound:          http.StatusBadRequest,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrUnauthorize:       http.StatusUnauthorized,
	ErrInvalidPassword:   http.StatusBadRequest,
	ErrInsufficientStock: http.StatusBadRequest,
	ErrLockConflict:      http.StatusConflict,
	ErrGateway:           http.StatusInternalServerError,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrNotFound:          "0002",
	ErrInvalidRequest:    "0003",
	ErrUnauthorize:       "0004",
	ErrInvalidPassword:   "0005",
	ErrInsufficientStock: "0006",
	ErrLockConflict:      "0007",
	ErrGateway:           "0008",
}
