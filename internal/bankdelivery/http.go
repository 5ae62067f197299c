// Package bankdelivery manages delivery layer of banks.
package bankdelivery

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/internal/middleware"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/go-petr/vaultbank/pkg/tokenpkg"
	"github.com/go-petr/vaultbank/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by bank delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package bankdelivery
type Service interface {
	Create(ctx context.Context, owner, name string) (domain.Bank, error)
	Get(ctx context.Context, address string) (domain.Bank, error)
	Deposit(ctx context.Context, depositor, address string, amount uint64) (domain.Bank, error)
	Withdraw(ctx context.Context, requester, address string, amount uint64) (domain.Bank, error)
	ListEntries(ctx context.Context, requester, address string, limit, offset int32) ([]domain.Entry, error)
}

// ErrPageOutOfRange indicates that the requested page starts beyond the last addressable entry.
var ErrPageOutOfRange = errors.New("page_id is out of range")

// Handler facilitates bank delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns bank handler.
func NewHandler(bs Service) *Handler {
	return &Handler{service: bs}
}

type data struct {
	Bank domain.Bank `json:"bank"`
}

type entriesData struct {
	Entries []domain.Entry `json:"entries"`
}

type createRequest struct {
	Name string `json:"name"`
}

type addressRequest struct {
	Address string `uri:"address" binding:"required,hexadecimal,len=64"`
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// Create handles http request to create the requester's bank.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	bank, err := h.service.Create(ctx, authPayload.Username, req.Name)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Bank: bank}})
}

// Get handles http request to look up a bank by address.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri addressRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	bank, err := h.service.Get(ctx, uri.Address)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Bank: bank}})
}

// Deposit handles http request to move the requester's funds into a bank.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.move(gctx, h.service.Deposit)
}

// Withdraw handles http request to move funds from the requester's bank back to the requester.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.move(gctx, h.service.Withdraw)
}

type moveFunc func(ctx context.Context, username, address string, amount uint64) (domain.Bank, error)

func (h *Handler) move(gctx *gin.Context, fn moveFunc) {
	ctx := gctx.Request.Context()

	var uri addressRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	amount, err := amountpkg.Parse(req.Amount)
	if err != nil {
		badRequest(gctx, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	bank, err := fn(ctx, authPayload.Username, uri.Address, amount)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Bank: bank}})
}

// ListEntries handles http request to list fund movements of the requester's bank.
func (h *Handler) ListEntries(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri addressRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	offset := int64(req.PageID-1) * int64(req.PageSize)
	if offset > math.MaxInt32 {
		badRequest(gctx, ErrPageOutOfRange)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	entries, err := h.service.ListEntries(ctx, authPayload.Username, uri.Address, req.PageSize, int32(offset))
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: entriesData{Entries: entries}})
}

func badRequest(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func respondError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrZeroAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientBankBalance),
		errors.Is(err, domain.ErrAmountOverflow):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrUnauthorized):
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case errors.Is(err, domain.ErrBankNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrBankAlreadyExists):
		gctx.JSON(http.StatusConflict, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
