package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// API-level error codes that sit outside the balance error taxonomy.
const (
	codeInvalidRequest = "InvalidRequest"
	codeComingSoon     = "ComingSoon"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NetworkView is a descriptor annotated with what the resolver can actually do for it.
type NetworkView struct {
	entity.NetworkDescriptor
	Supported bool `json:"supported"`
	Available bool `json:"available"`
}

// BalanceResponse is the body of a successful balance lookup.
type BalanceResponse struct {
	entity.BalanceResult
	Address     string `json:"address"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// ValidateResponse is the body of an address validation.
type ValidateResponse struct {
	Network string `json:"network"`
	Address string `json:"address"`
	Strict  bool   `json:"strict"`
	Valid   bool   `json:"valid"`
}

// BalanceHandler обрабатывает HTTP запросы, связанные с балансами и сетями.
type BalanceHandler struct {
	resolver    port.BalanceResolver
	validator   port.AddressValidator
	descriptors port.NetworkDescriptorProvider
	logger      port.Logger
}

// NewBalanceHandler создает новый экземпляр BalanceHandler.
func NewBalanceHandler(r port.BalanceResolver, v port.AddressValidator, d port.NetworkDescriptorProvider, l port.Logger) *BalanceHandler {
	return &BalanceHandler{
		resolver:    r,
		validator:   v,
		descriptors: d,
		logger:      l,
	}
}

// StatusForKind maps an error kind onto the HTTP status the API answers with.
func StatusForKind(kind entity.ErrorKind) int {
	switch kind {
	case entity.KindEmptyAddress, entity.KindInvalidAddressFormat:
		return http.StatusBadRequest
	case entity.KindUnsupportedNetwork, entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindRateLimited:
		return http.StatusTooManyRequests
	case entity.KindMissingCredential:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// ListNetworksHandler returns every declared network in display order.
func (h *BalanceHandler) ListNetworksHandler(c *gin.Context) {
	all := h.descriptors.GetAllDescriptors()
	views := make([]NetworkView, 0, len(all))
	for _, d := range all {
		supported := h.resolver.IsSupported(d.ID)
		views = append(views, NetworkView{
			NetworkDescriptor: d,
			Supported:         supported,
			Available:         supported && !d.ComingSoon,
		})
	}
	c.JSON(http.StatusOK, gin.H{"networks": views})
}

// ValidateAddressHandler format-checks an address. Never touches upstreams.
func (h *BalanceHandler) ValidateAddressHandler(c *gin.Context) {
	network := strings.TrimSpace(c.Query("network"))
	if network == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidRequest, Message: "network query parameter is required"})
		return
	}
	strict, _ := strconv.ParseBool(c.DefaultQuery("strict", "false"))
	address := strings.TrimSpace(c.Query("address"))

	c.JSON(http.StatusOK, ValidateResponse{
		Network: strings.ToLower(network),
		Address: address,
		Strict:  strict,
		Valid:   h.validator.Validate(address, network, strict),
	})
}

// GetBalanceHandler resolves one address on one network.
func (h *BalanceHandler) GetBalanceHandler(c *gin.Context) {
	ctx := c.Request.Context() // Используем контекст из Gin запроса

	network := strings.ToLower(strings.TrimSpace(c.Query("network")))
	if network == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidRequest, Message: "network query parameter is required"})
		return
	}
	address := strings.TrimSpace(c.Query("address"))

	descriptor, declared := h.descriptors.GetDescriptor(network)
	if declared && descriptor.ComingSoon {
		c.JSON(http.StatusNotImplemented, ErrorResponse{
			Error:   codeComingSoon,
			Message: fmt.Sprintf("%s support is coming soon", descriptor.Name),
		})
		return
	}

	// Advisory pre-check, mirrors the form validation collaborators run before submitting.
	if address != "" && !h.validator.Validate(address, network, false) {
		name := network
		if declared {
			name = descriptor.Name
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(entity.KindInvalidAddressFormat),
			Message: fmt.Sprintf("Invalid %s address format", name),
		})
		return
	}

	result, err := h.resolver.GetBalance(ctx, address, network)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		BalanceResult: result,
		Address:       address,
		ExplorerURL:   descriptor.ExplorerLink(address),
	})
}

func (h *BalanceHandler) writeError(c *gin.Context, err error) {
	kind := entity.KindOf(err)
	status := StatusForKind(kind)

	var be *entity.BalanceError
	if errors.As(err, &be) && be.Err != nil {
		h.logger.Debug("Balance request failed", "kind", kind, "status", status, "detail", be.Detail())
	} else {
		h.logger.Debug("Balance request failed", "kind", kind, "status", status, "error", err)
	}
	c.JSON(status, ErrorResponse{Error: string(kind), Message: err.Error()})
}

// HealthHandler answers liveness checks.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
