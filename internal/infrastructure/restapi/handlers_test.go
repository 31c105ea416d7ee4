package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/app/service"
	"balance_resolver/internal/domain/entity"
	networkdefinition "balance_resolver/internal/infrastructure/network/definition"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	supported map[string]bool
	result    entity.BalanceResult
	err       error
	calls     atomic.Int32
}

func (s *stubResolver) GetBalance(_ context.Context, address, networkID string) (entity.BalanceResult, error) {
	s.calls.Add(1)
	if address == "" {
		return entity.BalanceResult{}, entity.NewBalanceError(entity.KindEmptyAddress, networkID, "Address is required")
	}
	if !s.supported[networkID] {
		return entity.BalanceResult{}, entity.NewBalanceError(entity.KindUnsupportedNetwork, networkID, "Network "+networkID+" is not yet supported")
	}
	return s.result, s.err
}

func (s *stubResolver) SupportedNetworks() []string {
	out := make([]string, 0, len(s.supported))
	for id := range s.supported {
		out = append(out, id)
	}
	return out
}

func (s *stubResolver) IsSupported(id string) bool { return s.supported[id] }

func newTestRouter(r port.BalanceResolver, limiter *IPRateLimiter) *gin.Engine {
	h := NewBalanceHandler(r, service.NewAddressValidator(port.NopLogger{}), networkdefinition.NewDescriptorProvider(), port.NopLogger{})
	return SetupRouter(h, RouterOptions{RateLimiter: limiter})
}

func allNine() map[string]bool {
	m := map[string]bool{}
	for _, d := range networkdefinition.ResolvableNetworks {
		m[d.ID] = true
	}
	return m
}

func do(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "203.0.113.7:4711"
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestGetBalanceHandler_Success(t *testing.T) {
	t.Parallel()

	r := &stubResolver{supported: allNine(), result: entity.BalanceResult{Native: "1.500000", USD: "3000.00", Symbol: "ETH", Network: "Ethereum"}}
	w := do(t, newTestRouter(r, nil), "/api/v1/balance?network=Ethereum&address=0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body BalanceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Native != "1.500000" || body.USD != "3000.00" || body.Symbol != "ETH" {
		t.Fatalf("body=%+v", body)
	}
	if body.ExplorerURL != "https://etherscan.io/address/0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed" {
		t.Fatalf("explorerUrl=%s", body.ExplorerURL)
	}
}

func TestGetBalanceHandler_ErrorStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind   entity.ErrorKind
		status int
	}{
		{entity.KindInvalidAddressFormat, http.StatusBadRequest},
		{entity.KindNotFound, http.StatusNotFound},
		{entity.KindRateLimited, http.StatusTooManyRequests},
		{entity.KindMissingCredential, http.StatusServiceUnavailable},
		{entity.KindTransport, http.StatusBadGateway},
		{entity.KindProvider, http.StatusBadGateway},
	}
	for _, tc := range cases {
		r := &stubResolver{supported: allNine(), err: entity.NewBalanceError(tc.kind, "bitcoin", "upstream said no")}
		w := do(t, newTestRouter(r, nil), "/api/v1/balance?network=bitcoin&address=1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
		if w.Code != tc.status {
			t.Fatalf("%s: status=%d want %d", tc.kind, w.Code, tc.status)
		}
		body := decodeError(t, w)
		if body.Error != string(tc.kind) || body.Message != "upstream said no" {
			t.Fatalf("%s: body=%+v", tc.kind, body)
		}
	}
}

func TestGetBalanceHandler_Gating(t *testing.T) {
	t.Parallel()

	r := &stubResolver{supported: allNine()}
	router := newTestRouter(r, nil)

	// Declared but gated as coming soon, even though a fetcher exists.
	w := do(t, router, "/api/v1/balance?network=algorand&address=VCMJKWOY5P5P7SKMZFFOCEROPJCZOTIJMNIYNUCKH7LRO45JMJP6UYBIJA")
	if w.Code != http.StatusNotImplemented {
		t.Fatalf("algorand status=%d", w.Code)
	}
	if body := decodeError(t, w); body.Message != "Algorand support is coming soon" {
		t.Fatalf("algorand body=%+v", body)
	}

	// Regex pre-check rejects before the resolver is called.
	w = do(t, router, "/api/v1/balance?network=ethereum&address=0x1234")
	if w.Code != http.StatusBadRequest || decodeError(t, w).Error != string(entity.KindInvalidAddressFormat) {
		t.Fatalf("invalid address status=%d body=%s", w.Code, w.Body.String())
	}

	// Empty address and unknown network surface the resolver's own errors.
	w = do(t, router, "/api/v1/balance?network=bitcoin&address=")
	if w.Code != http.StatusBadRequest || decodeError(t, w).Error != string(entity.KindEmptyAddress) {
		t.Fatalf("empty address status=%d body=%s", w.Code, w.Body.String())
	}
	w = do(t, router, "/api/v1/balance?network=dogecoin&address=DH5yaieqoZN36fDVciNyRueRGvGLR3mr7L")
	if w.Code != http.StatusNotFound || decodeError(t, w).Error != string(entity.KindUnsupportedNetwork) {
		t.Fatalf("unsupported status=%d body=%s", w.Code, w.Body.String())
	}

	w = do(t, router, "/api/v1/balance?address=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing network status=%d", w.Code)
	}

	if got := r.calls.Load(); got != 2 {
		t.Fatalf("resolver calls=%d want 2", got)
	}
}

func TestListNetworksHandler(t *testing.T) {
	t.Parallel()

	w := do(t, newTestRouter(&stubResolver{supported: allNine()}, nil), "/api/v1/networks")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body struct {
		Networks []NetworkView `json:"networks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Networks) != 11 {
		t.Fatalf("networks=%d", len(body.Networks))
	}
	byID := map[string]NetworkView{}
	for _, n := range body.Networks {
		byID[n.ID] = n
	}
	if !byID["ethereum"].Available || !byID["algorand"].Supported || byID["algorand"].Available {
		t.Fatalf("unexpected flags: eth=%+v algo=%+v", byID["ethereum"], byID["algorand"])
	}
	if byID["polkadot"].Supported || byID["sonic"].Available {
		t.Fatalf("polkadot/sonic should be neither supported nor available")
	}
}

func TestValidateAddressHandler(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubResolver{supported: allNine()}, nil)
	cases := []struct {
		target string
		valid  bool
	}{
		{"/api/v1/validate?network=bitcoin&address=1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", true},
		{"/api/v1/validate?network=bitcoin&address=1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb", true},
		{"/api/v1/validate?network=bitcoin&address=1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb&strict=true", false},
		{"/api/v1/validate?network=solana&address=not-base58-0OIl", false},
		{"/api/v1/validate?network=polkadot&address=whatever", true},
	}
	for _, tc := range cases {
		w := do(t, router, tc.target)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", tc.target, w.Code)
		}
		var body ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Valid != tc.valid {
			t.Fatalf("%s: valid=%v want %v", tc.target, body.Valid, tc.valid)
		}
	}
}

func TestIPRateLimiter(t *testing.T) {
	t.Parallel()

	r := &stubResolver{supported: allNine(), result: entity.BalanceResult{Native: "0", USD: "0.00", Symbol: "BTC", Network: "Bitcoin"}}
	router := newTestRouter(r, NewIPRateLimiter(0.001, 2, time.Minute))

	const target = "/api/v1/balance?network=bitcoin&address=1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	for i := 0; i < 2; i++ {
		if w := do(t, router, target); w.Code != http.StatusOK {
			t.Fatalf("request %d status=%d", i, w.Code)
		}
	}
	w := do(t, router, target)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d want 429", w.Code)
	}
	// Validation is not rate limited.
	if w := do(t, router, "/api/v1/validate?network=bitcoin&address=x"); w.Code != http.StatusOK {
		t.Fatalf("validate status=%d", w.Code)
	}
	if got := r.calls.Load(); got != 2 {
		t.Fatalf("resolver calls=%d", got)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	if w := do(t, newTestRouter(&stubResolver{}, nil), "/healthz"); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

type levelRecorder struct {
	port.NopLogger
	mu    sync.Mutex
	warn  []string
	debug []string
}

func (r *levelRecorder) Warn(msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warn = append(r.warn, msg)
}

func (r *levelRecorder) Debug(msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = append(r.debug, msg)
}

func TestBalanceHandler_FailureLoggedAtDebug(t *testing.T) {
	t.Parallel()

	rec := &levelRecorder{}
	r := &stubResolver{supported: allNine(), err: entity.WrapBalanceError(entity.KindRateLimited, "bitcoin",
		"Rate limit exceeded. Please try again later.", errors.New("Bitcoin API error: 429"))}
	h := NewBalanceHandler(r, service.NewAddressValidator(port.NopLogger{}), networkdefinition.NewDescriptorProvider(), rec)
	router := SetupRouter(h, RouterOptions{})

	w := do(t, router, "/api/v1/balance?network=bitcoin&address=1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
	if w.Code != StatusForKind(entity.KindRateLimited) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.warn) != 0 {
		t.Fatalf("warn logs=%v", rec.warn)
	}
	if len(rec.debug) == 0 || rec.debug[len(rec.debug)-1] != "Balance request failed" {
		t.Fatalf("debug logs=%v", rec.debug)
	}
}
