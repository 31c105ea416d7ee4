package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/infrastructure/configloader"
)

const evmAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func TestExplorer_EthereumSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("module") != "account" || q.Get("action") != "balance" || q.Get("tag") != "latest" ||
			q.Get("address") != evmAddress || q.Get("apikey") != "ethKEY" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"1500000000000000000"}`))
	}))
	defer srv.Close()

	r := newTestRegistry(t, configloader.ProvidersConfig{Etherscan: srv.URL + "/api"},
		configloader.Credentials{Etherscan: "ethKEY"}, priceOf("ethereum", "2000"))
	got, err := mustFetcher(t, r, "ethereum").FetchBalance(context.Background(), evmAddress)
	if err != nil {
		t.Fatalf("FetchBalance: %v", err)
	}
	want := entity.BalanceResult{Native: "1.500000", USD: "3000.00", Symbol: "ETH", Network: "Ethereum"}
	if got != want {
		t.Fatalf("result=%+v want %+v", got, want)
	}
}

func TestExplorer_MissingCredentialSkipsRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	providers := configloader.ProvidersConfig{Etherscan: srv.URL, BscScan: srv.URL, PolygonScan: srv.URL + "/api"}
	creds := configloader.Credentials{Etherscan: "YourEtherscanApiKeyHere", BscScan: "  "}
	r := newTestRegistry(t, providers, creds, nil)
	for _, id := range []string{"ethereum", "bnb-chain", "polygon"} {
		_, err := mustFetcher(t, r, id).FetchBalance(context.Background(), evmAddress)
		assertKind(t, err, entity.KindMissingCredential)
	}
	if hits.Load() != 0 {
		t.Fatalf("hits=%d", hits.Load())
	}
}

func TestExplorer_EnvelopeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		want    entity.ErrorKind
		message string
	}{
		{name: "rate limit", status: 200, body: `{"status":"0","message":"NOTOK","result":"Max rate limit reached"}`, want: entity.KindRateLimited},
		{name: "invalid key", status: 200, body: `{"status":"0","message":"NOTOK","result":"Invalid API Key"}`, want: entity.KindMissingCredential},
		{name: "invalid address", status: 200, body: `{"status":"0","message":"NOTOK","result":"Error! Invalid address format"}`, want: entity.KindInvalidAddressFormat},
		{name: "generic notok", status: 200, body: `{"status":"0","message":"NOTOK","result":"Something odd"}`, want: entity.KindProvider,
			message: "Invalid API key or rate limit exceeded. Please check your PolygonScan API key."},
		{name: "other message", status: 200, body: `{"status":"0","message":"Query Timeout occured","result":""}`, want: entity.KindProvider,
			message: "Query Timeout occured"},
		{name: "http 429", status: 429, body: ``, want: entity.KindRateLimited},
		{name: "http 502", status: 502, body: ``, want: entity.KindTransport},
		{name: "bad result", status: 200, body: `{"status":"1","message":"OK","result":"1.5"}`, want: entity.KindProvider},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			r := newTestRegistry(t, configloader.ProvidersConfig{PolygonScan: srv.URL + "/api"}, configloader.Credentials{PolygonScan: "k"}, nil)
			_, err := mustFetcher(t, r, "polygon").FetchBalance(context.Background(), evmAddress)
			assertKind(t, err, tc.want)
			if tc.message != "" && err.Error() != tc.message {
				t.Fatalf("message=%q want %q", err.Error(), tc.message)
			}
		})
	}
}

func TestAvalanche_RetriesOnceWithKey(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("apikey") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"2000000000000000000"}`))
	}))
	defer srv.Close()

	r := newTestRegistry(t, configloader.ProvidersConfig{SnowTrace: srv.URL + "/api"}, configloader.Credentials{SnowTrace: "snowKEY"}, priceOf("avalanche-2", "30"))
	got, err := mustFetcher(t, r, "avalanche").FetchBalance(context.Background(), evmAddress)
	if err != nil {
		t.Fatalf("FetchBalance: %v", err)
	}
	if got.Native != "2.000000" || got.USD != "60.00" || got.Symbol != "AVAX" {
		t.Fatalf("result=%+v", got)
	}
	if hits.Load() != 2 {
		t.Fatalf("hits=%d want 2", hits.Load())
	}
}

func TestAvalanche_NoKeyNoRetry(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r := newTestRegistry(t, configloader.ProvidersConfig{SnowTrace: srv.URL + "/api"}, configloader.Credentials{SnowTrace: "YourSnowTraceApiKeyHere"}, nil)
	_, err := mustFetcher(t, r, "avalanche").FetchBalance(context.Background(), evmAddress)
	assertKind(t, err, entity.KindTransport)
	if hits.Load() != 1 {
		t.Fatalf("hits=%d want 1", hits.Load())
	}
}

func TestAvalanche_AnonymousSuccessNeedsNoKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "" {
			t.Errorf("key sent on first attempt")
		}
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"0"}`))
	}))
	defer srv.Close()

	r := newTestRegistry(t, configloader.ProvidersConfig{SnowTrace: srv.URL + "/api"}, configloader.Credentials{SnowTrace: "snowKEY"}, nil)
	got, err := mustFetcher(t, r, "avalanche").FetchBalance(context.Background(), evmAddress)
	if err != nil {
		t.Fatalf("FetchBalance: %v", err)
	}
	if got.Native != "0.000000" || got.USD != "0.00" {
		t.Fatalf("result=%+v", got)
	}
}
