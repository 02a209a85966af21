package verification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

type fakeExplorer struct {
	mu       sync.Mutex
	submit   apiResponse
	statuses []string
	forms    []map[string]string
	chainIDs []string
}

func (f *fakeExplorer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	defer f.mu.Unlock()

	form := make(map[string]string)
	for k := range r.Form {
		form[k] = r.Form.Get(k)
	}
	f.forms = append(f.forms, form)
	f.chainIDs = append(f.chainIDs, r.URL.Query().Get("chainid"))

	var resp apiResponse
	switch form["action"] {
	case "verifysourcecode":
		resp = f.submit
	case "checkverifystatus":
		result := "Pending in queue"
		if len(f.statuses) > 0 {
			result, f.statuses = f.statuses[0], f.statuses[1:]
		}
		resp = apiResponse{Status: "1", Message: "OK", Result: result}
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func newVerifier() *EtherscanVerifier {
	v := NewEtherscanVerifier(slog.Default())
	v.PollInterval = time.Millisecond
	v.MaxPolls = 5
	return v
}

func request(apiURL string) usecase.VerifyRequest {
	return usecase.VerifyRequest{
		APIURL:          apiURL,
		APIKey:          "KEY",
		ChainID:         1,
		Address:         common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		ContractName:    "contracts/GovFund.sol:GovFund",
		CompilerVersion: "v0.7.5+commit.eb77ed08",
		StandardJSON:    []byte(`{"language":"Solidity"}`),
		ConstructorArgs: "000000000000000000000000f39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	}
}

func TestEtherscanVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("pass after pending", func(t *testing.T) {
		explorer := &fakeExplorer{
			submit:   apiResponse{Status: "1", Message: "OK", Result: "guid-123"},
			statuses: []string{"Pending in queue", "Pass - Verified"},
		}
		srv := httptest.NewServer(explorer)
		defer srv.Close()

		res, err := newVerifier().Verify(ctx, request(srv.URL+"/v2/api"))
		require.NoError(t, err)
		assert.Equal(t, "guid-123", res.GUID)
		assert.False(t, res.AlreadyVerified)

		require.Len(t, explorer.forms, 3)
		submitted := explorer.forms[0]
		assert.Equal(t, "KEY", submitted["apikey"])
		assert.Equal(t, "solidity-standard-json-input", submitted["codeformat"])
		assert.Equal(t, "contracts/GovFund.sol:GovFund", submitted["contractname"])
		assert.Equal(t, "v0.7.5+commit.eb77ed08", submitted["compilerversion"])
		assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", submitted["contractaddress"])
		assert.Equal(t, `{"language":"Solidity"}`, submitted["sourceCode"])
		assert.Equal(t, request("").ConstructorArgs, submitted["constructorArguements"])
		assert.Equal(t, "guid-123", explorer.forms[2]["guid"])
		assert.Equal(t, []string{"1", "1", "1"}, explorer.chainIDs)
	})

	t.Run("already verified on submit", func(t *testing.T) {
		srv := httptest.NewServer(&fakeExplorer{
			submit: apiResponse{Status: "0", Message: "NOTOK", Result: "Contract source code already verified"},
		})
		defer srv.Close()

		res, err := newVerifier().Verify(ctx, request(srv.URL))
		require.NoError(t, err)
		assert.True(t, res.AlreadyVerified)
	})

	t.Run("already verified while polling", func(t *testing.T) {
		srv := httptest.NewServer(&fakeExplorer{
			submit:   apiResponse{Status: "1", Result: "guid"},
			statuses: []string{"Already Verified"},
		})
		defer srv.Close()

		res, err := newVerifier().Verify(ctx, request(srv.URL))
		require.NoError(t, err)
		assert.True(t, res.AlreadyVerified)
	})

	t.Run("fail", func(t *testing.T) {
		srv := httptest.NewServer(&fakeExplorer{
			submit:   apiResponse{Status: "1", Result: "guid"},
			statuses: []string{"Fail - Unable to verify. Compiled contract deployment bytecode does NOT match"},
		})
		defer srv.Close()

		_, err := newVerifier().Verify(ctx, request(srv.URL))
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Contains(t, err.Error(), "does NOT match")
	})

	t.Run("rejected submission", func(t *testing.T) {
		srv := httptest.NewServer(&fakeExplorer{
			submit: apiResponse{Status: "0", Message: "NOTOK", Result: "Invalid API Key"},
		})
		defer srv.Close()

		_, err := newVerifier().Verify(ctx, request(srv.URL))
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	})

	t.Run("stays pending", func(t *testing.T) {
		srv := httptest.NewServer(&fakeExplorer{submit: apiResponse{Status: "1", Result: "guid"}})
		defer srv.Close()

		_, err := newVerifier().Verify(ctx, request(srv.URL))
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Contains(t, err.Error(), "still pending")
	})

	t.Run("missing api key", func(t *testing.T) {
		req := request("http://unused")
		req.APIKey = ""
		_, err := newVerifier().Verify(ctx, req)
		assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newVerifier().Verify(ctx, request(srv.URL))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}
