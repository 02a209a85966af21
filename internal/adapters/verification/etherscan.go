package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

const (
	// requestsPerSecond matches the free Etherscan API tier.
	requestsPerSecond = 5

	defaultPollInterval = 3 * time.Second
	defaultMaxPolls     = 40
)

// EtherscanVerifier submits standard-json verifications to Etherscan-compatible APIs
type EtherscanVerifier struct {
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger

	PollInterval time.Duration
	MaxPolls     int
}

// NewEtherscanVerifier creates a rate-limited verifier
func NewEtherscanVerifier(log *slog.Logger) *EtherscanVerifier {
	return &EtherscanVerifier{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		log:          log.With("component", "etherscan"),
		PollInterval: defaultPollInterval,
		MaxPolls:     defaultMaxPolls,
	}
}

// apiResponse is the envelope every Etherscan endpoint returns
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Verify submits the source and waits for a final status
func (v *EtherscanVerifier) Verify(ctx context.Context, req usecase.VerifyRequest) (*usecase.VerifyResult, error) {
	if req.APIKey == "" {
		return nil, fmt.Errorf("%w: set api_keys.etherscan in the project config", domain.ErrMissingAPIKey)
	}
	apiURL := req.APIURL
	if apiURL == "" {
		apiURL = domain.EtherscanV2API
	}

	form := url.Values{}
	form.Set("apikey", req.APIKey)
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("contractaddress", req.Address.Hex())
	form.Set("sourceCode", string(req.StandardJSON))
	form.Set("codeformat", "solidity-standard-json-input")
	form.Set("contractname", req.ContractName)
	form.Set("compilerversion", req.CompilerVersion)
	// Etherscan's parameter name is misspelt
	form.Set("constructorArguements", req.ConstructorArgs)

	submitted, err := v.do(ctx, http.MethodPost, apiURL, req.ChainID, form)
	if err != nil {
		return nil, fmt.Errorf("failed to submit verification: %w", err)
	}
	if submitted.Status != "1" {
		if isAlreadyVerified(submitted.Result) {
			return &usecase.VerifyResult{AlreadyVerified: true, Message: submitted.Result}, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrVerificationFailed, submitted.Result)
	}

	guid := submitted.Result
	v.log.Debug("verification submitted", "guid", guid, "address", req.Address.Hex())

	ticker := time.NewTicker(v.PollInterval)
	defer ticker.Stop()

	for i := 0; i < v.MaxPolls; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		check := url.Values{}
		check.Set("apikey", req.APIKey)
		check.Set("module", "contract")
		check.Set("action", "checkverifystatus")
		check.Set("guid", guid)

		status, err := v.do(ctx, http.MethodGet, apiURL, req.ChainID, check)
		if err != nil {
			return nil, fmt.Errorf("failed to check verification status: %w", err)
		}

		switch {
		case strings.HasPrefix(status.Result, "Pending"):
			continue
		case strings.HasPrefix(status.Result, "Pass"):
			return &usecase.VerifyResult{GUID: guid, Message: status.Result}, nil
		case isAlreadyVerified(status.Result):
			return &usecase.VerifyResult{GUID: guid, AlreadyVerified: true, Message: status.Result}, nil
		default:
			return nil, fmt.Errorf("%w: %s", domain.ErrVerificationFailed, status.Result)
		}
	}

	return nil, fmt.Errorf("%w: still pending after %d checks (guid %s)", domain.ErrVerificationFailed, v.MaxPolls, guid)
}

func (v *EtherscanVerifier) do(ctx context.Context, method, apiURL string, chainID uint64, params url.Values) (*apiResponse, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid explorer API URL %q: %w", apiURL, err)
	}
	query := u.Query()
	if chainID != 0 {
		query.Set("chainid", strconv.FormatUint(chainID, 10))
	}

	var body io.Reader
	if method == http.MethodGet {
		for k, vs := range params {
			query[k] = vs
		}
	} else {
		body = strings.NewReader(params.Encode())
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := v.client.Do(req) //nolint:gosec // URL is constructed from configured explorer endpoint
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var out apiResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unexpected explorer response: %w", err)
	}
	return &out, nil
}

func isAlreadyVerified(result string) bool {
	return strings.Contains(strings.ToLower(result), "already verified")
}

var _ usecase.ContractVerifier = (*EtherscanVerifier)(nil)
