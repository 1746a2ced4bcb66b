package sui

// Package sui contains a minimal client for the Sui fullnode JSON-RPC API
// This file is the transport layer: request envelope, rate limiting, circuit breaker, retries
// Method wrappers live next to it (balance.go, transactions.go)

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"sui-arb-ops/internal/infra/log"
	"sui-arb-ops/internal/infra/retry"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// MainnetRPC - public Sui mainnet fullnode
	MainnetRPC = "https://fullnode.mainnet.sui.io:443"
	// TestnetRPC - public Sui testnet fullnode
	TestnetRPC = "https://fullnode.testnet.sui.io:443"
)

// Options tune the client; zero values fall back to defaults.
type Options struct {
	Timeout         time.Duration
	RateLimit       int // requests per second
	MaxRetries      int
	MaxResponseSize int64
}

// Client talks JSON-RPC 2.0 to a single Sui fullnode
type Client struct {
	rpcURL          string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter
	circuitBreaker  *gobreaker.CircuitBreaker
	retry           retry.Options
	maxResponseSize int64
	nextID          atomic.Uint64
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is the JSON-RPC error object returned by the node
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// ErrUnexpectedResponse - response has neither result nor error
var ErrUnexpectedResponse = errors.New("unexpected response format")

// NewClient creates a client for rpcURL
func NewClient(rpcURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxResponseSize <= 0 {
		opts.MaxResponseSize = 10 * 1024 * 1024
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SuiRPC",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.LogWarn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		rpcURL:          rpcURL,
		rateLimiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit*2),
		circuitBreaker:  circuitBreaker,
		maxResponseSize: opts.MaxResponseSize,
		retry: retry.Options{
			MaxRetries: opts.MaxRetries,
			BaseDelay:  300 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Backoff:    2.0,
		},
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

// breakerSuccess - JSON-RPC errors mean the node answered, and a cancelled
// caller says nothing about node health
func breakerSuccess(err error) bool {
	var rpcErr *RPCError
	return err == nil || errors.As(err, &rpcErr) || errors.Is(err, context.Canceled)
}

// Call invokes method with params and decodes the result into out
func (c *Client) Call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	if params == nil {
		params = []interface{}{}
	}
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	var result json.RawMessage
	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, retry.Do(ctx, c.retry, func() error {
			var err error
			result, err = c.post(ctx, req)
			return err
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.LogError("Circuit breaker rejected request", zap.String("method", method), zap.Error(err))
		}
		return fmt.Errorf("%s: %w", method, err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("%s: failed to decode result: %w", method, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, rpcReq rpcRequest) (json.RawMessage, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	jsonData, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.LogRequest(requestID, http.MethodPost, rpcReq.Method, zap.String("url", c.rpcURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.LogResponse(requestID, 0, time.Since(startTime).Milliseconds(), zap.String("endpoint", rpcReq.Method), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", rpcReq.Method), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", rpcReq.Method))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       body,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return nil, ErrUnexpectedResponse
	}
	return rpcResp.Result, nil
}
