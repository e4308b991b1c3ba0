// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package ledger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
)

const (
	rpcVersion = "2.0"
	rpcID      = "paras-comic"

	// CallTimeout bounds one relayer round trip; the relayer waits for finality.
	CallTimeout = 30 * time.Second
	// queryTimeout bounds one node view query.
	queryTimeout = 5 * time.Second
)

// RPCClient talks JSON-RPC to the relayer (mutations) and the node (queries).
type RPCClient struct {
	relayer *resty.Client
	node    *resty.Client
}

// NewRPCClient constructs an [RPCClient].
func NewRPCClient(nodeURL, relayerURL string) *RPCClient {
	return &RPCClient{
		relayer: newJSONClient(relayerURL, CallTimeout),
		node:    newJSONClient(nodeURL, queryTimeout),
	}
}

func newJSONClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Name    string          `json:"name"`
	Data    json.RawMessage `json:"data"`
	Cause   struct {
		Name string `json:"name"`
	} `json:"cause"`
}

func (e *rpcError) causeName() string {
	if e.Cause.Name != "" {
		return e.Cause.Name
	}
	return e.Name
}

// Call sends a function call to the relayer and waits for the final outcome.
func (client *RPCClient) Call(ctx context.Context, call FunctionCall) (*Outcome, error) {
	result, err := post(ctx, client.relayer, "function_call", call)
	if err != nil {
		return nil, err
	}

	var outcome Outcome
	if err := json.Unmarshal(result, &outcome); err != nil {
		return nil, errors.Wrap(err, "ledger: failed to decode execution outcome")
	}

	if !outcome.Status.Succeeded() {
		return &outcome, errors.WithMessagef(ErrCallFailed, "%s.%s: %s", call.ContractID, call.Method, string(outcome.Status.Failure))
	}

	return &outcome, nil
}

// HasAccessKey reports whether publicKey ("ed25519:<base58>") is an access key of accountID.
func (client *RPCClient) HasAccessKey(ctx context.Context, accountID, publicKey string) (bool, error) {
	params := map[string]string{
		"request_type": constants.MethodViewAccessKey,
		"finality":     "final",
		"account_id":   accountID,
		"public_key":   publicKey,
	}

	result, err := post(ctx, client.node, "query", params)
	if err != nil {
		var rpcErr *rpcError
		if errors.As(err, &rpcErr) && isUnknownKey(rpcErr.causeName()) {
			return false, nil
		}
		return false, err
	}

	// Older nodes report a missing key inside the result instead of as an RPC error.
	var view struct {
		Error      string          `json:"error"`
		Permission json.RawMessage `json:"permission"`
	}
	if err := json.Unmarshal(result, &view); err != nil {
		return false, errors.Wrap(err, "ledger: failed to decode access key view")
	}

	return view.Error == "" && len(view.Permission) > 0, nil
}

/*
ViewFunction runs a read-only contract method on the node at final finality.

Description: args are sent JSON encoded; the node answers with the raw
return bytes, which are decoded as JSON into target.

Returns:
  - error: ErrRPC from the node, ErrCallFailed when the method panicked
*/
func (client *RPCClient) ViewFunction(ctx context.Context, contractID, method string, args, target any) error {
	encoded, err := json.Marshal(args)
	if err != nil {
		return errors.Wrapf(err, "ledger: failed to encode %s args", method)
	}

	params := map[string]string{
		"request_type": constants.MethodCallFunction,
		"finality":     "final",
		"account_id":   contractID,
		"method_name":  method,
		"args_base64":  base64.StdEncoding.EncodeToString(encoded),
	}

	result, err := post(ctx, client.node, "query", params)
	if err != nil {
		return err
	}

	var view struct {
		Result []int  `json:"result"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(result, &view); err != nil {
		return errors.Wrap(err, "ledger: failed to decode call result")
	}
	if view.Error != "" {
		return errors.WithMessagef(ErrCallFailed, "%s.%s: %s", contractID, method, view.Error)
	}

	raw := make([]byte, len(view.Result))
	for index, value := range view.Result {
		raw[index] = byte(value)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return errors.Wrapf(err, "ledger: %s returned non-json %q", method, raw)
	}

	return nil
}

func isUnknownKey(name string) bool {
	return name == "UNKNOWN_ACCESS_KEY" || name == "UNKNOWN_ACCOUNT"
}

func (e *rpcError) Error() string {
	return "ledger: rpc " + e.causeName() + ": " + e.Message + " " + string(e.Data)
}

func (e *rpcError) Unwrap() error {
	return ErrRPC
}

// post performs one JSON-RPC round trip and returns the raw result.
func post(ctx context.Context, client *resty.Client, method string, params any) (json.RawMessage, error) {
	var response rpcResponse

	res, err := client.R().
		SetContext(ctx).
		SetBody(rpcRequest{JSONRPC: rpcVersion, ID: rpcID, Method: method, Params: params}).
		SetResult(&response).
		SetError(&response).
		Post("")
	if err != nil {
		return nil, errors.WithMessagef(err, "ledger: %s request failed", method)
	}

	if response.Error != nil {
		return nil, response.Error
	}

	if res.IsError() {
		return nil, errors.Errorf("ledger: %s returned http %d", method, res.StatusCode())
	}

	if len(response.Result) == 0 {
		return nil, errors.Errorf("ledger: %s returned an empty result", method)
	}

	return response.Result, nil
}
