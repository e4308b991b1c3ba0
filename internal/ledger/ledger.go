// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package ledger is the adapter to the remote NFT contract.

Mutations are function calls executed under the marketplace owner account.
They are sent to a signing relayer that holds the owner key and answers with
the final execution outcome. Read-only queries (access key lookups) go to a
public RPC node directly.

# Outcome

A call succeeded only when the outcome status carries a SuccessValue; any
transport error, RPC error or Failure status is returned as an error so the
caller can retry it with [Retry].
*/
package ledger

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrCallFailed is returned when the contract call did not succeed.
	ErrCallFailed = errors.New("ledger: function call failed")
	// ErrRPC is returned when the node or relayer answered with a JSON-RPC error.
	ErrRPC = errors.New("ledger: rpc error")
)

// Client executes contract function calls.
type Client interface {
	Call(ctx context.Context, call FunctionCall) (*Outcome, error)
}

// Viewer runs read-only contract methods.
type Viewer interface {
	ViewFunction(ctx context.Context, contractID, method string, args, target any) error
}

// FunctionCall describes one contract method invocation.
type FunctionCall struct {
	OwnerID    string `json:"signer_id"`
	ContractID string `json:"receiver_id"`
	Method     string `json:"method_name"`
	Args       any    `json:"args"`
	Gas        string `json:"gas"`
	Deposit    string `json:"deposit"` // yoctoNEAR, see [ParseAmount]
}

// Outcome is the final execution outcome of a transaction.
type Outcome struct {
	Status      ExecutionStatus `json:"status"`
	Transaction struct {
		Hash string `json:"hash"`
	} `json:"transaction"`
}

// ExecutionStatus holds exactly one of SuccessValue or Failure.
type ExecutionStatus struct {
	SuccessValue *string         `json:"SuccessValue,omitempty"`
	Failure      json.RawMessage `json:"Failure,omitempty"`
}

// Succeeded reports whether the status carries a SuccessValue.
func (status ExecutionStatus) Succeeded() bool {
	return status.SuccessValue != nil && len(status.Failure) == 0
}

// TransactionHash returns the hash of the transaction that produced the outcome.
func (outcome *Outcome) TransactionHash() string {
	return outcome.Transaction.Hash
}

// DecodeSuccessValue decodes the base64 JSON return value of a successful call into target.
func DecodeSuccessValue(outcome *Outcome, target any) error {
	if outcome == nil || !outcome.Status.Succeeded() {
		return errors.WithMessage(ErrCallFailed, "no success value")
	}

	raw, err := base64.StdEncoding.DecodeString(*outcome.Status.SuccessValue)
	if err != nil {
		return errors.Wrap(err, "ledger: success value is not base64")
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return errors.Wrapf(err, "ledger: success value is not json: %q", raw)
	}

	return nil
}
