package entity

import (
	"fmt"
)

// Explorer actions, as named in the request query and in ProviderError.Action
const (
	ActionContractCreation = "getcontractcreation"
	ActionTxList           = "txlist"
)

const (
	// StatusTransport marks a ProviderError that never got a usable envelope
	// (network failure, non-200 response, undecodable body).
	StatusTransport = "transport"

	// StatusNotOK is the envelope status of every explorer failure, including
	// an address without any recorded activity.
	StatusNotOK = "0"
)

// Messages the explorer uses for an empty result set
const (
	MessageNoTransactions = "No transactions found"
	MessageNoRecords      = "No records found"
)

// ProviderError is returned when the explorer answers with a non-success
// status or cannot be reached at all.
type ProviderError struct {
	Action  string // explorer action, e.g. "txlist"
	Status  string
	Message string
	Detail  string // string result carried by some failure envelopes
	Err     error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("explorer %s failed: %s", e.Action, e.Message)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying transport error, if any
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the failure happened before an envelope was read
func (e *ProviderError) IsTransport() bool {
	return e.Status == StatusTransport
}

// IsNoRecords reports whether the explorer only said there was nothing to
// list. The request itself succeeded.
func (e *ProviderError) IsNoRecords() bool {
	return e.Status == StatusNotOK &&
		(e.Message == MessageNoTransactions || e.Message == MessageNoRecords)
}
