package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderErrorIsNoRecords(t *testing.T) {
	tests := []struct {
		name string
		err  *ProviderError
		want bool
	}{
		{
			name: "no transactions found",
			err:  &ProviderError{Action: ActionTxList, Status: StatusNotOK, Message: MessageNoTransactions},
			want: true,
		},
		{
			name: "no records found",
			err:  &ProviderError{Action: ActionTxList, Status: StatusNotOK, Message: MessageNoRecords},
			want: true,
		},
		{
			name: "invalid api key",
			err:  &ProviderError{Action: ActionTxList, Status: StatusNotOK, Message: "NOTOK", Detail: "Invalid API Key"},
			want: false,
		},
		{
			name: "transport failure",
			err:  &ProviderError{Action: ActionTxList, Status: StatusTransport, Message: MessageNoTransactions},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.IsNoRecords())
		})
	}
}

func TestProviderErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ProviderError{Action: ActionTxList, Status: StatusTransport, Message: "request failed", Err: cause}

	assert.Equal(t, "explorer txlist failed: request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsTransport())

	err = &ProviderError{Action: ActionContractCreation, Status: StatusNotOK, Message: "NOTOK", Detail: "Invalid API Key"}
	assert.Equal(t, "explorer getcontractcreation failed: NOTOK (Invalid API Key)", err.Error())
}
