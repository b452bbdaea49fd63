package service

import (
	"fmt"
	"testing"

	"contract-dependency-graph/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(from, to, contract string) *entity.TransactionRecord {
	return &entity.TransactionRecord{
		From:            entity.Address(from),
		To:              entity.Address(to),
		ContractAddress: entity.Address(contract),
	}
}

func TestSelectDeployerContracts(t *testing.T) {
	tests := []struct {
		name string
		txs  []*entity.TransactionRecord
		want []entity.Address
	}{
		{
			name: "empty list",
			txs:  nil,
			want: []entity.Address{},
		},
		{
			name: "requires both to and contract address",
			txs: []*entity.TransactionRecord{
				tx("D", "", "C1"),
				tx("D", "X", ""),
				tx("D", "Y", "C2"),
			},
			want: []entity.Address{"Y"},
		},
		{
			name: "keeps explorer order and duplicates",
			txs: []*entity.TransactionRecord{
				tx("D", "Z", "C1"),
				tx("D", "A", "C2"),
				nil,
				tx("D", "Z", "C3"),
			},
			want: []entity.Address{"Z", "A", "Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDeployerContracts(tt.txs)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankCallers(t *testing.T) {
	t.Run("counts and orders by frequency", func(t *testing.T) {
		txs := []*entity.TransactionRecord{
			tx("A", "X", ""),
			tx("B", "", ""),
			tx("A", "Y", ""),
		}

		got := RankCallers(txs, DefaultTopCallers)

		assert.Equal(t, []entity.CallerFrequency{
			{Address: "A", Count: 2},
			{Address: "B", Count: 1},
		}, got)
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		txs := []*entity.TransactionRecord{
			tx("C", "X", ""),
			tx("B", "X", ""),
			tx("A", "X", ""),
			tx("B", "X", ""),
			tx("C", "X", ""),
			tx("A", "X", ""),
		}

		got := RankCallers(txs, DefaultTopCallers)

		assert.Equal(t, []entity.CallerFrequency{
			{Address: "C", Count: 2},
			{Address: "B", Count: 2},
			{Address: "A", Count: 2},
		}, got)
	})

	t.Run("truncates to limit with non-increasing counts", func(t *testing.T) {
		var txs []*entity.TransactionRecord
		for i := 0; i < 8; i++ {
			for j := 0; j <= i; j++ {
				txs = append(txs, tx(fmt.Sprintf("0x%d", i), "X", ""))
			}
		}

		got := RankCallers(txs, DefaultTopCallers)

		require.Len(t, got, DefaultTopCallers)
		assert.Equal(t, entity.Address("0x7"), got[0].Address)
		assert.Equal(t, 8, got[0].Count)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i].Count, got[i-1].Count)
		}
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		var txs []*entity.TransactionRecord
		for i := 0; i < 7; i++ {
			txs = append(txs, tx(fmt.Sprintf("0x%d", i), "X", ""))
		}

		assert.Len(t, RankCallers(txs, 0), DefaultTopCallers)
		assert.Len(t, RankCallers(txs, 2), 2)
	})

	t.Run("addresses are case sensitive", func(t *testing.T) {
		txs := []*entity.TransactionRecord{
			tx("0xAbC", "X", ""),
			tx("0xabc", "X", ""),
		}

		got := RankCallers(txs, DefaultTopCallers)

		assert.Len(t, got, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		got := RankCallers(nil, DefaultTopCallers)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}
