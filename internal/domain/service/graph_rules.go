package service

import (
	"sort"

	"contract-dependency-graph/internal/domain/entity"

	"github.com/samber/lo"
)

// SelectDeployerContracts projects a deployer's transactions to their
// recipients, keeping only records where both To and ContractAddress are set.
// Explorer ordering is preserved.
//
// NOTE: a creation transaction normally has an empty To, so this keeps
// calls that also report a created contract rather than plain deployments.
// The condition is kept as is; see DESIGN.md.
func SelectDeployerContracts(txs []*entity.TransactionRecord) []entity.Address {
	contracts := lo.FilterMap(txs, func(tx *entity.TransactionRecord, _ int) (entity.Address, bool) {
		if tx == nil {
			return "", false
		}
		return tx.To, tx.To != "" && tx.ContractAddress != ""
	})
	if contracts == nil {
		return []entity.Address{}
	}
	return contracts
}

// RankCallers counts the From address of every transaction and returns the
// top entries by count, descending. Equal counts keep first-seen order.
// A non-positive limit falls back to DefaultTopCallers.
func RankCallers(txs []*entity.TransactionRecord, limit int) []entity.CallerFrequency {
	if limit <= 0 {
		limit = DefaultTopCallers
	}

	counts := make(map[entity.Address]int)
	firstSeen := make([]entity.Address, 0)
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		if _, ok := counts[tx.From]; !ok {
			firstSeen = append(firstSeen, tx.From)
		}
		counts[tx.From]++
	}

	callers := lo.Map(firstSeen, func(address entity.Address, _ int) entity.CallerFrequency {
		return entity.CallerFrequency{Address: address, Count: counts[address]}
	})
	sort.SliceStable(callers, func(i, j int) bool {
		return callers[i].Count > callers[j].Count
	})

	if len(callers) > limit {
		callers = callers[:limit]
	}
	return callers
}
