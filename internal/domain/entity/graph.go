package entity

// CreationInfo identifies who deployed a contract and in which transaction
type CreationInfo struct {
	ContractAddress Address `json:"contract_address"`
	Deployer        Address `json:"deployer"`
	CreationTxHash  string  `json:"creation_tx_hash"`
}

// CallerFrequency counts how often an address called a contract
type CallerFrequency struct {
	Address Address `json:"address"`
	Count   int     `json:"count"`
}

// DependencyGraph links a contract to its deployer, the deployer's other
// contract interactions and the contract's most frequent callers.
type DependencyGraph struct {
	ContractAddress   Address           `json:"contract_address"`
	Deployer          Address           `json:"deployer"`
	CreationTxHash    string            `json:"creation_tx_hash"`
	DeployerContracts []Address         `json:"deployer_contracts"`
	FrequentCallers   []CallerFrequency `json:"frequent_callers"`

	// LookupErrors maps a degraded lookup name to the reason it returned
	// nothing. Empty when every lookup succeeded.
	LookupErrors map[string]string `json:"lookup_errors,omitempty"`
}

// Degraded reports whether any downstream lookup failed
func (g *DependencyGraph) Degraded() bool {
	return len(g.LookupErrors) > 0
}
