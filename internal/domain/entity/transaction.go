package entity

// Address is an account or contract identifier as returned by the explorer.
// It is kept opaque and compared case-sensitively.
type Address string

// String returns the address as a plain string
func (a Address) String() string {
	return string(a)
}

// TransactionRecord represents one entry of an explorer txlist response
type TransactionRecord struct {
	Hash            string  `json:"hash"`
	BlockNumber     string  `json:"blockNumber"`
	TimeStamp       string  `json:"timeStamp"`
	From            Address `json:"from"`
	To              Address `json:"to"`
	Value           string  `json:"value"`
	ContractAddress Address `json:"contractAddress"`
	IsError         string  `json:"isError"`
	FunctionName    string  `json:"functionName"`
}
