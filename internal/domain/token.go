package domain

// Token represents one NFT ownership record.
// Corresponds to the tokens table in PostgreSQL.
type Token struct {
	TokenID         string   // PRIMARY KEY, immutable, never reused after burn
	Owner           Address  // current primary controller
	ApprovedSpender *Address // single approved spender (nullable), cleared on every ownership change
	TokenURI        *string  // off-chain metadata pointer (nullable)
	MintedAt        int64    // Unix timestamp in milliseconds
}

// OperatorGrant is a blanket operator approval scoped to an owner identity.
// It covers every token the owner currently or subsequently holds and is
// unaffected by individual token transfers.
type OperatorGrant struct {
	Owner     Address
	Operator  Address
	Granted   bool
	UpdatedAt int64 // Unix timestamp in milliseconds
}

// ContractConfig holds the write-once contract identity.
type ContractConfig struct {
	Minter Address `json:"minter"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
}
