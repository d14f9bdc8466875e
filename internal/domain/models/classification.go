package models

// Classification routes a symbol to its preferred provider.
type Classification struct {
	Symbol            string         `json:"symbol"`
	Category          MarketCategory `json:"category"`
	Market            string         `json:"market"`
	PreferredProvider ProviderName   `json:"preferredProvider"`
	APISymbol         string         `json:"apiSymbol"`
	Currency          string         `json:"currency"`
	Exchange          string         `json:"exchange,omitempty"`
}

// SymbolInfo is the payload of the symbol lookup endpoint.
type SymbolInfo struct {
	Mapping        Classification `json:"mapping"`
	Recommendation string         `json:"recommendation"`
}
