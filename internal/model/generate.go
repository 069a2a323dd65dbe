package model

// GenerateRequest represents request for POST /wallet/generate
type GenerateRequest struct {
	Count int `json:"count"`
}

// ImportRequest represents request for POST /wallet/import
type ImportRequest struct {
	PrivateKey string `json:"privateKey"`
}

// WalletSummary describes one exported wallet. It never carries key material.
type WalletSummary struct {
	Address   string `json:"address"`
	Directory string `json:"directory"`
}

// GenerateResponse represents response for POST /wallet/generate and /wallet/import
type GenerateResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Wallets []WalletSummary `json:"wallets,omitempty"`
}
