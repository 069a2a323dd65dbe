package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/AlexZinkM/eth-paper-wallet/ethereum"
	"github.com/AlexZinkM/eth-paper-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-paper-wallet/internal/logging"
	"github.com/AlexZinkM/eth-paper-wallet/internal/model"

	"go.uber.org/zap"
)

// PasswordFunc returns a copy of the keystore password; the caller zeroes it
type PasswordFunc func() ([]byte, error)

// WalletHandler serves wallet generation over HTTP
type WalletHandler struct {
	generator *ethereum.Generator
	exporter  *ethereum.Exporter
	password  PasswordFunc
	maxBatch  int

	// generation is sequential, one request at a time
	mu sync.Mutex
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(generator *ethereum.Generator, exporter *ethereum.Exporter, password PasswordFunc, maxBatch int) (*WalletHandler, error) {
	if generator == nil || exporter == nil || password == nil {
		return nil, errors.New("wallet handler: generator, exporter and password source are required")
	}
	if maxBatch < 1 {
		return nil, fmt.Errorf("wallet handler: max batch must be positive, got %d", maxBatch)
	}
	return &WalletHandler{
		generator: generator,
		exporter:  exporter,
		password:  password,
		maxBatch:  maxBatch,
	}, nil
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallets
// @Description  Generates count Ethereum wallets and exports keystore, QR codes, identicon and paper backup for each
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  true  "Number of wallets"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	req := model.GenerateRequest{Count: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.CodeBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	if req.Count < 1 || req.Count > h.maxBatch {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest,
			fmt.Sprintf("count must be between 1 and %d", h.maxBatch))
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	h.mu.Lock()
	defer h.mu.Unlock()

	summaries := make([]model.WalletSummary, 0, req.Count)
	_, err = h.generator.GenerateBatch(passwordBytes, req.Count, ethereum.WithOnWallet(func(index int, wallet *ethereum.Wallet) error {
		defer wallet.Wipe()
		a, err := h.exporter.Export(wallet, index)
		if err != nil {
			return err
		}
		summaries = append(summaries, model.WalletSummary{Address: wallet.Address, Directory: a.Dir})
		return nil
	}))
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: fmt.Sprintf("%d wallet(s) generated successfully", len(summaries)),
		Wallets: summaries,
	})
}

// Import handles POST /wallet/import
// @Summary      Rebuild wallet from private key
// @Description  Derives address and keystore from a 64 hex character private key and exports them
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Private key"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, "invalid request body")
		return
	}

	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
		return
	}
	defer clear(passwordBytes)

	h.mu.Lock()
	defer h.mu.Unlock()

	wallet, err := h.generator.ImportPrivateKey(req.PrivateKey, passwordBytes)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}
	defer wallet.Wipe()

	a, err := h.exporter.Export(wallet, 0)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet imported successfully",
		Wallets: []model.WalletSummary{{Address: wallet.Address, Directory: a.Dir}},
	})
}

func (h *WalletHandler) writeGenerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, crypto.ErrMalformedInput), errors.Is(err, crypto.ErrInvalidScalar):
		writeError(w, http.StatusBadRequest, model.CodeMalformedInput, err.Error())
	case ethereum.IsFileExistsError(err):
		writeError(w, http.StatusConflict, model.CodeFileExists, err.Error())
	default:
		logging.L().Error("wallet generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}
