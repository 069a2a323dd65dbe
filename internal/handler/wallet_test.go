package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/eth-paper-wallet/ethereum"
	"github.com/AlexZinkM/eth-paper-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-paper-wallet/internal/imaging"
	"github.com/AlexZinkM/eth-paper-wallet/internal/model"

	"github.com/stretchr/testify/require"
)

const (
	testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	testAddrHex = "0x970e8128ab834e8eac17ab8e3812f010678cf791"
)

func staticPassword(pw string) PasswordFunc {
	return func() ([]byte, error) {
		return []byte(pw), nil
	}
}

func newTestHandler(t *testing.T, password PasswordFunc) (*WalletHandler, string) {
	t.Helper()
	dir := t.TempDir()
	h, err := NewWalletHandler(
		ethereum.NewGenerator(),
		ethereum.NewExporter(dir, imaging.NewEncoder(64, 30)),
		password,
		3,
	)
	require.NoError(t, err)
	return h, dir
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGenerate(t *testing.T) {
	h, dir := newTestHandler(t, staticPassword("foo"))

	rec := post(h.Generate, `{"count": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Wallets, 2)

	for _, ws := range resp.Wallets {
		require.Equal(t, dir, filepath.Dir(ws.Directory))
		record, err := crypto.ReadKeystoreFile(filepath.Join(ws.Directory, "keystore.json"))
		require.NoError(t, err)
		require.Equal(t, ws.Address[2:], record.Address)

		_, err = crypto.DecryptKeystore(record, []byte("foo"))
		require.NoError(t, err)
	}
}

func TestGenerateDefaultsToOne(t *testing.T) {
	h, _ := newTestHandler(t, staticPassword("foo"))

	rec := post(h.Generate, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Wallets, 1)
}

func TestGenerateBadRequests(t *testing.T) {
	h, _ := newTestHandler(t, staticPassword("foo"))

	for _, body := range []string{`{"count": 0}`, `{"count": 4}`, `{"count": "x"}`, `{`} {
		rec := post(h.Generate, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, model.CodeBadRequest, resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/wallet/generate", nil)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGenerateWithoutPassword(t *testing.T) {
	h, _ := newTestHandler(t, func() ([]byte, error) {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	})

	rec := post(h.Generate, `{"count": 1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport(t *testing.T) {
	h, _ := newTestHandler(t, staticPassword("foo"))

	rec := post(h.Import, `{"privateKey": "0x`+testPrivHex+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), testPrivHex)

	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Wallets, 1)
	require.Equal(t, testAddrHex, resp.Wallets[0].Address)

	paper, err := os.ReadFile(filepath.Join(resp.Wallets[0].Directory, "paper-wallet.txt"))
	require.NoError(t, err)
	require.Contains(t, string(paper), testPrivHex)

	// same key again targets the same files
	rec = post(h.Import, `{"privateKey": "`+testPrivHex+`"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestImportMalformed(t *testing.T) {
	h, _ := newTestHandler(t, staticPassword("foo"))

	for _, key := range []string{"abc", strings.Repeat("0", 64), strings.Repeat("g", 64)} {
		rec := post(h.Import, `{"privateKey": "`+key+`"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, key)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, model.CodeMalformedInput, resp.Code)
	}
}

func TestNewWalletHandlerValidation(t *testing.T) {
	_, err := NewWalletHandler(nil, nil, nil, 1)
	require.Error(t, err)

	_, err = NewWalletHandler(ethereum.NewGenerator(), ethereum.NewExporter(t.TempDir(), imaging.NewEncoder(0, 0)), staticPassword("x"), 0)
	require.Error(t, err)
}
