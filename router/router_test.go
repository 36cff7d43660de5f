package router

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/gin-gonic/gin"

	"designmarket/backend"
	"designmarket/common/types"
	"designmarket/common/utils"
	"designmarket/conf"
	"designmarket/ledger"
	"designmarket/router/api"
	"designmarket/txdata"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ledger.Ledger) {
	gin.SetMode(gin.TestMode)
	old := conf.UploadDir
	conf.UploadDir = t.TempDir()
	t.Cleanup(func() { conf.UploadDir = old })
	l := ledger.NewLedger(conf.RegistryAddr, conf.MarketAddr, nil)
	return New(l), l
}

func doJSON(e *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func testKey(t *testing.T, seed string) (*secp256k1.PrivateKey, types.Address) {
	t.Helper()
	key, err := utils.HexToECDSA(strings.Repeat(seed, 32))
	if err != nil {
		t.Fatal(err)
	}
	return key, utils.PubkeyToAddress(key.PubKey())
}

// signTx produces the personal-sign signature the submit endpoint expects.
func signTx(t *testing.T, key *secp256k1.PrivateKey, to types.Address, value *big.Int, data types.Data) string {
	t.Helper()
	msg := txdata.SignText(to, value, data)
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	sig, err := utils.Sign(utils.Keccak256([]byte(prefixed)), key)
	if err != nil {
		t.Fatal(err)
	}
	sig[64] += 27
	return "0x" + hex.EncodeToString(sig)
}

func submitTx(t *testing.T, e *gin.Engine, key *secp256k1.PrivateKey, to types.Address, value *big.Int, data types.Data) *httptest.ResponseRecorder {
	t.Helper()
	valueStr := ""
	if value != nil {
		valueStr = value.Text(10)
	}
	return doJSON(e, "POST", "/transaction", map[string]interface{}{
		"tx":        map[string]interface{}{"to": to, "value": valueStr, "data": data},
		"signature": signTx(t, key, to, value, data),
	})
}

func uploadDesign(t *testing.T, e *gin.Engine, content, name, description, creatorName string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if content != "" {
		fw, err := mw.CreateFormFile("designFile", "chair.stl")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	mw.WriteField("name", name)
	mw.WriteField("description", description)
	mw.WriteField("creatorName", creatorName)
	mw.Close()
	req := httptest.NewRequest("POST", "/design/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRegisterDesignUpload(t *testing.T) {
	e, _ := newTestRouter(t)

	w := uploadDesign(t, e, "solid chair", "Chair", "an ergonomic chair", "alice")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res api.RegisterRes
	decodeBody(t, w, &res)
	if !res.Success || res.TxData.To != conf.RegistryAddr {
		t.Errorf("payload: %+v", res)
	}
	if !strings.HasPrefix(res.FileURL, "/design/file/") {
		t.Errorf("fileUrl: %v", res.FileURL)
	}

	// the unsigned payload must carry the stored locator as tokenURI
	call, err := txdata.Decode(res.TxData.Data)
	if err != nil {
		t.Fatal(err)
	}
	reg, ok := call.(*txdata.RegisterDesign)
	if !ok {
		t.Fatalf("decoded %T", call)
	}
	if reg.TokenURI != res.FileURL || reg.CreatorName != "alice" || reg.Description != "an ergonomic chair" {
		t.Errorf("decoded call: %+v", reg)
	}

	// the stored content must be downloadable at the locator
	req := httptest.NewRequest("GET", res.FileURL, nil)
	dl := httptest.NewRecorder()
	e.ServeHTTP(dl, req)
	if dl.Code != http.StatusOK || dl.Body.String() != "solid chair" {
		t.Errorf("download: %d %q", dl.Code, dl.Body.String())
	}
}

func TestRegisterDesignValidation(t *testing.T) {
	e, _ := newTestRouter(t)

	w := uploadDesign(t, e, "", "Chair", "desc", "alice")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "No file uploaded") {
		t.Errorf("missing file: %d %s", w.Code, w.Body.String())
	}

	w = uploadDesign(t, e, "solid chair", "Chair", "", "alice")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Missing required metadata") {
		t.Errorf("missing metadata: %d %s", w.Code, w.Body.String())
	}
}

func TestDesignReads(t *testing.T) {
	e, l := newTestRouter(t)
	const alice = types.Address("0x0000000000000000000000000000000000000001")
	id, _ := l.Register(alice, "/design/file/abc.stl", "alice", "a chair")

	w := doJSON(e, "GET", fmt.Sprintf("/design/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res api.DesignRes
	decodeBody(t, w, &res)
	if res.Owner != string(alice) || res.TokenURI != "/design/file/abc.stl" ||
		res.CreatorName != "alice" || res.Description != "a chair" || res.CreatedAt == 0 {
		t.Errorf("design: %+v", res)
	}

	w = doJSON(e, "GET", "/design/999", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Token does not exist") {
		t.Errorf("missing token: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(e, "GET", "/design/next_id", nil)
	next := struct {
		NextTokenID uint64 `json:"next_token_id"`
	}{}
	decodeBody(t, w, &next)
	if next.NextTokenID != id+1 {
		t.Errorf("next_id: %v", next.NextTokenID)
	}

	// nothing approved, nothing listed yet
	w = doJSON(e, "GET", fmt.Sprintf("/approved/%d", id), nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"operator":""`) {
		t.Errorf("approved: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(e, "GET", fmt.Sprintf("/listing/%d", id), nil)
	var listing ledger.Listing
	decodeBody(t, w, &listing)
	if listing.Price != "0" {
		t.Errorf("listing: %+v", listing)
	}
}

func TestListPreparation(t *testing.T) {
	e, l := newTestRouter(t)
	const alice = types.Address("0x0000000000000000000000000000000000000001")
	id, _ := l.Register(alice, "/design/file/abc.stl", "alice", "a chair")

	w := doJSON(e, "POST", fmt.Sprintf("/design/%d/list", id), map[string]string{"price": "2"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res api.ListForSaleRes
	decodeBody(t, w, &res)
	if res.Price != "2000000000000000000" {
		t.Errorf("price: %v", res.Price)
	}
	if res.TxData.Approve.To != conf.RegistryAddr || res.TxData.List.To != conf.MarketAddr {
		t.Errorf("payload targets: %+v", res.TxData)
	}

	call, err := txdata.Decode(res.TxData.Approve.Data)
	if err != nil {
		t.Fatal(err)
	}
	if ap := call.(*txdata.Approve); ap.Operator != conf.MarketAddr || ap.TokenID != id {
		t.Errorf("approve call: %+v", ap)
	}
	call, err = txdata.Decode(res.TxData.List.Data)
	if err != nil {
		t.Fatal(err)
	}
	if li := call.(*txdata.ListDesign); li.Registry != conf.RegistryAddr || li.TokenID != id ||
		li.Price.Text(10) != "2000000000000000000" {
		t.Errorf("list call: %+v", li)
	}

	for _, bad := range []string{"0", "-1", "abc"} {
		w = doJSON(e, "POST", fmt.Sprintf("/design/%d/list", id), map[string]string{"price": bad})
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid price") {
			t.Errorf("price %q: %d %s", bad, w.Code, w.Body.String())
		}
	}
}

func TestAdminEndpoints(t *testing.T) {
	e, l := newTestRouter(t)

	w := doJSON(e, "POST", "/admin/register", map[string]string{
		"token_uri": "/design/file/abc.stl", "creator_name": "server", "description": "seeded",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	owner, err := l.OwnerOf(0)
	if err != nil || owner != conf.ServerAccount {
		t.Errorf("owner: %v, %v", owner, err)
	}

	const bob = "0x0000000000000000000000000000000000000002"
	w = doJSON(e, "POST", "/admin/faucet", map[string]string{"address": bob})
	if w.Code != http.StatusOK {
		t.Fatalf("faucet: %d %s", w.Code, w.Body.String())
	}
	var acc api.AccountRes
	decodeBody(t, w, &acc)
	if acc.Balance != conf.FaucetAmount.Text(10) {
		t.Errorf("balance: %v", acc.Balance)
	}

	w = doJSON(e, "POST", "/admin/faucet", map[string]string{"address": "nonsense"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad address: %d %s", w.Code, w.Body.String())
	}
}

// TestSignedSaleFlow drives a full sale through the public surface: upload,
// signed registration, approval, listing and purchase.
func TestSignedSaleFlow(t *testing.T) {
	e, l := newTestRouter(t)
	aliceKey, alice := testKey(t, "11")
	bobKey, bob := testKey(t, "22")

	doJSON(e, "POST", "/admin/faucet", map[string]string{"address": string(bob)})

	// alice registers
	data, err := txdata.EncodeRegisterDesign("/design/file/abc.stl", "alice", "a chair")
	if err != nil {
		t.Fatal(err)
	}
	w := submitTx(t, e, aliceKey, conf.RegistryAddr, nil, data)
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var receipt backend.Receipt
	decodeBody(t, w, &receipt)
	if receipt.TokenID == nil || *receipt.TokenID != 0 || receipt.TxHash == "" {
		t.Fatalf("receipt: %+v", receipt)
	}
	id := *receipt.TokenID
	if owner, _ := l.OwnerOf(id); owner != alice {
		t.Fatalf("owner after register: %v", owner)
	}

	// alice approves the marketplace and lists for 1 ether
	price := big.NewInt(1e18)
	data, err = txdata.EncodeApprove(conf.MarketAddr, id)
	if err != nil {
		t.Fatal(err)
	}
	if w = submitTx(t, e, aliceKey, conf.RegistryAddr, nil, data); w.Code != http.StatusOK {
		t.Fatalf("approve: %d %s", w.Code, w.Body.String())
	}
	data, err = txdata.EncodeListDesign(conf.RegistryAddr, id, price)
	if err != nil {
		t.Fatal(err)
	}
	if w = submitTx(t, e, aliceKey, conf.MarketAddr, nil, data); w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(e, "GET", fmt.Sprintf("/listing/%d", id), nil)
	var listing ledger.Listing
	decodeBody(t, w, &listing)
	if listing.Seller != alice || string(listing.Price) != price.Text(10) {
		t.Fatalf("listing: %+v", listing)
	}

	// bob buys with exact payment
	data, err = txdata.EncodeBuyDesign(conf.RegistryAddr, id)
	if err != nil {
		t.Fatal(err)
	}
	if w = submitTx(t, e, bobKey, conf.MarketAddr, price, data); w.Code != http.StatusOK {
		t.Fatalf("buy: %d %s", w.Code, w.Body.String())
	}

	if owner, _ := l.OwnerOf(id); owner != bob {
		t.Errorf("owner after sale: %v", owner)
	}
	w = doJSON(e, "GET", "/account/"+string(alice), nil)
	var acc api.AccountRes
	decodeBody(t, w, &acc)
	if acc.Balance != price.Text(10) {
		t.Errorf("seller balance: %v", acc.Balance)
	}
	if l.BalanceOf(bob).Sign() != 0 {
		t.Errorf("buyer balance: %v", l.BalanceOf(bob))
	}
	if got := l.Listing(conf.RegistryAddr, id); got.Price != "0" {
		t.Errorf("listing after sale: %+v", got)
	}
}

func TestTransactionRejections(t *testing.T) {
	e, _ := newTestRouter(t)
	key, owner := testKey(t, "11")

	data, err := txdata.EncodeRegisterDesign("/design/file/abc.stl", "alice", "a chair")
	if err != nil {
		t.Fatal(err)
	}

	// malformed signature
	w := doJSON(e, "POST", "/transaction", map[string]interface{}{
		"tx":        map[string]interface{}{"to": conf.RegistryAddr, "value": "", "data": data},
		"signature": "0xdeadbeef",
	})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid signature") {
		t.Errorf("bad signature: %d %s", w.Code, w.Body.String())
	}

	// register calldata sent to the marketplace address
	w = submitTx(t, e, key, conf.MarketAddr, nil, data)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "No such function") {
		t.Errorf("wrong contract: %d %s", w.Code, w.Body.String())
	}

	// value attached to a non-payable call
	w = submitTx(t, e, key, conf.RegistryAddr, big.NewInt(5), data)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "not payable") {
		t.Errorf("non-payable: %d %s", w.Code, w.Body.String())
	}

	// approving a token that was never minted
	approveData, err := txdata.EncodeApprove(conf.MarketAddr, 42)
	if err != nil {
		t.Fatal(err)
	}
	w = submitTx(t, e, key, conf.RegistryAddr, nil, approveData)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Token does not exist") {
		t.Errorf("approve missing token: %d %s (signer %s)", w.Code, w.Body.String(), owner)
	}

	// invalid to address
	w = doJSON(e, "POST", "/transaction", map[string]interface{}{
		"tx":        map[string]interface{}{"to": "not-an-address", "value": "", "data": data},
		"signature": "0x" + strings.Repeat("00", 65),
	})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid to address") {
		t.Errorf("bad to: %d %s", w.Code, w.Body.String())
	}
}
