package api

import (
	"math/big"
	"net/http"
	"strings"

	"github.com/INFURA/go-ethlibs/eth"
	"github.com/gin-gonic/gin"

	"designmarket/backend"
	"designmarket/common/types"
	"designmarket/common/utils"
	"designmarket/log"
	"designmarket/service"
	"designmarket/txdata"
)

func Transaction(e *gin.Engine) {
	e.POST("/transaction", sendTransaction)
	e.GET("/account/:addr", getAccount)
}

// SendTxReq signed transaction submission parameters
type SendTxReq struct {
	Tx struct {
		To    types.Address `json:"to"`
		Value types.BigInt  `json:"value"` //attached payment, unit wei, empty for none
		Data  types.Data    `json:"data"`  //contract calldata
	} `json:"tx"`
	Signature string `json:"signature"` //personal-sign of txdata.SignText by the sender
}

// @Tags        transaction
// @Summary     submit a signed transaction
// @Description Recovers the sender from the signature, applies the call to the ledger and returns the transaction hash
// @Accept      json
// @Produce     json
// @Param       body body SendTxReq true "signed transaction"
// @Success     200 {object} backend.Receipt
// @Failure     400 {object} service.ErrRes
// @Router      /transaction [post]
func sendTransaction(c *gin.Context) {
	var req SendTxReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	// normalize and validate the wire forms before touching the ledger
	to, err := eth.NewAddress(string(req.Tx.To))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "invalid to address: " + err.Error()})
		return
	}
	if _, err := eth.NewData(string(req.Tx.Data)); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "invalid calldata: " + err.Error()})
		return
	}
	value := new(big.Int)
	if req.Tx.Value != "" {
		if _, ok := value.SetString(string(req.Tx.Value), 10); !ok {
			c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "invalid value"})
			return
		}
	}

	toAddr := types.Address(strings.ToLower(to.String()))
	from, err := utils.RecoverAddress(txdata.SignText(toAddr, value, req.Tx.Data), req.Signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "invalid signature: " + err.Error()})
		return
	}

	receipt, err := backend.Apply(host, from, toAddr, value, req.Tx.Data)
	if err != nil {
		fail(c, err)
		return
	}
	log.Infof("transaction %s applied: from %s to %s", receipt.TxHash, from, toAddr)
	c.JSON(http.StatusOK, receipt)
}

// AccountRes account detail return parameters
type AccountRes struct {
	Address types.Address `json:"address"`
	Balance string        `json:"balance"` //unit wei
}

// @Tags        transaction
// @Summary     query account balance
// @Description Reads the simulated account balance from the ledger
// @Produce     json
// @Param       addr path string true "account address"
// @Success     200 {object} AccountRes
// @Failure     400 {object} service.ErrRes
// @Router      /account/{addr} [get]
func getAccount(c *gin.Context) {
	addr, err := utils.ParseAddress([]byte(c.Param("addr")))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, AccountRes{Address: addr, Balance: host.BalanceOf(addr).Text(10)})
}
