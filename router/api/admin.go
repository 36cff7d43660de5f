package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"designmarket/common/utils"
	"designmarket/conf"
	"designmarket/service"
)

// Admin server-initiated actions signed with the server-held key. User actions
// never pass through here; wallets submit those via /transaction.
func Admin(e *gin.Engine) {
	e.POST("/admin/register", adminRegister)
	e.POST("/admin/faucet", adminFaucet)
}

// AdminRegisterReq server-side registration parameters
type AdminRegisterReq struct {
	TokenURI    string `json:"token_uri" binding:"required"`
	CreatorName string `json:"creator_name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// @Tags        admin
// @Summary     register a design from the server account
// @Description Applies a registration to the ledger as the server-held key's address
// @Accept      json
// @Produce     json
// @Param       body body AdminRegisterReq true "creation record"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} service.ErrRes
// @Router      /admin/register [post]
func adminRegister(c *gin.Context) {
	var req AdminRegisterReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	id, ev := host.Register(conf.ServerAccount, req.TokenURI, req.CreatorName, req.Description)
	c.JSON(http.StatusOK, gin.H{"token_id": id, "tx_hash": ev.TxHash, "owner": conf.ServerAccount})
}

// @Tags        admin
// @Summary     fund an account
// @Description Credits the faucet amount to the given account on the simulated ledger
// @Accept      json
// @Produce     json
// @Param       body body object true "{\"address\": \"0x...\"}"
// @Success     200 {object} AccountRes
// @Failure     400 {object} service.ErrRes
// @Router      /admin/faucet [post]
func adminFaucet(c *gin.Context) {
	req := struct {
		Address string `json:"address" binding:"required"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	addr, err := utils.ParseAddress([]byte(req.Address))
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := host.Fund(addr, conf.FaucetAmount); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AccountRes{Address: addr, Balance: host.BalanceOf(addr).Text(10)})
}
