package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"designmarket/common/utils"
	"designmarket/conf"
	"designmarket/service"
)

func Market(e *gin.Engine) {
	e.GET("/listing/page", pageListing)
	e.GET("/listing/:tokenId", getListing)
	e.GET("/approved/:tokenId", getApproved)
}

// @Tags        market
// @Summary     query active listings
// @Description Query the listing index joined with design metadata, newest first
// @Produce     json
// @Param       seller    query string false "Seller, if empty, query all"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} service.ListingsRes
// @Failure     400 {object} service.ErrRes
// @Router      /listing/page [get]
func pageListing(c *gin.Context) {
	page, size := utils.ParsePagination(c.Query("page"), c.Query("page_size"))
	res, err := service.FetchListings(c.Query("seller"), page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags        market
// @Summary     query one listing
// @Description Reads the live listing for a token from the marketplace; price 0 means not listed
// @Produce     json
// @Param       tokenId path string true "token id"
// @Success     200 {object} ledger.Listing
// @Failure     400 {object} service.ErrRes
// @Router      /listing/{tokenId} [get]
func getListing(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, host.Listing(conf.RegistryAddr, tokenID))
}

// @Tags        market
// @Summary     query approved operator
// @Description Reads the operator currently approved to transfer a token, empty if none
// @Produce     json
// @Param       tokenId path string true "token id"
// @Success     200 {object} map[string]string
// @Failure     404 {object} service.ErrRes
// @Router      /approved/{tokenId} [get]
func getApproved(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	operator, err := host.GetApproved(tokenID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": string(operator)})
}
