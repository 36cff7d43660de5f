// Package api exposes the relay endpoints consumed by the marketplace front
// end: upload + unsigned payload preparation, ledger reads, transaction
// submission and index paging.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"designmarket/ledger"
	"designmarket/service"
)

// host is the process-wide ledger, set once at startup via Init.
var host *ledger.Ledger

func Init(l *ledger.Ledger) {
	host = l
}

// fail writes the ledger rejection reason with a status matching its category.
func fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch ledger.KindOf(err) {
	case ledger.NotFound:
		status = http.StatusNotFound
	case ledger.Unauthorized:
		status = http.StatusForbidden
	}
	c.JSON(status, service.ErrRes{ErrStr: err.Error()})
}
