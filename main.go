package main

import (
	"time"

	"designmarket/backend"
	"designmarket/conf"
	"designmarket/ledger"
	"designmarket/log"
	"designmarket/router"
	"designmarket/service"
)

// @title       design marketplace API
// @version     1.0
// @description Relay and index for the design registry and marketplace: stores design files, prepares unsigned transactions for browser wallets, applies submitted transactions to the simulated ledger and serves the browse index
func main() {
	if err := service.Init(); err != nil {
		log.Fatalf("Index database failed to init: %v", err)
	}
	b := backend.New()
	l := ledger.NewLedger(conf.RegistryAddr, conf.MarketAddr, b.Sink)
	b.Run(10 * time.Second)
	log.Infof("registry at %s, marketplace at %s, server account %s", conf.RegistryAddr, conf.MarketAddr, conf.ServerAccount)
	if err := router.Run(conf.ServerAddr, l); err != nil {
		log.Fatalf("Server failed to run: %v", err)
	}
}
