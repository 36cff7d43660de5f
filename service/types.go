package service

import "designmarket/model"

// ErrRes error return
type ErrRes struct {
	ErrStr string `json:"err_str"` //error string
}

// DesignsRes design paging return parameters
type DesignsRes struct {
	Total   int64          `json:"total"`   //The total number of designs
	Designs []model.Design `json:"designs"` //design list
}

// ListingsRes listing paging return parameters
type ListingsRes struct {
	Total    int64 `json:"total"` //The total number of active listings
	Listings []struct {
		model.Listing
		CreatorName string `json:"creator_name"`
		TokenURI    string `json:"token_uri"`
	} `json:"listings"` //listing list joined with design metadata
}

// DesignTxsRes design activity paging return parameters
type DesignTxsRes struct {
	Total     int64            `json:"total"`      //The total number of events
	DesignTxs []model.DesignTx `json:"design_txs"` //event list
}
