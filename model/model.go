package model

// Design a registered design token and its creation record
type Design struct {
	TokenID     uint64  `json:"token_id" gorm:"primaryKey;autoIncrement:false"` //token id, dense from 0
	Registry    string  `json:"registry" gorm:"type:CHAR(42)"`                  //registry contract address
	Owner       string  `json:"owner" gorm:"type:CHAR(42);index"`               //current owner
	Creator     string  `json:"creator" gorm:"type:CHAR(42);index"`             //registering address, immutable
	CreatorName string  `json:"creator_name" gorm:"type:VARCHAR(256)"`          //creator display name, immutable
	Description string  `json:"description" gorm:"type:VARCHAR(2048)"`          //description, immutable
	TokenURI    string  `json:"token_uri" gorm:"type:VARCHAR(512)"`             //content locator, immutable
	LastPrice   *string `json:"last_price"`                                     //last sale price (null if never sold), unit wei
	Timestamp   int64   `json:"timestamp"`                                      //creation unix timestamp
	TxHash      string  `json:"tx_hash" gorm:"type:CHAR(66)"`                   //mint transaction hash
}

// DesignTx one indexed ledger event touching a design
type DesignTx struct {
	TxHash    string  `json:"tx_hash" gorm:"type:CHAR(66);primaryKey"` //transaction hash
	TxType    int32   `json:"tx_type"`                                 //1:mint or transfer, 2:listing, 3:purchase
	Registry  string  `json:"registry" gorm:"type:CHAR(42)"`           //registry contract address
	TokenID   uint64  `json:"token_id" gorm:"index"`                   //design token id
	From      string  `json:"from" gorm:"type:CHAR(42);index"`         //zero address for mints, seller for sales
	To        string  `json:"to" gorm:"type:CHAR(42);index"`           //receiver or buyer
	Price     *string `json:"price"`                                   //listing or sale price (null for plain transfers), unit wei
	Timestamp int64   `json:"timestamp" gorm:"index"`                  //event unix timestamp
}

// Listing the current listing state of a design; price "0" rows are inactive
type Listing struct {
	Registry  string `json:"registry" gorm:"type:CHAR(42);primaryKey"` //registry contract address
	TokenID   uint64 `json:"token_id" gorm:"primaryKey;autoIncrement:false"`
	Seller    string `json:"seller" gorm:"type:CHAR(42);index"` //listing creator, owner at listing time
	Price     string `json:"price"`                             //asking price, unit wei, "0" when sold
	Timestamp int64  `json:"timestamp"`                         //last update unix timestamp
}
