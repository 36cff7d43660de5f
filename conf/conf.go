package conf

import (
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/joho/godotenv"

	"designmarket/common/types"
	"designmarket/common/utils"
)

// default allocation
var (
	ServerAddr      = ":3000"
	MysqlDsn        = "root:123456@tcp(127.0.0.1:3306)/market"
	ResetDB         = false
	UploadDir       = "uploads"
	HexKey          = "7b2546a5d4e658d079c6b2755c6d7495edd01a686fddae010830e9c93b23e398"
	RegistryAddr    = types.Address("0x0000000000000000000000000000000000000101")
	MarketAddr      = types.Address("0x0000000000000000000000000000000000000102")
	FaucetAmountStr = "1000000000000000000"
)

// globally available object instantiated from config
var (
	PrivateKey    *secp256k1.PrivateKey //Server admin private key
	ServerAccount types.Address         //Address derived from the admin key
	FaucetAmount  *big.Int              //Amount credited per faucet call (unit: wei)
)

func init() {
	// set log printout to stdout instead of stderr
	log.SetOutput(os.Stdout)

	// read configuration to override default value
	setConf()

	var err error
	PrivateKey, err = utils.HexToECDSA(HexKey)
	if err != nil {
		panic(err)
	}
	ServerAccount = utils.PubkeyToAddress(PrivateKey.PubKey())

	FaucetAmount = new(big.Int)
	if _, ok := FaucetAmount.SetString(FaucetAmountStr, 0); !ok {
		panic("invalid FAUCET_AMOUNT: " + FaucetAmountStr)
	}
	if RegistryAddr == MarketAddr {
		panic("REGISTRY_ADDR and MARKET_ADDR must differ")
	}
}

func setConf() {
	err := godotenv.Load("market.env")
	if err != nil {
		log.Println("Failed to load environment variables from .env file,", err)
	}

	// Parse the basic configuration of the server
	if serverAddr := os.Getenv("SERVER_ADDR"); serverAddr != "" {
		ServerAddr = serverAddr
	}
	if mysqlDsn := os.Getenv("MYSQL_DSN"); mysqlDsn != "" {
		MysqlDsn = mysqlDsn
	}
	if resetDB := os.Getenv("RESET_DB"); resetDB != "" {
		ResetDB = strings.EqualFold(resetDB, "true")
	}
	if uploadDir := os.Getenv("UPLOAD_DIR"); uploadDir != "" {
		UploadDir = uploadDir
	}
	if hexKey := os.Getenv("HEX_KEY"); hexKey != "" {
		HexKey = hexKey
	}
	if registryAddr := os.Getenv("REGISTRY_ADDR"); registryAddr != "" {
		addr, err := utils.ParseAddress([]byte(registryAddr))
		if err != nil {
			panic("invalid REGISTRY_ADDR: " + err.Error())
		}
		RegistryAddr = addr
	}
	if marketAddr := os.Getenv("MARKET_ADDR"); marketAddr != "" {
		addr, err := utils.ParseAddress([]byte(marketAddr))
		if err != nil {
			panic("invalid MARKET_ADDR: " + err.Error())
		}
		MarketAddr = addr
	}
	if amount := os.Getenv("FAUCET_AMOUNT"); amount != "" {
		FaucetAmountStr = amount
	}
}
