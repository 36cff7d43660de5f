package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"designmarket/common/utils"
	"designmarket/conf"
	"designmarket/service"
	"designmarket/storage"
	"designmarket/txdata"
)

func Design(e *gin.Engine) {
	e.POST("/design/register", registerDesign)
	e.GET("/design/page", pageDesign)
	e.GET("/design/tx/page", pageDesignTx)
	e.GET("/design/next_id", nextTokenID)
	e.GET("/design/file/:name", designFile)
	e.GET("/design/:tokenId", getDesign)
	e.POST("/design/:tokenId/list", listDesign)
}

// RegisterRes design registration return parameters
type RegisterRes struct {
	Success bool           `json:"success"`
	TxData  txdata.Payload `json:"txData"`  //unsigned registerDesign transaction
	FileURL string         `json:"fileUrl"` //stored content locator, recorded as tokenURI
}

// @Tags        design
// @Summary     register a design
// @Description Stores the uploaded design file and returns the unsigned registration transaction for the wallet to sign
// @Accept      mpfd
// @Produce     json
// @Param       designFile  formData file   true "design content"
// @Param       name        formData string true "design name"
// @Param       description formData string true "design description"
// @Param       creatorName formData string true "creator display name"
// @Success     200 {object} RegisterRes
// @Failure     400 {object} service.ErrRes
// @Router      /design/register [post]
func registerDesign(c *gin.Context) {
	file, err := c.FormFile("designFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "No file uploaded"})
		return
	}
	name := c.PostForm("name")
	description := c.PostForm("description")
	creatorName := c.PostForm("creatorName")
	if name == "" || description == "" || creatorName == "" {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "Missing required metadata"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, service.ErrRes{ErrStr: err.Error()})
		return
	}
	defer src.Close()
	fileURL, err := storage.Save(file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, service.ErrRes{ErrStr: err.Error()})
		return
	}

	data, err := txdata.EncodeRegisterDesign(fileURL, creatorName, description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, RegisterRes{
		Success: true,
		TxData:  txdata.Payload{To: conf.RegistryAddr, Data: data},
		FileURL: fileURL,
	})
}

// DesignRes design detail return parameters
type DesignRes struct {
	TokenID     uint64 `json:"tokenId"`
	Owner       string `json:"owner"`
	TokenURI    string `json:"tokenURI"`
	CreatorName string `json:"creatorName"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"` //creation unix timestamp
}

// @Tags        design
// @Summary     query design details
// @Description Reads owner, content locator and immutable metadata from the ledger
// @Produce     json
// @Param       tokenId path string true "token id"
// @Success     200 {object} DesignRes
// @Failure     404 {object} service.ErrRes
// @Router      /design/{tokenId} [get]
func getDesign(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	owner, err := host.OwnerOf(tokenID)
	if err != nil {
		fail(c, err)
		return
	}
	tokenURI, err := host.TokenURI(tokenID)
	if err != nil {
		fail(c, err)
		return
	}
	meta, err := host.GetMetadata(tokenID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, DesignRes{
		TokenID:     tokenID,
		Owner:       string(owner),
		TokenURI:    tokenURI,
		CreatorName: meta.CreatorName,
		Description: meta.Description,
		CreatedAt:   meta.CreatedAt,
	})
}

// ListForSaleRes listing preparation return parameters
type ListForSaleRes struct {
	Success bool   `json:"success"`
	TokenID uint64 `json:"tokenId"`
	Price   string `json:"price"` //asking price, unit wei
	TxData  struct {
		Approve txdata.Payload `json:"approve"` //unsigned marketplace approval
		List    txdata.Payload `json:"list"`    //unsigned listing transaction
	} `json:"txData"`
}

// @Tags        design
// @Summary     prepare a listing
// @Description Returns the unsigned approve and list transactions for the wallet to sign in order
// @Accept      json
// @Produce     json
// @Param       tokenId path string true "token id"
// @Param       price body string true "asking price in ether, must be positive"
// @Success     200 {object} ListForSaleRes
// @Failure     400 {object} service.ErrRes
// @Router      /design/{tokenId}/list [post]
func listDesign(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	req := struct {
		Price string `json:"price"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	price, err := utils.ParseEther(req.Price)
	if err != nil || price.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: "Invalid price"})
		return
	}

	res := ListForSaleRes{Success: true, TokenID: tokenID, Price: price.Text(10)}
	approveData, err := txdata.EncodeApprove(conf.MarketAddr, tokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, service.ErrRes{ErrStr: err.Error()})
		return
	}
	listData, err := txdata.EncodeListDesign(conf.RegistryAddr, tokenID, price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, service.ErrRes{ErrStr: err.Error()})
		return
	}
	res.TxData.Approve = txdata.Payload{To: conf.RegistryAddr, Data: approveData}
	res.TxData.List = txdata.Payload{To: conf.MarketAddr, Data: listData}
	c.JSON(http.StatusOK, res)
}

// @Tags        design
// @Summary     query design list
// @Description Query the design index in reverse order of token id
// @Produce     json
// @Param       owner     query string false "Owner, if empty, query all"
// @Param       creator   query string false "Creator, if empty, query all"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} service.DesignsRes
// @Failure     400 {object} service.ErrRes
// @Router      /design/page [get]
func pageDesign(c *gin.Context) {
	page, size := utils.ParsePagination(c.Query("page"), c.Query("page_size"))
	res, err := service.FetchDesigns(c.Query("owner"), c.Query("creator"), page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags        design
// @Summary     query design activity
// @Description Query indexed mint, transfer, listing and purchase events in reverse time order
// @Produce     json
// @Param       token_id  query string false "token id, if empty, query all"
// @Param       account   query string false "account taking part, if empty, query all"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} service.DesignTxsRes
// @Failure     400 {object} service.ErrRes
// @Router      /design/tx/page [get]
func pageDesignTx(c *gin.Context) {
	page, size := utils.ParsePagination(c.Query("page"), c.Query("page_size"))
	var tokenID *uint64
	if s := c.Query("token_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
			return
		}
		tokenID = &id
	}
	res, err := service.FetchDesignTxs(tokenID, c.Query("account"), page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags        design
// @Summary     query next token id
// @Description Returns the id the next registration will be assigned
// @Produce     json
// @Success     200 {object} map[string]uint64
// @Router      /design/next_id [get]
func nextTokenID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"next_token_id": host.NextID()})
}

// @Tags        design
// @Summary     download design content
// @Description Serves the stored design file by locator name
// @Produce     octet-stream
// @Param       name path string true "stored file name"
// @Failure     404 {object} service.ErrRes
// @Router      /design/file/{name} [get]
func designFile(c *gin.Context) {
	content, err := storage.Open(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, service.ErrRes{ErrStr: "file not found"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(content), content)
}
