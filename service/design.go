package service

import "designmarket/model"

func FetchDesigns(owner, creator string, page, size int) (res DesignsRes, err error) {
	db := DB.Model(&model.Design{})
	if owner != "" {
		db = db.Where("owner=?", owner)
	}
	if creator != "" {
		db = db.Where("creator=?", creator)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("token_id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Designs).Error
	return
}

func GetDesign(tokenID uint64) (res model.Design, err error) {
	err = DB.Where("token_id=?", tokenID).First(&res).Error
	return
}

func FetchListings(seller string, page, size int) (res ListingsRes, err error) {
	db := DB.Model(&model.Listing{}).Joins("LEFT JOIN designs ON listings.token_id=designs.token_id").
		Where("listings.price<>'0'")
	if seller != "" {
		db = db.Where("seller=?", seller)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("listings.timestamp DESC").Offset((page - 1) * size).Limit(size).
		Select("listings.*, designs.creator_name, designs.token_uri").Scan(&res.Listings).Error
	return
}

func FetchDesignTxs(tokenID *uint64, account string, page, size int) (res DesignTxsRes, err error) {
	db := DB.Model(&model.DesignTx{})
	if tokenID != nil {
		db = db.Where("token_id=?", *tokenID)
	}
	if account != "" {
		db = db.Where("`from`=? OR `to`=?", account, account)
	}

	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("timestamp DESC").Offset((page - 1) * size).Limit(size).Find(&res.DesignTxs).Error
	return
}
