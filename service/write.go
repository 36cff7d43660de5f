package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"designmarket/ledger"
	"designmarket/model"
)

// Insert applies one committed ledger event to the index inside a database
// transaction. design must carry the creation record for mint events (transfer
// from the zero address) and is ignored otherwise.
func Insert(ev ledger.Event, design *model.Design) error {
	return DB.Transaction(func(db *gorm.DB) error {
		switch ev.Type {
		case ledger.EventTransfer:
			if ev.From == ledger.ZeroAddress {
				if design == nil {
					return fmt.Errorf("mint event %v without creation record", ev.Seq)
				}
				if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(design).Error; err != nil {
					return err
				}
			} else {
				err := db.Model(&model.Design{}).Where("token_id=?", ev.TokenID).
					Update("owner", string(ev.To)).Error
				if err != nil {
					return err
				}
			}
			return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.DesignTx{
				TxHash:    string(ev.TxHash),
				TxType:    1,
				Registry:  string(ev.Registry),
				TokenID:   ev.TokenID,
				From:      string(ev.From),
				To:        string(ev.To),
				Timestamp: ev.Timestamp,
			}).Error

		case ledger.EventListed:
			price := string(ev.Price)
			err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model.Listing{
				Registry:  string(ev.Registry),
				TokenID:   ev.TokenID,
				Seller:    string(ev.Seller),
				Price:     price,
				Timestamp: ev.Timestamp,
			}).Error
			if err != nil {
				return err
			}
			return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.DesignTx{
				TxHash:    string(ev.TxHash),
				TxType:    2,
				Registry:  string(ev.Registry),
				TokenID:   ev.TokenID,
				From:      string(ev.Seller),
				Price:     &price,
				Timestamp: ev.Timestamp,
			}).Error

		case ledger.EventApproved:
			// approvals are transient ledger state, nothing to index
			return nil

		case ledger.EventPurchased:
			price := string(ev.Price)
			err := db.Model(&model.Listing{}).
				Where("registry=? AND token_id=?", string(ev.Registry), ev.TokenID).
				Update("price", "0").Error
			if err != nil {
				return err
			}
			err = db.Model(&model.Design{}).Where("token_id=?", ev.TokenID).
				Update("last_price", price).Error
			if err != nil {
				return err
			}
			return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.DesignTx{
				TxHash:    string(ev.TxHash),
				TxType:    3,
				Registry:  string(ev.Registry),
				TokenID:   ev.TokenID,
				From:      string(ev.Seller),
				To:        string(ev.Buyer),
				Price:     &price,
				Timestamp: ev.Timestamp,
			}).Error
		}
		return fmt.Errorf("unknown event type: %v", ev.Type)
	})
}
