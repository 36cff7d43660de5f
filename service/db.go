package service

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"designmarket/conf"
	"designmarket/model"
)

var DB *gorm.DB

// Init connects the index database and syncs the table structure. Called once
// from main; handlers backed only by the ledger work without it.
func Init() error {
	var err error
	DB, err = gorm.Open(mysql.Open(conf.MysqlDsn+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{PrepareStmt: true})
	if err != nil {
		return err
	}
	if conf.ResetDB {
		if err = model.DropTable(DB); err != nil {
			return err
		}
	}
	return model.Migrate(DB)
}
