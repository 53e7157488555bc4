package cli

import "fmt"

type MigrateCmd struct{}

func (c *MigrateCmd) Run(cc *Context) error {
	gormDB, err := openDB(cc)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	cc.Logger.Info("migrations applied", "driver", cc.DB.Driver)
	fmt.Println("migrations applied")
	return nil
}
