package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	for _, m := range []interface{}{
		&Document{},
		&Place{},
		&Note{},
		&Shape{},
		&Route{},
		&Area{},
		&Participant{},
		&Share{},
		&Comment{},
		&Reaction{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}

	return nil
}
