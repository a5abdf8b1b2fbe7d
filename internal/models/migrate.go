package models

import "gorm.io/gorm"

// Migrate creates the relational schema. Posts live in PostgreSQL only when
// it is the selected content store.
func Migrate(db *gorm.DB, withPosts bool) error {
	tables := []any{&User{}}
	if withPosts {
		tables = append(tables, &Post{})
	}
	tables = append(tables, &Follow{}, &Like{}, &Comment{}, &Notification{})
	return db.AutoMigrate(tables...)
}
