// Package fluentq builds SQL statements through a fluent chain and runs them
// over database/sql prepared statements.
//
// A handle is opened with Connect (MySQL) or Open (any registered driver),
// and every statement starts from Table:
//
//	db, err := fluentq.Connect(fluentq.Config{
//		Host:     "localhost",
//		Database: "app",
//		Username: "app",
//		Password: "secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Table("users").
//		Select("id", "name").
//		Where("status", "=", "active").
//		OrderBy("name", "ASC").
//		Execute()
//
// Builders are immutable values: each chain method returns a new Builder, so
// a half-built query can be kept as a template and branched freely. Values
// are always bound through ? placeholders and are never written into the SQL
// text.
package fluentq
