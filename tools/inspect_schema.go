package main

import (
	"fmt"
	"log"

	"github.com/localnerve/guau-api/internal/config"
	"github.com/localnerve/guau-api/internal/database"
)

// Prints the DDL AutoMigrate produces for every model, using an in-memory sqlite.
func main() {
	db, err := database.Connect(&config.Config{
		DBType:     "sqlite",
		DBDatabase: "file:inspect?mode=memory&cache=shared",
	}, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	type object struct {
		Type string
		Name string
		SQL  string
	}
	var objects []object
	err = db.Raw("SELECT type, name, sql FROM sqlite_master WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%' ORDER BY tbl_name, type DESC, name").
		Scan(&objects).Error
	if err != nil {
		log.Fatal(err)
	}

	for _, o := range objects {
		if o.Type == "table" {
			fmt.Printf("\n=== Table: %s ===\n", o.Name)
		}
		fmt.Println(o.SQL)
	}
}
