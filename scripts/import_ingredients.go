// Seed loader for the ingredient catalog. Reads a JSON file of
// {"name": ..., "measurement_unit": ...} objects and inserts any entries
// not already present, mirroring the data files the frontend ships with.
//
// Usage: go run scripts/import_ingredients.go -file ingredients.json -db recipes.sqlite
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/recipehub/gin-recipe-api/internal/database"
	"github.com/recipehub/gin-recipe-api/internal/models"
	log "github.com/sirupsen/logrus"
)

func main() {
	filePath := flag.String("file", "ingredients.json", "Path to the ingredients JSON file")
	dbPath := flag.String("db", "recipes.sqlite", "Path to the SQLite database")
	flag.Parse()

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *filePath, err)
	}

	var entries []models.Ingredient
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Failed to parse %s: %v", *filePath, err)
	}

	db, err := database.InitDatabase(database.SQLiteConfig(*dbPath))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Ingredient{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	imported, skipped := 0, 0
	for _, entry := range entries {
		if entry.Name == "" || entry.MeasurementUnit == "" {
			skipped++
			continue
		}
		row := models.Ingredient{Name: entry.Name, MeasurementUnit: entry.MeasurementUnit}
		result := db.FirstOrCreate(&row, models.Ingredient{Name: entry.Name, MeasurementUnit: entry.MeasurementUnit})
		if result.Error != nil {
			log.Fatalf("Failed to insert %q: %v", entry.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			imported++
		} else {
			skipped++
		}
	}

	log.Infof("Done: %d ingredients imported, %d skipped", imported, skipped)
}
