package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// tables are the archive and layout cache tables owned by migrations/.
var tables = []string{"game_results", "seat_results", "map_layouts"}

func main() {
	var dsn, out, only string
	flag.StringVar(&dsn, "dsn", os.Getenv("GAIA_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model/gen", "output dir for generated models")
	flag.StringVar(&only, "tables", strings.Join(tables, ","), "comma separated tables to generate")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or GAIA_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           out,
		ModelPkgPath:      "gen",
		Mode:              gen.WithDefaultQuery,
		FieldNullable:     true,
		FieldWithTypeTag:  true,
		FieldWithIndexTag: true,
	})
	g.UseDB(db)
	var models []any
	for _, table := range strings.Split(only, ",") {
		table = strings.TrimSpace(table)
		if table == "" {
			continue
		}
		models = append(models, g.GenerateModel(table))
	}
	if len(models) == 0 {
		log.Fatal("no tables selected")
	}
	g.ApplyBasic(models...)
	g.Execute()

	fmt.Printf("generated %d gorm models at %s\n", len(models), out)
}
