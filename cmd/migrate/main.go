package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fikadugetaye72/fruit/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	apply := flag.Bool("apply", false, "apply the embedded schema")
	flag.Parse()

	if !*apply {
		fmt.Println("dry run; pass -apply to run the embedded schema against the database")
		return
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.ApplySchema(context.Background(), pool); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	fmt.Println("schema applied")
}
