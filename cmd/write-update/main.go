package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/itemhive/catalog/internal/config"
	"github.com/itemhive/catalog/internal/services"
)

func main() {
	// Local runs only; Lambda injects the real environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log.Printf("starting write-update handler itemsTable=%s", cfg.Items.TableName)

	opts, err := services.NewServiceOptions(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize service: %v", err)
	}

	lambda.Start(opts.UpdateItemsHandler)
}
