// Command seed fills an empty catalog with the launch products. Running it
// against a non-empty catalog is a no-op.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sbbtt/next-mall/internal/config"
	"github.com/sbbtt/next-mall/internal/models"
	repository "github.com/sbbtt/next-mall/internal/repositories"
)

var launchCatalog = []models.Product{
	{
		Name:        "Modern Velvet Sofa",
		Price:       489000,
		Category:    models.CategoryFurniture,
		Image:       "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=800&q=80",
		Description: "A premium velvet sofa with deep seats and a contemporary silhouette. The solid wood frame and plush upholstery suit any modern living room.",
	},
	{
		Name:        "Scandinavian Dining Chair",
		Price:       89000,
		Category:    models.CategoryFurniture,
		Image:       "https://images.unsplash.com/photo-1517705008128-361805f42e86?w=800&q=80",
		Description: "A mid-century modern dining chair with an ergonomic curve and sturdy wooden legs, balancing comfort and style.",
	},
	{
		Name:        "Industrial Coffee Table",
		Price:       159000,
		Category:    models.CategoryFurniture,
		Image:       "https://images.unsplash.com/photo-1532372576444-dda954194ad0?w=800&q=80",
		Description: "Metal and wood meet in this industrial coffee table. Built-in storage keeps the living room tidy.",
	},
	{
		Name:        "Pendant Light Fixture",
		Price:       125000,
		Category:    models.CategoryLighting,
		Image:       "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?w=800&q=80",
		Description: "A geometric pendant light that brings an elegant glow to dining tables and living spaces.",
	},
	{
		Name:        "Ceramic Vase Collection",
		Price:       62000,
		Category:    models.CategoryDecor,
		Image:       "https://images.unsplash.com/photo-1578500494198-246f612d3b3d?w=800&q=80",
		Description: "A set of handmade ceramic vases that works as a modern accent, with fresh flowers or on its own.",
	},
	{
		Name:        "Wooden Bookshelf",
		Price:       275000,
		Category:    models.CategoryFurniture,
		Image:       "https://images.unsplash.com/photo-1594620302200-9a762244a156?w=800&q=80",
		Description: "An open wooden bookshelf for books and keepsakes. Solid construction with a clean, minimal look.",
	},
	{
		Name:        "Outdoor Lounge Set",
		Price:       425000,
		Category:    models.CategoryOutdoor,
		Image:       "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?w=800&q=80",
		Description: "A weatherproof lounge set with comfortable cushions that completes any terrace.",
	},
	{
		Name:        "Marble Side Table",
		Price:       198000,
		Category:    models.CategoryFurniture,
		Image:       "https://images.unsplash.com/photo-1611269154421-4e27233ac5c7?w=800&q=80",
		Description: "A side table with a natural marble top. Luxurious material and a minimal frame add quiet elegance.",
	},
}

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := repos.Migrate(cfg.Database.MigrationsPath); err != nil {
		slog.Error("Error running migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	count, err := repos.Product.CountAll(ctx)
	if err != nil {
		slog.Error("Error counting products", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if count > 0 {
		slog.Info("Catalog already seeded, nothing to do", slog.Int("products", count))

		return
	}

	for i := range launchCatalog {
		product := launchCatalog[i]
		product.InStock = true

		if err := repos.Product.Create(ctx, &product); err != nil {
			slog.Error("Error seeding product", slog.String("name", product.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}

		slog.Info("Seeded product", slog.Int64("id", product.ID), slog.String("name", product.Name))
	}

	slog.Info("Catalog seeded", slog.Int("products", len(launchCatalog)))
}
