package repository

import (
	"fmt"

	"database/sql"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	"github.com/sbbtt/next-mall/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Repository struct {
	DB       *sql.DB
	Product  ProductRepository
	Cart     CartRepository
	Wishlist WishlistRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Fail fast when the DB is unreachable.
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:       db,
		Product:  NewProductRepo(db),
		Cart:     NewCartRepo(db),
		Wishlist: NewWishlistRepo(db),
	}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}
