// seed aplica las migraciones y carga el dataset de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Si el usuario admin de demostración ya existe no inserta nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/palletpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/palletpro-api/pkg/config"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	if err := postgres.Migrate(cfg.DB, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ds, err := memory.NewDataset()
	if err != nil {
		log.Fatal().Err(err).Msg("dataset de demostración")
	}

	existing, err := postgres.NewUserRepository(pool).GetByEmail(ctx, "admin@example.com")
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuarios")
	}
	if existing != nil {
		log.Info().Msg("la base ya tiene datos de demostración")
		return
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar transacción")
	}
	if err := load(ctx, tx, ds); err != nil {
		_ = tx.Rollback(ctx)
		log.Fatal().Err(err).Msg("cargar dataset")
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("commit")
	}

	log.Info().
		Int("users", len(ds.Users)).
		Int("customers", len(ds.Customers)).
		Int("products", len(ds.Products)).
		Int("orders", len(ds.Orders)).
		Msg("dataset cargado")
}

// load inserta el dataset respetando las claves foráneas.
func load(ctx context.Context, tx pgx.Tx, ds *memory.Dataset) error {
	users := postgres.NewUserRepository(tx)
	customers := postgres.NewCustomerRepository(tx)
	products := postgres.NewProductRepository(tx)
	orders := postgres.NewOrderRepository(tx)

	for _, u := range ds.Users {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("usuario %s: %w", u.Email, err)
		}
	}
	for _, c := range ds.Customers {
		if err := customers.Create(ctx, c); err != nil {
			return fmt.Errorf("cliente %s: %w", c.Company, err)
		}
	}
	for _, c := range ds.Categories {
		if err := products.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("categoría %s: %w", c.Name, err)
		}
	}
	for _, p := range ds.Products {
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("producto %s: %w", p.Name, err)
		}
	}
	for _, o := range ds.Orders {
		if err := orders.Create(ctx, o); err != nil {
			return fmt.Errorf("pedido %s: %w", o.PurchaseOrderNumber, err)
		}
	}
	for _, c := range ds.Commissions {
		if err := orders.AddCommission(ctx, c); err != nil {
			return fmt.Errorf("comisión %s: %w", c.OrderID, err)
		}
	}
	return nil
}
