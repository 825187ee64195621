// seed pobla el almacenamiento con el administrador, proveedores, órdenes de compra
// e insumos iniciales del restaurante. Es idempotente: cada sección se omite si ya tiene datos.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/seed"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	_ = godotenv.Load() // .env opcional

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", storage.Describe(cfg)).Msg("abrir almacenamiento")
	}
	defer store.Close()

	inventorySvc := appinv.NewService(store, log.Component("inventory"), appinv.Options{
		ExpiryWindowDays: cfg.Alerts.ExpiryWindowDays,
		Location:         cfg.Inventory.Location(),
	})
	loader := seed.NewLoader(store, inventorySvc.Alerts(), seed.Config{
		AdminUsername: cfg.Seed.AdminUsername,
		AdminPassword: cfg.Seed.AdminPassword,
		AdminEmail:    cfg.Seed.AdminEmail,
	}, log.Component("seed"), time.Now)

	rep, err := loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("seed incompleto")
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("✓ administrador creado: %v\n", rep.AdminCreated)
	fmt.Printf("✓ proveedores: %d\n", rep.Suppliers)
	fmt.Printf("✓ órdenes de compra: %d\n", rep.PurchaseOrders)
	fmt.Printf("✓ ítems de inventario: %d\n", rep.Items)
	fmt.Printf("✓ alertas abiertas: %d\n", rep.Alerts.Created)
}
