// Package storage elige el almacenamiento durable según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/bolt"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

// Store almacenamiento abierto: transacciones, health check y cierre.
type Store interface {
	repository.TxRunner
	Ping(ctx context.Context) error
	Close() error
}

// Open abre PostgreSQL (con migraciones) o el archivo bbolt según STORE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		s, err := postgres.Open(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreDriverBolt:
		s, err := bolt.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
	}
}

// Describe devuelve el destino del store para logs, sin credenciales.
func Describe(cfg *config.Config) string {
	if cfg.Store.Driver == config.StoreDriverBolt {
		return "bolt:" + cfg.Store.BoltPath
	}
	if cfg.DB.DatabaseURL != "" {
		return "postgres:DATABASE_URL"
	}
	return fmt.Sprintf("postgres:%s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName)
}
