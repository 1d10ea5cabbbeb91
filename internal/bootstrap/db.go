package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/config"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage/postgres"
)

// Database holds the pgx pool and the database/sql view of it the repositories use.
type Database struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
}

func (d *Database) Close() {
	if d == nil {
		return
	}
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}

// OpenDB connects to Postgres and applies the schema when cfg.Migrate is set.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*Database, error) {
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	db := &Database{Pool: pool, SQL: postgres.SQLDB(pool)}

	if cfg.Migrate {
		if err := postgres.Migrate(cctx, db.SQL); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("database schema applied")
	}

	return db, nil
}
