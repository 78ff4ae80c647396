package sql_db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

func NewSqlDB(db *sqlx.DB) *SqlDB {
	return &SqlDB{db}
}

// Migrate creates the tables if they are missing.
func (sdb *SqlDB) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if sdb.DriverName() == "sqlite3" {
		schema = sqliteSchema
	}

	for _, stmt := range schema {
		if _, err := sdb.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return nil
}

func (sdb *SqlDB) SaveWebhookProbe(ctx context.Context, probe types.WebhookProbe) error {
	return sdb.ExecuteTx(ctx, func(tx *DbTx) error {
		return tx.saveWebhookProbe(ctx, probe)
	})
}

func (sdb *SqlDB) ExecuteTx(ctx context.Context, callback func(*DbTx) error) (retErr error) {
	tx, err := sdb.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if retErr != nil {
			if err := tx.Rollback(); err != nil {
				log.Error().Err(fmt.Errorf("error while executing tx: %s\nerror while making rollback: %s", retErr, err)).Send()
			}
		}
	}()

	if retErr = callback(&DbTx{tx}); retErr != nil {
		return
	}

	if retErr = tx.Commit(); retErr != nil {
		return
	}

	return nil
}

type SqlDB struct {
	*sqlx.DB
}
type DbTx struct {
	*sqlx.Tx
}
