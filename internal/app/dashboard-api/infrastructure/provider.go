package infrastructure

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

func NewProvider(config *Config) *Provider {
	return &Provider{config: config}
}

type Provider struct {
	config *Config
}

func (p *Provider) InitDBConnection() (*sqlx.DB, error) {
	db, err := sqlx.Connect(p.config.DbDriverName, p.config.DataSourceName())
	if err != nil {
		return nil, err
	}

	log.Debug().Msgf("db connection initiated with host: %s", p.config.DbHost)

	return db, nil
}

// DataSourceName builds the connection string for DbDriverName.
// For sqlite3 DbName is used as the file path.
func (c *Config) DataSourceName() string {
	if c.DbDriverName == "sqlite3" {
		return c.DbName
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DbHost, c.DbPort, c.DbUser, c.DbPassword, c.DbName, c.DbSSLMode)
}
