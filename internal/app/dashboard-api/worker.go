package dashboard_api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/services"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/sql_db"
)

// Start runs service every interval until ctx is done. A lost database connection is
// reopened after WorkerFailureRetryDelay; ServiceMaxErrorCount consecutive processing
// errors cancel the whole application.
func Start(ctx context.Context, ctxCancel context.CancelFunc, config *infrastructure.Config, service Service, provider Provider, mutex *sync.Mutex, interval time.Duration) {
	log.Info().Msg("Application worker starting")

	retry := func(err error) {
		log.Error().Msgf("retry error: %s", err)

		ticker := time.NewTicker(config.WorkerFailureRetryDelay)
		defer ticker.Stop()

		select {
		case <-ticker.C:
		case <-ctx.Done():
		}
	}

	errorCount := 0

	for ctx.Err() == nil {
		func() {
			var processingError error

			db, err := provider.InitDBConnection()
			if err != nil {
				retry(err)
				return
			}
			defer db.Close()

			storage := sql_db.NewSqlDB(db)
			if err := storage.Migrate(ctx); err != nil {
				retry(err)
				return
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for processingError == nil {
				select {
				case <-ticker.C:
					mutex.Lock()
					processingError = service.Execute(ctx, storage)
					mutex.Unlock()
					if processingError == nil {
						errorCount = 0
					}
				case <-ctx.Done():
					return
				}
			}

			if ctx.Err() != nil {
				return
			}

			errorCount++
			errorEncountered(config, processingError, errorCount)
			if errorCount >= config.ServiceMaxErrorCount {
				maxErrorCountReached(config, processingError)
				ctxCancel()
				return
			}

			retry(processingError)
		}()
	}
}

var mSendMail = sendMail

func maxErrorCountReached(config *infrastructure.Config, err error) {
	message := fmt.Sprintf("Application has exceeded the ServiceMaxErrorCount: {%d} and needs manual intervention!\n Error: {%s}", config.ServiceMaxErrorCount, err)
	log.Error().Msg(message)
	mSendMail(config, message)
}

func errorEncountered(config *infrastructure.Config, processingError error, errorCount int) {
	message := fmt.Sprintf("Application has encountered an error! Error: %s...Retrying for %d time", processingError, errorCount)
	log.Error().Msg(message)
	mSendMail(config, message)
}

func sendMail(config *infrastructure.Config, message string) {
	h := infrastructure.NewHelper(config)
	if err := h.SendMail(message); err != nil {
		log.Error().Msgf("failed to send mail: %s", err)
	}
}

type Provider interface {
	InitDBConnection() (*sqlx.DB, error)
}

type Service interface {
	Execute(ctx context.Context, storage services.Storage) error
}
