// ============================================================================
// BOOTSTRAP (Compose Root)
// ============================================================================
//
// 📦 НАЗНАЧЕНИЕ:
// Точка сборки Donor Service: профиль донора, доступность, предложения
// по заявкам и ответы на них. Ответы доставляются в request-service
// асинхронно через RabbitMQ; события заявок проталкиваются подключенным
// донорам через WebSocket.
//
// ============================================================================

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/adapter/in/in_amqp"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/adapter/in/transport"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/adapter/out/out_amqp"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/usecase"
	matchrepo "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/adapter/out/repo"
	reqrepo "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/adapter/out/repo"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/auth"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/user"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/ws"
)

// Run запускает Donor Service со всеми его компонентами
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "donor_service_starting", Message: "initializing donor service"})

	// ========================================================================
	// СЛОЙ 1: ИНФРАСТРУКТУРА
	// ========================================================================

	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	if err := db_conn.Migrate(ctx, dbPool, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	mqConn, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer mqConn.Close()

	if err := mq.SetupTopology(ctx, mqConn, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// ========================================================================
	// СЛОЙ 2: WEBSOCKET HUB (real-time уведомления донорам)
	// ========================================================================

	wsHub := ws.NewHub(jwtService.ExtractUserID, log)
	go wsHub.Run(ctx)

	// ========================================================================
	// СЛОЙ 3: REPOSITORIES
	// ========================================================================

	donorRepo := matchrepo.NewDonorPgRepository(dbPool, log)
	matchRepo := matchrepo.NewMatchPgRepository(dbPool, log)
	requestRepo := reqrepo.NewRequestPgRepository(dbPool, log)
	userRepo := user.NewPgRepository(dbPool, log)

	// ========================================================================
	// СЛОЙ 4: PUBLISHERS
	// ========================================================================

	donorEvents := out_amqp.NewDonorEventPublisher(mqConn, log)

	// ========================================================================
	// СЛОЙ 5: USE CASES
	// ========================================================================

	profileUC := usecase.NewGetMyProfileService(donorRepo, userRepo, log)
	availabilityUC := usecase.NewUpdateAvailabilityService(donorRepo, donorEvents, log)
	matchesUC := usecase.NewListMyMatchesService(donorRepo, matchRepo, requestRepo, log)
	respondUC := usecase.NewRespondToMatchService(donorRepo, matchRepo, donorEvents, log)
	donationUC := usecase.NewRecordDonationService(donorRepo, log)

	// ========================================================================
	// СЛОЙ 6: CONSUMERS
	// ========================================================================

	// События заявок: request-service → RabbitMQ → WebSocket доноров
	eventsConsumer := in_amqp.NewRequestEventsConsumer(mqConn, matchRepo, donorRepo, wsHub, log)
	go func() {
		if err := eventsConsumer.Start(ctx); err != nil {
			log.Error(logger.Entry{
				Action:  "request_events_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// ========================================================================
	// СЛОЙ 7: HTTP СЕРВЕР
	// ========================================================================

	httpHandler := transport.NewHTTPHandler(profileUC, availabilityUC, matchesUC, respondUC, donationUC, log)

	mux := http.NewServeMux()
	authMiddleware := transport.JWTMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, authMiddleware)

	// WebSocket endpoint для доноров
	mux.HandleFunc("/ws", wsHub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.DonorServicePort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "donor_service_stopping", Message: "shutting down donor service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "donor_service_stopped", Message: "donor service stopped"})
}
