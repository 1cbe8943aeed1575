// ============================================================================
// BOOTSTRAP (Compose Root)
// ============================================================================
//
// 📦 НАЗНАЧЕНИЕ:
// Этот файл — "точка сборки" всего Request Service. Здесь мы:
// 1. Создаем все зависимости (БД, RabbitMQ, WebSocket)
// 2. Собираем Use Cases с их зависимостями
// 3. Связываем адаптеры с Use Cases
// 4. Запускаем HTTP сервер и фоновые процессы
//
// 💡 ПРИНЦИП: Dependency Injection Container
// Все зависимости создаются в одном месте, затем передаются в конструкторы.
// Это позволяет легко заменить реализацию (например, подменить PostgreSQL
// на In-Memory репозиторий для тестов).
//
// 📚 СЛОИ (создаются в таком порядке):
// 1. ИНФРАСТРУКТУРА: PostgreSQL, RabbitMQ, JWT
// 2. REPOSITORIES: Реализации интерфейсов для БД
// 3. USE CASES: Бизнес-логика (создание заявок, подбор и уведомление доноров)
// 4. ADAPTERS: HTTP, WebSocket, AMQP
// 5. SERVER: Запуск всех компонентов
//
// ============================================================================

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	inamqp "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/adapter/in/in_amqp"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/adapter/out/notify"
	matchamqp "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/adapter/out/out_amqp"
	matchrepo "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/adapter/out/repo"
	matchusecase "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/adapter/in/transport"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/adapter/out/out_amqp"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/adapter/out/repo"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/auth"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/ws"
)

// Run запускает Request Service со всеми его компонентами.
//
// ЧТО ПРОИСХОДИТ ВНУТРИ:
// 1. Инициализация инфраструктуры (БД, RabbitMQ)
// 2. Создание всех Use Cases (заявки + подбор доноров)
// 3. Запуск AMQP consumer ответов доноров (в фоне)
// 4. Запуск WebSocket hub (в фоне)
// 5. Запуск HTTP сервера (блокирующий)
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "request_service_starting", Message: "initializing request service"})

	// ========================================================================
	// СЛОЙ 1: ИНФРАСТРУКТУРА
	// ========================================================================

	// 1. Инициализация PostgreSQL
	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	// Применяем миграции (создаем таблицы, индексы, extensions)
	if err := db_conn.Migrate(ctx, dbPool, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// 2. Инициализация RabbitMQ
	mqConn, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer mqConn.Close()

	// Создаем топологию RabbitMQ (exchanges, queues, bindings)
	if err := mq.SetupTopology(ctx, mqConn, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// 3. Инициализация JWT Service
	jwtService := auth.NewJWTService(cfg.JWT)

	// ========================================================================
	// СЛОЙ 2: WEBSOCKET HUB (real-time уведомления пациентам и госпиталям)
	// ========================================================================

	wsHub := ws.NewHub(jwtService.ExtractUserID, log)
	go wsHub.Run(ctx)

	// ========================================================================
	// СЛОЙ 3: REPOSITORIES
	// ========================================================================

	requestRepo := repo.NewRequestPgRepository(dbPool, log)
	donorRepo := matchrepo.NewDonorPgRepository(dbPool, log)
	matchRepo := matchrepo.NewMatchPgRepository(dbPool, log)
	patientRepo := matchrepo.NewPatientPgRepository(dbPool, log)
	hospitalRepo := matchrepo.NewHospitalPgRepository(dbPool, log)
	notificationRepo := matchrepo.NewNotificationPgRepository(dbPool, log)
	txManager := db_conn.NewTxManager(dbPool, log)

	// ========================================================================
	// СЛОЙ 4: PUBLISHERS / NOTIFIERS
	// ========================================================================

	requestEvents := out_amqp.NewRequestEventPublisher(mqConn, log)
	matchEvents := matchamqp.NewMatchEventPublisher(mqConn, log)

	// Уведомления: in-app (БД + WebSocket), email, SMS
	mailer := notify.NewMailer(cfg.Notify, log)
	smsGateway := notify.NewSMSGateway(cfg.Notify, log)
	notifier := notify.NewCompositeNotifier(notificationRepo, wsHub, mailer, smsGateway, log)

	// ========================================================================
	// СЛОЙ 5: USE CASES
	// ========================================================================

	// Подбор доноров: совместимость группы крови, радиус поиска, ранжирование
	findMatchesUC := matchusecase.NewFindDonorMatchesService(
		requestRepo, // Заявки читаем из той же БД
		donorRepo,
		patientRepo,
		hospitalRepo,
		cfg.Matching,
		log,
	)

	// Уведомление топ-K доноров о новой заявке
	notifyDonorsUC := matchusecase.NewNotifyMatchedDonorsService(
		findMatchesUC,
		matchRepo,
		notifier,
		matchEvents,
		cfg.Matching.TopDonors,
		log,
	)

	// Запись ответа донора (ACCEPTED/REJECTED) и перевод заявки в APPROVED
	recordResponseUC := matchusecase.NewRecordDonorResponseService(
		requestRepo,
		matchRepo,
		donorRepo,
		patientRepo,
		hospitalRepo,
		notifier,
		matchEvents,
		txManager,
		log,
	)

	// Создание заявки пациентом: сохранение + синхронный подбор доноров
	submitUC := usecase.NewSubmitRequestService(requestRepo, patientRepo, notifyDonorsUC, requestEvents, log)
	cancelUC := usecase.NewCancelRequestService(requestRepo, patientRepo, requestEvents, log)
	listUC := usecase.NewListMyRequestsService(requestRepo, patientRepo, log)
	getUC := usecase.NewGetRequestService(requestRepo, log)

	// ========================================================================
	// СЛОЙ 6: CONSUMERS
	// ========================================================================

	// Consumer ответов доноров:
	// Donor App → Donor Service → RabbitMQ → Consumer → Use Case → PostgreSQL
	donorResponseConsumer := inamqp.NewDonorResponseConsumer(mqConn, recordResponseUC, log)
	go func() {
		if err := donorResponseConsumer.Start(ctx); err != nil {
			log.Error(logger.Entry{
				Action:  "donor_response_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// ========================================================================
	// СЛОЙ 7: HTTP HANDLER
	// ========================================================================

	httpHandler := transport.NewHTTPHandler(submitUC, cancelUC, listUC, getUC, log)

	// ========================================================================
	// СЛОЙ 8: HTTP СЕРВЕР
	// ========================================================================

	mux := http.NewServeMux()

	authMiddleware := transport.JWTMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, authMiddleware)

	// WebSocket endpoint: пациенты и госпитали подключаются сюда
	// для real-time уведомлений о подборе доноров и одобрении заявок
	mux.HandleFunc("/ws", wsHub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.RequestServicePort)
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
	log.Info(logger.Entry{Action: "request_service_stopping", Message: "shutting down request service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	} else {
		log.Info(logger.Entry{Action: "http_server_stopped", Message: "http server stopped gracefully"})
	}

	log.Info(logger.Entry{Action: "request_service_stopped", Message: "request service stopped"})
}
