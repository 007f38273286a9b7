package service

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/clients/notifier"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config/db"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/handlers"
	middleware "github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ServerService struct {
	Server *http.Server
	db     *db.DB
}

func NewServerService(rootContext context.Context, address string, db *db.DB) ServerService {
	server := &http.Server{
		Addr: address,
		BaseContext: func(_ net.Listener) context.Context {
			return rootContext
		},
	}
	return ServerService{Server: server, db: db}
}

func (serverService *ServerService) SetRouter(jwtConfig *handlers.JWTConfig, notifierClient notifier.NotifierClientI) {
	var router chi.Router
	router = serverService.getRouter(jwtConfig, notifierClient)

	serverService.Server.Handler = router
}

func (serverService *ServerService) getRouter(jwtConfig *handlers.JWTConfig, notifierClient notifier.NotifierClientI) chi.Router {
	router := chi.NewRouter()

	router.Use(logger.RequestLogger)

	userRepository := repository.NewUserRepository(serverService.db)
	requesterRepository := repository.NewRequesterRepository(serverService.db)
	orderRepository := repository.NewOrderRepository(serverService.db)
	processingRepository := repository.NewProcessingRepository(serverService.db)

	authHandler := handlers.NewAuthHandler(jwtConfig, userRepository)
	router.Post("/api/user/register/", authHandler.RegisterHandler)
	router.Post("/api/user/login/", authHandler.LoginHandler)

	// Переход по ссылке из письма согласования, без аутентификации:
	// предъявление токена и есть право решить судьбу счета.
	validationService := NewValidationService(processingRepository, notifierClient)
	validationHandler := handlers.NewValidationHandler(validationService)
	router.Get("/", validationHandler.ResolveValidation)

	intakeService := NewIntakeService(orderRepository, processingRepository, notifierClient)
	invoicesHandler := handlers.NewInvoicesHandler(intakeService)
	provisionHandler := handlers.NewProvisionHandler(requesterRepository, orderRepository)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.AuthMiddleware(authHandler))
		protected.Post("/api/invoices/", invoicesHandler.SubmitInvoice)
		protected.Post("/api/requesters/", provisionHandler.AddRequester)
		protected.Patch("/api/requesters/{id}/email/", provisionHandler.ChangeRequesterEmail)
		protected.Post("/api/orders/", provisionHandler.AddOrder)
	})

	return router
}

func (serverService *ServerService) RunServer(serverErr *chan error) {
	if err := serverService.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		*serverErr <- err
	} else {
		*serverErr <- nil
	}
}

func (serverService *ServerService) Shutdown() error {
	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if shutdownErr := serverService.Server.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	return nil
}
