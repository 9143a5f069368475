package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sharmasagarr/taskmanager/config"
	"github.com/sharmasagarr/taskmanager/handlers"
	"github.com/sharmasagarr/taskmanager/repositories"
	"github.com/sharmasagarr/taskmanager/services"

	gorillaHandlers "github.com/gorilla/handlers"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func main() {
	cfg, err := config.Load()
	handleErr(err)

	ctx := context.Background()
	exp, err := newExporter(cfg.JaegerAddress)
	handleErr(err)
	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tracer := tp.Tracer("taskmanager")

	// Set up a timeout context for the store connection
	timeoutContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	storeLogger := log.New(os.Stdout, "[store] ", log.LstdFlags)

	client, err := repositories.Connect(timeoutContext, cfg, storeLogger)
	handleErr(err)
	db := client.Database(cfg.MongoDatabase)

	userRepository := repositories.NewUserRepo(db, log.New(os.Stdout, "[user-store] ", log.LstdFlags), tracer)
	taskRepository := repositories.NewTaskRepo(db, log.New(os.Stdout, "[task-store] ", log.LstdFlags), tracer)

	authService := services.NewAuthService(userRepository, cfg, tracer)
	taskService := services.NewTaskService(taskRepository, userRepository, cfg, tracer)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	authMiddleware := handlers.NewAuthMiddleware(authService)

	router := handlers.NewRouter(authHandler, taskHandler, authMiddleware)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "PATCH"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      gorillaHandlers.LoggingHandler(os.Stdout, cors(router)),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("Task manager listening on", cfg.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.Address, err)
		}
	}()

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	sig := <-sigCh
	log.Println("Received terminate, graceful shutdown", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Cannot gracefully shutdown:", err)
	}
	if err := repositories.Disconnect(shutdownCtx, client, storeLogger); err != nil {
		log.Println(err)
	}
	log.Println("Server stopped")
}

// handleErr is a helper function for error handling
func handleErr(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

func newExporter(address string) (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("taskmanager"),
		),
	)
	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
