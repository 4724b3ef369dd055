package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"foodops-server/cmd/api/wire"
	"foodops-server/cmd/config"
	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/httpserver"
	"foodops-server/internal/infra/mqtt"
	"foodops-server/internal/infra/node"
	"foodops-server/internal/infra/replication"
	"foodops-server/internal/infra/replication/handlers"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	config := config.LoadConfig()

	level := logLevelMapping[config.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs([]slog.Attr{slog.String("version", node.Version)})
	slog.SetDefault(slog.New(handler))
	slog.Info("🥫 foodops is initializing")
	slog.Debug("config loaded", "data", config)

	shutdownOtel := startOTel()

	internalBroker := async.NewLocalBroker()

	httpServer := httpserver.NewServer(
		config.HTTPServer.Address,
		handleWireInjector(wire.InitializeOrganizationController(internalBroker)).(httpserver.Controller),
		handleWireInjector(wire.InitializeFieldController()).(httpserver.Controller),
		handleWireInjector(wire.InitializeShiftController()).(httpserver.Controller),
		handleWireInjector(wire.InitializePublicController(internalBroker)).(httpserver.Controller),
		handleWireInjector(wire.InitializeCategoryController()).(httpserver.Controller),
		handleWireInjector(wire.InitializeDonationController(internalBroker)).(httpserver.Controller),
		handleWireInjector(wire.InitializeStatsController()).(httpserver.Controller),
		handleWireInjector(wire.InitializeLiveStatsController(internalBroker)).(httpserver.Controller),
		handleWireInjector(wire.InitializeTemplateController()).(httpserver.Controller),
	)

	appCtx, cancelFn := context.WithCancel(context.Background())
	go httpServer.Run()

	// Replication only runs locally; in production Kafka Connect owns the
	// final tables.
	replicationService := initializeReplicationService()

	var wg sync.WaitGroup
	simpleClientOpts := mqtt.SimpleClientOpts{
		Broker:   config.MQTTClient.Broker,
		ClientID: config.MQTTClient.ClientID,
		Username: config.MQTTClient.Username,
		Password: config.MQTTClient.Password, //pragma: allowlist secret
	}
	mqttClient := mqtt.NewSimpleClient(simpleClientOpts)

	wg.Add(1)
	go handleWireInjector(wire.InitializeScaleIntegrationWorker(internalBroker, mqttClient)).(async.Worker).Run(appCtx, wg.Done)
	wg.Add(1)
	go handleWireInjector(wire.InitializeNotificationWorker(internalBroker)).(async.Worker).Run(appCtx, wg.Done)
	wg.Add(1)
	go handleWireInjector(wire.InitializeStatsRefreshWorker()).(async.Worker).Run(appCtx, wg.Done)

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel
	shutdownOtel()

	if replicationService != nil {
		replicationService.Stop()
	}

	cancelFn()
	wg.Wait()
	slog.Info("good bye!!!")
	os.Exit(0)
}

// initializeReplicationService starts the replication module when running
// against the in-memory pub/sub backend.
func initializeReplicationService() *replication.Service {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	if env != "local" {
		return nil
	}

	slog.Info("initializing replication service for local environment")

	replicationService := handleWireInjector(wire.InitializeReplicationService()).(*replication.Service)

	organizationHandler := handleWireInjector(wire.InitializeOrganizationHandler()).(*handlers.OrganizationHandler)
	registrationFieldHandler := handleWireInjector(wire.InitializeRegistrationFieldHandler()).(*handlers.RegistrationFieldHandler)
	volunteerRegistrationHandler := handleWireInjector(wire.InitializeVolunteerRegistrationHandler()).(*handlers.VolunteerRegistrationHandler)
	shiftSignupHandler := handleWireInjector(wire.InitializeShiftSignupHandler()).(*handlers.ShiftSignupHandler)
	weighingCategoryHandler := handleWireInjector(wire.InitializeWeighingCategoryHandler()).(*handlers.WeighingCategoryHandler)
	donationHandler := handleWireInjector(wire.InitializeDonationHandler()).(*handlers.DonationHandler)
	emailTemplateHandler := handleWireInjector(wire.InitializeEmailTemplateHandler()).(*handlers.EmailTemplateHandler)

	if err := replicationService.RegisterHandler(organizationHandler); err != nil {
		slog.Error("failed to register organization handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.RegisterHandler(registrationFieldHandler); err != nil {
		slog.Error("failed to register registration field handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.RegisterHandler(volunteerRegistrationHandler); err != nil {
		slog.Error("failed to register volunteer registration handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.RegisterHandler(shiftSignupHandler); err != nil {
		slog.Error("failed to register shift signup handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.RegisterHandler(weighingCategoryHandler); err != nil {
		slog.Error("failed to register weighing category handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.RegisterHandler(donationHandler); err != nil {
		slog.Error("failed to register donation handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.RegisterHandler(emailTemplateHandler); err != nil {
		slog.Error("failed to register email template handler", slog.Any("error", err))
		panic(err)
	}

	if err := replicationService.Start(); err != nil {
		slog.Error("failed to start replication service", slog.Any("error", err))
		panic(err)
	}

	slog.Info("replication service started successfully")
	return replicationService
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

type ShutdownFunc func() error

const (
	_defautlEndpoint = "localhost:4317"
	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
)

var (
	_histogramBuckets = []float64{5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000, 25000, 50000, 100000}
)

func startOTel() ShutdownFunc {
	slog.Info("starting OTel providers")
	shutdown, err := otelStart(context.Background())
	if err != nil {
		panic(err)
	}

	return shutdown
}

func otelStart(ctx context.Context) (ShutdownFunc, error) {
	metricsShutdownFunc, err := startMetricsProvider(ctx)
	if err != nil {
		return nil, err
	}

	traceShutdownFunc, err := startTraceProvider(ctx)
	if err != nil {
		return nil, err
	}

	return func() error {
		if err := metricsShutdownFunc(); err != nil {
			return err
		}
		if err := traceShutdownFunc(); err != nil {
			return err
		}
		return nil
	}, nil
}

func startTraceProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := newTraceExporter(ctx)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("foodops-server"),
		)),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func newTraceExporter(ctx context.Context) (trace.SpanExporter, error) {
	endpoint := _defautlEndpoint
	if value, ok := os.LookupEnv("FOODOPS_SERVER_OTELCOL_ENDPOINT"); ok {
		endpoint = value
	}

	return otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

func startMetricsProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := newMetricExporter(ctx)
	if err != nil {
		return nil, err
	}

	mp := newMeterProvider(exp)
	otel.SetMeterProvider(mp)

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval))
	if err != nil {
		return nil, err
	}

	return func() error {
		return mp.Shutdown(ctx)
	}, nil
}

func newMetricExporter(ctx context.Context) (metric.Exporter, error) {
	endpoint := _defautlEndpoint
	if value, ok := os.LookupEnv("FOODOPS_SERVER_OTELCOL_ENDPOINT"); ok {
		endpoint = value
	}

	return otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
}

func newMeterProvider(metricExporter metric.Exporter) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithReader(
			metric.NewPeriodicReader(
				metricExporter,
				metric.WithTimeout(_collectTimeout),
				metric.WithInterval(_collectPeriod))),
		metric.WithView(metric.NewView(
			metric.Instrument{
				Name: "*",
				Kind: metric.InstrumentKindHistogram,
			},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{
					Boundaries: _histogramBuckets,
				},
			},
		)),
	)
}

func handleWireInjector(value any, err error) any {
	if err != nil {
		panic(err)
	}

	return value
}
