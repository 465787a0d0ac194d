package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-envconfig"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargotracker/shipping/booking"
	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/handling"
	"github.com/cargotracker/shipping/inmem"
	"github.com/cargotracker/shipping/inspection"
	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/mongodb"
	shippingredis "github.com/cargotracker/shipping/redis"
	"github.com/cargotracker/shipping/routing"
	"github.com/cargotracker/shipping/tracking"
	"github.com/cargotracker/shipping/voyage"
)

type config struct {
	Addr      string `env:"ADDR, default=:8080"`
	ZipkinURL string `env:"ZIPKIN_URL"`
	MongoURI  string `env:"MONGO_URI"`
	MongoDB   string `env:"MONGO_DB, default=shipping"`
	RedisAddr string `env:"REDIS_ADDR"`
}

func main() {
	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var cfg config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}

	var zipkinTracer *stdzipkin.Tracer
	if cfg.ZipkinURL != "" {
		reporter := zipkinhttp.NewReporter(cfg.ZipkinURL)
		defer reporter.Close()

		endpoint, err := stdzipkin.NewEndpoint("shipping", cfg.Addr)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		zipkinTracer, err = stdzipkin.NewTracer(reporter, stdzipkin.WithLocalEndpoint(endpoint))
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}
	otTracer := stdopentracing.GlobalTracer()

	var (
		cargos         cargo.Repository
		locations      location.Repository
		voyages        voyage.Repository
		handlingEvents cargo.HandlingEventRepository
	)
	if cfg.MongoURI != "" {
		ctx := context.Background()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		defer client.Disconnect(ctx)

		db := client.Database(cfg.MongoDB)
		if err := mongodb.Seed(db); err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}

		cargos = mongodb.NewCargoRepository(db)
		locations = mongodb.NewLocationRepository(db)
		voyages = mongodb.NewVoyageRepository(db)
		handlingEvents = mongodb.NewHandlingEventRepository(db)
	} else {
		cargos = inmem.NewCargoRepository()
		locations = inmem.NewLocationRepository()
		voyages = inmem.NewVoyageRepository()
		handlingEvents = inmem.NewHandlingEventRepository()
	}

	var dedup handling.EventDeduplicator
	if cfg.RedisAddr != "" {
		dedup = shippingredis.NewDedupChecker(goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr}))
	}

	fieldKeys := []string{"method"}
	instrument := func(subsystem string) (*kitprometheus.Counter, *kitprometheus.Summary) {
		return kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: subsystem,
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: subsystem,
				Name:      "request_latency_microseconds",
				Help:      "Total duration of requests in microseconds.",
			}, fieldKeys)
	}

	routingService := routing.NewRandomService(locations, voyages)

	var bs booking.Service
	{
		bs = booking.NewService(cargos, locations, handlingEvents, routingService)
		bs = booking.NewLoggingService(log.With(logger, "component", "booking"), bs)
		counter, latency := instrument("booking_service")
		bs = booking.NewInstrumentingService(counter, latency, bs)
	}

	var ts tracking.Service
	{
		ts = tracking.NewService(cargos, handlingEvents)
		ts = tracking.NewLoggingService(log.With(logger, "component", "tracking"), ts)
		counter, latency := instrument("tracking_service")
		ts = tracking.NewInstrumentingService(counter, latency, ts)
	}

	var is inspection.Service
	{
		is = inspection.NewService(cargos, handlingEvents, &inspectionEvents{logger: logger})
	}

	var hs handling.Service
	{
		f := cargo.HandlingEventFactory{
			CargoRepository:    cargos,
			VoyageRepository:   voyages,
			LocationRepository: locations,
		}
		hs = handling.NewService(handlingEvents, f, handling.NewEventHandler(is), dedup, logger)
		hs = handling.NewLoggingService(log.With(logger, "component", "handling"), hs)
		counter, latency := instrument("handling_service")
		hs = handling.NewInstrumentingService(counter, latency, hs)
	}

	bookingSet := booking.NewSet(bs, logger, nil, otTracer, zipkinTracer)
	trackingSet := tracking.NewSet(ts, logger, nil, otTracer, zipkinTracer)
	handlingSet := handling.NewSet(hs, logger, nil, otTracer, zipkinTracer)

	httpLogger := log.With(logger, "component", "http")

	mux := http.NewServeMux()
	mux.Handle("/booking/v1/", booking.MakeHandler(bookingSet, httpLogger))
	mux.Handle("/tracking/v1/", tracking.MakeHandler(trackingSet, httpLogger))
	mux.Handle("/handling/v1/", handling.MakeHandler(handlingSet, httpLogger))
	mux.Handle("/metrics", promhttp.Handler())

	errs := make(chan error, 2)
	go func() {
		logger.Log("transport", "http", "address", cfg.Addr, "msg", "listening")
		errs <- http.ListenAndServe(cfg.Addr, mux)
	}()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- &signalError{sig: <-c}
	}()

	logger.Log("terminated", <-errs)
}

type signalError struct{ sig os.Signal }

func (e *signalError) Error() string { return e.sig.String() }

// inspectionEvents publishes inspection outcomes. The sample application only
// logs them; a production deployment would fan them out to a message broker.
type inspectionEvents struct {
	logger log.Logger
}

func (e *inspectionEvents) CargoWasMisdirected(c *cargo.Cargo) {
	e.logger.Log("event", "cargo_misdirected", "tracking_id", c.TrackingID)
}

func (e *inspectionEvents) CargoHasArrived(c *cargo.Cargo) {
	e.logger.Log("event", "cargo_arrived", "tracking_id", c.TrackingID)
}
