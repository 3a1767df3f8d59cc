package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-shop-checkout.git/internal/cart"
	"github.com/ariefcatur/go-shop-checkout.git/internal/catalog"
	"github.com/ariefcatur/go-shop-checkout.git/internal/checkout"
	"github.com/ariefcatur/go-shop-checkout.git/internal/config"
	"github.com/ariefcatur/go-shop-checkout.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-shop-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-shop-checkout.git/internal/payment"
	"github.com/ariefcatur/go-shop-checkout.git/internal/postgres"
	"github.com/ariefcatur/go-shop-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-shop-checkout.git/internal/shop"
	"github.com/ariefcatur/go-shop-checkout.git/internal/stock"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers: satu per topic
	producers := []*kafkax.Producer{}
	newProducer := func(topic string) *kafkax.Producer {
		p := kafkax.NewProducer(cfg.KafkaBrokers, topic, 1024)
		p.Start(ctx)
		producers = append(producers, p)
		return p
	}
	pCreated := newProducer(shop.TopicOrderCreated)
	pCancelled := newProducer(shop.TopicOrderCancelled)
	pReconcile := newProducer(shop.TopicOrderReconcile)
	pStockLow := newProducer(shop.TopicStockLow)
	pStockOut := newProducer(shop.TopicStockOut)

	// Wiring
	cat := &catalog.PG{DB: db}
	ledger := &stock.PG{
		DB: db,
		Signals: &stock.Signaler{
			ProducerLow: pStockLow,
			ProducerOut: pStockOut,
			ServiceName: cfg.ServiceName,
		},
	}
	carts := &cart.Service{
		Store:   &cart.RedisStore{R: rdb},
		Catalog: cat,
	}
	workflow := &checkout.Service{
		Orders: &checkout.Repo{DB: db},
		Stock:  ledger,
		Carts:  carts,
		Events: &checkout.KafkaEvents{
			Created:   pCreated,
			Cancelled: pCancelled,
			Reconc:    pReconcile,
			Service:   cfg.ServiceName,
		},
	}
	gateway := payment.NewGatewayClient(cfg.GatewayBaseURL, cfg.GatewaySecret, cfg.GatewayTimeout)
	channels := payment.NewRegistry(payment.Cash{}, payment.Transfer{})

	// HTTP
	router := httpx.NewRouter()
	co := &httpx.CheckoutHandler{
		Checkout:      workflow,
		Carts:         carts,
		Channels:      channels,
		Redis:         rdb,
		ShippingCents: cfg.ShippingCents,
		TaxCents:      cfg.TaxCents,
	}
	co.Register(router)
	(&httpx.CartHandler{Carts: carts}).Register(router)
	(&httpx.PaymentHandler{
		Checkout: co,
		Gateway:  gateway,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}).Register(router)
	(&httpx.ProductsHandler{Catalog: cat}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	for _, p := range producers {
		p.Close() // tutup inbox -> flush & close writer
	}
	cancel()
	for _, p := range producers {
		p.WaitClosed() // drain
	}
}
