// blackjack-server hosts table sessions over a local HTTP API so external
// agents can create tables and drive rounds remotely.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MJE43/blackjack-table-go/internal/api"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8077", "listen address")
	flag.Parse()

	logger := log.New(os.Stdout, "[blackjack-server] ", log.LstdFlags)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.NewServer().Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
