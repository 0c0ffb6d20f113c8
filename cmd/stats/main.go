package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	statscmd "github.com/louisbranch/outplay/internal/cmd/stats"
	"github.com/louisbranch/outplay/internal/platform/config"
)

func main() {
	cfg, err := statscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[STATS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := statscmd.Run(ctx, cfg); err != nil {
		config.Exitf("stats: %v", err)
	}
}
