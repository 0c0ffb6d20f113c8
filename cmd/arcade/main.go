package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	arcadecmd "github.com/louisbranch/outplay/internal/cmd/arcade"
)

func main() {
	cfg, err := arcadecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ARCADE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := arcadecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("match aborted: %v", err)
	}
}
