// Package main provides the character sheet CLI.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	sheetcmd "github.com/louisbranch/charsheet/internal/cmd/sheet"
)

func main() {
	cfg, err := sheetcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SHEET] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sheetcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatalf("sheet: %v", err)
	}
}
