// Package main submits Asterisk call files to a spool directory.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	submitcmd "github.com/callspool/callspool/internal/cmd/submit"
)

func main() {
	cfg, err := submitcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CALLSPOOL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := submitcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("submit call file: %v", err)
	}
}
