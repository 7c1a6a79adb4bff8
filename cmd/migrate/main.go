// migrate aplica o revierte las migraciones embebidas del esquema.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [n]   (sin n revierte todas)
//	go run ./cmd/migrate version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Inventario-suministros/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-suministros/pkg/config"
	"github.com/jhoicas/Inventario-suministros/pkg/logger"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Nivel de log (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel, Service: "migrate"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer func() { _ = m.Close() }()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		n := 0
		if len(args) > 1 {
			n, err = strconv.Atoi(args[1])
			if err != nil || n < 0 {
				log.Fatal().Str("n", args[1]).Msg("n debe ser un entero positivo")
			}
		}
		err = m.Down(n)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = m.Version()
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión del esquema")
		}
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("migración fallida")
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Uso: migrate [-log-level nivel] <comando>

Comandos:
  up          aplica las migraciones pendientes
  down [n]    revierte n migraciones (todas si se omite n)
  version     muestra la versión actual del esquema`)
}
