// seed_admin crea el usuario administrador inicial o actualiza su contraseña si ya existe.
//
// Uso: go run ./cmd/seed_admin -username admin -password <clave> [-name "Administrador General"]
// La contraseña también puede venir de ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-suministros/internal/application/usecase"
	"github.com/jhoicas/Inventario-suministros/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-suministros/pkg/config"
	"github.com/jhoicas/Inventario-suministros/pkg/logger"
)

func main() {
	username := flag.String("username", "admin", "Usuario administrador")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "Contraseña (mínimo 6 caracteres)")
	fullName := flag.String("name", "Administrador General", "Nombre completo")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "indicar -password o ADMIN_PASSWORD")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_admin"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	user, err := uc.EnsureAdmin(ctx, *username, *password, *fullName)
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("crear administrador")
	}
	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("administrador listo")
}
