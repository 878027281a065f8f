// Comando de migração do schema. Aplica os arquivos SQL de ./migrations
// contra o banco apontado por DATABASE_URL (ou pelas variáveis DB_*).
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down 1
//	go run ./cmd/migrate version
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/mktfun/gps-rh-api/pkg/config"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if len(os.Args) < 2 {
		log.Fatal().Msg("uso: migrate [up|down N|version]")
	}

	m, err := migrate.New("file://migrations", pgxURL(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				log.Fatal().Str("arg", os.Args[2]).Msg("número de passos inválido")
			}
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("consultar versão")
		}
		fmt.Printf("versão: %d dirty: %v\n", v, dirty)
		return
	default:
		log.Fatal().Str("comando", os.Args[1]).Msg("comando desconhecido")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("aplicar migração")
	}
	log.Info().Str("comando", os.Args[1]).Msg("migração concluída")
}

// pgxURL troca o scheme do DSN para o driver pgx/v5 do golang-migrate.
func pgxURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return dsn
}
