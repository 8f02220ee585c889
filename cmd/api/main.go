// @title           megawarez API
// @version         1.0
// @description     Catalog of categories, subcategories and products with per-user download tracking.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	_ "megawarez/docs"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:                  "megawarez",
		Usage:                 "Catalog and download tracking API",
		Version:               version,
		EnableShellCompletion: true,
		DefaultCommand:        "serve",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			hashPasswordCommand(),
			configCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "megawarez:", err)
		os.Exit(1)
	}
}
