// ledgerctl tareas de operación sobre el libro: migraciones, recálculo de facturas,
// relay manual del outbox y carga del catálogo de tarifas.
//
// Uso: go run ./cmd/ledgerctl <comando> [flags]
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
