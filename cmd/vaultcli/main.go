package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bsv-blockchain/utxolock/cmd/vaultcli/vaultcli"
)

func main() {
	if err := vaultcli.NewApp(os.Stdout).RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
