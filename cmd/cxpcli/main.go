package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cxpcli",
	Short: "Accounts-payable aging report generator",
	Long: `cxpcli generates the CXP aging report ("Antigüedad de Saldos")
from the configured Odoo instance without running the HTTP server.

ERP connection settings are read from the environment (or a local .env
file), the same way the server reads them.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
