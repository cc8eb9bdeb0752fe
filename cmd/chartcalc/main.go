// Package main is the command line entry point for the chart calculator. It prints
// western and ziwei charts as JSON on stdout and logs to stderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/huikaichung/knowyourself/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		writeError(os.Stdout, err)
		os.Exit(1)
	}
}

// errorResponse is printed instead of a chart when a calculation fails.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

func writeError(w io.Writer, err error) {
	resp := errorResponse{
		Error: err.Error(),
		Kind:  string(domain.KindOf(err)),
		Field: domain.FieldOf(err),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(resp); encErr != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
