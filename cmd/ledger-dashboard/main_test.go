package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainFunction(t *testing.T) {
	// Test that rootCmd is defined and has expected properties
	assert.NotNil(t, rootCmd, "rootCmd should be defined")
	assert.Equal(t, "ledger-dashboard", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "Categorize and summarize")
	assert.Contains(t, rootCmd.Long, "Ledger Dashboard")

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["report"])
	assert.True(t, names["categories"])
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCategoriesCommand(t *testing.T) {
	out := run(t, "categories")

	assert.Contains(t, out, " 1. Food and Dining: swiggy")
	assert.Contains(t, out, "Loan: vatturi paritosh")
	assert.Contains(t, out, "unmatched rows: Other")
}

func TestReportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	csv := "Date,Transaction Details,Amount,Tags\n" +
		"1/1/2024,Swiggy order,-200,\n" +
		"2/1/2024,Amazon Pay,-1299,#?? shopping\n" +
		"3/1/2024,Paid to Sharma Stores,-50,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	out := run(t, "report", path, "--no-color", "--category", "Shopping", "--category", "Other")

	assert.Contains(t, out, "Debited       1349.00")
	assert.Contains(t, out, "Shopping")
	assert.NotContains(t, out, "Swiggy")
}

func waitServe(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("serveUntil did not return")
		return nil
	}
}

func TestServeUntil_ListenerFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	done := make(chan error, 1)
	go func() { done <- serveUntil(context.Background(), srv, zerolog.Nop()) }()

	assert.Error(t, waitServe(t, done))
}

func TestServeUntil_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serveUntil(ctx, srv, zerolog.Nop()) }()
	cancel()

	assert.NoError(t, waitServe(t, done))
}
