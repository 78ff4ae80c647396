package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
)

func TestAddressCommand(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"address", "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8", "hello"})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N\nhello\n", out.String())
}

func TestAddressCommandNeedsAnAddress(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"address"})

	require.Error(t, rootCmd.Execute())
}

func TestOpenHealthStoreCreatesTables(t *testing.T) {
	config := &infrastructure.Config{DbDriverName: "sqlite3", DbName: filepath.Join(t.TempDir(), "health.db")}

	storage, err := openHealthStore(context.Background(), infrastructure.NewProvider(config))
	require.NoError(t, err)
	defer storage.Close()

	health, err := storage.GetWebhookHealth(context.Background())
	require.NoError(t, err)
	require.Empty(t, health)
}

func TestOpenHealthStoreWithoutDatabase(t *testing.T) {
	config := &infrastructure.Config{DbDriverName: "sqlite3", DbName: filepath.Join(t.TempDir(), "missing", "health.db")}

	_, err := openHealthStore(context.Background(), infrastructure.NewProvider(config))
	require.ErrorContains(t, err, "could not connect to db")
}
