package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tooldir/internal/config"
)

// newEnv writes a config backed by a temporary SQLite database
func newEnv(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "tooldir.yaml")
	cfg := "storage:\n" +
		"  backend: sqlite\n" +
		"  path: " + filepath.Join(dir, "tooldir.db") + "\n" +
		"log:\n" +
		"  level: error\n" +
		"  encoding: console\n" +
		"auth:\n" +
		"  bcrypt_cost: 4\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return dir, cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAuthCodeCommands(t *testing.T) {
	_, cfgPath := newEnv(t)

	out, err := execute(t, "--config", cfgPath, "authcode", "generate", "--points", "250")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "MAKER"), out)
	assert.Contains(t, out, "(250 points)")

	out, err = execute(t, "--config", cfgPath, "authcode", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5, out)
	assert.Contains(t, lines[0], "CODE")
	assert.Contains(t, out, "MAKER2025001")
}

func TestExportImportCommands(t *testing.T) {
	dir, cfgPath := newEnv(t)
	exportPath := filepath.Join(dir, "export.json")

	out, err := execute(t, "--config", cfgPath, "export", "--out", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, exportPath)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "tools")
	assert.Contains(t, doc, "makerAuthCodes")

	importPath := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(importPath,
		[]byte(`{"messages": [{"id": "msg_1", "author": "a", "content": "hi", "replies": []}], "tools": {}}`), 0o600))
	out, err = execute(t, "--config", cfgPath, "import", importPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported: messages")
	assert.Contains(t, out, "skipped: tools")

	out, err = execute(t, "--config", cfgPath, "export", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"msg_1"`)

	_, err = execute(t, "--config", cfgPath, "export", "--format", "xml", "--out", filepath.Join(dir, "bad.xml"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "bad.xml"))

	_, err = execute(t, "--config", cfgPath, "import", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	out, err := execute(t, "hash-password", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetIn(strings.NewReader("from-stdin\n"))
	cmd.SetArgs([]string{"hash-password"})
	require.NoError(t, cmd.Execute())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(buf.String())), []byte("from-stdin")))
}

func TestConfigCommands(t *testing.T) {
	dir, cfgPath := newEnv(t)

	out, err := execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)
	assert.Contains(t, out, "Storage: sqlite")

	path := filepath.Join(dir, "new", "tooldir.yaml")
	_, err = execute(t, "config", "init", path)
	require.NoError(t, err)
	cfg, _, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddr, cfg.Server.Addr)

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err)
	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestBadConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "authcode", "list")
	assert.Error(t, err)
}

func TestStartWatcher(t *testing.T) {
	dir, cfgPath := newEnv(t)
	o := &rootOptions{configPath: cfgPath}
	require.NoError(t, o.load())

	t.Run("disabled", func(t *testing.T) {
		a, err := o.open()
		require.NoError(t, err)
		defer a.close()

		select {
		case <-a.startWatcher(context.Background()):
		default:
			t.Fatal("done channel open without a watch path")
		}
	})

	t.Run("imports until stopped", func(t *testing.T) {
		path := filepath.Join(dir, "import.json")
		o.cfg.Import.WatchPath = path
		o.cfg.Import.Debounce = config.Duration(20 * time.Millisecond)
		a, err := o.open()
		require.NoError(t, err)
		defer a.close()

		ctx, cancel := context.WithCancel(context.Background())
		done := a.startWatcher(ctx)

		doc := []byte(`{"messages": [{"id": "msg_1", "author": "a", "content": "hi", "replies": []}]}`)
		require.Eventually(t, func() bool {
			if err := os.WriteFile(path, doc, 0o600); err != nil {
				return false
			}
			msgs, err := a.repos.Messages.List(context.Background())
			return err == nil && len(msgs) == 1
		}, 5*time.Second, 100*time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	})
}
