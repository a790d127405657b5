package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/botcmd/internal/config"
	"github.com/aretw0/botcmd/internal/testutils"
	"github.com/aretw0/botcmd/pkg/adapters/file"
	"github.com/aretw0/botcmd/pkg/adapters/memory"
	"github.com/aretw0/botcmd/pkg/adapters/process"
	"github.com/aretw0/botcmd/pkg/adapters/redis"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func exec(t *testing.T, app *App, sender, line string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Exec(context.Background(), app, "s1", sender, line, &out), line)
	return out.String()
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nprefix: \"/\"\n"), 0644))

	cfg, logger, err := LoadConfig(Options{ConfigPath: path, LogLevel: "warn"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel, "flag overrides the file")
	assert.Equal(t, "/", cfg.Prefix)
	assert.NotNil(t, logger)

	_, _, err = LoadConfig(Options{ConfigPath: path, LogLevel: "loud"})
	assert.Error(t, err)
}

func TestNewApp_Defaults(t *testing.T) {
	app := newTestApp(t, config.Default())

	assert.Equal(t, "hi\n", exec(t, app, "u1", "!echo hi"))
	assert.Contains(t, app.Engine.Commands(), "help")

	_, ok := app.Dispatcher.Sessions().Store().(*memory.Store)
	assert.True(t, ok)

	assert.Equal(t, 1, testutil.CollectAndCount(app.Metrics.Executions))
}

func TestNewApp_PrefixAndAliases(t *testing.T) {
	cfg := config.Default()
	cfg.Prefix = "/"
	cfg.Aliases = map[string]string{"hey": "/echo hey"}

	app := newTestApp(t, cfg)
	assert.Equal(t, "hey you\n", exec(t, app, "u1", "/hey you"))
}

func TestNewApp_AliasDir(t *testing.T) {
	dir, _ := testutils.SetupAliasRepo(t, map[string]string{"wave.md": testutils.AliasDoc("!echo o/", "Waves.")})

	cfg := config.Default()
	cfg.AliasDir = dir
	app := newTestApp(t, cfg)

	assert.Equal(t, "o/\n", exec(t, app, "u1", "!wave"))
}

func TestNewApp_Admins(t *testing.T) {
	cfg := config.Default()
	cfg.Admins = []string{"boss"}
	app := newTestApp(t, cfg)

	exec(t, app, "boss", "!set k v")
	var out bytes.Buffer
	err := Exec(context.Background(), app, "s1", "u1", "!unset k", &out)
	assert.ErrorContains(t, err, "admin")
	exec(t, app, "boss", "!unset k")
	assert.Equal(t, "", exec(t, app, "boss", "!vars"))
}

func TestCreateStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StoreFile
	cfg.SessionDir = t.TempDir()
	st, err := createStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, st.store)
	assert.Nil(t, st.locker)

	mr := miniredis.RunT(t)
	cfg.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()
	st, err = createStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &redis.Store{}, st.store)
	assert.IsType(t, &redis.Locker{}, st.locker)
	require.NoError(t, st.close())

	cfg.Store = "tape"
	_, err = createStore(cfg)
	assert.Error(t, err)
}

func TestCreateStore_Security(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StoreFile
	cfg.SessionDir = t.TempDir()
	cfg.Security.EncryptionKey = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	cfg.Security.RedactVariables = []string{"password"}
	app := newTestApp(t, cfg)

	exec(t, app, "u1", "!set pin 12-34")
	exec(t, app, "u1", "!set password hunter2")
	assert.Equal(t, "12-34\n", exec(t, app, "u1", "!get pin"))
	assert.Equal(t, "***\n", exec(t, app, "u1", "!get password"))

	entries, err := os.ReadDir(cfg.SessionDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(cfg.SessionDir, e.Name()))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "12-34")
	}

	cfg.Security.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = createStore(cfg)
	assert.ErrorContains(t, err, "32 bytes")
}

func TestNewApp_Tools(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dir := t.TempDir()
	toolsFile := filepath.Join(dir, "tools.yaml")
	require.NoError(t, os.WriteFile(toolsFile, []byte(`
tools:
  - name: whereami
    command: pwd
`), 0o644))

	cfg := config.Default()
	cfg.Tools = []process.ProcessConfig{{Name: "greet", Command: "sh", Args: []string{"-c", `echo "hi $BOTCMD_ARG_1"`}}}
	cfg.ToolsFile = toolsFile
	cfg.ToolsDir = dir
	app := newTestApp(t, cfg)

	assert.Equal(t, "hi bob\n", exec(t, app, "u1", "!greet bob"))
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	out := strings.TrimSpace(exec(t, app, "u1", "!whereami"))
	outResolved, err := filepath.EvalSymlinks(out)
	require.NoError(t, err)
	assert.Equal(t, resolved, outResolved)
}

func TestNewApp_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()
	app := newTestApp(t, cfg)

	exec(t, app, "u1", "!set color blue")
	assert.Equal(t, "blue\n", exec(t, app, "u1", "!get color"))
	assert.True(t, mr.Exists(cfg.Redis.Prefix+"s1"))
}

func TestRunREPL_Headless(t *testing.T) {
	app := newTestApp(t, config.Default())
	var out bytes.Buffer

	err := RunREPL(context.Background(), app, REPLOptions{
		Headless:  true,
		SessionID: "repl",
		Input:     strings.NewReader("!echo one\n!repeat 2 two\n"),
		Output:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\ntwo\n", out.String())

	s, err := app.Dispatcher.Sessions().Load(context.Background(), "repl")
	require.NoError(t, err)
	assert.Len(t, s.History, 2)
}

func TestRunREPL_Cancelled(t *testing.T) {
	app := newTestApp(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunREPL(ctx, app, REPLOptions{Headless: true, Input: strings.NewReader("!echo x\n"), Output: &bytes.Buffer{}})
	assert.NoError(t, err, "interruptions exit cleanly")
}

func TestNewHTTPHandler_Metrics(t *testing.T) {
	app := newTestApp(t, config.Default())
	h := NewHTTPHandler(app)

	req := httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(`{"command":"!echo hi","session_id":"web"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `botcmd_command_executions_total{command="echo",result="string",status="ok"} 1`)
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	app := newTestApp(t, config.Default())
	err := ServeMCP(context.Background(), app, "carrier-pigeon", 0)
	assert.ErrorContains(t, err, "unknown transport")
}

func TestServe_Shutdown(t *testing.T) {
	app := newTestApp(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Serve(ctx, app, 0))
}

func TestSignalContext_Cancel(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.ErrorIs(t, sc.Err(), context.Canceled)
	assert.Nil(t, sc.Signal())
	assert.True(t, isInterrupted(sc.Err()))
	assert.NoError(t, handleExecutionError(sc.Err()))
}
