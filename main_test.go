package main

import (
	"bytes"
	"consultags/entity"
	"consultags/handler"
	"context"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	mutex      sync.Mutex
	lookup     string
	filters    []string
	registered []entity.EntityRecord
}

func (c *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/catalog/service/mysql-orchestrator":
		c.filters = append(c.filters, r.URL.Query().Get("filter"))
		_, _ = w.Write([]byte(c.lookup))
	case r.Method == http.MethodPut && r.URL.Path == "/v1/catalog/register":
		var record entity.EntityRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.registered = append(c.registered, record)
		_, _ = w.Write([]byte("true"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

const catalogLookup = `[{"Datacenter":"dc1","ID":"abc-123","Node":"db-1","Address":"10.0.0.5",` +
	`"TaggedAddresses":{"lan":"10.0.0.5"},"NodeMeta":{"rack":"r1"},"ServiceID":"mysql-orchestrator",` +
	`"ServiceName":"mysql-orchestrator","ServiceTags":["mysql"],"ServicePort":3306}]`

func setupEnv(t *testing.T, catalog *fakeCatalog) {
	t.Helper()

	server := httptest.NewServer(catalog)
	t.Cleanup(server.Close)

	dir, err := ioutil.TempDir("", "consul-data")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "node-id"), []byte("abc-123"), 0644))

	setEnv(t, consulDataDirEnv, dir)
	setEnv(t, consulAgentEnv, strings.TrimPrefix(server.URL, "http://"))
	setEnv(t, logstashAddressEnv, "")
	setEnv(t, jaegerAddressEnv, "")
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	prev, existed := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if existed {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_RegistersActiveTag(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)

	code, stdout, stderr := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false", "--log-level", "silent")
	require.Equal(t, handler.ExitOK, code, stderr)

	assert.Equal(t, "true\n", stdout)
	assert.Equal(t, []string{`ID == "abc-123"`}, catalog.filters)
	require.Len(t, catalog.registered, 1)
	assert.Equal(t, []string{"mysql", "active"}, catalog.registered[0].Service.Tags)
	assert.Equal(t, "db-1", catalog.registered[0].Node)
	assert.Equal(t, map[string]string{"rack": "r1"}, catalog.registered[0].NodeMeta)
}

func TestRun_UnmatchedOutputRegistersUnchangedTags(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)

	code, _, stderr := runArgs("--command", "printf maintenance", "--result-true", "true", "--result-false", "false")
	require.Equal(t, handler.ExitOK, code, stderr)

	require.Len(t, catalog.registered, 1)
	assert.Equal(t, []string{"mysql"}, catalog.registered[0].Service.Tags)
	assert.Contains(t, stderr, "matched neither result")
}

func TestRun_DryRun(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)

	code, stdout, stderr := runArgs("--command", "printf false", "--result-true", "true", "--result-false", "false", "--dry-run", "--log-format", "json")
	require.Equal(t, handler.ExitOK, code, stderr)

	var record entity.EntityRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Equal(t, []string{"mysql", "standby"}, record.Service.Tags)
	assert.Empty(t, catalog.registered)
}

func TestRun_EmptyLookupAbortsBeforeRegister(t *testing.T) {
	catalog := &fakeCatalog{lookup: `[]`}
	setupEnv(t, catalog)

	code, stdout, stderr := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false")
	assert.Equal(t, handler.ExitCatalogProtocol, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "catalog protocol error")
	assert.Empty(t, catalog.registered)
}

func TestRun_ConfigurationErrors(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)

	code, _, _ := runArgs("--command", "printf true", "--result-true", "true")
	assert.Equal(t, handler.ExitConfiguration, code)

	code, _, _ = runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false", "--timeout", "soon")
	assert.Equal(t, handler.ExitConfiguration, code)

	code, _, _ = runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false", "--log-level", "loud")
	assert.Equal(t, handler.ExitConfiguration, code)

	setEnv(t, consulAgentEnv, "")
	code, _, stderr := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false")
	assert.Equal(t, handler.ExitConfiguration, code)
	assert.Contains(t, stderr, consulAgentEnv)

	assert.Empty(t, catalog.filters)
}

func TestRun_EnvFile(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)
	agentAddr := os.Getenv(consulAgentEnv)
	require.NoError(t, os.Unsetenv(consulAgentEnv))

	dir, err := ioutil.TempDir("", "env-file")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	envFile := filepath.Join(dir, "tagger.env")
	require.NoError(t, ioutil.WriteFile(envFile, []byte(consulAgentEnv+"="+agentAddr+"\n"), 0600))

	code, _, stderr := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false", "--env-file", envFile)
	require.Equal(t, handler.ExitOK, code, stderr)
	assert.Len(t, catalog.registered, 1)
}

func TestRun_ProbeNotExecutable(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)

	code, _, _ := runArgs("--command", "/nonexistent/health-check", "--result-true", "true", "--result-false", "false")
	assert.Equal(t, handler.ExitProbe, code)
	assert.Empty(t, catalog.filters)
}

func TestRun_NodeIDUnreadable(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)
	setEnv(t, consulDataDirEnv, filepath.Join(os.TempDir(), "no-such-consul-data-dir"))

	code, _, _ := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false")
	assert.Equal(t, handler.ExitNodeIdentity, code)
	assert.Empty(t, catalog.filters)
}

func TestRun_ReportsSpansToJaegerAgent(t *testing.T) {
	catalog := &fakeCatalog{lookup: catalogLookup}
	setupEnv(t, catalog)

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()
	setEnv(t, jaegerAddressEnv, conn.LocalAddr().String())

	code, _, stderr := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false")
	require.Equal(t, handler.ExitOK, code, stderr)

	// spans are flushed by closer before run returns
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	buf := make([]byte, 65000)
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "UpdateRoleTags")
}

func TestRun_PrintsRegisterResponseVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(catalogLookup))
			return
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()
	setupEnv(t, &fakeCatalog{})
	setEnv(t, consulAgentEnv, strings.TrimPrefix(server.URL, "http://"))

	code, stdout, stderr := runArgs("--command", "printf true", "--result-true", "true", "--result-false", "false")
	require.Equal(t, handler.ExitOK, code, stderr)
	assert.Equal(t, "OK\n", stdout)
}
