package devhost_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/coder/websocket"
	"github.com/fwojciec/infopanel"
	"github.com/fwojciec/infopanel/devhost"
	"github.com/fwojciec/infopanel/fixture"
	ipjson "github.com/fwojciec/infopanel/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoFixtures = filepath.Join("..", "testdata", "fixtures", "*.{yaml,json}")

func newServer(t *testing.T, opts ...devhost.Option) (*devhost.Server, *httptest.Server) {
	t.Helper()
	s, err := devhost.New(repoFixtures, opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func post(t *testing.T, url string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "", nil)
	require.NoError(t, err)
	res.Body.Close()
	return res
}

func TestNew_NoFixtures(t *testing.T) {
	t.Parallel()
	_, err := devhost.New(filepath.Join(t.TempDir(), "*.yaml"))
	assert.Error(t, err)
}

func TestPages(t *testing.T) {
	t.Parallel()
	_, ts := newServer(t)

	res, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `<iframe id="widget" src="/widget">`)

	res, body = get(t, ts.URL+"/widget")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/widget.wasm")
}

func TestWASMFiles(t *testing.T) {
	t.Parallel()

	t.Run("not configured", func(t *testing.T) {
		t.Parallel()
		_, ts := newServer(t)
		res, _ := get(t, ts.URL+"/widget.wasm")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("configured", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		wasmPath := filepath.Join(dir, "widget.wasm")
		execPath := filepath.Join(dir, "wasm_exec.js")
		require.NoError(t, os.WriteFile(wasmPath, []byte("\x00asm"), 0o644))
		require.NoError(t, os.WriteFile(execPath, []byte("// go"), 0o644))

		_, ts := newServer(t, devhost.WithWASM(wasmPath), devhost.WithWASMExec(execPath))

		res, body := get(t, ts.URL+"/widget.wasm")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/wasm", res.Header.Get("Content-Type"))
		assert.Equal(t, "\x00asm", body)

		res, body = get(t, ts.URL+"/wasm_exec.js")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "// go", body)
	})
}

func TestFixtures(t *testing.T) {
	t.Parallel()
	s, ts := newServer(t)

	var list struct {
		Active   int `json:"active"`
		Fixtures []struct {
			Index int    `json:"index"`
			Name  string `json:"name"`
		} `json:"fixtures"`
	}
	_, body := get(t, ts.URL+"/fixtures")
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Equal(t, 0, list.Active)
	require.Len(t, list.Fixtures, 3)
	assert.Equal(t, "02-custom-note", list.Fixtures[1].Name)

	res := post(t, ts.URL+"/fixtures/1")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "02-custom-note", s.Active().Name)

	res = post(t, ts.URL+"/fixtures/9")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res = post(t, ts.URL+"/fixtures/x")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "02-custom-note", s.Active().Name)
}

func TestSelect_OutOfRange(t *testing.T) {
	t.Parallel()
	s, _ := newServer(t)
	assert.ErrorIs(t, s.Select(-1), infopanel.ErrValidation)
}

func TestSnapshot(t *testing.T) {
	t.Parallel()
	s, ts := newServer(t)
	require.NoError(t, s.Select(1))

	t.Run("collapsed", func(t *testing.T) {
		t.Parallel()
		_, body := get(t, ts.URL+"/snapshot")
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		require.NoError(t, err)

		assert.Equal(t, 1, doc.Find("#"+infopanel.ContainerID).Length())
		assert.Equal(t, "Details", doc.Find(".header-text").Text())
		assert.Equal(t, infopanel.GlyphCollapsed, doc.Find(".toggle-icon").Text())
		assert.Equal(t, "Custom note", doc.Find(".content-text").Text())
		assert.True(t, doc.Find("#"+infopanel.ContentID).HasClass(infopanel.ClassCollapsed))
	})

	t.Run("expanded", func(t *testing.T) {
		t.Parallel()
		_, body := get(t, ts.URL+"/snapshot?expanded=1")
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		require.NoError(t, err)

		assert.Equal(t, infopanel.GlyphExpanded, doc.Find(".toggle-icon").Text())
		assert.True(t, doc.Find("#"+infopanel.ContentID).HasClass(infopanel.ClassExpanded))
	})
}

func TestSnapshot_MissingStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"style": {}}`), 0o644))
	s, err := devhost.New(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	res, body := get(t, ts.URL+"/snapshot")
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "missing style property")
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func readEnvelope(t *testing.T, ctx context.Context, conn *websocket.Conn) infopanel.Envelope {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	env, err := ipjson.UnmarshalEnvelope(data)
	require.NoError(t, err)
	return env
}

func TestRelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, ts := newServer(t)
	conn := dial(t, ctx, ts)

	// A relayed ready signal is answered with the active fixture.
	ready, err := ipjson.MarshalEnvelope(infopanel.NewEnvelope(infopanel.ReadySignal{}))
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, ready))

	env := readEnvelope(t, ctx, conn)
	assert.Equal(t, infopanel.MessageTypeData, env.Type)
	assert.Equal(t, s.Active().Body, env.Message)

	// Garbage is ignored and the connection stays usable.
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("not json")))

	// Selecting a fixture pushes it to connected pages.
	require.NoError(t, s.Select(1))
	env = readEnvelope(t, ctx, conn)
	assert.Equal(t, infopanel.MessageTypeData, env.Type)
	p, err := ipjson.DecodePayload(infopanel.ObjectTransform(env.Message))
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom note"}, p.Tables.Default()[0].InfoText())

	_, metrics := get(t, ts.URL+"/metrics")
	assert.Contains(t, metrics, "infopanel_devhost_clients 1")
	assert.Contains(t, metrics, "infopanel_devhost_ready_signals_total 1")
	assert.Contains(t, metrics, "infopanel_devhost_updates_sent_total 2")
	assert.Contains(t, metrics, `infopanel_devhost_fixture_reloads_total{result="ok"} 1`)
}

func TestOverrides(t *testing.T) {
	t.Parallel()

	sets := fixture.Overrides{{Path: "style.headerText.value", Value: "From flag"}}
	_, ts := newServer(t, devhost.WithOverrides(sets))

	_, body := get(t, ts.URL+"/snapshot")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "From flag", doc.Find(".header-text").Text())
}

func TestReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fields": 1}`), 0o644))
	s, err := devhost.New(filepath.Join(dir, "*.json"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"fields": 2}`), 0o644))
	require.NoError(t, s.Reload())
	assert.JSONEq(t, "2", string(s.Active().Body["fields"]))

	require.NoError(t, os.Remove(path))
	assert.Error(t, s.Reload())
	assert.JSONEq(t, "2", string(s.Active().Body["fields"]), "failed reload keeps fixtures")
}

func TestRun(t *testing.T) {
	t.Parallel()

	s, err := devhost.New(repoFixtures)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRun_PicksUpNewFixtures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"fields": 1}`), 0o644))
	s, err := devhost.New(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Error(t, s.Select(1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	n := 0
	assert.Eventually(t, func() bool {
		n++
		_ = os.WriteFile(filepath.Join(dir, fmt.Sprintf("b%d.json", n)), []byte(`{"fields": 2}`), 0o644)
		return s.Select(1) == nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}
