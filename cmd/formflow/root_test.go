package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/sink"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

const singleFieldForm = `{"message":"ok","form":{"formTitle":"Quick","formId":"quick","version":"1","sections":[
{"sectionId":1,"title":"Only","description":"","fields":[
{"fieldId":"a","type":"text","label":"A","required":true,"dataTestId":"a"}]}]}}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestCheckCommand(t *testing.T) {
	good := writeFile(t, "form.json", testsupport.SampleFormResponseJSON())
	out, err := execute(t, "check", good)
	require.NoError(t, err)
	require.Contains(t, out, "ok   "+good+" (3 sections, 8 fields)")

	bad := writeFile(t, "bad.json", []byte(`{"form":{"formTitle":"x","sections":[]}}`))
	out, err = execute(t, "check", good, bad)
	require.ErrorIs(t, err, errCheckFailed)
	require.Contains(t, out, "FAIL "+bad)
}

func TestRenderCommand(t *testing.T) {
	path := writeFile(t, "form.json", testsupport.SampleFormResponseJSON())

	out, err := execute(t, "render", path, "--section", "2")
	require.NoError(t, err)
	require.Contains(t, out, `data-testid="email-input"`)
	require.Contains(t, out, "Section 2 of 3")

	out, err = execute(t, "render", path, "--renderer", "tui", "--section", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Section 3 of 3")
	require.Contains(t, out, "  Course*: ")

	target := filepath.Join(t.TempDir(), "section.html")
	out, err = execute(t, "render", path, "-o", target)
	require.NoError(t, err)
	require.Contains(t, out, "written to "+target)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(written), `data-testid="first-name-input"`)

	_, err = execute(t, "render", path, "--section", "4")
	require.Error(t, err)
}

func TestRootRejectsBadConfig(t *testing.T) {
	cfgPath := writeFile(t, "formflow.yaml", []byte("sink:\n  kind: carrier-pigeon\n"))
	_, err := execute(t, "--config", cfgPath, "check", "whatever.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sink.kind")

	_, err = execute(t, "--log-level", "loud", "check", "whatever.json")
	require.Error(t, err)
}

func TestLoadHonoursDevelopmentLogging(t *testing.T) {
	cfgPath := writeFile(t, "formflow.yaml", []byte("log:\n  level: debug\n  development: true\n"))
	a := &app{configPath: cfgPath}
	cmd := &cobra.Command{}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)

	require.NoError(t, a.load(cmd))
	a.logger.Debug("loaded")
	_ = a.logger.Sync()
	require.Contains(t, errOut.String(), "DEBUG")
	require.Contains(t, errOut.String(), "loaded")
	require.NotContains(t, errOut.String(), `"msg"`)

	errOut.Reset()
	a = &app{}
	require.NoError(t, a.load(cmd))
	a.logger.Info("plain")
	_ = a.logger.Sync()
	require.Contains(t, errOut.String(), `"msg":"plain"`)
}

func TestAppSinkSelection(t *testing.T) {
	a := &app{cfg: config.Default(), logger: zap.NewNop()}
	_, ok := a.sink().(*sink.LogSink)
	require.True(t, ok, "log sink by default")

	a.cfg.Sink = config.SinkConfig{Kind: config.SinkHTTP, Endpoint: "http://localhost/collect"}
	_, ok = a.sink().(*sink.HTTPSink)
	require.True(t, ok, "http sink")

	a.cfg.Sink.Kind = config.SinkBoth
	s := a.sink()
	_, isLog := s.(*sink.LogSink)
	_, isHTTP := s.(*sink.HTTPSink)
	require.False(t, isLog || isHTTP, "both kinds fan out")
}

type scriptedDriver struct {
	inputs  []string
	selects []int
	infos   []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("no select scripted")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestFillCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /create-user", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"User already exists"}`))
	})
	mux.HandleFunc("GET /get-form", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rollNumber") != "R1" {
			http.Error(w, `{"message":"unknown"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(singleFieldForm))
	})
	service := httptest.NewServer(mux)
	t.Cleanup(service.Close)

	cfg := config.Default()
	cfg.Service.BaseURL = service.URL
	a := &app{cfg: cfg, logger: zap.NewNop()}

	driver := &scriptedDriver{
		inputs:  []string{"R1", "Ada", "x"},
		selects: []int{0},
	}
	cmd := newFillCmd(a, tui.WithPromptDriver(driver))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	require.Equal(t, map[string]any{"a": "x"}, payload)
	require.Contains(t, driver.infos, tui.SubmittedNotice)
}

func TestServeBuildsServer(t *testing.T) {
	a := &app{cfg: config.Default(), logger: zap.NewNop()}
	a.cfg.Theme = config.ThemeConfig{Name: "acme", Tokens: map[string]string{"brand": "#123456"}}
	srv, err := a.newServer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "--brand: #123456;")
	require.Contains(t, rec.Body.String(), `name="rollNumber"`)
}

func TestThemeFromManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	manifest := "name: acme\nversion: 1.2.0\ntokens:\n  brand: \"#ffffff\"\nvariants:\n  dark:\n    tokens:\n      brand: \"#000000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	a := &app{cfg: config.Default(), logger: zap.NewNop()}
	a.cfg.Theme = config.ThemeConfig{
		Variant:  "dark",
		Manifest: path,
		Tokens:   map[string]string{"radius": "8px"},
	}
	cfg, err := a.theme()
	require.NoError(t, err)
	require.Equal(t, "acme", cfg.Theme)
	require.Equal(t, map[string]string{"--brand": "#000000", "--radius": "8px"}, cfg.CSSVars)

	a.cfg.Theme.Variant = "sepia"
	_, err = a.theme()
	require.Error(t, err)

	a.cfg.Theme = config.ThemeConfig{Manifest: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err = a.theme()
	require.ErrorContains(t, err, "theme manifest")
}
