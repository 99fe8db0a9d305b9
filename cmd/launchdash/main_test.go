// ABOUTME: End-to-end tests for the launchdash CLI, driving run() with argument lists.
// ABOUTME: Covers version, summary output formats, SQLite export, config errors, and the serve lifecycle.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

const fixture = "../../dataset/testdata/launches.csv"

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out, "launchdash ") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "launch")
	if code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
	if !strings.Contains(errOut, "error:") {
		t.Errorf("expected an error message, got %q", errOut)
	}
}

func TestSummaryJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "summary", "--source", fixture, "--log-level", "error")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}

	var report summaryReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if report.Records != 16 {
		t.Errorf("records = %d, want 16", report.Records)
	}
	if len(report.Sites) != 4 {
		t.Errorf("sites = %v, want 4 sites", report.Sites)
	}
	if report.Bounds.Min != 0 || report.Bounds.Max != 9600 {
		t.Errorf("bounds = %+v, want 0-9600", report.Bounds)
	}
	if !report.Filter.AllSites {
		t.Error("default filter should select all sites")
	}
	if report.Scatter.Count != 16 || report.Scatter.Points != nil {
		t.Errorf("scatter = %+v, want all 16 launches without points", report.Scatter)
	}
}

func TestSummaryYAMLWithFilters(t *testing.T) {
	code, out, errOut := runCLI(t, "summary",
		"--source", fixture, "--log-level", "error",
		"--site", "KSC LC-39A", "--payload", "2000,8000", "--points", "-o", "yaml")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}

	var report summaryReport
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if report.Filter.Site != "KSC LC-39A" {
		t.Errorf("filter site = %q", report.Filter.Site)
	}
	if report.Pie.Mode != "outcome" {
		t.Errorf("pie mode = %q, want outcome", report.Pie.Mode)
	}
	if report.Scatter.Count != len(report.Scatter.Points) {
		t.Errorf("count %d does not match %d points", report.Scatter.Count, len(report.Scatter.Points))
	}
	for _, p := range report.Scatter.Points {
		if p.LaunchSite != "KSC LC-39A" || p.PayloadMassKg < 2000 || p.PayloadMassKg > 8000 {
			t.Errorf("point outside the selection: %+v", p)
		}
	}
}

func TestSummaryRejectsUnknownFormat(t *testing.T) {
	code, _, errOut := runCLI(t, "summary", "--source", fixture, "-o", "xml")
	if code != 1 || !strings.Contains(errOut, "output format") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestExportThenSummaryFromSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "launches.db")
	if code, _, errOut := runCLI(t, "export", "--source", fixture, "--out", db, "--log-level", "error"); code != 0 {
		t.Fatalf("export exit code %d: %s", code, errOut)
	}

	_, csvOut, _ := runCLI(t, "summary", "--source", fixture, "--log-level", "error")
	code, dbOut, errOut := runCLI(t, "summary", "--source", "sqlite://"+db, "--log-level", "error")
	if code != 0 {
		t.Fatalf("summary exit code %d: %s", code, errOut)
	}

	var fromCSV, fromDB summaryReport
	json.Unmarshal([]byte(csvOut), &fromCSV)
	json.Unmarshal([]byte(dbOut), &fromDB)
	if fromDB.Records != fromCSV.Records || fromDB.Scatter.Count != fromCSV.Scatter.Count {
		t.Errorf("sqlite summary differs from csv: %+v vs %+v", fromDB, fromCSV)
	}
	if fromDB.Pie.Total() != fromCSV.Pie.Total() {
		t.Errorf("pie totals differ: %d vs %d", fromDB.Pie.Total(), fromCSV.Pie.Total())
	}
}

func TestExportRequiresOut(t *testing.T) {
	code, _, errOut := runCLI(t, "export", "--source", fixture)
	if code != 1 || !strings.Contains(errOut, "--out") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestInvalidConfig(t *testing.T) {
	code, _, errOut := runCLI(t, "summary", "--source", fixture, "--variant", "staging")
	if code != 1 || !strings.Contains(errOut, "unknown variant") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestServeMissingSource(t *testing.T) {
	code, _, errOut := runCLI(t, "serve", "--source", filepath.Join(t.TempDir(), "nope.csv"), "--log-level", "error")
	if code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
	if !strings.Contains(errOut, "nope.csv") {
		t.Errorf("expected the source in the error, got %q", errOut)
	}
}

func TestServeEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	header := "Launch Site,class,Payload Mass (kg),Booster Version Category\n"
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := runCLI(t, "serve", "--source", path, "--log-level", "error")
	if code != 1 || !strings.Contains(errOut, "no records") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestServePortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	code, _, errOut := runCLI(t, "serve", "--source", fixture, "--host", "127.0.0.1", "--port", port, "--log-level", "error")
	if code != 1 || !strings.Contains(errOut, "listen") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestServeLifecycle(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)
	var out, errOut bytes.Buffer
	go func() {
		done <- run(ctx, []string{
			"serve", "--source", fixture, "--host", "127.0.0.1", "--port", strconv.Itoa(port), "--log-level", "error",
		}, &out, &errOut)
	}()

	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("health status %d", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never became healthy: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("exit code %d after shutdown: %s", code, errOut.String())
		}
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not shut down")
	}
}
