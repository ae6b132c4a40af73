package main_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/macrat/statusboard/cmd/statusboard"
	"github.com/macrat/statusboard/internal/console"
	"github.com/macrat/statusboard/internal/dashboard"
	"github.com/macrat/statusboard/internal/schedule"
	"github.com/macrat/statusboard/internal/testutil"
)

type lockedBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.Lock()
	defer b.Unlock()
	return b.buf.String()
}

func httpGet(t *testing.T, u string) (int, string) {
	t.Helper()

	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("failed to get %s: %s", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read %s: %s", u, err)
	}

	return resp.StatusCode, string(body)
}

func TestStatusboardCommand_RunServer(t *testing.T) {
	backend := testutil.StartBackend(t)

	logReader, logWriter := io.Pipe()
	defer logReader.Close()

	cmd := &main.StatusboardCommand{
		OutStream:  logWriter,
		ErrStream:  logWriter,
		ListenPort: 0,
		BackendURL: backend.URL(),
		Schedule:   schedule.IntervalSchedule{Interval: time.Hour},
		Name:       "Server Test",
		Location:   time.UTC,
	}
	d := dashboard.New(cmd.NewClient(), console.New(logWriter))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exitCode := make(chan int)
	go func() {
		exitCode <- cmd.RunServer(ctx, d)
	}()

	reader := bufio.NewReader(logReader)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("failed to read start log: %s", err)
	}

	var start struct {
		Message  string `json:"message"`
		URL      string `json:"url"`
		Schedule string `json:"schedule"`
	}
	if err := json.Unmarshal([]byte(line), &start); err != nil {
		t.Fatalf("failed to parse start log: %s\n%s", err, line)
	}
	if start.Message != "start statusboard server" {
		t.Fatalf("unexpected first log: %s", line)
	}
	if start.Schedule != "1h0m0s" {
		t.Errorf("unexpected schedule in start log: %s", start.Schedule)
	}

	logs := &lockedBuffer{}
	copied := make(chan struct{})
	go func() {
		io.Copy(logs, reader)
		close(copied)
	}()

	base := strings.Replace(start.URL, "0.0.0.0", "127.0.0.1", 1)

	deadline := time.Now().Add(5 * time.Second)
	for {
		_, body := httpGet(t, base+"/status.json?jq=.loaded")
		if strings.TrimSpace(body) == "true" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("dashboard was not loaded in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	code, body := httpGet(t, base+"/status.txt")
	if code != http.StatusOK {
		t.Errorf("unexpected status code of status.txt: %d", code)
	}
	for _, s := range []string{"Server Test", "Website", "Elevated error rate on website"} {
		if !strings.Contains(body, s) {
			t.Errorf("expected %q in status.txt but not found:\n%s", s, body)
		}
	}

	if code, _ := httpGet(t, base+"/healthz"); code != http.StatusOK {
		t.Errorf("unexpected status code of healthz: %d", code)
	}

	cancel()

	select {
	case code := <-exitCode:
		if code != 0 {
			t.Errorf("unexpected exit code: %d", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop in time")
	}

	logWriter.Close()
	<-copied

	if !strings.Contains(logs.String(), `"message":"stop statusboard server"`) {
		t.Errorf("expected stop log but not found:\n%s", logs)
	}
	if backend.Hits("/api/status") != 1 {
		t.Errorf("expected only the first refresh but backend got %d requests", backend.Hits("/api/status"))
	}
}

func TestStatusboardCommand_RunServer_portInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "0.0.0.0:0")
	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	buf := &lockedBuffer{}
	cmd := &main.StatusboardCommand{
		OutStream:  buf,
		ErrStream:  buf,
		ListenPort: port,
		BackendURL: testutil.StartBackend(t).URL(),
		Schedule:   schedule.DefaultSchedule,
	}
	d := dashboard.New(cmd.NewClient(), console.New(buf))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if code := cmd.RunServer(ctx, d); code != 1 {
		t.Errorf("unexpected exit code: %d", code)
	}

	if !strings.Contains(buf.String(), "error: failed to listen") {
		t.Errorf("expected listen error but got:\n%s", buf)
	}
}
