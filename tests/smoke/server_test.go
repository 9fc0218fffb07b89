//go:build smoke

package smoke

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/testutil"
)

type serverProcess struct {
	port     int
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	waitDone chan struct{}
	waitErr  *error
}

func (s *serverProcess) url(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, path)
}

func (s *serverProcess) assertRunning(t *testing.T) {
	t.Helper()
	select {
	case <-s.waitDone:
		t.Fatalf("server exited unexpectedly: %v\nstdout:\n%s\nstderr:\n%s", *s.waitErr, s.stdout.String(), s.stderr.String())
	default:
	}
}

func TestServerStartup(t *testing.T) {
	fake := testutil.NewFakeHabitAPI(t, calendar.DayOf(time.Now().UTC()))
	server := startServer(t, fake.URL())
	server.assertRunning(t)
}

// startServer builds cmd/server and runs it against apiURL with the
// summary cache and metrics enabled.
func startServer(t *testing.T, apiURL string) *serverProcess {
	t.Helper()

	repoRoot := findRepoRoot(t)
	tempDir := t.TempDir()

	binPath := filepath.Join(tempDir, "habitgrid-server")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/server")
	buildCmd.Dir = repoRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build server: %v\n%s", err, buildOutput)
	}

	port := reservePort(t)
	configPath := filepath.Join(tempDir, "config.yaml")
	configBody := fmt.Sprintf(`app:
  name: "habitgrid"
  environment: "development"
  port: %d
  base_url: "http://localhost:%d"
  timezone: "UTC"

habit_api:
  base_url: "%s"
  timeout_seconds: 2

database:
  driver: "sqlite"
  filename: "%s"

cache:
  refresh_cron: "*/5 * * * *"

toggle_limit:
  per_minute: 60
  burst: 2

features:
  enable_metrics: true
  enable_cache: true
  enable_debug: true
`, port, port, apiURL, filepath.ToSlash(filepath.Join(tempDir, "db", "smoke.db")))

	if err := os.WriteFile(configPath, []byte(configBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := exec.Command(binPath, "-config", configPath)
	cmd.Dir = tempDir
	server := &serverProcess{
		port:     port,
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		waitDone: make(chan struct{}),
		waitErr:  new(error),
	}
	cmd.Stdout = server.stdout
	cmd.Stderr = server.stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	go func() {
		*server.waitErr = cmd.Wait()
		close(server.waitDone)
	}()

	t.Cleanup(func() {
		if cmd.Process == nil {
			return
		}
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-server.waitDone:
			return
		case <-time.After(5 * time.Second):
		}
		_ = cmd.Process.Kill()
		select {
		case <-server.waitDone:
		case <-time.After(5 * time.Second):
			t.Logf("server process did not exit after kill")
		}
	})

	waitForHealth(t, server)
	return server
}

func waitForHealth(t *testing.T, server *serverProcess) {
	t.Helper()

	client := &http.Client{Timeout: 500 * time.Millisecond}
	deadline := time.Now().Add(10 * time.Second)

	for {
		select {
		case <-server.waitDone:
			t.Fatalf("server exited before health check: %v\nstdout:\n%s\nstderr:\n%s", *server.waitErr, server.stdout.String(), server.stderr.String())
		default:
		}

		resp, err := client.Get(server.url("/health"))
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for health check\nstdout:\n%s\nstderr:\n%s", server.stdout.String(), server.stderr.String())
		}

		time.Sleep(100 * time.Millisecond)
	}
}

func reservePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}

func findRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	t.Fatal("failed to locate repo root with go.mod")
	return ""
}

func TestMigrationsApplied(t *testing.T) {
	db := testutil.NewTestDB(t)

	expectedTables := []string{
		"summary_entries",
		"summary_cache_state",
	}

	for _, table := range expectedTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?",
			table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			t.Fatalf("missing expected table %q after migrations", table)
		}
		if err != nil {
			t.Fatalf("query table %q existence: %v", table, err)
		}
	}
}

func TestSingletonCacheStateRow(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := db.Exec(`INSERT INTO summary_cache_state (id, fetched_at, entry_count) VALUES (2, CURRENT_TIMESTAMP, 0)`)
	if err == nil {
		t.Fatal("expected check constraint failure for a second cache state row")
	}
}
