package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"MINFRAUD_HOST", "MINFRAUD_PATH", "MINFRAUD_LICENSE_KEY"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "", "encode",
		"--ip", "1.2.3.4",
		"--txn-id", "Order-1",
		"--license-key", "key",
		"--state", "QC",
		"--email", "hughjass@example.com",
		"--card-number", "4111 1111 1111 1111",
	)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	q, err := url.ParseQuery(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("output is not a query string: %v", err)
	}
	expected := map[string]string{
		"i":           "1.2.3.4",
		"txnID":       "Order-1",
		"license_key": "key",
		"region":      "QC",
		"domain":      "example.com",
		"emailMD5":    "01ddb59d9bc1d1bfb3eb99a22578ce33",
		"bin":         "411111",
	}
	for name, want := range expected {
		if got := q.Get(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestEncodeCommandDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MINFRAUD_LICENSE_KEY", "from-env")

	out, err := run(t, "", "encode", "--ip", "1.2.3.4")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	q, _ := url.ParseQuery(strings.TrimSpace(out))
	if q.Get("license_key") != "from-env" {
		t.Errorf("expected license key from env, got %q", q.Get("license_key"))
	}
	if len(q.Get("txnID")) != 36 {
		t.Errorf("expected generated UUID txnID, got %q", q.Get("txnID"))
	}
}

func TestEncodeCommandMissingRequired(t *testing.T) {
	isolateEnv(t)

	if _, err := run(t, "", "encode", "--txn-id", "x", "--license-key", "k"); err == nil {
		t.Error("expected error without --ip")
	}
}

func TestDecodeCommand(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "distance=5;countryMatch=Yes;binMatch=NA;ip_city=Montr\xe9al\n", "decode", "-o", "json")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if doc["distance"] != float64(5) {
		t.Errorf("expected distance 5, got %v", doc["distance"])
	}
	if doc["country_match"] != true {
		t.Errorf("expected country_match true, got %v", doc["country_match"])
	}
	if v, ok := doc["bin_match"]; !ok || v != nil {
		t.Errorf("expected bin_match null, got %v", v)
	}
	if doc["ip_city"] != "Montréal" {
		t.Errorf("expected Montréal, got %v", doc["ip_city"])
	}
}

func TestDecodeCommandYAMLFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "body.txt")
	if err := os.WriteFile(path, []byte("maxmindID=ANK4C13A;score=0.5"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "decode", path)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(out, "maxmind_id: ANK4C13A") {
		t.Errorf("expected maxmind_id in YAML output, got:\n%s", out)
	}
	if !strings.Contains(out, "score: 0.5") {
		t.Errorf("expected score in YAML output, got:\n%s", out)
	}
}

func TestDecodeCommandServiceError(t *testing.T) {
	isolateEnv(t)

	if _, err := run(t, "err=PERMISSION_REQUIRED", "decode"); err == nil {
		t.Error("expected service error")
	}
}

func TestScoreCommand(t *testing.T) {
	isolateEnv(t)

	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte("riskScore=0.1;err=CITY_NOT_FOUND"))
	}))
	defer server.Close()

	out, err := run(t, "", "score", "--host", server.URL, "-o", "json",
		"--ip", "1.2.3.4", "--txn-id", "t-1", "--license-key", "k", "--amount", "10.50")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if query.Get("order_amount") != "10.50" {
		t.Errorf("expected order_amount 10.50, got %q", query.Get("order_amount"))
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if doc["risk_score"] != 0.1 {
		t.Errorf("expected risk_score 0.1, got %v", doc["risk_score"])
	}
	if doc["err"] != "CITY_NOT_FOUND" {
		t.Errorf("expected warning in output, got %v", doc["err"])
	}
}

func TestScoreCommandInvalidAmount(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "", "score", "--host", "https://127.0.0.1:1",
		"--ip", "1.2.3.4", "--license-key", "k", "--amount", "ten")
	if err == nil || !strings.Contains(err.Error(), "amount") {
		t.Errorf("expected amount validation error, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "minfraud.yaml")
	content := `host: eu_west
license_key: file-key
pool_size: 4
timeouts:
  read: 2s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(&rootOptions{configPath: path})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.BaseURL() != "https://minfraud-eu-west.maxmind.com" {
		t.Errorf("unexpected base URL %s", cfg.BaseURL())
	}
	if cfg.LicenseKey != "file-key" || cfg.PoolSize != 4 || cfg.ReadTimeout != 2*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Run("HostFlagWins", func(t *testing.T) {
		cfg, err := loadConfig(&rootOptions{configPath: path, host: "us_east"})
		if err != nil {
			t.Fatalf("loadConfig failed: %v", err)
		}
		if cfg.BaseURL() != "https://minfraud-us-east.maxmind.com" {
			t.Errorf("unexpected base URL %s", cfg.BaseURL())
		}
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		if _, err := loadConfig(&rootOptions{configPath: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("InvalidHost", func(t *testing.T) {
		if _, err := loadConfig(&rootOptions{host: "atlantis"}); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "minfraud test" {
		t.Errorf("unexpected version output %q", out)
	}
}
