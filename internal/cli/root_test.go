package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	for _, name := range []string{"db", "config"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != Version {
		t.Errorf("version = %q, want %q", out, Version)
	}
}

const (
	trainCSV = `parcelid,logerror,transactiondate
11016594,0.0276,2016-01-01
14366692,-0.1684,2016-03-15
12098116,-0.004,2016-05-20
11016594,0.05,2016-06-15
`
	testCSV = `parcelid,logerror,transactiondate
11016594,0.01,2017-02-01
12098116,0.02,2017-04-11
`
	propsCSV = `parcelid,bathroomcnt,propertyzoningdesc
11016594,2.0,LARS
14366692,3.5,
12098116,3.0,LCA11*
`
)

// testEnv writes datasets and a config file into a temporary directory and
// returns the flags that point the CLI at them.
func testEnv(t *testing.T) (dir string, flags []string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)

	data := filepath.Join(dir, "raw_data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"train_2016":      trainCSV,
		"properties_2016": propsCSV,
		"train_2017":      testCSV,
		"properties_2017": propsCSV,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(data, name+".csv"), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "data_dir: " + data + "\ndrop_columns: [parcelid]\ndate_columns: [transactiondate]\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return dir, []string{"--config", cfgPath, "--db", filepath.Join(dir, "pp.db")}
}

func TestDatasetsCommand(t *testing.T) {
	_, flags := testEnv(t)

	out, err := executeCommand(append(flags, "datasets")...)
	if err != nil {
		t.Fatalf("datasets: %v", err)
	}
	for _, want := range []string{"properties_2016", "train_2017"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got %q", want, out)
		}
	}
}

func TestAssembleCommand(t *testing.T) {
	dir, flags := testEnv(t)
	xPath := filepath.Join(dir, "x.csv")
	yPath := filepath.Join(dir, "y.csv")

	out, err := executeCommand(append(flags, "assemble", "train", "-o", xPath, "--target", yPath)...)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !strings.Contains(out, "Assembled train: 3 rows") {
		t.Errorf("unexpected output %q", out)
	}

	y, err := os.ReadFile(yPath)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if !strings.HasPrefix(string(y), "logerror\n") {
		t.Errorf("target file = %q", y)
	}
	if got := strings.Count(string(y), "\n"); got != 4 {
		t.Errorf("target file has %d lines, want 4", got)
	}
}

func TestAssembleUnknownDataset(t *testing.T) {
	_, flags := testEnv(t)

	if _, err := executeCommand(append(flags, "assemble", "validation")...); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestFitTransformFlow(t *testing.T) {
	dir, flags := testEnv(t)

	if _, err := executeCommand(append(flags, "fit", "train", "--name", "zillow")...); err != nil {
		t.Fatalf("fit: %v", err)
	}

	out, err := executeCommand(append(flags, "--format", "json", "schemas", "show", "zillow")...)
	if err != nil {
		t.Fatalf("schemas show: %v", err)
	}
	var rec struct {
		Name   string `json:"name"`
		Schema struct {
			Columns []string `json:"columns"`
		} `json:"schema"`
	}
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rec.Name != "zillow" {
		t.Errorf("name = %q, want zillow", rec.Name)
	}

	outPath := filepath.Join(dir, "features.csv")
	if _, err := executeCommand(append(flags, "transform", "test", "--name", "zillow", "-o", outPath)...); err != nil {
		t.Fatalf("transform: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	wantHeader := "bathroomcnt,propertyzoningdesc_LARS,propertyzoningdesc_LCA11*,propertyzoningdesc_nan,transactiondate_month,transactiondate_year"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1] != "2,1,0,0,2,2017" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestTransformUnknownSchema(t *testing.T) {
	_, flags := testEnv(t)

	if _, err := executeCommand(append(flags, "transform", "test", "--name", "missing")...); err == nil {
		t.Fatal("expected error for unknown schema")
	}
}

func TestSchemasListAndRemove(t *testing.T) {
	_, flags := testEnv(t)

	out, err := executeCommand(append(flags, "schemas")...)
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if !strings.Contains(out, "No schemas found.") {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := executeCommand(append(flags, "fit", "train")...); err != nil {
		t.Fatalf("fit: %v", err)
	}

	out, err = executeCommand(append(flags, "schemas")...)
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if !strings.Contains(out, "Total: 1 schemas") {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := executeCommand(append(flags, "schemas", "remove", "train")...); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := executeCommand(append(flags, "schemas", "remove", "train")...); err == nil {
		t.Error("expected error removing a missing schema")
	}
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	yPath := filepath.Join(dir, "y.csv")
	pPath := filepath.Join(dir, "p.csv")
	if err := os.WriteFile(yPath, []byte("logerror\n0.5\n-0.5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(pPath, []byte("prediction\n0\n0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := executeCommand("score", yPath, pPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(out, "MAE: 0.500000") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	dir, flags := testEnv(t)

	if _, err := executeCommand(append(flags, "config", "set", "seed", "7")...); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := executeCommand(append(flags, "config", "set", "date_columns", "")...); err != nil {
		t.Fatalf("config set: %v", err)
	}

	t.Setenv("PP_DB_PATH", filepath.Join(dir, "env.db"))

	out, err := executeCommand(append(flags, "--format", "json", "config")...)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var cfg struct {
		DataDir     string   `json:"data_dir"`
		DBPath      string   `json:"db_path"`
		Seed        uint64   `json:"seed"`
		DropColumns []string `json:"drop_columns"`
		DateColumns []string `json:"date_columns"`
	}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Seed)
	}
	if len(cfg.DateColumns) != 0 {
		t.Errorf("date_columns = %v, want empty", cfg.DateColumns)
	}
	if len(cfg.DropColumns) != 1 || cfg.DropColumns[0] != "parcelid" {
		t.Errorf("drop_columns = %v, want [parcelid]", cfg.DropColumns)
	}
	if cfg.DBPath != filepath.Join(dir, "env.db") {
		t.Errorf("db_path = %q, want env override", cfg.DBPath)
	}

	// Setting another key must not persist the environment override.
	if _, err := executeCommand(append(flags, "config", "set", "dev", "false")...); err != nil {
		t.Fatalf("config set: %v", err)
	}
	data, err := os.ReadFile(flags[1])
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), "env.db") {
		t.Errorf("config file picked up environment override:\n%s", data)
	}

	out, err = executeCommand(append(flags, "config")...)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "seed:") || !strings.Contains(out, "7") {
		t.Errorf("unexpected text output %q", out)
	}
}

func TestConfigSetRejectsInvalid(t *testing.T) {
	_, flags := testEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "server_url", "http://localhost"}},
		{"bad seed", []string{"config", "set", "seed", "minus"}},
		{"empty data dir", []string{"config", "set", "data_dir", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(append(flags, tt.args...)...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
