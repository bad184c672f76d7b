package commands

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var idPattern = regexp.MustCompile(`\[([^\]]+)\]`)

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("OIDC_ISSUER", "")
	t.Setenv("OWNER_EMAIL", "")
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "healthlog.db")}
}

func (c *cli) runWithInput(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--store", "sqlite", "--sqlite-path", c.dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) run(args ...string) string {
	c.t.Helper()
	out, err := c.runWithInput("", args...)
	require.NoError(c.t, err, out)
	return out
}

func idFrom(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in %q", out)
	return m[1]
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	want := []string{"serve", "profile", "summary", "glucose", "weight", "report", "hash-password"}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"store", "sqlite-path", "database-url", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "--%s", flag)
	}
}

func TestUnknownStoreDriver(t *testing.T) {
	newCLI(t)
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--store", "redis", "summary"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestStoreFlagsOverrideEnvironment(t *testing.T) {
	c := newCLI(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	c.run("summary")
}

func TestOwnerEmailRequiresSSO(t *testing.T) {
	c := newCLI(t)
	t.Setenv("OWNER_EMAIL", "me@example.com")

	_, err := c.runWithInput("", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OIDC_ISSUER")
}

func TestGlucoseAddListEdit(t *testing.T) {
	c := newCLI(t)

	out := c.run("glucose", "add", "5,8", "--time", "07:30")
	assert.Contains(t, out, "Added 5.8 mmol/L (Fasting)")
	id := idFrom(t, out)

	c.run("glucose", "add", "7.1", "--time", "13:00", "--type", "after-meal", "--notes", "pasta")

	out = c.run("glucose", "ls")
	assert.Contains(t, out, "After meal")
	assert.Contains(t, out, "pasta")
	assert.Less(t, strings.Index(out, "7.1"), strings.Index(out, "5.8"), "newest first")

	out = c.run("glucose", "edit", id, "--notes", "after run")
	assert.Contains(t, out, "Updated "+id+": 5.8 mmol/L (Fasting)")

	out = c.run("glucose", "ls", "--limit", "0")
	assert.Contains(t, out, "after run")
}

func TestGlucoseAdd_Invalid(t *testing.T) {
	c := newCLI(t)
	_, err := c.runWithInput("", "glucose", "add", "high")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value")

	_, err = c.runWithInput("", "glucose", "add", "5", "--type", "snack")
	require.Error(t, err)
}

func TestGlucoseRm_Prompt(t *testing.T) {
	c := newCLI(t)
	id := idFrom(t, c.run("glucose", "add", "6.0", "--time", "08:00"))

	out, err := c.runWithInput("n\n", "glucose", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Delete this record? [y/N]")
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, c.run("glucose", "ls"), id)

	out, err = c.runWithInput("y\n", "glucose", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)
	assert.Contains(t, c.run("glucose", "ls"), "No glucose readings yet.")

	_, err = c.runWithInput("", "glucose", "rm", id, "--yes")
	require.Error(t, err)
}

func TestWeightMergeEditAndList(t *testing.T) {
	c := newCLI(t)

	c.run("weight", "add", "--date", "2026-01-14", "--morning", "80", "--evening", "81")
	out := c.run("weight", "add", "--date", "2026-01-15", "--morning", "79")
	id := idFrom(t, out)
	assert.Contains(t, out, "Added weigh-in for 2026-01-15")

	out = c.run("weight", "add", "--date", "2026-01-15", "--evening", "80")
	assert.Contains(t, out, "Updated existing weigh-in for 2026-01-15: morning 79.0, evening 80.0")
	assert.Equal(t, id, idFrom(t, out))

	out = c.run("weight", "ls")
	assert.Contains(t, out, "-1.0")
	assert.Contains(t, out, "+1.0")
	assert.Contains(t, out, "-2.0")

	out = c.run("weight", "edit", id, "--evening", "")
	assert.Contains(t, out, "morning 79.0, evening -")

	_, err := c.runWithInput("", "weight", "edit", id, "--morning", "")
	require.Error(t, err, "clearing both weights must fail validation")
}

func TestWeightRm_Yes(t *testing.T) {
	c := newCLI(t)
	id := idFrom(t, c.run("weight", "add", "--morning", "80"))

	out := c.run("weight", "rm", id, "--yes")
	assert.Contains(t, out, "Deleted "+id)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, c.run("weight", "ls"), "No weigh-ins yet.")
}

func TestProfileAndSummary(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.run("profile", "show"), "Setup not completed")
	out := c.run("summary")
	assert.Contains(t, out, "BMI:            no data")

	_, err := c.runWithInput("", "profile", "set", "--weight", "80")
	require.Error(t, err, "height is required on first setup")

	c.run("profile", "set", "--height", "175", "--weight", "80")
	out = c.run("profile", "set", "--unit", "mgdl")
	assert.Contains(t, out, "175 cm, 80 kg, mg/dL")

	out = c.run("summary")
	assert.Contains(t, out, "Current weight: 80.0 kg")
	assert.Contains(t, out, "BMI:            26.1")
	assert.Contains(t, out, "Water intake:   3.2 L/day")
}

func TestReport(t *testing.T) {
	c := newCLI(t)
	c.run("profile", "set", "--height", "180", "--weight", "75")
	c.run("glucose", "add", "5.2", "--time", "07:00")
	c.run("weight", "add", "--date", "2026-01-15", "--morning", "75", "--evening", "75.6")

	out := c.run("report")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Blood glucose")
	assert.Contains(t, out, "Weight (kg)")
	assert.Contains(t, out, "+0.6")
	assert.Contains(t, out, "BMI 23.1")
}

func TestHashPassword(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("hunter22\n"))
	cmd.SetArgs([]string{"hash-password"})
	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")))
}

func TestFormatDiff(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	assert.Equal(t, "-", formatDiff(nil))
	assert.Equal(t, "+0.4", formatDiff(f(0.4)))
	assert.Equal(t, "-1.0", formatDiff(f(-1)))
	assert.Equal(t, "0.0", formatDiff(f(0)))
}
