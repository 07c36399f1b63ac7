package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestFactorsCommand(t *testing.T) {
	out, _, err := execute(t, "factors", "--phi", "30", "--b", "2", "--l", "2", "--df", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "18.4011")
	assert.Contains(t, out, "Kp")

	_, _, err = execute(t, "factors", "--phi", "95")
	assert.Error(t, err)
}

func TestInitThenAnalyze(t *testing.T) {
	for _, name := range []string{"project.yaml", "project.xlsx"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)
			_, _, err := execute(t, "init", path)
			require.NoError(t, err)

			outDir := filepath.Join(dir, "out")
			out, _, err := execute(t, "analyze", path, "--out", outDir, "--workers", "2", "--pdf")
			require.NoError(t, err)
			assert.Contains(t, out, "36 combinations")
			assert.Contains(t, out, "2 footings")

			for _, f := range []string{resultsFile, chartsFile, pdfFile} {
				info, err := os.Stat(filepath.Join(outDir, f))
				require.NoError(t, err, f)
				assert.Greater(t, info.Size(), int64(0), f)
			}
			wb, err := excelize.OpenFile(filepath.Join(outDir, chartsFile))
			require.NoError(t, err)
			defer wb.Close()
			assert.Equal(t, []string{"Df_1.00m", "Df_1.50m", "Df_2.00m"}, wb.GetSheetList())
		})
	}
}

func TestAnalyzeMethodOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.yml")
	_, _, err := execute(t, "init", path)
	require.NoError(t, err)

	_, _, err = execute(t, "analyze", path, "--out", filepath.Join(dir, "o"), "--method", "AASHTO_2020")
	require.NoError(t, err)

	_, _, err = execute(t, "analyze", path, "--out", filepath.Join(dir, "o"), "--method", "EC7")
	assert.ErrorContains(t, err, "EC7")
}

func TestAnalyzeErrors(t *testing.T) {
	_, _, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, "analyze")
	assert.Error(t, err)

	_, _, err = execute(t, "init", filepath.Join(t.TempDir(), "p.txt"))
	assert.Error(t, err)
}
