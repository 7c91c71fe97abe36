package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
prompts:
  image_descriptive_review:
    role: "You are an observer."
    instructions: "Describe only what is visible."
    focus_areas: ["lighting"]
    output_format:
      sections: ["Observations", "Limitations"]
  metadata_review:
    role: "You are a metadata analyst."
    instructions: "Summarize."
    output_format:
      sections: ["Summary"]
`

func setupWorkspace(t *testing.T) (catalog, outDir string) {
	t.Helper()
	root := t.TempDir()
	catalog = filepath.Join(root, "PROMPTS.yml")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalog), 0o644))
	return catalog, filepath.Join(root, "out")
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	_, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--out", outDir}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), usageLine)
	assert.Empty(t, stdout.String())
	assert.NoDirExists(t, outDir)
}

func TestRun_MockProviderEndToEnd(t *testing.T) {
	catalog, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"image_descriptive_review",
		"--prompts", catalog,
		"--out", outDir,
		"--provider", "mock",
		"--html",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var mdName string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".md") {
			mdName = e.Name()
		}
	}
	stampRe := regexp.MustCompile(`^image_descriptive_review_observations_(\d{8}T\d{6}Z)\.md$`)
	m := stampRe.FindStringSubmatch(mdName)
	require.Len(t, m, 2, mdName)

	mdPath := filepath.Join(outDir, mdName)
	assert.Contains(t, stdout.String(), "Saved observations to: "+mdPath)
	assert.Contains(t, stdout.String(), "Saved HTML rendering to: ")

	data, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# AI-Assisted Observations (image_descriptive_review)\n\nGenerated: "+m[1]+" UTC\n\n"))
	// The mock echoes the prompt, so the placeholder inputs must be in it.
	assert.Contains(t, content, "Still image depicting a human subject in indoor lighting conditions.")
	assert.Contains(t, content, "PNG format. No EXIF metadata present. Source device unknown.")
}

func TestRun_CustomInputs(t *testing.T) {
	catalog, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"metadata_review", "--prompts", catalog, "--out", outDir, "--provider", "mock",
		"--media", "", "--metadata", "JPEG, EXIF stripped.",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Media Description:\nNot provided.\n")
	assert.Contains(t, string(data), "Metadata Summary:\nJPEG, EXIF stripped.\n")
}

func TestRun_UnknownPrompt(t *testing.T) {
	catalog, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"nope", "--prompts", catalog, "--out", outDir, "--provider", "mock"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "prompt not found")
	assert.NoDirExists(t, outDir)
}

func TestRun_MissingCatalog(t *testing.T) {
	_, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	missing := filepath.Join(t.TempDir(), "PROMPTS.yml")
	code := run(context.Background(), []string{"image_descriptive_review", "--prompts", missing, "--out", outDir, "--provider", "mock"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "missing prompt configuration")
}

func TestRun_MissingGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	catalog, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"image_descriptive_review", "--prompts", catalog, "--out", outDir}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
	assert.NoDirExists(t, outDir)
}

func TestRun_List(t *testing.T) {
	catalog, _ := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--list", "--prompts", catalog}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "image_descriptive_review\nmetadata_review\n", stdout.String())
}

func TestRun_OpenAIMissingKeyReportsCatalogErrorFirst(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	catalog, outDir := setupWorkspace(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"nope", "--prompts", catalog, "--out", outDir, "--provider", "openai"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "prompt not found")
	assert.NotContains(t, stderr.String(), "OPENAI_API_KEY")

	stderr.Reset()
	code = run(context.Background(), []string{"metadata_review", "--prompts", catalog, "--out", outDir, "--provider", "openai"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "OPENAI_API_KEY")
	assert.NoDirExists(t, outDir)
}
