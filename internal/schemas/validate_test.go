package schemas

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

const testJob = `Data Engineer. Python and SQL are required. Experience with Docker and AWS is a plus.`

const testResume = `Grace Hopper. Data engineer with Python and SQL pipelines running on AWS.
Built reporting services and mentored junior developers across three teams.`

func analyze(t *testing.T, role string) *types.Analysis {
	t.Helper()
	p, err := pipeline.New(embedding.NewHashingOracle(embedding.DefaultHashingDimension), nil, pipeline.DefaultOptions())
	require.NoError(t, err)

	a, err := p.Analyze(context.Background(), types.AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
		TargetRole:     role,
		Profile: types.CandidateProfile{
			Name:   "Grace Hopper",
			Email:  "grace@example.com",
			Skills: []string{"Python", "SQL"},
		},
	})
	require.NoError(t, err)
	return a
}

func TestSchemasCompile(t *testing.T) {
	for _, name := range []string{Analysis, Rank} {
		t.Run(name, func(t *testing.T) {
			data, err := Source(name)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal(data, &v), "schema should be valid JSON")

			s, err := Load(name)
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestLoad_UnknownSchema(t *testing.T) {
	_, err := Load("nope")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope", loadErr.Path)
}

func TestLoad_Cached(t *testing.T) {
	first, err := Load(Analysis)
	require.NoError(t, err)
	second, err := Load(Analysis)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestValidateValue_PipelineAnalysis(t *testing.T) {
	assert.NoError(t, ValidateValue(Analysis, analyze(t, "")))
	assert.NoError(t, ValidateValue(Analysis, analyze(t, "Data Scientist")))
	assert.NoError(t, ValidateValue(Analysis, analyze(t, "Astronaut")))
}

func TestValidateValue_PipelineRanking(t *testing.T) {
	p, err := pipeline.New(embedding.NewHashingOracle(64), nil, pipeline.DefaultOptions())
	require.NoError(t, err)

	resp, err := p.AnalyzeBatch(context.Background(), []types.AnalyzeRequest{
		{ResumeText: testResume, JobDescription: testJob, Label: "grace"},
		{ResumeText: "Baker of bread.", JobDescription: testJob, Label: "baker"},
	})
	require.NoError(t, err)
	assert.NoError(t, ValidateValue(Rank, resp))
}

func TestValidateBytes_Invalid(t *testing.T) {
	doc := map[string]any{}
	data, err := json.Marshal(analyze(t, ""))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))

	doc["final_score"] = 140.0
	delete(doc, "explanation")
	bad, err := json.Marshal(doc)
	require.NoError(t, err)

	err = ValidateBytes(Analysis, bad)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestValidateBytes_Malformed(t *testing.T) {
	err := ValidateBytes(Analysis, []byte("{ invalid json }"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidateFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "analysis.json")
	data, err := json.Marshal(analyze(t, ""))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	assert.NoError(t, ValidateFile(Analysis, path))

	err = ValidateFile(Analysis, filepath.Join(tmpDir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
