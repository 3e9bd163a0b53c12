package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/model-exploder/internal/parser"
)

const modelJSON = `{
  "interactionModel": {
    "languageModel": {
      "invocationName": "weather",
      "intents": [
        {"name": "AMAZON.HelpIntent", "samples": ["help me"]},
        {
          "name": "GetWeather",
          "samples": ["weather in {city}", "set volume to {level}", "Is it raining?"],
          "slots": [
            {"name": "city", "type": "city"},
            {"name": "level", "type": "AMAZON.NUMBER"}
          ]
        },
        {
          "name": "Greet",
          "samples": ["hello {who}"],
          "slots": []
        }
      ],
      "types": [
        {
          "name": "city",
          "values": [
            {"name": {"value": "Seattle"}},
            {"name": {"value": "NYC", "synonyms": ["Big Apple"]}}
          ]
        }
      ]
    }
  }
}`

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExpand_WritesDerivedFile(t *testing.T) {
	input := writeModel(t, modelJSON)

	out, err := execute(t, input)
	require.NoError(t, err)

	expected := filepath.Join(filepath.Dir(input), "model_expanded.csv")
	data, err := os.ReadFile(expected)
	require.NoError(t, err)

	assert.Equal(t, "weather in seattle,GetWeather\n"+
		"weather in nyc,GetWeather\n"+
		"weather in big apple,GetWeather\n"+
		"is it raining,GetWeather\n", string(data))

	assert.Contains(t, out, "File to be expanded: "+input)
	assert.Contains(t, out, "Output file: "+expected)
	assert.Contains(t, out, "Expanded 2 intents (1 skipped)")
	assert.Contains(t, out, "1 skipped for built-in slots")
	assert.Contains(t, out, "1 with unresolved placeholders")
	assert.Contains(t, out, "Wrote 4 rows")
}

func TestExpand_Passthrough(t *testing.T) {
	input := writeModel(t, modelJSON)
	target := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, input, "--unresolved", "passthrough", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello who,Greet\n")
}

func TestExpand_QuotedOutput(t *testing.T) {
	input := writeModel(t, `{"interactionModel":{"languageModel":{"intents":[{"name":"Odd,Name","samples":["hi"]}]}}}`)
	target := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, input, "--quote", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi,\"Odd,Name\"\n", string(data))
}

func TestExpand_OverwritesExisting(t *testing.T) {
	input := writeModel(t, modelJSON)
	expected := filepath.Join(filepath.Dir(input), "model_expanded.csv")
	require.NoError(t, os.WriteFile(expected, []byte("old,Row\n"), 0644))

	_, err := execute(t, input)
	require.NoError(t, err)

	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old,Row")
}

func TestExpand_MissingArgument(t *testing.T) {
	out, err := execute(t)
	require.ErrorIs(t, err, errMissingInput)
	assert.Contains(t, out, "no file provided")
}

func TestExpand_TooManyArguments(t *testing.T) {
	_, err := execute(t, "a.json", "b.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single input file")
}

func TestExpand_FormatErrorLeavesNoOutput(t *testing.T) {
	input := writeModel(t, "this is { not json")

	_, err := execute(t, input)
	require.Error(t, err)
	assert.True(t, parser.IsFormatError(err))

	_, statErr := os.Stat(filepath.Join(filepath.Dir(input), "model_expanded.csv"))
	assert.True(t, os.IsNotExist(statErr), "no output file should be created")
}

func TestExpand_FormatErrorKeepsExistingOutput(t *testing.T) {
	input := writeModel(t, "[oops")
	expected := filepath.Join(filepath.Dir(input), "model_expanded.csv")
	require.NoError(t, os.WriteFile(expected, []byte("keep,Me\n"), 0644))

	_, err := execute(t, input)
	require.Error(t, err)

	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.Equal(t, "keep,Me\n", string(data))
}

func TestExpand_SchemaError(t *testing.T) {
	input := writeModel(t, `{"interactionModel": {}}`)

	out, err := execute(t, input)
	require.Error(t, err)
	assert.True(t, parser.IsSchemaError(err))
	assert.Contains(t, out, "languageModel")
}

func TestExpand_UnreadableInput(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open input")
}

func TestExpand_InvalidPolicyFlag(t *testing.T) {
	input := writeModel(t, modelJSON)

	_, err := execute(t, input, "--unresolved", "explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved")
}

func TestExpand_ConfigFile(t *testing.T) {
	input := writeModel(t, `{"interactionModel":{"languageModel":{"intents":[{"name":"A,B","samples":["hi"]}]}}}`)
	cfgPath := filepath.Join(t.TempDir(), "exploder.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  quote: true\n"), 0644))
	target := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, input, "--config", cfgPath, "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi,\"A,B\"\n", string(data))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "model-exploder version dev")
	assert.Contains(t, out, "Git commit: unknown")
}

func TestStats(t *testing.T) {
	input := writeModel(t, modelJSON)
	_, err := execute(t, input)
	require.NoError(t, err)

	csvPath := filepath.Join(filepath.Dir(input), "model_expanded.csv")
	out, err := execute(t, "stats", csvPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Rows: 4 across 1 intents (0 duplicates)")
	assert.Contains(t, out, "GetWeather: 4 rows, 4 distinct, 0 duplicates")
}
