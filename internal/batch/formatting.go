package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/inkbar/formscan/internal/decode"
)

// formatBatchResults formats batch results in the given format.
func formatBatchResults(results []FileResult, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(results)
	case "csv":
		return formatCSV(results)
	default: // text
		return formatText(results)
	}
}

type jsonFieldResult struct {
	Kind    string `json:"kind"`
	Boolean bool   `json:"boolean,omitempty"`
	Number  uint64 `json:"number,omitempty"`
}

type jsonFileResult struct {
	File   string            `json:"file"`
	Error  string            `json:"error,omitempty"`
	Fields []jsonFieldResult `json:"fields,omitempty"`
}

func toJSONFields(fields decode.LayoutResult) []jsonFieldResult {
	out := make([]jsonFieldResult, len(fields))
	for i, f := range fields {
		switch f.Kind {
		case decode.BooleanResult:
			out[i] = jsonFieldResult{Kind: "boolean", Boolean: f.Boolean}
		case decode.NumberResult:
			out[i] = jsonFieldResult{Kind: "number", Number: f.Number}
		}
	}
	return out
}

func formatJSON(results []FileResult) (string, error) {
	batch := struct {
		Files []jsonFileResult `json:"files"`
	}{Files: make([]jsonFileResult, len(results))}

	for i, res := range results {
		batch.Files[i] = jsonFileResult{
			File:   res.Path,
			Error:  res.Err,
			Fields: toJSONFields(res.Fields),
		}
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	return string(data), err
}

func formatCSV(results []FileResult) (string, error) {
	rows := [][]string{{"file", "field_index", "kind", "value", "error"}}

	for _, res := range results {
		if res.Err != "" {
			rows = append(rows, []string{res.Path, "", "", "", res.Err})
			continue
		}
		if len(res.Fields) == 0 {
			rows = append(rows, []string{res.Path, "0", "", "", ""})
			continue
		}
		for i, f := range res.Fields {
			rows = append(rows, []string{res.Path, strconv.Itoa(i), fieldKindName(f), fieldValue(f), ""})
		}
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return out.String(), writer.Error()
}

func formatText(results []FileResult) (string, error) {
	var out strings.Builder
	for i, res := range results {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(fmt.Sprintf("# %s\n", res.Path))
		if res.Err != "" {
			out.WriteString(fmt.Sprintf("  error: %s\n", res.Err))
			continue
		}
		for j, f := range res.Fields {
			out.WriteString(fmt.Sprintf("  [%d] %s = %s\n", j, fieldKindName(f), fieldValue(f)))
		}
	}
	return out.String(), nil
}

func fieldKindName(f decode.FieldResult) string {
	switch f.Kind {
	case decode.BooleanResult:
		return "boolean"
	case decode.NumberResult:
		return "number"
	default:
		return "unknown"
	}
}

func fieldValue(f decode.FieldResult) string {
	switch f.Kind {
	case decode.BooleanResult:
		return strconv.FormatBool(f.Boolean)
	case decode.NumberResult:
		return strconv.FormatUint(f.Number, 10)
	default:
		return ""
	}
}
