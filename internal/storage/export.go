package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/barry-go/internal/task"
)

// ExportSchemaVersion is the schema_version written by Export.
const ExportSchemaVersion = 1

const exportSchemaURL = "https://github.com/nibzard/barry-go/export.schema.json"

// exportSchema is the JSON Schema for the export document.
const exportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/nibzard/barry-go/export.schema.json",
  "title": "Barry task export",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "tasks"],
  "properties": {
    "schema_version": { "const": 1 },
    "tasks": {
      "type": "array",
      "items": { "$ref": "#/$defs/task" }
    }
  },
  "$defs": {
    "timestamp": {
      "type": "string",
      "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}(:[0-9]{2})?$"
    },
    "task": {
      "type": "object",
      "additionalProperties": false,
      "required": ["type", "description", "completed"],
      "properties": {
        "type": { "enum": ["todo", "deadline", "event"] },
        "description": { "type": "string" },
        "completed": { "type": "boolean" },
        "by": { "$ref": "#/$defs/timestamp" },
        "from": { "$ref": "#/$defs/timestamp" },
        "to": { "$ref": "#/$defs/timestamp" }
      },
      "allOf": [
        {
          "if": { "properties": { "type": { "const": "deadline" } } },
          "then": { "required": ["by"] }
        },
        {
          "if": { "properties": { "type": { "const": "event" } } },
          "then": { "required": ["from", "to"] }
        }
      ]
    }
  }
}`

// ExportSchema returns the embedded export schema.
func ExportSchema() []byte {
	return []byte(exportSchema)
}

// ValidationError is a schema violation found while exporting.
type ValidationError struct {
	Path string // Dotted path to the offending value
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

type exportDocument struct {
	SchemaVersion int          `json:"schema_version"`
	Tasks         []exportTask `json:"tasks"`
}

type exportTask struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	By          string `json:"by,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

// Export writes tasks as an indented JSON document to w. Nothing is written
// if the document fails schema validation.
func Export(w io.Writer, tasks []task.Task) error {
	doc := exportDocument{
		SchemaVersion: ExportSchemaVersion,
		Tasks:         make([]exportTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		et := exportTask{
			Type:        t.Kind.String(),
			Description: t.Description,
			Completed:   t.Completed,
		}
		switch t.Kind {
		case task.KindDeadline:
			et.By = task.FormatStorage(t.By)
		case task.KindEvent:
			et.From = task.FormatStorage(t.From)
			et.To = task.FormatStorage(t.To)
		}
		doc.Tasks = append(doc.Tasks, et)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := validateExport(data); err != nil {
		return err
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Export writes the tasks currently stored in the data file. It never
// modifies the file: a missing file exports as an empty list and a corrupt
// one returns its *LineError.
func (s *Storage) Export(w io.Writer) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Export(w, nil)
		}
		return fmt.Errorf("read data file: %w", err)
	}
	tasks, err := Decode(data)
	if err != nil {
		return fmt.Errorf("decode data file %s: %w", s.path, err)
	}
	return Export(w, tasks)
}

func validateExport(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(exportSchemaURL, strings.NewReader(exportSchema)); err != nil {
		return fmt.Errorf("load export schema: %w", err)
	}
	schema, err := compiler.Compile(exportSchemaURL)
	if err != nil {
		return fmt.Errorf("compile export schema: %w", err)
	}

	var doc interface{}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return fmt.Errorf("decode export for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return errors.Join(schemaErrors(err)...)
	}
	return nil
}

func schemaErrors(err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/by" into "tasks[0].by".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
