package task

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaSource string

var fileSchema = jsonschema.MustCompileString("tasks.schema.json", schemaSource)

// decode parses and validates the raw contents of a tasks file.
func decode(path string, data []byte) ([]Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{File: path, Err: errors.New("unexpected data after top-level value")}
	}

	if err := fileSchema.Validate(doc); err != nil {
		return nil, &ParseError{File: path, Violations: schemaViolations(err), Err: err}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	return tasks, nil
}

func schemaViolations(err error) []Violation {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Violation{{Message: err.Error()}}
	}
	var out []Violation
	collectViolations(&out, ve)
	return out
}

func collectViolations(out *[]Violation, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(out, cause)
	}
}

// jsonPointerToPath turns "/2/priority" into "[2].priority".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}
