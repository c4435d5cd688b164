package validate

import (
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/catalog"
)

// UnitGroups are the unit group names a number input may reference.
var UnitGroups = []string{
	"voltage", "current", "resistance", "capacitance", "inductance",
	"frequency", "length", "time", "power", "temperature", "dimensionless",
}

var urlSafe = validation.Match(catalog.SlugPattern)

// Widgets checks every widgets/*.yml|*.yaml definition. A missing widgets
// directory is not an error.
func (v *Validator) Widgets() (*Result, error) {
	r := newResult(string(SuiteWidgets))
	dir := v.layout.WidgetsDir

	ok, err := v.store.IsDir(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		v.logger.Info("validate: no widgets directory, nothing to validate")
		return r, nil
	}
	files, err := doublestar.Glob(v.store.FS(), path.Join(dir, "*.{yml,yaml}"), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	r.Checked = len(files)

	seen := make(map[string]bool)
	for _, file := range files {
		data, err := v.store.Read(file)
		if err != nil {
			return nil, err
		}
		checkWidget(r, file, data, seen)
	}
	return r, nil
}

func checkWidget(r *Result, file string, data []byte, seen map[string]bool) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		r.errorf(file, "YAML parse error: %v", err)
		return
	}
	w, ok := raw.(map[string]any)
	if !ok {
		r.errorf(file, "expected a YAML object")
		return
	}

	for _, field := range []string{"id", "title", "inputs", "outputs"} {
		if !truthy(w[field]) {
			r.errorf(file, "missing %q field", field)
			return
		}
	}

	id := scalar(w["id"])
	base := path.Base(file)
	expected := strings.TrimSuffix(base, path.Ext(base))
	if id != expected {
		r.errorf(file, "id %q does not match filename %q", id, expected)
	}
	if urlSafe.Validate(id) != nil {
		r.errorf(file, "id %q contains invalid characters (allowed: a-zA-Z0-9_-)", id)
	}
	if seen[id] {
		r.errorf(file, "duplicate widget id %q", id)
	}
	seen[id] = true

	inputs, ok := w["inputs"].([]any)
	if !ok {
		r.errorf(file, `"inputs" must be an array`)
		return
	}
	local := make(map[string]bool)
	for _, item := range inputs {
		in, _ := item.(map[string]any)
		if !truthy(in["id"]) {
			r.errorf(file, `input missing "id"`)
			continue
		}
		inID := scalar(in["id"])
		if urlSafe.Validate(inID) != nil {
			r.errorf(file, "input id %q has invalid characters", inID)
		}
		if local[inID] {
			r.errorf(file, "duplicate input id %q", inID)
		}
		local[inID] = true

		if scalar(in["type"]) == "number" {
			checkUnits(r, file, inID, in)
		}
	}

	outputs, ok := w["outputs"].([]any)
	if !ok {
		r.errorf(file, `"outputs" must be an array`)
		return
	}
	for _, item := range outputs {
		out, _ := item.(map[string]any)
		if !truthy(out["id"]) {
			r.errorf(file, `output missing "id"`)
			continue
		}
		outID := scalar(out["id"])
		if urlSafe.Validate(outID) != nil {
			r.errorf(file, "output id %q has invalid characters", outID)
		}
		if local[outID] {
			r.errorf(file, "duplicate output id %q", outID)
		}
		local[outID] = true
		if !truthy(out["formula"]) {
			r.errorf(file, "output %q missing \"formula\"", outID)
		}
	}
}

// checkUnits accepts a known unit group name or an inline map.
func checkUnits(r *Result, file, inputID string, in map[string]any) {
	units, present := in["units"]
	switch u := units.(type) {
	case string:
		if !slices.Contains(UnitGroups, u) {
			r.errorf(file, "input %q references unknown unit group %q", inputID, u)
		}
	case map[string]any, []any:
	case nil:
		if !present {
			r.errorf(file, "input %q units must be a group name or an inline map", inputID)
		}
	default:
		r.errorf(file, "input %q units must be a group name or an inline map", inputID)
	}
}

// truthy follows the loose presence rules of the widget format: null, empty
// strings, zero and false count as missing.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case int:
		return x != 0
	case float64:
		return x != 0
	}
	return true
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
