package validate

import (
	"testing"
)

const ohmsWidget = `id: ohms
title: Ohm's law calculator
inputs:
  - id: voltage
    type: number
    units: voltage
  - id: load
    type: number
    units:
      ohm: 1
      kohm: 1000
outputs:
  - id: current
    formula: voltage / load
`

func TestWidgets_Valid(t *testing.T) {
	r, err := newValidator(t, map[string]string{"widgets/ohms.yml": ohmsWidget}).Widgets()
	if err != nil {
		t.Fatalf("Widgets: %v", err)
	}
	if r.Checked != 1 || len(r.Errors) != 0 {
		t.Errorf("checked = %d, errors:\n%s", r.Checked, joined(r.Errors))
	}
}

func TestWidgets_NoDirectory(t *testing.T) {
	r, err := newValidator(t, nil).Widgets()
	if err != nil {
		t.Fatalf("Widgets: %v", err)
	}
	if r.Checked != 0 || r.Err() != nil {
		t.Errorf("result = %+v", r)
	}
}

func TestWidgets_Violations(t *testing.T) {
	r, err := newValidator(t, map[string]string{
		"widgets/ohms.yml":     ohmsWidget,
		"widgets/copy.yaml":    ohmsWidget,
		"widgets/broken.yml":   "id: [unclosed\n",
		"widgets/list.yml":     "- a\n- b\n",
		"widgets/untitled.yml": "id: untitled\ninputs: []\noutputs: []\n",
		"widgets/notes.txt":    "ignored",
		"widgets/bad.yml": `id: bad
title: Bad
inputs:
  - id: x
    type: number
    units: parsecs
  - id: x
    type: number
  - id: "y z"
  - type: text
outputs:
  - id: x
    formula: x * 2
  - id: r
`,
		"widgets/scalar-io.yml": "id: scalar-io\ntitle: S\ninputs: nope\noutputs: []\n",
	}).Widgets()
	if err != nil {
		t.Fatalf("Widgets: %v", err)
	}
	if r.Checked != 7 {
		t.Errorf("checked = %d, want 7", r.Checked)
	}
	expectIssues(t, r.Errors,
		`widgets/copy.yaml: id "ohms" does not match filename "copy"`,
		`widgets/ohms.yml: duplicate widget id "ohms"`,
		"widgets/broken.yml: YAML parse error",
		"widgets/list.yml: expected a YAML object",
		`widgets/untitled.yml: missing "title" field`,
		`widgets/bad.yml: input "x" references unknown unit group "parsecs"`,
		`widgets/bad.yml: duplicate input id "x"`,
		`widgets/bad.yml: input "x" units must be a group name or an inline map`,
		`widgets/bad.yml: input id "y z" has invalid characters`,
		`widgets/bad.yml: input missing "id"`,
		`widgets/bad.yml: duplicate output id "x"`,
		`widgets/bad.yml: output "r" missing "formula"`,
		`widgets/scalar-io.yml: "inputs" must be an array`,
	)
}
