package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/target/t1250-loader/internal/domain/model"
)

const sampleBusinessUnits = `
business_units:
  - id: 1
    name: Toll Priority
    token: tolp
    conditions: [send_email, send_sms, send_sc_2, delay_template_sc_2]
  - id: 2
    name: Toll Transport
    token: TOLT
    condition_string: "1000000010000000"
`

func TestParseBusinessUnits(t *testing.T) {
	bus, err := ParseBusinessUnits(strings.NewReader(sampleBusinessUnits))
	if err != nil {
		t.Fatalf("ParseBusinessUnits: %v", err)
	}

	if got := len(bus.All()); got != 2 {
		t.Fatalf("expected 2 business units, got %d", got)
	}

	tolp, ok := bus.ByToken("TolP")
	if !ok {
		t.Fatal("TOLP not found")
	}
	want := model.ConditionMap{SendEmail: true, SendSMS: true, SendSC2: true, DelayTemplateSC2: true}
	if tolp.ID != 1 || tolp.Name != "Toll Priority" || tolp.Token != "TOLP" || tolp.Conditions != want {
		t.Fatalf("unexpected TOLP: %+v", tolp)
	}

	tolt, ok := bus.ByToken("tolt")
	if !ok {
		t.Fatal("TOLT not found")
	}
	want = model.ConditionMap{ItemNumberExcp: true, SendSC1: true}
	if tolt.Conditions != want {
		t.Fatalf("unexpected TOLT conditions: %+v", tolt.Conditions)
	}

	if _, ok := bus.ByToken("NOPE"); ok {
		t.Fatal("unexpected business unit for unknown token")
	}
}

func TestParseBusinessUnits_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "empty", yaml: ``, want: "no business units"},
		{name: "unknown key", yaml: "business_units:\n  - id: 1\n    token: a\n    colour: red\n", want: "colour"},
		{name: "missing token", yaml: "business_units:\n  - id: 1\n", want: "token is required"},
		{name: "bad id", yaml: "business_units:\n  - id: 0\n    token: a\n", want: "id must be positive"},
		{name: "unknown flag", yaml: "business_units:\n  - id: 1\n    token: a\n    conditions: [send_fax]\n", want: "send_fax"},
		{name: "bad condition string", yaml: "business_units:\n  - id: 1\n    token: a\n    condition_string: \"01x\"\n", want: "position 2"},
		{
			name: "both forms",
			yaml: "business_units:\n  - id: 1\n    token: a\n    conditions: [send_email]\n    condition_string: \"1\"\n",
			want: "not both",
		},
		{
			name: "duplicate token",
			yaml: "business_units:\n  - id: 1\n    token: a\n  - id: 2\n    token: A\n",
			want: "duplicate token",
		},
		{
			name: "duplicate id",
			yaml: "business_units:\n  - id: 1\n    token: a\n  - id: 1\n    token: b\n",
			want: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBusinessUnits(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadBusinessUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bu.yaml")
	if err := os.WriteFile(path, []byte(sampleBusinessUnits), 0o600); err != nil {
		t.Fatal(err)
	}
	bus, err := LoadBusinessUnits(path)
	if err != nil {
		t.Fatalf("LoadBusinessUnits: %v", err)
	}
	if _, ok := bus.ByToken("TOLP"); !ok {
		t.Fatal("TOLP not found")
	}

	if _, err := LoadBusinessUnits(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBundledBusinessUnitsFileParses(t *testing.T) {
	bus, err := LoadBusinessUnits("business_units.yaml")
	if err != nil {
		t.Fatalf("bundled business_units.yaml: %v", err)
	}
	if len(bus.All()) == 0 {
		t.Fatal("bundled file defines no business units")
	}
}
