package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/target/t1250-loader/internal/domain/model"
)

// BusinessUnitFile is the on-disk layout of the business unit file:
//
//	business_units:
//	  - id: 1
//	    name: Toll Priority
//	    token: tolp
//	    conditions: [send_email, send_sms, send_sc_1]
//	  - id: 2
//	    name: Toll Transport
//	    token: tolt
//	    condition_string: "0110000010000000"
type BusinessUnitFile struct {
	BusinessUnits []BusinessUnitEntry `yaml:"business_units"`
}

// BusinessUnitEntry is one business unit as written in YAML. Exactly one of
// Conditions and ConditionString may be set.
type BusinessUnitEntry struct {
	ID              int64    `yaml:"id"`
	Name            string   `yaml:"name"`
	Token           string   `yaml:"token"`
	Conditions      []string `yaml:"conditions"`
	ConditionString string   `yaml:"condition_string"`
}

// BusinessUnits is the set of configured business units, keyed by token.
type BusinessUnits struct {
	units   []model.BusinessUnit
	byToken map[string]int
}

// LoadBusinessUnits reads and decodes the business unit file at path.
func LoadBusinessUnits(path string) (*BusinessUnits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read business units: %w", err)
	}
	bus, err := ParseBusinessUnits(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bus, nil
}

// ParseBusinessUnits decodes a business unit file. Condition flags are
// resolved into model.ConditionMap here so nothing downstream reads them by
// position.
func ParseBusinessUnits(r io.Reader) (*BusinessUnits, error) {
	var file BusinessUnitFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode business units: %w", err)
	}
	if len(file.BusinessUnits) == 0 {
		return nil, errors.New("no business units defined")
	}

	bus := &BusinessUnits{byToken: make(map[string]int, len(file.BusinessUnits))}
	ids := make(map[int64]bool, len(file.BusinessUnits))
	for i, entry := range file.BusinessUnits {
		bu, err := entry.BusinessUnit()
		if err != nil {
			return nil, fmt.Errorf("business unit %d: %w", i, err)
		}
		key := strings.ToUpper(bu.Token)
		if _, dup := bus.byToken[key]; dup {
			return nil, fmt.Errorf("business unit %d: duplicate token %q", i, bu.Token)
		}
		if ids[bu.ID] {
			return nil, fmt.Errorf("business unit %d: duplicate id %d", i, bu.ID)
		}
		ids[bu.ID] = true
		bus.byToken[key] = len(bus.units)
		bus.units = append(bus.units, bu)
	}
	return bus, nil
}

// BusinessUnit validates the entry and decodes its conditions.
func (e BusinessUnitEntry) BusinessUnit() (model.BusinessUnit, error) {
	bu := model.BusinessUnit{
		ID:    e.ID,
		Name:  strings.TrimSpace(e.Name),
		Token: strings.ToUpper(strings.TrimSpace(e.Token)),
	}
	if bu.ID <= 0 {
		return model.BusinessUnit{}, fmt.Errorf("id must be positive, got %d", e.ID)
	}
	if bu.Token == "" {
		return model.BusinessUnit{}, errors.New("token is required")
	}
	if bu.Name == "" {
		bu.Name = bu.Token
	}

	var err error
	switch {
	case len(e.Conditions) > 0 && e.ConditionString != "":
		return model.BusinessUnit{}, errors.New("set conditions or condition_string, not both")
	case e.ConditionString != "":
		bu.Conditions, err = model.ParseLegacyConditionString(e.ConditionString)
	default:
		bu.Conditions, err = model.ParseConditionFlags(e.Conditions)
	}
	if err != nil {
		return model.BusinessUnit{}, fmt.Errorf("%s: %w", bu.Token, err)
	}
	return bu, nil
}

// ByToken returns the business unit with token, compared case-insensitively.
func (b *BusinessUnits) ByToken(token string) (model.BusinessUnit, bool) {
	if b == nil {
		return model.BusinessUnit{}, false
	}
	i, ok := b.byToken[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return model.BusinessUnit{}, false
	}
	return b.units[i], true
}

// All returns the business units in file order.
func (b *BusinessUnits) All() []model.BusinessUnit {
	if b == nil {
		return nil
	}
	return append([]model.BusinessUnit(nil), b.units...)
}
