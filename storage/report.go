package storage

import (
	"fmt"

	"github.com/NethermindEth/starkstore/core/felt"
)

// Report is the static layout report for a schema: per declared variable, its
// base-address formula, resolved base address, slot count and per-leaf
// offsets. It exists for auditing and documentation, not for runtime use.
type Report struct {
	Commitment *felt.Felt       `json:"commitment"`
	Variables  []VariableReport `json:"variables"`
}

type VariableReport struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	KeyArity    int        `json:"key_arity"`
	BaseAddress *felt.Felt `json:"base_address"`
	Formula     string     `json:"formula"`
	SlotCount   int        `json:"slot_count"`
	Leaves      []Leaf     `json:"leaves"`
}

// Report builds the layout report in declaration order.
func (s *Schema) Report() Report {
	report := Report{
		Commitment: s.Commitment(),
		Variables:  make([]VariableReport, 0, len(s.order)),
	}
	for _, name := range s.order {
		if v, ok := s.variables[name]; ok {
			base := v.base
			report.Variables = append(report.Variables, VariableReport{
				Name:        name,
				Type:        v.typ.String(),
				BaseAddress: &base,
				Formula:     fmt.Sprintf("sn_keccak(%q)", name),
				SlotCount:   v.typ.SlotCount(),
				Leaves:      Leaves(v.typ),
			})
			continue
		}

		m := s.mappings[name]
		base := m.base
		report.Variables = append(report.Variables, VariableReport{
			Name:        name,
			Type:        mappingTypeString(m),
			KeyArity:    len(m.keyTypes),
			BaseAddress: &base,
			Formula:     mappingFormula(name, m.KeyFeltCount()),
			SlotCount:   m.valueTyp.SlotCount(),
			Leaves:      Leaves(m.valueTyp),
		})
	}
	return report
}

func mappingTypeString(m *Mapping) string {
	s := m.valueTyp.String()
	for i := len(m.keyTypes) - 1; i >= 0; i-- {
		s = fmt.Sprintf("Map<%s, %s>", m.keyTypes[i].String(), s)
	}
	return s
}

func mappingFormula(name string, folds int) string {
	formula := fmt.Sprintf("sn_keccak(%q)", name)
	for i := 0; i < folds; i++ {
		formula = fmt.Sprintf("pedersen(%s, k%d)", formula, i)
	}
	return formula + " mod (2^251 - 256)"
}
