package strategy

import (
	"encoding/json"

	"StratLab/internal/domain/models"
)

// OperandKind discriminates the Operand variants.
type OperandKind string

const (
	KindNumber    OperandKind = "number"
	KindSeries    OperandKind = "series"
	KindIndicator OperandKind = "indicator"
)

var operandKinds = []string{string(KindNumber), string(KindSeries), string(KindIndicator)}

// Operand is one side of a Condition.
type Operand interface {
	Kind() OperandKind
	operand()
}

// NumberOperand is a constant.
type NumberOperand struct {
	Value float64 `json:"value"`
}

// SeriesRefOperand references a raw OHLCV column.
type SeriesRefOperand struct {
	Series string `json:"series"`
}

// IndicatorRefOperand references an indicator output computed over Source.
type IndicatorRefOperand struct {
	Indicator string        `json:"indicator"`
	Params    models.Params `json:"params"`
	Source    string        `json:"source" default:"close"`
	Field     string        `json:"field,omitempty"`
}

func (NumberOperand) Kind() OperandKind       { return KindNumber }
func (SeriesRefOperand) Kind() OperandKind    { return KindSeries }
func (IndicatorRefOperand) Kind() OperandKind { return KindIndicator }

func (NumberOperand) operand()       {}
func (SeriesRefOperand) operand()    {}
func (IndicatorRefOperand) operand() {}

func (o NumberOperand) MarshalJSON() ([]byte, error) {
	type plain NumberOperand
	return json.Marshal(struct {
		Kind OperandKind `json:"kind"`
		plain
	}{KindNumber, plain(o)})
}

func (o SeriesRefOperand) MarshalJSON() ([]byte, error) {
	type plain SeriesRefOperand
	return json.Marshal(struct {
		Kind OperandKind `json:"kind"`
		plain
	}{KindSeries, plain(o)})
}

func (o IndicatorRefOperand) MarshalJSON() ([]byte, error) {
	type plain IndicatorRefOperand
	return json.Marshal(struct {
		Kind OperandKind `json:"kind"`
		plain
	}{KindIndicator, plain(o)})
}

// Op is a comparison operator.
type Op string

const (
	OpGT        Op = ">"
	OpLT        Op = "<"
	OpGTE       Op = ">="
	OpLTE       Op = "<="
	OpEQ        Op = "=="
	OpNE        Op = "!="
	OpCrossUp   Op = "cross_up"
	OpCrossDown Op = "cross_down"
)

var ops = []string{">", "<", ">=", "<=", "==", "!=", "cross_up", "cross_down"}

// IsCross reports whether op compares consecutive bars.
func (op Op) IsCross() bool { return op == OpCrossUp || op == OpCrossDown }

// Condition compares two operands.
type Condition struct {
	Left  Operand `json:"left"`
	Op    Op      `json:"op"`
	Right Operand `json:"right"`
	Note  string  `json:"note,omitempty"`
}

// Logic combines condition results.
type Logic string

const (
	LogicAND Logic = "AND"
	LogicOR  Logic = "OR"
)

// Strategy is a validated rule set.
type Strategy struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Type        string         `json:"type"`
	Timeframe   string         `json:"timeframe"`
	Logic       Logic          `json:"logic"`
	Conditions  []Condition    `json:"conditions"`
	Description string         `json:"description,omitempty"`
	Universe    map[string]any `json:"universe,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
