package strategy

import (
	"errors"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"StratLab/internal/domain/models"
)

// DefaultIndicatorNames is the indicator enum accepted by IndicatorRef operands.
var DefaultIndicatorNames = []string{"MA", "EMA", "RSI", "MACD", "BOLL", "KD", "BIAS", "VOLUME", "DIFF"}

var (
	seriesNames = models.OHLCV
	sourceNames = []string{"close", "open", "high", "low", "typical", "hlc3"}
	typeNames   = []string{"screen", "backtest"}
	logicNames  = []string{"AND", "OR"}
	frameNames  = []string{"1d"}
)

const numberRule = "min=-1000000000,max=1000000000"

// Schema constructs validated strategies from decoded payloads.
type Schema struct {
	specs          *SpecRegistry
	indicatorNames []string
	requireKind    bool
}

// Option configures a Schema.
type Option func(*Schema)

// WithIndicatorNames replaces the accepted indicator enum.
func WithIndicatorNames(names ...string) Option {
	return func(s *Schema) {
		if len(names) > 0 {
			s.indicatorNames = append([]string(nil), names...)
		}
	}
}

// WithRequireKind makes the operand "kind" discriminator mandatory.
func WithRequireKind(require bool) Option {
	return func(s *Schema) { s.requireKind = require }
}

// NewSchema builds a schema backed by specs.
func NewSchema(specs *SpecRegistry, opts ...Option) *Schema {
	s := &Schema{
		specs:          specs,
		indicatorNames: append([]string(nil), DefaultIndicatorNames...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStrategy validates payload as a whole strategy. Every violation found is
// returned together in a *ValidationError.
func (s *Schema) NewStrategy(payload map[string]any) (*Strategy, error) {
	c := &collector{}
	st := s.strategy(c, payload)
	if err := c.err(); err != nil {
		return nil, err
	}
	return st, nil
}

// ParseStrategy is NewStrategy for an undecoded payload; anything but a JSON
// object is rejected at the root.
func (s *Schema) ParseStrategy(payload any) (*Strategy, error) {
	m, ok := asMap(payload)
	if !ok {
		c := &collector{}
		c.add(nil, TypeTypeError, msgNotDict)
		return nil, c.err()
	}
	return s.NewStrategy(m)
}

// NewCondition validates payload as a single condition located at loc.
func (s *Schema) NewCondition(payload any, loc ...any) (*Condition, error) {
	c := &collector{}
	cond, _ := s.condition(c, payload, loc)
	if err := c.err(); err != nil {
		return nil, err
	}
	return &cond, nil
}

// NewOperand validates payload as an operand located at loc.
func (s *Schema) NewOperand(payload any, loc ...any) (Operand, error) {
	c := &collector{}
	op := s.operand(c, payload, loc)
	if err := c.err(); err != nil {
		return nil, err
	}
	return op, nil
}

type header struct {
	Name      *string `json:"name" validate:"required,min=3,max=64"`
	Version   *string `json:"version" validate:"required,semver3"`
	Type      *string `json:"type" validate:"required,oneof=screen backtest"`
	Timeframe *string `json:"timeframe" validate:"required,oneof=1d"`
	Logic     *string `json:"logic" validate:"required,oneof=AND OR"`
	// Conditions holds the raw list; elements are validated one by one.
	Conditions []any `json:"conditions" validate:"required,min=1"`
}

var headerOrder = []string{"name", "version", "type", "timeframe", "logic", "conditions"}

func (s *Schema) strategy(c *collector, payload map[string]any) *Strategy {
	var h header
	found := make(map[string]Violation)

	strs := map[string]**string{
		"name": &h.Name, "version": &h.Version, "type": &h.Type,
		"timeframe": &h.Timeframe, "logic": &h.Logic,
	}
	for key, dst := range strs {
		v, ok := field(payload, key)
		if !ok {
			continue
		}
		str, isStr := v.(string)
		if !isStr {
			found[key] = Violation{Loc: at(nil, key), Type: TypeTypeError, Msg: msgNotString}
			continue
		}
		*dst = &str
	}
	if v, ok := field(payload, "conditions"); ok {
		if list, isList := asList(v); isList {
			h.Conditions = list
		} else {
			found["conditions"] = Violation{Loc: at(nil, "conditions"), Type: TypeTypeError, Msg: msgNotList}
		}
	}

	if err := validate.Struct(h); err != nil {
		var fes validator.ValidationErrors
		if errors.As(err, &fes) {
			for _, fe := range fes {
				if _, seen := found[fe.Field()]; seen {
					continue
				}
				_, present := field(payload, fe.Field())
				found[fe.Field()] = headerViolation(fe, present)
			}
		}
	}
	for _, key := range headerOrder {
		if v, ok := found[key]; ok {
			c.violations = append(c.violations, v)
		}
	}

	st := &Strategy{}
	if h.Name != nil {
		st.Name = *h.Name
	}
	if h.Version != nil {
		st.Version = *h.Version
	}
	if h.Type != nil {
		st.Type = *h.Type
	}
	if h.Timeframe != nil {
		st.Timeframe = *h.Timeframe
	}
	if h.Logic != nil {
		st.Logic = Logic(*h.Logic)
	}
	for i, raw := range h.Conditions {
		cond, _ := s.condition(c, raw, at(nil, "conditions", i))
		st.Conditions = append(st.Conditions, cond)
	}

	if v, ok := field(payload, "description"); ok {
		if str, isStr := v.(string); isStr {
			st.Description = str
		} else {
			c.add(at(nil, "description"), TypeTypeError, msgNotString)
		}
	}
	st.Universe = s.dict(c, payload, "universe")
	st.Params = s.dict(c, payload, "params")
	st.Metadata = s.dict(c, payload, "metadata")
	return st
}

func (s *Schema) dict(c *collector, payload map[string]any, key string) map[string]any {
	v, ok := field(payload, key)
	if !ok {
		return nil
	}
	m, isMap := asMap(v)
	if !isMap {
		c.add(at(nil, key), TypeTypeError, msgNotDict)
		return nil
	}
	return m
}

// headerViolation translates a validator failure into the strategy wording.
// A required failure on a present value (an empty string) reports the field rule instead.
func headerViolation(fe validator.FieldError, present bool) Violation {
	loc := at(nil, fe.Field())
	if fe.Tag() == "required" && !present {
		return Violation{Loc: loc, Type: TypeMissing, Msg: msgFieldRequired}
	}
	switch fe.Field() {
	case "name":
		return Violation{Loc: loc, Type: TypeValueError, Msg: "name length must be between 3 and 64"}
	case "version":
		return Violation{Loc: loc, Type: TypeValueError, Msg: "version must be 'major.minor.patch' numeric"}
	case "type":
		return Violation{Loc: loc, Type: TypeEnum, Msg: permitted(typeNames)}
	case "timeframe":
		return Violation{Loc: loc, Type: TypeEnum, Msg: permitted(frameNames)}
	case "logic":
		return Violation{Loc: loc, Type: TypeEnum, Msg: permitted(logicNames)}
	case "conditions":
		return Violation{Loc: loc, Type: TypeValueError, Msg: "at least one condition is required"}
	}
	return Violation{Loc: loc, Type: TypeValueError, Msg: fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())}
}

// condition validates one condition. ok is false when any violation was recorded.
func (s *Schema) condition(c *collector, payload any, loc []any) (cond Condition, ok bool) {
	before := c.len()
	m, isMap := asMap(payload)
	if !isMap {
		c.add(loc, TypeTypeError, msgNotDict)
		return cond, false
	}

	leftOK, rightOK, opOK := false, false, false
	if v, present := field(m, "left"); present {
		n := c.len()
		cond.Left = s.operand(c, v, at(loc, "left"))
		leftOK = c.len() == n
	} else {
		c.missing(at(loc, "left"))
	}

	if v, present := field(m, "op"); present {
		str, _ := v.(string)
		if contains(ops, str) {
			cond.Op = Op(str)
			opOK = true
		} else {
			c.add(at(loc, "op"), TypeEnum, permitted(ops))
		}
	} else {
		c.missing(at(loc, "op"))
	}

	if v, present := field(m, "right"); present {
		n := c.len()
		cond.Right = s.operand(c, v, at(loc, "right"))
		rightOK = c.len() == n
	} else {
		c.missing(at(loc, "right"))
	}

	if v, present := field(m, "note"); present {
		if str, isStr := v.(string); isStr {
			cond.Note = str
		} else {
			c.add(at(loc, "note"), TypeTypeError, msgNotString)
		}
	}

	if leftOK && rightOK && opOK && cond.Op.IsCross() {
		if cond.Left.Kind() == KindNumber || cond.Right.Kind() == KindNumber {
			c.add(at(loc, "op"), TypeValueError, "cross_* operator requires two series operands")
		}
	}
	return cond, c.len() == before
}

// operand resolves payload to one Operand variant. An explicit "kind" selects
// the variant; otherwise variants are tried in order and the first clean one wins.
func (s *Schema) operand(c *collector, payload any, loc []any) Operand {
	m, isMap := asMap(payload)
	if !isMap {
		c.add(loc, TypeTypeError, msgNotDict)
		return nil
	}

	if v, present := field(m, "kind"); present {
		kind, _ := v.(string)
		switch OperandKind(kind) {
		case KindNumber:
			return s.number(c, m, loc)
		case KindSeries:
			return s.series(c, m, loc)
		case KindIndicator:
			return s.indicator(c, m, loc)
		}
		c.add(at(loc, "kind"), TypeEnum, permitted(operandKinds))
		return nil
	}
	if s.requireKind {
		c.missing(at(loc, "kind"))
		return nil
	}

	attempts := []func(*collector, map[string]any, []any) Operand{s.number, s.series, s.indicator}
	branches := make([]*collector, 0, len(attempts))
	for _, try := range attempts {
		bc := &collector{}
		if op := try(bc, m, loc); bc.len() == 0 {
			return op
		}
		branches = append(branches, bc)
	}
	for _, bc := range branches {
		c.merge(bc)
	}
	return nil
}

func (s *Schema) number(c *collector, m map[string]any, loc []any) Operand {
	v, present := field(m, "value")
	if !present {
		c.missing(at(loc, "value"))
		return nil
	}
	f, ok := models.AsFloat(v)
	if !ok {
		c.add(at(loc, "value"), TypeTypeError, msgNotFloat)
		return nil
	}
	if validate.Var(f, numberRule) != nil {
		c.add(at(loc, "value"), TypeValueError, "value out of range [-1e9, 1e9]")
		return nil
	}
	return NumberOperand{Value: f}
}

func (s *Schema) series(c *collector, m map[string]any, loc []any) Operand {
	v, present := field(m, "series")
	if !present {
		c.missing(at(loc, "series"))
		return nil
	}
	name, _ := v.(string)
	if !contains(seriesNames, name) {
		c.add(at(loc, "series"), TypeEnum, permitted(seriesNames))
		return nil
	}
	return SeriesRefOperand{Series: name}
}

func (s *Schema) indicator(c *collector, m map[string]any, loc []any) Operand {
	before := c.len()
	ref := IndicatorRefOperand{}

	nameOK := false
	if v, present := field(m, "indicator"); present {
		name, _ := v.(string)
		if contains(s.indicatorNames, name) {
			ref.Indicator = name
			nameOK = true
		} else {
			c.add(at(loc, "indicator"), TypeEnum, permitted(s.indicatorNames))
		}
	} else {
		c.missing(at(loc, "indicator"))
	}

	if v, present := field(m, "params"); !present {
		c.missing(at(loc, "params"))
	} else if params, isMap := asMap(v); !isMap {
		c.add(at(loc, "params"), TypeTypeError, msgNotDict)
	} else {
		ref.Params = models.Params(params)
		if nameOK {
			s.checkParams(c, ref, at(loc, "params"))
		}
	}

	if v, present := field(m, "source"); present {
		src, _ := v.(string)
		if contains(sourceNames, src) {
			ref.Source = src
		} else {
			c.add(at(loc, "source"), TypeEnum, permitted(sourceNames))
		}
	}

	fieldSet := false
	if v, present := field(m, "field"); present {
		if str, isStr := v.(string); isStr {
			ref.Field = str
			fieldSet = true
		} else {
			c.add(at(loc, "field"), TypeTypeError, msgNotString)
		}
	}

	if c.len() != before {
		return nil
	}
	if err := defaults.Set(&ref); err != nil {
		c.add(loc, TypeValueError, err.Error())
		return nil
	}
	spec, _ := s.specs.Lookup(ref.Indicator)
	if len(spec.Fields) > 0 {
		switch {
		case !fieldSet && spec.DefaultField != "":
			ref.Field = spec.DefaultField
		case !fieldSet:
			ref.Field = spec.Fields[0]
		case !contains(spec.Fields, ref.Field):
			c.add(at(loc, "field"), TypeValueError,
				fmt.Sprintf("field must be one of %s for %s", quotedList(spec.Fields), ref.Indicator))
			return nil
		}
	} else if fieldSet {
		c.add(at(loc, "field"), TypeValueError, fmt.Sprintf("%s does not support 'field'", ref.Indicator))
		return nil
	}
	return ref
}

// checkParams runs the indicator's spec validator against params.
func (s *Schema) checkParams(c *collector, ref IndicatorRefOperand, loc []any) {
	spec, ok := s.specs.Lookup(ref.Indicator)
	if !ok {
		c.add(loc, TypeValueError, "unknown indicator: "+ref.Indicator)
		return
	}
	if spec.Validate == nil {
		return
	}
	err := spec.Validate(ref.Params)
	if err == nil {
		return
	}
	var pe *ParamError
	if errors.As(err, &pe) && pe.Param != "" {
		c.add(at(loc, pe.Param), TypeValueError, pe.Message)
		return
	}
	c.add(loc, TypeValueError, err.Error())
}
