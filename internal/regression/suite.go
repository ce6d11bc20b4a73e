package regression

import (
	"context"
	"fmt"
	"sort"

	"calculators/internal/engines/arithmetic"
	calculatecalories "calculators/internal/engines/fitness/calculate-calories"
	calculatepremium "calculators/internal/engines/insurance/calculate-premium"
)

// Suite names.
const (
	SuiteArithmetic = "arithmetic"
	SuitePremium    = "premium"
	SuiteCalories   = "calories"
)

type kind int

const (
	kindString kind = iota
	kindNumber
	kindInteger
)

type column struct {
	name string
	kind kind
}

// suite describes a fixture layout and how a validated row reaches its engine.
// Every fixture has a leading description column and a trailing expected column.
type suite struct {
	engineID string
	columns  []column
	run      func(ctx context.Context, e Engines, doc map[string]interface{}) (float64, error)
}

// Engines are the services a run may drive. Suites whose engine is nil fail to start.
type Engines struct {
	Arithmetic *arithmetic.Service
	Premium    *calculatepremium.Service
	Calories   *calculatecalories.Service
}

var suites = map[string]suite{
	SuiteArithmetic: {
		engineID: arithmetic.TaskType,
		columns: []column{
			{"operation", kindString},
			{"a", kindNumber},
			{"b", kindNumber},
		},
		run: func(ctx context.Context, e Engines, doc map[string]interface{}) (float64, error) {
			if e.Arithmetic == nil {
				return 0, errNoEngine(SuiteArithmetic)
			}
			var in arithmetic.Input
			if err := decodeInput(doc, &in); err != nil {
				return 0, err
			}
			out, err := e.Arithmetic.Execute(ctx, &in)
			if err != nil {
				return 0, err
			}
			return out.Result, nil
		},
	},
	SuitePremium: {
		engineID: calculatepremium.TaskType,
		columns: []column{
			{"breakdownCover", kindString},
			{"windscreenRepair", kindString},
			{"numberOfAccidents", kindInteger},
			{"totalMileage", kindInteger},
			{"estimatedValue", kindNumber},
			{"parkingLocation", kindString},
		},
		run: func(ctx context.Context, e Engines, doc map[string]interface{}) (float64, error) {
			if e.Premium == nil {
				return 0, errNoEngine(SuitePremium)
			}
			var in calculatepremium.Input
			if err := decodeInput(doc, &in); err != nil {
				return 0, err
			}
			out, err := e.Premium.Execute(ctx, &in)
			if err != nil {
				return 0, err
			}
			f, _ := out.Premium.Float64()
			return f, nil
		},
	},
	SuiteCalories: {
		engineID: calculatecalories.TaskType,
		columns: []column{
			{"swimmingStyle", kindString},
			{"durationMin", kindNumber},
			{"bodyWeightKg", kindNumber},
		},
		run: func(ctx context.Context, e Engines, doc map[string]interface{}) (float64, error) {
			if e.Calories == nil {
				return 0, errNoEngine(SuiteCalories)
			}
			var in calculatecalories.Input
			if err := decodeInput(doc, &in); err != nil {
				return 0, err
			}
			out, err := e.Calories.Execute(ctx, &in)
			if err != nil {
				return 0, err
			}
			f, _ := out.Result.TotalCalories.Float64()
			return f, nil
		},
	},
}

// Suites returns the known suite names in sorted order.
func Suites() []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func errNoEngine(name string) error {
	return fmt.Errorf("no engine configured for suite %q", name)
}
