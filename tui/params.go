// ABOUTME: Parameter manager for slideshow duration tuning
// ABOUTME: Handles parameter value adjustments with boundary checking

package tui

import "cycle-backgrounds/config"

// Parameter names, also used to map defaults back onto parameters
const (
	paramStatic     = "Static seconds"
	paramTransition = "Transition seconds"
)

// Parameter represents a tunable duration with constraints
type Parameter struct {
	Name  string
	Value *float64 // Pointer to the config field it edits
	Min   float64
	Max   float64
	Step  float64
}

// ParamManager manages parameter selection and adjustments
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates the duration parameters bound to cfg
func NewParamManager(cfg *config.Defaults) *ParamManager {
	return &ParamManager{
		params: []Parameter{
			{Name: paramStatic, Value: &cfg.StaticSeconds, Min: 1, Max: 3600, Step: 1},
			{Name: paramTransition, Value: &cfg.TransitionSeconds, Min: 0, Max: 600, Step: 0.5},
		},
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase raises the selected value by one step, clamped to Max.
// Returns true if the value changed.
func (pm *ParamManager) Increase() bool {
	param := pm.GetSelected()
	if param == nil || *param.Value >= param.Max {
		return false
	}

	*param.Value = min(*param.Value+param.Step, param.Max)

	return true
}

// Decrease lowers the selected value by one step, clamped to Min.
// Returns true if the value changed.
func (pm *ParamManager) Decrease() bool {
	param := pm.GetSelected()
	if param == nil || *param.Value <= param.Min {
		return false
	}

	*param.Value = max(*param.Value-param.Step, param.Min)

	return true
}

// ResetToDefaults copies the default durations onto the parameters.
// Returns true if any value changed.
func (pm *ParamManager) ResetToDefaults(defaults config.Defaults) bool {
	changed := false

	for i := range pm.params {
		p := &pm.params[i]

		var value float64

		switch p.Name {
		case paramStatic:
			value = defaults.StaticSeconds
		case paramTransition:
			value = defaults.TransitionSeconds
		default:
			continue
		}

		if *p.Value != value {
			*p.Value = value
			changed = true
		}
	}

	return changed
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}

	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
