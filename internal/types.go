package internal

import "strings"

// Record is a persisted JSON object whose shape is not known in advance.
type Record map[string]any

type Unit string

const (
	UnitNone       Unit = ""
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitMeter      Unit = "m"
	UnitInch       Unit = "in"
	UnitFoot       Unit = "ft"
)

type Axis string

const (
	AxisLength   Axis = "length"
	AxisDiameter Axis = "diameter"
	AxisWidth    Axis = "width"
)

// Axes lists the dimension axes in display order.
var Axes = []Axis{AxisLength, AxisDiameter, AxisWidth}

func (a Axis) ValueKey() string { return string(a) + "Value" }
func (a Axis) UnitKey() string  { return string(a) + "Unit" }
func (a Axis) RawKey() string   { return string(a) + "RawInput" }

// Label is the short tag printed in front of a dimension (comprimento,
// diâmetro, largura).
func (a Axis) Label() string {
	switch a {
	case AxisLength:
		return "C"
	case AxisDiameter:
		return "D"
	case AxisWidth:
		return "L"
	default:
		return string(a)
	}
}

type Dimension struct {
	Value    *float64
	Unit     Unit
	RawInput *string
}

// Empty reports whether the axis carries neither a number nor raw text.
func (d Dimension) Empty() bool {
	return d.Value == nil && (d.RawInput == nil || strings.TrimSpace(*d.RawInput) == "")
}

type Material struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CategoryID  string             `json:"categoryId"`
	UnitWeight  float64            `json:"unitWeight"`
	WeightUnit  string             `json:"weightUnit"`
	UnitCost    float64            `json:"unitCost"`
	Components  []ProductComponent `json:"components"`

	// Extra holds material keys this package does not know about.
	Extra map[string]any `json:"-"`
}

type QuoteItem struct {
	MaterialID string `json:"materialId"`
	Quantity   int    `json:"quantity"`
}

type Quote struct {
	ClientName        string      `json:"clientName"`
	Items             []QuoteItem `json:"items"`
	LaborHours        float64     `json:"laborHours"`
	LaborHourlyRate   float64     `json:"laborHourlyRate"`
	NumberOfWorkers   float64     `json:"numberOfWorkers"`
	MachineHours      float64     `json:"machineHours"`
	MachineHourlyRate float64     `json:"machineHourlyRate"`
	NumberOfMachines  float64     `json:"numberOfMachines"`
	FreightCost       float64     `json:"freightCost"`
	IsFreightEnabled  bool        `json:"isFreightEnabled"`
	ProfitMargin      float64     `json:"profitMargin"`
}

type LineCost struct {
	MaterialID        string  `json:"materialId"`
	MaterialName      string  `json:"materialName"`
	Quantity          int     `json:"quantity"`
	Found             bool    `json:"found"`
	ComponentsCost    float64 `json:"componentsCost"`
	EffectiveUnitCost float64 `json:"effectiveUnitCost"`
	MaterialCost      float64 `json:"materialCost"`
	ManufacturingCost float64 `json:"manufacturingCost"`
	Weight            float64 `json:"weight"`
}

type CalculatedCosts struct {
	MaterialCost           float64    `json:"materialCost"`
	TotalManufacturingCost float64    `json:"totalManufacturingCost"`
	LaborCost              float64    `json:"laborCost"`
	MachineCost            float64    `json:"machineCost"`
	FreightCost            float64    `json:"freightCost"`
	TotalProjectCost       float64    `json:"totalProjectCost"`
	ProfitValue            float64    `json:"profitValue"`
	FinalValue             float64    `json:"finalValue"`
	TotalWeight            float64    `json:"totalWeight"`
	Lines                  []LineCost `json:"lines,omitempty"`
}

type SavedQuote struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Quote     Quote  `json:"quote"`
}
