package climate

import (
	"errors"
	"fmt"

	"github.com/veldt-labs/cropsight/internal/dataset"
)

// ErrNoData signals an empty filtered view. Statistics are never computed
// over zero rows; callers surface this as an adjust-your-filters state.
var ErrNoData = errors.New("no data for the current selection")

// Crop suggestion categories.
const (
	CropWarmHighCO2 = "Wheat, Corn, or Soybeans"
	CropWarmLowCO2  = "Rice, Oats, or Barley"
	CropCool        = "Potatoes, Tomatoes, or Lettuce"
)

// Recommendation is the derived tuple for a filtered view. Means keep full
// precision; format with two decimals for display.
type Recommendation struct {
	MeanTemp float64 `json:"mean_temperature_anomaly"`
	MeanCO2  float64 `json:"mean_average_co2"`
	Crop     string  `json:"suggested_crop"`
	Rows     int     `json:"rows"`
}

// TempDisplay renders the mean temperature anomaly for output.
func (r Recommendation) TempDisplay() string { return fmt.Sprintf("%.2f", r.MeanTemp) }

// CO2Display renders the mean CO2 level for output.
func (r Recommendation) CO2Display() string { return fmt.Sprintf("%.2f", r.MeanCO2) }

// Recommend computes mean temperature anomaly and mean CO2 over the filtered
// view and maps the pair to a crop category. Returns ErrNoData for an empty
// view.
func Recommend(t *dataset.Table) (Recommendation, error) {
	if t.Empty() {
		return Recommendation{}, ErrNoData
	}
	temps, err := t.Floats(dataset.ColTemperature)
	if err != nil {
		return Recommendation{}, fmt.Errorf("aggregate temperature: %w", err)
	}
	co2s, err := t.Floats(dataset.ColCO2)
	if err != nil {
		return Recommendation{}, fmt.Errorf("aggregate co2: %w", err)
	}
	meanTemp := mean(temps)
	meanCO2 := mean(co2s)
	return Recommendation{
		MeanTemp: meanTemp,
		MeanCO2:  meanCO2,
		Crop:     suggestCrop(meanTemp, meanCO2),
		Rows:     t.Len(),
	}, nil
}

// suggestCrop is the fixed threshold table. Rule order is load-bearing:
// temp > 1.5 with co2 <= 400 falls through to the second rule, which is the
// observed behavior, so do not reorder or merge the branches.
func suggestCrop(temp, co2 float64) string {
	if temp > 1.5 && co2 > 400 {
		return CropWarmHighCO2
	}
	if temp > 1.0 && co2 <= 400 {
		return CropWarmLowCO2
	}
	return CropCool
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
