package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"regulab/internal/pipeline"
	"regulab/internal/step"
)

// ExportData is the JSON form of a full analysis report. Complex poles are
// flattened to re/im pairs and undefined metrics are reported as error
// strings instead of sentinel numbers.
type ExportData struct {
	Num             []float64          `json:"num"`
	Den             []float64          `json:"den"`
	Expression      string             `json:"expression"`
	ExpressionLaTeX string             `json:"expression_latex"`
	Derivative      string             `json:"derivative"`
	Integral        string             `json:"integral,omitempty"`
	IntegralError   string             `json:"integral_error,omitempty"`
	Poles           []Pole             `json:"poles"`
	Stable          bool               `json:"stable"`
	Horizon         float64            `json:"horizon"`
	Metrics         map[string]float64 `json:"metrics"`
	MetricErrors    map[string]string  `json:"metric_errors,omitempty"`
	Recommendation  string             `json:"recommendation,omitempty"`
	Rationale       string             `json:"rationale,omitempty"`
	Samples         []step.Sample      `json:"samples"`
}

type Pole struct {
	Re           float64 `json:"re"`
	Im           float64 `json:"im"`
	Multiplicity int     `json:"multiplicity"`
}

func BuildExport(rep *pipeline.Report) ExportData {
	data := ExportData{
		Num:             rep.System.Num(),
		Den:             rep.System.Den(),
		Expression:      rep.Expression,
		ExpressionLaTeX: rep.ExpressionLaTeX,
		Derivative:      rep.Derivative,
		Integral:        rep.Integral,
	}
	if rep.IntegralErr != nil {
		data.IntegralError = rep.IntegralErr.Error()
	}

	for _, g := range rep.PoleGroups {
		data.Poles = append(data.Poles, Pole{
			Re:           real(g.Value),
			Im:           imag(g.Value),
			Multiplicity: g.Multiplicity,
		})
	}

	if rep.Response != nil {
		data.Stable = rep.Response.Stable
		data.Horizon = rep.Response.Horizon
		data.Samples = rep.Response.Samples
		data.Metrics = definedMetrics(rep.Response.Metrics)
		data.MetricErrors = metricErrors(rep.Response.Metrics)
	}
	if rep.RecommendationErr == nil {
		data.Recommendation = string(rep.Recommendation.Type)
		data.Rationale = rep.Recommendation.Rationale
	} else {
		if data.MetricErrors == nil {
			data.MetricErrors = make(map[string]string)
		}
		data.MetricErrors["recommendation"] = rep.RecommendationErr.Error()
	}
	return data
}

func ExportJSON(path string, rep *pipeline.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeJSON(file, rep)
}

func ExportJSONStdout(rep *pipeline.Report) error {
	return encodeJSON(os.Stdout, rep)
}

func encodeJSON(w io.Writer, rep *pipeline.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildExport(rep))
}

// ExportCSV writes the response samples as t,y rows with a header.
func ExportCSV(w io.Writer, samples []step.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "y"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func metricErrors(m step.Metrics) map[string]string {
	out := make(map[string]string)
	put := func(name string, f step.Measure) {
		if !f.Defined && f.Err != nil {
			out[name] = f.Err.Error()
		}
	}
	put("steady_state", m.SteadyState)
	put("overshoot", m.Overshoot)
	put("settling_time", m.SettlingTime)
	put("rise_time", m.RiseTime)
	put("peak_time", m.PeakTime)
	if len(out) == 0 {
		return nil
	}
	return out
}
