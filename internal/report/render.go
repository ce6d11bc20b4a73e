package report

import (
	"strconv"

	calculatecalories "calculators/internal/engines/fitness/calculate-calories"
	"calculators/internal/models"
	"calculators/internal/regression"

	"github.com/osteele/liquid"
)

const dateLayout = "2006-01-02"

// RenderQuoteSaved renders the confirmation shown after a quote is stored.
func (r *Renderer) RenderQuoteSaved(q *models.Quote) (string, error) {
	return r.render(QuoteSaved, liquid.Bindings{"id": q.IdentificationNumber})
}

// RenderQuoteDetails renders a retrieved quote as a two-column table.
func (r *Renderer) RenderQuoteDetails(q *models.Quote) (string, error) {
	windscreen := "No"
	if q.Request.WindscreenRepair {
		windscreen = "Yes"
	}
	start := ""
	if !q.StartOfPolicy.IsZero() {
		start = q.StartOfPolicy.Format(dateLayout)
	}
	return r.render(QuoteDetails, liquid.Bindings{
		"breakdownCover":   string(q.Request.BreakdownCover),
		"windscreenRepair": windscreen,
		"userId":           q.UserID,
		"accidents":        q.Request.Accidents,
		"registration":     q.RegistrationNumber,
		"mileage":          q.Request.Mileage,
		"estimatedValue":   "£" + q.Request.EstimatedValue.StringFixed(2),
		"parkingLocation":  q.Request.ParkingLocation,
		"startOfPolicy":    start,
		"premium":          "£" + q.Premium.StringFixed(2),
	})
}

// RenderProfile renders a broker profile; absent address lines are omitted.
func (r *Renderer) RenderProfile(p *models.BrokerProfile) (string, error) {
	var address []string
	for _, f := range []struct {
		label string
		value *string
	}{
		{"Street", p.Address.StreetAddress},
		{"City", p.Address.City},
		{"County", p.Address.County},
		{"Post code", p.Address.PostCode},
	} {
		if f.value != nil {
			address = append(address, f.label+": "+*f.value)
		}
	}

	dob := ""
	if !p.DateOfBirth.IsZero() {
		dob = p.DateOfBirth.Format(dateLayout)
	}
	return r.render(Profile, liquid.Bindings{
		"userId":        p.UserID,
		"title":         p.Title,
		"firstName":     p.FirstName,
		"surname":       p.Surname,
		"phone":         p.Phone,
		"dateOfBirth":   dob,
		"licenseType":   p.LicenseType,
		"licensePeriod": p.LicensePeriod,
		"occupation":    p.Occupation,
		"address":       address,
	})
}

// RenderCalories renders a calorie result with the formatter's separator.
func (r *Renderer) RenderCalories(res models.CalorieResult, f calculatecalories.Formatter) (string, error) {
	return r.render(Calories, liquid.Bindings{
		"style":     res.Request.Style.Name,
		"met":       strconv.FormatFloat(res.Request.Style.MET, 'f', -1, 64),
		"duration":  strconv.FormatFloat(res.Request.DurationMin, 'f', -1, 64),
		"weight":    strconv.FormatFloat(res.Request.WeightKg, 'f', -1, 64),
		"perMinute": f.PerMinute(res.CaloriesPerMinute),
		"total":     f.WithUnit(res.TotalCalories),
		"detailed":  f.Detailed(res.ExactTotalCalories) + " " + calculatecalories.Unit,
	})
}

// RenderRegression lists every case and the suite totals. Passed cases omit
// the expected and actual lines.
func (r *Renderer) RenderRegression(rep *regression.Report) (string, error) {
	cases := make([]map[string]interface{}, 0, len(rep.Cases))
	for _, c := range rep.Cases {
		cases = append(cases, map[string]interface{}{
			"line":        c.Line,
			"status":      c.Status,
			"description": c.Description,
			"expected":    c.Expected,
			"actual":      c.Actual,
		})
	}
	return r.render(Regression, liquid.Bindings{
		"suite":     rep.Suite,
		"cases":     cases,
		"total":     rep.Total,
		"passed":    rep.Passed,
		"failed":    rep.Failed,
		"malformed": rep.Malformed,
	})
}
