package stats

import (
	"math"

	"github.com/savegress/vitalscope/pkg/models"
)

// aggregate rolls any set of readings into one AggregateValues. Daily,
// weekly and overall statistics all flow through this single function so
// the alias-merged pools and rounding rules cannot drift apart.
func aggregate(readings []models.VitalReading) models.AggregateValues {
	var values models.AggregateValues

	var sysSum, diaSum float64
	bpCount := 0
	var hr, glucose, oxygen collector
	var weightSum float64
	weightCount := 0
	var moods, activity, engagement, symptoms []string

	for i := range readings {
		r := &readings[i]

		// Blood pressure only counts when the pair is complete.
		if r.Systolic != nil && r.Diastolic != nil {
			sysSum += *r.Systolic
			diaSum += *r.Diastolic
			bpCount++
		}
		hr.observe(r.HeartRate)
		glucose.observe(r.Glucose)
		oxygen.observe(r.Oxygen)
		if r.Weight != nil {
			weightSum += *r.Weight
			weightCount++
		}
		if r.Mood != "" {
			moods = append(moods, r.Mood)
		}
		if r.PhysicalActivity != "" {
			activity = append(activity, r.PhysicalActivity)
		}
		if r.SocialEngagement != "" {
			engagement = append(engagement, r.SocialEngagement)
		}
		if r.Symptoms != "" {
			symptoms = append(symptoms, r.Symptoms)
		}
		if r.ActivityDescription != "" {
			symptoms = append(symptoms, r.ActivityDescription)
		}
	}

	if bpCount > 0 {
		values.BloodPressure = &models.BloodPressureAggregate{
			Systolic:  roundInt(sysSum / float64(bpCount)),
			Diastolic: roundInt(diaSum / float64(bpCount)),
			Count:     bpCount,
		}
	}
	values.HeartRate = hr.result()
	values.Glucose = glucose.result()
	values.Oxygen = oxygen.result()
	if weightCount > 0 {
		values.Weight = &models.WeightAggregate{
			Avg:   math.Round(weightSum/float64(weightCount)*10) / 10,
			Count: weightCount,
		}
	}
	if len(moods) > 0 {
		values.Mood = &models.MoodAggregate{
			Predominant: mostFrequent(moods),
			Entries:     moods,
		}
	}
	values.PhysicalActivity = activity
	values.SocialEngagement = engagement
	values.Symptoms = symptoms

	return values
}

// collector accumulates one numeric vital.
type collector struct {
	sum      float64
	min, max float64
	count    int
}

func (c *collector) observe(v *float64) {
	if v == nil {
		return
	}
	if c.count == 0 || *v < c.min {
		c.min = *v
	}
	if c.count == 0 || *v > c.max {
		c.max = *v
	}
	c.sum += *v
	c.count++
}

func (c *collector) result() *models.MetricAggregate {
	if c.count == 0 {
		return nil
	}
	return &models.MetricAggregate{
		Avg:   roundInt(c.sum / float64(c.count)),
		Min:   c.min,
		Max:   c.max,
		Count: c.count,
	}
}

func roundInt(v float64) float64 {
	return math.Round(v)
}

// mostFrequent returns the most common entry, first-encountered order
// breaking ties.
func mostFrequent(entries []string) string {
	counts := make(map[string]int, len(entries))
	best, bestCount := "", 0
	for _, e := range entries {
		counts[e]++
		if counts[e] > bestCount {
			best, bestCount = e, counts[e]
		}
	}
	return best
}
