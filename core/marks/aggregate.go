package marks

import (
	"sort"

	"github.com/darasahq/darasa/core"
)

// RunningAverage accumulates a mean incrementally, for call sites that
// stream scores instead of holding the full slice. For any fixed input
// set its rounded value matches the two-pass total/count method.
type RunningAverage struct {
	avg   float64
	count int
}

func (ra *RunningAverage) Add(score int) {
	ra.avg = (ra.avg*float64(ra.count) + float64(score)) / float64(ra.count+1)
	ra.count++
}

func (ra *RunningAverage) Count() int { return ra.count }

// Value returns the rounded running mean; 0 when nothing was added.
func (ra *RunningAverage) Value() int {
	if ra.count == 0 {
		return 0
	}
	return core.Round(ra.avg)
}

// AveragesBySubject groups marks by subject and averages each group
// (two-pass total/count, rounded), sorted by subject.
// It never fails: an empty input yields an empty slice.
func AveragesBySubject(mks []Mark) []SubjectAverage {
	type acc struct {
		total int
		count int
	}
	bySubject := make(map[string]*acc)
	for _, m := range mks {
		a, ok := bySubject[m.SubjectID]
		if !ok {
			a = &acc{}
			bySubject[m.SubjectID] = a
		}
		a.total += m.Score
		a.count++
	}

	avgs := make([]SubjectAverage, 0, len(bySubject))
	for subject, a := range bySubject {
		avgs = append(avgs, SubjectAverage{
			Subject: subject,
			Average: core.Round(float64(a.total) / float64(a.count)),
		})
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i].Subject < avgs[j].Subject })
	return avgs
}

// StreamAveragesBySubject is the running-average variant of
// AveragesBySubject, for call sites that fold over marks one at a time.
func StreamAveragesBySubject(mks []Mark) []SubjectAverage {
	bySubject := make(map[string]*RunningAverage)
	for _, m := range mks {
		ra, ok := bySubject[m.SubjectID]
		if !ok {
			ra = &RunningAverage{}
			bySubject[m.SubjectID] = ra
		}
		ra.Add(m.Score)
	}

	avgs := make([]SubjectAverage, 0, len(bySubject))
	for subject, ra := range bySubject {
		avgs = append(avgs, SubjectAverage{Subject: subject, Average: ra.Value()})
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i].Subject < avgs[j].Subject })
	return avgs
}

// GroupAverages groups the first `window` marks by (subject, class, exam type)
// and averages each group, keeping at most `limit` groups in first-seen order.
// Callers pass marks most-recent-first, so the window is a recency window.
// window/limit <= 0 mean unbounded.
func GroupAverages(mks []Mark, window, limit int) []GroupAverage {
	if window > 0 && len(mks) > window {
		mks = mks[:window]
	}

	type groupKey struct{ subject, class, examType string }
	byGroup := make(map[groupKey]int) // key -> index into groups
	var groups []GroupAverage
	totals := make([]int, 0)

	for _, m := range mks {
		key := groupKey{m.SubjectID, m.ClassID, m.ExamType}
		idx, ok := byGroup[key]
		if !ok {
			idx = len(groups)
			byGroup[key] = idx
			groups = append(groups, GroupAverage{Subject: m.SubjectID, Class: m.ClassID, ExamType: m.ExamType})
			totals = append(totals, 0)
		}
		totals[idx] += m.Score
		groups[idx].Count++
	}

	for i := range groups {
		groups[i].Average = core.Round(float64(totals[i]) / float64(groups[i].Count))
	}
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// CountByExamType tallies marks per exam type, sorted by exam type.
func CountByExamType(mks []Mark) []ExamTypeCount {
	byType := make(map[string]int)
	for _, m := range mks {
		byType[m.ExamType]++
	}

	counts := make([]ExamTypeCount, 0, len(byType))
	for name, value := range byType {
		counts = append(counts, ExamTypeCount{Name: name, Value: value})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })
	return counts
}

// Average is the rounded mean of the first `window` scores; 0 on empty input.
// window <= 0 means all.
func Average(mks []Mark, window int) int {
	if window > 0 && len(mks) > window {
		mks = mks[:window]
	}
	if len(mks) == 0 {
		return 0
	}
	var total int
	for _, m := range mks {
		total += m.Score
	}
	return core.Round(float64(total) / float64(len(mks)))
}
