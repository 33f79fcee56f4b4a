package timedataset

import "time"

// TimeSlice is an ordered slice of sample times
type TimeSlice []time.Time

// StartTime returns the first time or the zero time if empty
func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

// EndTime returns the last time or the zero time if empty
func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// Years returns each distinct calendar year in order of first appearance
func (t TimeSlice) Years() []int {
	years := make([]int, 0)
	for i, tPnt := range t {
		yr := tPnt.Year()
		if i > 0 && yr == years[len(years)-1] {
			continue
		}
		years = append(years, yr)
	}
	return years
}
