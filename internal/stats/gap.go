package stats

import "fmt"

// SmokingGapPolicy decides what a day without a smoking record means.
type SmokingGapPolicy struct {
	Name       string
	SmokeFree  bool
	Cigarettes int
}

var (
	// AssumeSmoking treats untracked days as smoking days.
	AssumeSmoking = SmokingGapPolicy{Name: "assume_smoking", SmokeFree: false, Cigarettes: 1}
	// AssumeSmokeFree treats untracked days as smoke-free.
	AssumeSmokeFree = SmokingGapPolicy{Name: "assume_smoke_free", SmokeFree: true, Cigarettes: 0}
)

// ParseSmokingGapPolicy resolves a configured policy name. An empty name is the default.
func ParseSmokingGapPolicy(name string, cigarettes int) (SmokingGapPolicy, error) {
	switch name {
	case "", AssumeSmoking.Name:
		p := AssumeSmoking
		if cigarettes > 0 {
			p.Cigarettes = cigarettes
		}
		return p, nil
	case AssumeSmokeFree.Name:
		return AssumeSmokeFree, nil
	}
	return SmokingGapPolicy{}, fmt.Errorf("unknown smoking gap policy %q", name)
}

// HabitGapPolicy fills untracked habit days: never completed, count 0.
type HabitGapPolicy struct {
	Completed bool
	Count     int
}

var NotCompleted = HabitGapPolicy{}
