package theory

import "sort"

const maxNotesPerString = 3

// DiagonalRunNote is a fretboard note placed on the ascending run with its finger
type DiagonalRunNote struct {
	FretboardNote
	Finger int `json:"finger"`
}

// PlanDiagonalRun builds one ascending path from the lowest-pitched string (highest index)
// to string 0. Each string contributes at most three notes, all above the last fret used
// on the previous string, so frets never decrease along the run.
func PlanDiagonalRun(notes []FretboardNote, stringCount int) []DiagonalRunNote {
	byString := make(map[int][]FretboardNote, stringCount)
	for _, n := range notes {
		byString[n.String] = append(byString[n.String], n)
	}
	for s := range byString {
		sort.SliceStable(byString[s], func(i, j int) bool {
			return byString[s][i].Fret < byString[s][j].Fret
		})
	}

	run := make([]DiagonalRunNote, 0, stringCount*maxNotesPerString)
	floor := -1

	for s := stringCount - 1; s >= 0; s-- {
		taken := 0
		firstFret := 0
		for _, n := range byString[s] {
			if taken == maxNotesPerString {
				break
			}
			if n.Fret <= floor {
				continue
			}
			if taken == 0 {
				firstFret = n.Fret
			}
			run = append(run, DiagonalRunNote{
				FretboardNote: n,
				Finger:        runFinger(n.Fret - firstFret),
			})
			taken++
		}
		if taken > 0 {
			floor = run[len(run)-1].Fret
		}
	}

	return run
}

// runFinger maps the fret offset from the first note on a string to a finger
func runFinger(offset int) int {
	switch {
	case offset <= 0:
		return 1
	case offset <= 2:
		return 2
	case offset <= 4:
		return 3
	default:
		return 4
	}
}
