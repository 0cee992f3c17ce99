package align

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nao1215/clausediff/internal/model"
)

// Assignment modes accepted by ForMode.
const (
	ModeGreedy  = "greedy"
	ModeOptimal = "optimal"
)

// ErrUnknownMode is returned by ForMode for an unrecognized assignment mode.
var ErrUnknownMode = errors.New("unknown assignment mode")

// Aligner pairs master sentences with test sentences.
type Aligner interface {
	Align(master, test []model.Sentence) []model.Alignment
}

// AlignerFunc adapts a plain function to the Aligner interface.
type AlignerFunc func(master, test []model.Sentence) []model.Alignment

// Align calls f(master, test).
func (f AlignerFunc) Align(master, test []model.Sentence) []model.Alignment {
	return f(master, test)
}

// ForMode returns the aligner for the given assignment mode.
// The empty string selects the greedy aligner.
func ForMode(mode string) (Aligner, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeGreedy:
		return AlignerFunc(Greedy), nil
	case ModeOptimal:
		return AlignerFunc(Optimal), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Greedy aligns sentences in master order, taking for each master sentence
// the highest-scoring unused test sentence. Ties keep the earliest test
// sentence.
func Greedy(master, test []model.Sentence) []model.Alignment {
	used := make([]bool, len(test))
	result := make([]model.Alignment, 0, len(master)+len(test))

	for i, m := range master {
		best := 0.0
		bestIdx := model.NoMatch
		for j, t := range test {
			if used[j] {
				continue
			}
			if score := Similarity(m.Normalized, t.Normalized); score > best {
				best = score
				bestIdx = j
			}
		}
		if bestIdx == model.NoMatch {
			result = append(result, model.Alignment{MasterIndex: i, TestIndex: model.NoMatch})
			continue
		}
		used[bestIdx] = true
		result = append(result, model.Alignment{MasterIndex: i, TestIndex: bestIdx, Similarity: best})
	}
	return appendAdded(result, used)
}

// Optimal aligns sentences so that the summed similarity of all pairs is
// maximal. Pairs scoring zero are left unmatched.
func Optimal(master, test []model.Sentence) []model.Alignment {
	scores := make([][]float64, len(master))
	for i, m := range master {
		scores[i] = make([]float64, len(test))
		for j, t := range test {
			scores[i][j] = Similarity(m.Normalized, t.Normalized)
		}
	}

	assign := maximumAssignment(scores, len(master), len(test))

	used := make([]bool, len(test))
	result := make([]model.Alignment, 0, len(master)+len(test))
	for i := range master {
		j := assign[i]
		if j == model.NoMatch || scores[i][j] <= 0 {
			result = append(result, model.Alignment{MasterIndex: i, TestIndex: model.NoMatch})
			continue
		}
		used[j] = true
		result = append(result, model.Alignment{MasterIndex: i, TestIndex: j, Similarity: scores[i][j]})
	}
	return appendAdded(result, used)
}

func appendAdded(result []model.Alignment, used []bool) []model.Alignment {
	for j, u := range used {
		if !u {
			result = append(result, model.Alignment{MasterIndex: model.NoMatch, TestIndex: j})
		}
	}
	return result
}

// maximumAssignment solves the rectangular assignment problem on scores with
// the Hungarian method. It returns, for each of the rows, the assigned column
// or model.NoMatch when the row landed on a padding column.
func maximumAssignment(scores [][]float64, rows, cols int) []int {
	assign := make([]int, rows)
	for i := range assign {
		assign[i] = model.NoMatch
	}
	if rows == 0 || cols == 0 {
		return assign
	}

	// Square cost matrix; padding cells cost as much as a zero score.
	n := max(rows, cols)
	cost := func(i, j int) float64 {
		if i < rows && j < cols {
			return 100 - scores[i][j]
		}
		return 100
	}

	// Potentials and matching are 1-based; index 0 is a sentinel.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		usedCol := make([]bool, n+1)

		for {
			usedCol[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if usedCol[j] {
					continue
				}
				cur := cost(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if usedCol[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	for j := 1; j <= n; j++ {
		row, col := p[j]-1, j-1
		if row >= 0 && row < rows && col < cols {
			assign[row] = col
		}
	}
	return assign
}
