// Package evaluation compares predicted labels against ground truth on the
// held-out split. Every metric is a pure function over two collections.
package evaluation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rcasey/edgewise/pkg/graph"
)

// Accuracy returns the fraction of positions where predicted matches actual.
// Fails with an invalid input error when the collections differ in length or
// are empty.
func Accuracy(predicted, actual []int) (float64, error) {
	if err := checkLengths("Accuracy", len(predicted), len(actual)); err != nil {
		return 0, err
	}
	matches := 0
	for i := range predicted {
		if predicted[i] == actual[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(predicted)), nil
}

// ConfusionMatrix counts binary prediction outcomes.
type ConfusionMatrix struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Confusion tallies the confusion matrix for binary label collections.
func Confusion(predicted, actual []int) (ConfusionMatrix, error) {
	if err := checkLengths("Confusion", len(predicted), len(actual)); err != nil {
		return ConfusionMatrix{}, err
	}
	var m ConfusionMatrix
	for i := range predicted {
		switch {
		case predicted[i] == 1 && actual[i] == 1:
			m.TruePositives++
		case predicted[i] == 0 && actual[i] == 0:
			m.TrueNegatives++
		case predicted[i] == 1 && actual[i] == 0:
			m.FalsePositives++
		default:
			m.FalseNegatives++
		}
	}
	return m, nil
}

// Precision returns TP / (TP + FP), or 0 when nothing was predicted positive.
func (m ConfusionMatrix) Precision() float64 {
	denom := m.TruePositives + m.FalsePositives
	if denom == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(denom)
}

// Recall returns TP / (TP + FN), or 0 when no positives exist.
func (m ConfusionMatrix) Recall() float64 {
	denom := m.TruePositives + m.FalseNegatives
	if denom == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(denom)
}

// F1 returns the harmonic mean of precision and recall, or 0 when both are 0.
func (m ConfusionMatrix) F1() float64 {
	p, r := m.Precision(), m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// AUC returns the area under the ROC curve for real-valued scores (higher
// score means more likely positive) against binary ground truth. Fails with
// an invalid input error when lengths differ, the input is empty, or only one
// class is present (the curve is undefined then).
func AUC(scores []float64, actual []int) (float64, error) {
	if err := checkLengths("AUC", len(scores), len(actual)); err != nil {
		return 0, err
	}

	positives := 0
	for _, a := range actual {
		positives += a
	}
	if positives == 0 || positives == len(actual) {
		return 0, graph.InvalidInputError("AUC", "labels", "only one class present")
	}

	// stat.ROC expects scores sorted ascending with paired class flags.
	y := make([]float64, len(scores))
	copy(y, scores)
	classes := make([]bool, len(actual))
	for i, a := range actual {
		classes[i] = a == 1
	}
	stat.SortWeightedLabeled(y, classes, nil)

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)

	// Trapezoidal area under the curve; the absolute value makes the
	// result independent of the direction the curve is traced in.
	area := 0.0
	for i := 1; i < len(fpr); i++ {
		area += (fpr[i] - fpr[i-1]) * (tpr[i] + tpr[i-1]) / 2
	}
	return math.Abs(area), nil
}

func checkLengths(op string, predicted, actual int) error {
	if predicted != actual {
		return graph.InvalidInputError(op, "labels",
			fmt.Sprintf("%d predicted vs %d actual", predicted, actual))
	}
	if predicted == 0 {
		return graph.InvalidInputError(op, "labels", "empty collections")
	}
	return nil
}
