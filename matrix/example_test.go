package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/g25mix/matrix"
)

// ExampleMatVec models a 25/75 blend of two unit sources.
func ExampleMatVec() {
	S, _ := matrix.NewFromColumns([][]float64{{1, 0}, {0, 1}})
	m, _ := matrix.MatVec(S, []float64{0.25, 0.75})
	fmt.Println(m)
	// Output: [0.25 0.75]
}

// ExampleColumnStdDevs summarizes a two-sample sheet.
func ExampleColumnStdDevs() {
	X, _ := matrix.NewFromRows([][]float64{{0.1, 0.2}, {0.3, 0.2}})
	means, stds, _ := matrix.ColumnStdDevs(X)
	fmt.Printf("%.2f %.4f\n", means, stds)
	// Output: [0.20 0.20] [0.1414 0.0000]
}
