package linear

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/pkg/log"
)

// BenchmarkLinearRegressionFit はFitメソッドのベンチマークを実行する
func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
	}{
		{"N_100", 100},
		{"N_1000", 1000},
		{"N_10000", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y, _ := separable(rand.New(rand.NewPCG(42, 42)), size.rows, model.Signed)
			lr := NewLinearRegression(WithRegressionLogger(log.Nop()))

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := lr.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPerceptronFit はPLAの学習時間を計測する
func BenchmarkPerceptronFit(b *testing.B) {
	for _, n := range []int{10, 100} {
		X, y, _ := separable(rand.New(rand.NewPCG(42, uint64(n))), n, model.ZeroOne)
		b.Run(fmt.Sprintf("N_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				p := NewPerceptron(WithRandomState(uint64(i)), WithPerceptronLogger(log.Nop()))
				if err := p.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
