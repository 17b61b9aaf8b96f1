package model

import (
	"fmt"

	"github.com/statlearn/lfd/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LabelEncoding は二値ラベルの数値表現
type LabelEncoding int

const (
	// Signed は +1 / -1 の符号化。データ生成と評価の正準表現
	Signed LabelEncoding = iota
	// ZeroOne は 1 / 0 の符号化。Perceptronのステップ関数が出力する表現
	ZeroOne
)

func (e LabelEncoding) String() string {
	switch e {
	case Signed:
		return "signed"
	case ZeroOne:
		return "zero-one"
	default:
		return fmt.Sprintf("LabelEncoding(%d)", int(e))
	}
}

// Positive は正例のラベル値を返す
func (e LabelEncoding) Positive() float64 {
	return 1
}

// Negative は負例のラベル値を返す
func (e LabelEncoding) Negative() float64 {
	if e == ZeroOne {
		return 0
	}
	return -1
}

// Valid はvがこの符号化で有効なラベルかを判定する
func (e LabelEncoding) Valid(v float64) bool {
	return v == e.Positive() || v == e.Negative()
}

// Encode は正準 (Signed) ラベルを enc の表現に変換する。
// 正の値は正例、それ以外は負例として扱う。
func Encode(label float64, enc LabelEncoding) float64 {
	if label > 0 {
		return enc.Positive()
	}
	return enc.Negative()
}

// Decode は enc の表現のラベルを正準 (Signed) に戻す
func Decode(label float64, enc LabelEncoding) float64 {
	if label == enc.Positive() {
		return 1
	}
	return -1
}

// EncodeAll は正準ラベルのスライスを enc の列ベクトルに変換する。
// mat.NewDense と同様に labels が空の場合はpanicする。
func EncodeAll(labels []float64, enc LabelEncoding) *mat.Dense {
	out := make([]float64, len(labels))
	for i, v := range labels {
		out[i] = Encode(v, enc)
	}
	return mat.NewDense(len(out), 1, out)
}

// DecodeAll は enc で表現された列ベクトルを正準ラベルのスライスに戻す
func DecodeAll(y mat.Matrix, enc LabelEncoding) ([]float64, error) {
	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("model.DecodeAll", 1, c, 1)
	}
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = Decode(y.At(i, 0), enc)
	}
	return out, nil
}
