package model

import "gonum.org/v1/gonum/mat"

// Transformer は特徴量変換のインターフェース。
// 変換はステートレスで、バイアス列はモデル側が追加する。
type Transformer interface {
	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// OutputFeatures は変換後の特徴量の数を返す
	OutputFeatures() int
}
