package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y はモデル固有のラベル符号化に従う列ベクトル
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Classifier は二値分類器のインターフェース。
// 実験ハーネスはラベルを Signed で扱い、Encoding() を使ってモデル側の
// 符号化との変換を行う。
type Classifier interface {
	Fitter
	Predictor

	// Encoding はFit/Predictで使うラベル符号化を返す
	Encoding() LabelEncoding

	// Weights はバイアス項を先頭に含む学習済みの重みを返す
	Weights() []float64
}
