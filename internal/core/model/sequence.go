package model

import (
	"context"
	"encoding/json"

	perr "fakenews/internal/platform/errors"

	"gonum.org/v1/gonum/mat"
)

// sequenceJSON is the weight export of an Embedding -> LSTM -> Dense stack.
// Kernels are stored input major, as Keras get_weights returns them
type sequenceJSON struct {
	InputLength     int         `json:"input_length"`
	MaskZero        bool        `json:"mask_zero"`
	Threshold       *float64    `json:"threshold"`
	UnreliableClass *int        `json:"unreliable_class"`
	Embedding       [][]float64 `json:"embedding"`
	LSTM            struct {
		Kernel              [][]float64 `json:"kernel"`
		RecurrentKernel     [][]float64 `json:"recurrent_kernel"`
		Bias                []float64   `json:"bias"`
		Activation          string      `json:"activation"`
		RecurrentActivation string      `json:"recurrent_activation"`
	} `json:"lstm"`
	Dense []struct {
		Kernel     [][]float64 `json:"kernel"`
		Bias       []float64   `json:"bias"`
		Activation string      `json:"activation"`
	} `json:"dense"`
}

type denseLayer struct {
	w   *mat.Dense // out x in
	b   *mat.VecDense
	act func(float64) float64
}

// Sequence is the recurrent classifier over padded id sequences
type Sequence struct {
	inputLen  int
	maskZero  bool
	threshold float64
	polarity  Polarity

	emb   *mat.Dense // vocab x dim
	units int
	wx    *mat.Dense // 4u x dim, gates i f c o
	wh    *mat.Dense // 4u x u
	bias  *mat.VecDense
	act   func(float64) float64
	rec   func(float64) float64
	dense []denseLayer
}

// SequenceInfo describes a loaded sequence model
type SequenceInfo struct {
	InputLength int     `json:"input_length"`
	VocabRows   int     `json:"vocab_rows"`
	EmbedDim    int     `json:"embed_dim"`
	Units       int     `json:"units"`
	DenseLayers int     `json:"dense_layers"`
	MaskZero    bool    `json:"mask_zero"`
	Threshold   float64 `json:"threshold"`
	Unreliable  int     `json:"unreliable_class"`
}

// ParseSequence decodes and validates a sequence model export.
// threshold overrides the artifact's own when positive
func ParseSequence(b []byte, threshold float64) (*Sequence, error) {
	var raw sequenceJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifact, "decode sequence model")
	}
	if raw.InputLength <= 0 {
		return nil, perr.Artifactf("input_length must be positive, got %d", raw.InputLength)
	}
	pol, err := polarityOf(raw.UnreliableClass)
	if err != nil {
		return nil, err
	}

	m := &Sequence{
		inputLen:  raw.InputLength,
		maskZero:  raw.MaskZero,
		threshold: DefaultThreshold,
		polarity:  pol,
	}
	if raw.Threshold != nil {
		m.threshold = *raw.Threshold
	}
	if threshold > 0 {
		m.threshold = threshold
	}
	if m.threshold <= 0 || m.threshold >= 1 {
		return nil, perr.Artifactf("threshold must be in (0,1), got %v", m.threshold)
	}

	if m.emb, err = matrix(raw.Embedding, "embedding"); err != nil {
		return nil, err
	}
	_, dim := m.emb.Dims()

	kx, err := matrix(raw.LSTM.Kernel, "lstm kernel")
	if err != nil {
		return nil, err
	}
	kh, err := matrix(raw.LSTM.RecurrentKernel, "lstm recurrent_kernel")
	if err != nil {
		return nil, err
	}
	kxr, kxc := kx.Dims()
	if kxr != dim || kxc%4 != 0 {
		return nil, perr.Artifactf("lstm kernel is %dx%d, want %dx4u", kxr, kxc, dim)
	}
	m.units = kxc / 4
	if r, c := kh.Dims(); r != m.units || c != kxc {
		return nil, perr.Artifactf("lstm recurrent_kernel is %dx%d, want %dx%d", r, c, m.units, kxc)
	}
	if len(raw.LSTM.Bias) != kxc {
		return nil, perr.Artifactf("lstm bias has %d values, want %d", len(raw.LSTM.Bias), kxc)
	}
	m.wx = mat.DenseCopyOf(kx.T())
	m.wh = mat.DenseCopyOf(kh.T())
	m.bias = mat.NewVecDense(kxc, raw.LSTM.Bias)
	if m.act, err = activation(raw.LSTM.Activation, "tanh"); err != nil {
		return nil, err
	}
	if m.rec, err = activation(raw.LSTM.RecurrentActivation, "sigmoid"); err != nil {
		return nil, err
	}

	if len(raw.Dense) == 0 {
		return nil, perr.Artifactf("sequence model needs at least one dense layer")
	}
	in := m.units
	for i, d := range raw.Dense {
		k, err := matrix(d.Kernel, "dense kernel")
		if err != nil {
			return nil, err
		}
		r, c := k.Dims()
		if r != in {
			return nil, perr.Artifactf("dense layer %d takes %d inputs, previous layer gives %d", i, r, in)
		}
		if len(d.Bias) != c {
			return nil, perr.Artifactf("dense layer %d bias has %d values, want %d", i, len(d.Bias), c)
		}
		act, err := activation(d.Activation, "linear")
		if err != nil {
			return nil, err
		}
		m.dense = append(m.dense, denseLayer{w: mat.DenseCopyOf(k.T()), b: mat.NewVecDense(c, d.Bias), act: act})
		in = c
	}
	last := raw.Dense[len(raw.Dense)-1].Activation
	if in != 1 || last != "sigmoid" {
		return nil, perr.Artifactf("last dense layer must be a single sigmoid unit, got %d %q", in, last)
	}
	return m, nil
}

// matrix copies a row major [][]float64 into a gonum matrix, rejecting ragged input
func matrix(rows [][]float64, what string) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, perr.Artifactf("%s is empty", what)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, perr.Artifactf("%s row %d has %d values, want %d", what, i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// InputLength is the sequence length the model was trained on
func (m *Sequence) InputLength() int { return m.inputLen }

// Info summarizes the model for diagnostics
func (m *Sequence) Info() SequenceInfo {
	vocab, dim := m.emb.Dims()
	return SequenceInfo{
		InputLength: m.inputLen,
		VocabRows:   vocab,
		EmbedDim:    dim,
		Units:       m.units,
		DenseLayers: len(m.dense),
		MaskZero:    m.maskZero,
		Threshold:   m.threshold,
		Unreliable:  m.polarity.Unreliable,
	}
}

// Probability runs the forward pass and returns the raw sigmoid output
func (m *Sequence) Probability(ctx context.Context, ids []int) (float64, error) {
	if len(ids) != m.inputLen {
		return 0, perr.Shapef("sequence has %d ids, model expects %d", len(ids), m.inputLen)
	}
	vocab, _ := m.emb.Dims()
	for _, id := range ids {
		if id < 0 || id >= vocab {
			return 0, perr.Shapef("token id %d outside embedding of %d rows", id, vocab)
		}
	}

	u := m.units
	h := mat.NewVecDense(u, nil)
	c := make([]float64, u)
	z := mat.NewVecDense(4*u, nil)
	zh := mat.NewVecDense(4*u, nil)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return 0, perr.Wrap(err, perr.ErrorCodeInference, "forward pass cancelled")
		}
		if m.maskZero && id == 0 {
			continue
		}
		z.MulVec(m.wx, m.emb.RowView(id))
		zh.MulVec(m.wh, h)
		z.AddVec(z, zh)
		z.AddVec(z, m.bias)
		for j := 0; j < u; j++ {
			ig := m.rec(z.AtVec(j))
			fg := m.rec(z.AtVec(u + j))
			cand := m.act(z.AtVec(2*u + j))
			og := m.rec(z.AtVec(3*u + j))
			c[j] = fg*c[j] + ig*cand
			h.SetVec(j, og*m.act(c[j]))
		}
	}

	x := h
	for _, d := range m.dense {
		r, _ := d.w.Dims()
		y := mat.NewVecDense(r, nil)
		y.MulVec(d.w, x)
		y.AddVec(y, d.b)
		for j := 0; j < r; j++ {
			y.SetVec(j, d.act(y.AtVec(j)))
		}
		x = y
	}
	p := x.AtVec(0)
	if !finite(p) {
		return 0, perr.Inferencef("model produced a non finite output")
	}
	return p, nil
}

// Predict classifies ids. The reported probability is that of the unreliable class
func (m *Sequence) Predict(ctx context.Context, ids []int) (Result, error) {
	p, err := m.Probability(ctx, ids)
	if err != nil {
		return Result{}, err
	}
	if m.polarity.Unreliable == 0 {
		p = 1 - p
	}
	pred := 0
	if p > m.threshold {
		pred = 1
	}
	raw := pred
	if m.polarity.Unreliable == 0 {
		raw = 1 - pred
	}
	_, label := m.polarity.Map(raw)
	return Result{Raw: IntClass(raw), Prediction: pred, Label: label, Probability: ptr(p)}, nil
}
