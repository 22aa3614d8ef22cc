package onnx

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv guards process-wide ONNX Runtime initialization.
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// session wraps a DynamicAdvancedSession for BERT-style token-classification
// models producing logits of shape [batch, seq, numLabels].
type session struct {
	session     *ort.DynamicAdvancedSession
	inputNames  []string
	withTypeIDs bool
	outputName  string
	numLabels   int64
}

// newSession loads the model and validates its inputs and output shape.
// The ONNX Runtime shared library is expected next to the model file.
func newSession(modelPath string) (*session, error) {
	libPath := filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}

	inputNames, withTypeIDs, err := validateInputs(inputs)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has no outputs")
	}
	numLabels, err := validateOutput(outputs[0])
	if err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	s, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputs[0].Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &session{
		session:     s,
		inputNames:  inputNames,
		withTypeIDs: withTypeIDs,
		outputName:  outputs[0].Name,
		numLabels:   numLabels,
	}, nil
}

// validateInputs requires input_ids and attention_mask and reports whether the
// model also takes token_type_ids. Names are returned in feed order.
func validateInputs(inputs []ort.InputOutputInfo) ([]string, bool, error) {
	nameSet := make(map[string]bool, len(inputs))
	for _, inp := range inputs {
		nameSet[inp.Name] = true
	}
	names := []string{"input_ids", "attention_mask"}
	for _, name := range names {
		if !nameSet[name] {
			return nil, false, fmt.Errorf("onnx: model missing required input %q", name)
		}
	}
	if nameSet["token_type_ids"] {
		return append(names, "token_type_ids"), true, nil
	}
	return names, false, nil
}

// validateOutput expects [batch, seq, numLabels] with a fixed label dimension.
func validateOutput(out ort.InputOutputInfo) (int64, error) {
	dims := out.Dimensions
	if len(dims) != 3 {
		return 0, fmt.Errorf("onnx: expected 3D output tensor, got %v", dims)
	}
	if dims[2] <= 0 {
		return 0, fmt.Errorf("onnx: output label dimension must be fixed, got %d", dims[2])
	}
	return dims[2], nil
}

// infer runs the model on p and returns flat logits of shape
// [batchSize * seqLen * numLabels].
func (s *session) infer(p packed) ([]float32, error) {
	shape := ort.NewShape(p.batchSize, p.seqLen)

	tIDs, err := ort.NewTensor(shape, p.inputIDs)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input_ids tensor: %w", err)
	}
	defer tIDs.Destroy()

	tMask, err := ort.NewTensor(shape, p.attentionMask)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create attention_mask tensor: %w", err)
	}
	defer tMask.Destroy()

	feed := []ort.Value{tIDs, tMask}
	if s.withTypeIDs {
		tTypes, err := ort.NewTensor(shape, p.tokenTypeIDs)
		if err != nil {
			return nil, fmt.Errorf("onnx: failed to create token_type_ids tensor: %w", err)
		}
		defer tTypes.Destroy()
		feed = append(feed, tTypes)
	}

	tOut, err := ort.NewEmptyTensor[float32](ort.NewShape(p.batchSize, p.seqLen, s.numLabels))
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer tOut.Destroy()

	if err := s.session.Run(feed, []ort.Value{tOut}); err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	src := tOut.GetData()
	logits := make([]float32, len(src))
	copy(logits, src)
	return logits, nil
}

func (s *session) close() error {
	return s.session.Destroy()
}
