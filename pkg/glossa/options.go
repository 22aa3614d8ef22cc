package glossa

type options struct {
	provider   string
	modelDir   string
	modelPath  string
	vocabPath  string
	labelsPath string
	endpoint   string
	apiKey     string
	tagsetFile string
	custom     Tagger
}

// Option configures a Glossa instance.
type Option func(*options)

// WithModelDir sets the directory containing model files.
// Expects: model.onnx, vocab.txt, config.json (with id2label).
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.provider = "onnx"
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for each model file.
// Use this when model files aren't in the default directory layout.
func WithModelPaths(model, vocab, labels string) Option {
	return func(o *options) {
		o.provider = "onnx"
		o.modelPath = model
		o.vocabPath = vocab
		o.labelsPath = labels
	}
}

// WithEndpoint tags through a remote service instead of a local model.
// apiKey may be empty.
func WithEndpoint(url, apiKey string) Option {
	return func(o *options) {
		o.provider = "remote"
		o.endpoint = url
		o.apiKey = apiKey
	}
}

// WithTagsetFile replaces the built-in tag table with a YAML file.
func WithTagsetFile(path string) Option {
	return func(o *options) {
		o.tagsetFile = path
	}
}

// WithTagger uses t for tagging. It takes precedence over model and endpoint
// options.
func WithTagger(t Tagger) Option {
	return func(o *options) {
		o.custom = t
	}
}

func defaultOptions() options {
	return options{provider: "onnx"}
}
