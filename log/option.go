package log

// Option returns config with one setting changed. Options never lock the
// config mutex; callers hold it or own the only copy.
type Option func(config) config

// apply folds opts over cfg in order, so later options win.
// Nil options are skipped, which lets callers pass conditional options.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
