// Package metrics exposes tokenizer counters as Prometheus metrics. The CLI
// writes them to a text file for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/token"
)

// Token classes used as the "class" label.
const (
	ClassKeyword    = "keyword"
	ClassIdentifier = "identifier"
	ClassLiteral    = "literal"
	ClassPunct      = "punct"
	ClassHidden     = "hidden"
	ClassInvalid    = "invalid"
)

// Metrics owns a private registry so that several runs in one process (and
// tests) don't collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	filesTotal     prometheus.Counter
	tokensTotal    *prometheus.CounterVec
	lexErrorsTotal *prometheus.CounterVec
	cacheHitsTotal prometheus.Counter
	fileSeconds    prometheus.Histogram
}

// New registers all plexlex metrics on a fresh registry.
func New() *Metrics {
	obj := &Metrics{registry: prometheus.NewRegistry()}

	obj.filesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plexlex_files_total",
		Help: "Number of source files tokenized.",
	})
	obj.tokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plexlex_tokens_total",
			Help: "Number of tokens produced, by class.",
		},
		// class: keyword, identifier, literal, punct, hidden, invalid
		[]string{"class"},
	)
	obj.lexErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plexlex_lex_errors_total",
			Help: "Number of lexical errors, by kind.",
		},
		[]string{"kind"},
	)
	obj.cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plexlex_cache_hits_total",
		Help: "Number of files served from the token cache.",
	})
	obj.fileSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plexlex_file_tokenize_seconds",
		Help:    "Time spent tokenizing one file.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	obj.registry.MustRegister(
		obj.filesTotal,
		obj.tokensTotal,
		obj.lexErrorsTotal,
		obj.cacheHitsTotal,
		obj.fileSeconds,
	)

	// все классы и виды ошибок видны с нуля, даже если не встретились
	for _, c := range []string{ClassKeyword, ClassIdentifier, ClassLiteral, ClassPunct, ClassHidden, ClassInvalid} {
		obj.tokensTotal.WithLabelValues(c)
	}
	for _, k := range lexer.ErrorKinds() {
		obj.lexErrorsTotal.WithLabelValues(k.String())
	}
	return obj
}

// Registry returns the underlying registry.
func (obj *Metrics) Registry() *prometheus.Registry {
	if obj == nil {
		return nil
	}
	return obj.registry
}

// ObserveFile records one tokenized file.
func (obj *Metrics) ObserveFile(toks []token.Token, errs []*lexer.Error, dur time.Duration) {
	if obj == nil {
		return
	}
	obj.filesTotal.Inc()
	obj.fileSeconds.Observe(dur.Seconds())

	counts := make(map[string]int)
	for i := range toks {
		counts[Class(toks[i])]++
		counts[ClassHidden] += len(toks[i].Leading)
	}
	for class, n := range counts {
		if class == "" {
			continue
		}
		obj.tokensTotal.WithLabelValues(class).Add(float64(n))
	}
	for _, e := range errs {
		obj.lexErrorsTotal.WithLabelValues(e.Kind.String()).Inc()
	}
}

// CacheHit records a file served from the token cache.
func (obj *Metrics) CacheHit() {
	if obj == nil {
		return
	}
	obj.cacheHitsTotal.Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format.
func (obj *Metrics) WriteTextfile(path string) error {
	if obj == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, obj.registry); err != nil {
		return errwrap.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}

// Class maps a token onto its metrics class; EOF has none.
func Class(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return ""
	case tok.Kind == token.Invalid:
		return ClassInvalid
	case tok.IsHidden():
		return ClassHidden
	case tok.IsIdent():
		return ClassIdentifier
	case tok.IsLiteral():
		return ClassLiteral
	case tok.IsPunctOrOp():
		return ClassPunct
	case tok.IsKeyword():
		return ClassKeyword
	}
	return ClassInvalid
}
