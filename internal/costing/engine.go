package costing

import (
	"log/slog"
)

const DefaultMaxDepth = 20

type Options struct {
	// MaxDepth: gerçek döngüden bağımsız derinlik emniyeti
	MaxDepth int
	// Parallelism: aynı tarifteki kardeş satırların eşzamanlı değerlendirme limiti
	Parallelism int
	// ApplyYieldToPrepItems: ziyafet prep satırlarına yield uygulansın mı
	ApplyYieldToPrepItems bool

	Metrics *Metrics
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:    DefaultMaxDepth,
		Parallelism: 4,
	}
}

// Engine: istek kapsamlı, yan etkisiz maliyet motoru. İçinde önbellek tutmaz;
// aynı fiyat görüntüsü ve aynı tarif grafı için her çağrı aynı sonucu verir.
type Engine struct {
	store       Store
	opts        Options
	conversions *ConversionResolver
	prices      *PriceResolver
	walker      graphWalker
	log         *slog.Logger
}

func NewEngine(store Store, opts Options) *Engine {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:       store,
		opts:        opts,
		conversions: NewConversionResolver(store),
		prices:      NewPriceResolver(store),
		walker:      graphWalker{store: store, maxDepth: opts.MaxDepth},
		log:         log,
	}
}

func (e *Engine) Conversions() *ConversionResolver { return e.conversions }

func (e *Engine) Prices() *PriceResolver { return e.prices }
