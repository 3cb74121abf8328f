package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var histogramBuckets = []float64{
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000,
	3000, 5000, 10000, 15000,
	30000, 60000,
}

// Prometheus exposes standard HTTP metrics for a gin engine and serves the
// /metrics endpoint on a dedicated listener.
type Prometheus struct {
	reqCnt  *prometheus.CounterVec
	reqDur  *prometheus.HistogramVec
	reqSize prometheus.Summary
	resSize prometheus.Summary

	listenAddr string
	urlLabelFn func(c *gin.Context) string
	log        *zap.SugaredLogger
}

type NewPrometheusOptions struct {
	// ReqCntURLLabelMappingFn maps a request to the value of the url label,
	// typically the gin route template to keep cardinality bounded.
	ReqCntURLLabelMappingFn func(c *gin.Context) string
	Logger                  *zap.SugaredLogger
}

func NewPrometheus(opts NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		urlLabelFn: opts.ReqCntURLLabelMappingFn,
		log:        opts.Logger,
	}
	if p.urlLabelFn == nil {
		p.urlLabelFn = func(c *gin.Context) string { return c.Request.URL.Path }
	}
	p.reqCnt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "gin",
			Name:      "requests_total",
			Help:      "How many HTTP requests processed, partitioned by status code and HTTP method.",
		},
		[]string{"code", "method", "url"},
	)
	p.reqDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: "gin",
			Name:      "request_duration_ms",
			Help:      "The HTTP request latency in milliseconds.",
			Buckets:   histogramBuckets,
		},
		[]string{"code", "method", "url"},
	)
	p.reqSize = prometheus.NewSummary(prometheus.SummaryOpts{
		Subsystem: "gin",
		Name:      "request_size_bytes",
		Help:      "The HTTP request size in bytes.",
	})
	p.resSize = prometheus.NewSummary(prometheus.SummaryOpts{
		Subsystem: "gin",
		Name:      "response_size_bytes",
		Help:      "The HTTP response size in bytes.",
	})
	prometheus.MustRegister(p.reqCnt, p.reqDur, p.reqSize, p.resSize)
	return p
}

// SetListenAddress configures the side listener serving /metrics.
func (p *Prometheus) SetListenAddress(addr string) {
	p.listenAddr = addr
}

// Use attaches the middleware to the engine and starts the metrics listener.
func (p *Prometheus) Use(e *gin.Engine) {
	e.Use(p.handlerFunc())
	if p.listenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(p.listenAddr, mux); err != nil && p.log != nil {
				p.log.Errorw("metrics listener stopped", "err", err)
			}
		}()
	}
}

func (p *Prometheus) handlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqSize := computeApproximateRequestSize(c.Request)

		c.Next()

		status := http.StatusText(c.Writer.Status())
		url := p.urlLabelFn(c)
		p.reqDur.WithLabelValues(status, c.Request.Method, url).Observe(float64(time.Since(start).Milliseconds()))
		p.reqCnt.WithLabelValues(status, c.Request.Method, url).Inc()
		p.reqSize.Observe(float64(reqSize))
		p.resSize.Observe(float64(c.Writer.Size()))
	}
}

func computeApproximateRequestSize(r *http.Request) int {
	s := len(r.URL.Path)
	s += len(r.Method)
	s += len(r.Proto)
	for name, values := range r.Header {
		s += len(name)
		for _, v := range values {
			s += len(v)
		}
	}
	s += len(r.Host)
	if r.ContentLength != -1 {
		s += int(r.ContentLength)
	}
	return s
}
