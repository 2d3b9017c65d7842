package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminders_sent_total",
		Help: "Daily reminders delivered to the target channel",
	})
	ReportsBuilt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_built_total",
		Help: "Period reports built, by kind and cause",
	}, []string{"kind", "cause"})
	ReportBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_build_seconds",
		Help:    "Time to scan history, aggregate and render one report",
		Buckets: prometheus.DefBuckets,
	})
	HistoryMessagesScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "history_messages_scanned_total",
		Help: "Archived messages examined by report runs",
	})
	SendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_errors_total",
		Help: "Failed message sends to the chat platform",
	})
	ChannelResolveErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "channel_resolve_errors_total",
		Help: "Failed target channel resolutions (cache miss plus fetch failure)",
	})
	ArchiveWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "archive_write_errors_total",
		Help: "Failed inbound message archive writes",
	})
)

// MustRegister registers all bot metrics on the given registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		RemindersSent,
		ReportsBuilt,
		ReportBuildSeconds,
		HistoryMessagesScanned,
		SendErrors,
		ChannelResolveErrors,
		ArchiveWriteErrors,
	)
}

// ObserveReportBuild records one finished report build.
func ObserveReportBuild(kind, cause string, start time.Time, scanned int) {
	ReportsBuilt.WithLabelValues(kind, cause).Inc()
	ReportBuildSeconds.Observe(time.Since(start).Seconds())
	HistoryMessagesScanned.Add(float64(scanned))
}
