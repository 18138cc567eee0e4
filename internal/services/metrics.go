package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// contactsCreated counts contacts stored.
	contactsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "consignment_contacts_created_total",
		Help: "Contacts stored.",
	})

	// contactsRejected counts contact writes refused by a store rule.
	contactsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "consignment_contacts_rejected_total",
		Help: "Contact writes rejected, by reason.",
	}, []string{"reason"})

	// listingFetches counts listing page fetches by outcome
	// (ok, http_error, timeout, transport_error, invalid_url).
	listingFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "consignment_listing_fetches_total",
		Help: "Listing page fetches, by outcome.",
	}, []string{"outcome"})

	// listingFetchSeconds observes fetch+extract latency.
	listingFetchSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "consignment_listing_fetch_duration_seconds",
		Help:    "Duration of listing fetch and extraction in seconds.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	})

	// exportsTotal counts committed export batches.
	exportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "consignment_exports_total",
		Help: "Export batches committed.",
	})

	// exportedContacts counts audit rows written, one per exported contact.
	exportedContacts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "consignment_exported_contacts_total",
		Help: "Contacts exported (export log rows written).",
	})
)

func init() {
	prometheus.MustRegister(
		contactsCreated, contactsRejected,
		listingFetches, listingFetchSeconds,
		exportsTotal, exportedContacts,
	)
}
