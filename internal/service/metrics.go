package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queuesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ohqueue",
		Name:      "queues_created_total",
		Help:      "Number of office hours queues created",
	})
	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ohqueue",
		Name:      "posts_created_total",
		Help:      "Number of posts added to queues",
	})
	postsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ohqueue",
		Name:      "posts_deleted_total",
		Help:      "Number of posts removed from queues",
	})
)
