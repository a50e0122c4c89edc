// Copyright 2026 The AgentWire Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package a2asrv

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agentwire/a2a-go/a2a"
)

// Metrics records task lifecycle counters and handler latency.
// All methods are safe to call on a nil receiver, which makes metrics
// collection strictly optional.
type Metrics struct {
	tasksCreated    prometheus.Counter
	taskTransitions *prometheus.CounterVec
	handlerDuration prometheus.Histogram
	handlerFailures prometheus.Counter
}

// NewMetrics creates lifecycle metrics registered with the provided registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		tasksCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "a2a_tasks_created_total",
			Help: "Number of tasks created.",
		}),
		taskTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "a2a_task_transitions_total",
			Help: "Number of task state transitions, labeled by resulting state.",
		}, []string{"state"}),
		handlerDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "a2a_message_handler_duration_seconds",
			Help:    "Latency of message handler invocations.",
			Buckets: prometheus.DefBuckets,
		}),
		handlerFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "a2a_message_handler_failures_total",
			Help: "Number of failed message handler invocations.",
		}),
	}
}

func (m *Metrics) taskCreated() {
	if m == nil {
		return
	}
	m.tasksCreated.Inc()
}

func (m *Metrics) taskTransition(state a2a.TaskState) {
	if m == nil {
		return
	}
	m.taskTransitions.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) handlerDone(start time.Time, err error) {
	if m == nil {
		return
	}
	m.handlerDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.handlerFailures.Inc()
	}
}
