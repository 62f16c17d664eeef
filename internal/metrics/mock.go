package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	pipelineRuns      int
	scoreSaves        int
	pairingsGenerated int
	pipelineDurations []float64
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		pipelineDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPipelineRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pipelineRuns++
}

func (m *Mock) IncScoreSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreSaves++
}

func (m *Mock) IncPairingsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingsGenerated++
}

func (m *Mock) ObservePipelineDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pipelineDurations = append(m.pipelineDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PipelineRuns returns the number of times IncPipelineRuns was called.
func (m *Mock) PipelineRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pipelineRuns
}

// ScoreSaves returns the number of times IncScoreSaves was called.
func (m *Mock) ScoreSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreSaves
}

// PairingsGenerated returns the number of times IncPairingsGenerated was called.
func (m *Mock) PairingsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingsGenerated
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
