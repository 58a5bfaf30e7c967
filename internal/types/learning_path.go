package types

import "time"

// PathModule is one ordered unit of a learning path.
type PathModule struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Order       int           `json:"order"`
	Resources   []ContentItem `json:"resources"`
}

// LearningPath is a structured curriculum assembled from ranked content.
// It is created by the curriculum synthesizer and owned by the path store
// afterwards.
type LearningPath struct {
	ID             string       `json:"id,omitempty"`
	UserID         string       `json:"user_id,omitempty"`
	Query          string       `json:"query"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Difficulty     Difficulty   `json:"difficulty"`
	EstimatedHours float64      `json:"estimated_hours"`
	Prerequisites  []string     `json:"prerequisites"`
	Modules        []PathModule `json:"modules"`
	Preferences    *Preferences `json:"preferences,omitempty"`
	OriginalPathID string       `json:"original_path_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at,omitempty"`
	UpdatedAt      time.Time    `json:"updated_at,omitempty"`
}

// TotalMinutes sums the time estimates of every resource in the path.
func (p *LearningPath) TotalMinutes() int {
	total := 0
	for _, m := range p.Modules {
		for _, r := range m.Resources {
			total += r.EstimatedTimeMinutes
		}
	}
	return total
}

// DeriveEstimatedHours fills EstimatedHours from the summed resource minutes
// when the generator omitted it.
func (p *LearningPath) DeriveEstimatedHours() {
	if p.EstimatedHours > 0 {
		return
	}
	p.EstimatedHours = float64(p.TotalMinutes()) / 60.0
}
