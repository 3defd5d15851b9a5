package entities

// ConvergenceCluster aggregates all convergence chains sharing a theme.
// Theme is normalized (lower-cased, trimmed); participants form a set.
type ConvergenceCluster struct {
	theme        string
	participants []string
	seen         map[string]bool
	strengthSum  float64
	chainCount   int
}

// NewConvergenceCluster creates an empty cluster for a normalized theme
func NewConvergenceCluster(theme string) *ConvergenceCluster {
	return &ConvergenceCluster{
		theme: theme,
		seen:  make(map[string]bool),
	}
}

// Theme returns the cluster's normalized theme
func (c *ConvergenceCluster) Theme() string {
	return c.theme
}

// AddParticipant adds a participant, ignoring duplicates and empty names
func (c *ConvergenceCluster) AddParticipant(name string) {
	if name == "" || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.participants = append(c.participants, name)
}

// AddChainStrength folds one contributing chain's strength into the mean
func (c *ConvergenceCluster) AddChainStrength(strength float64) {
	c.strengthSum += strength
	c.chainCount++
}

// Participants returns the participant set in first-seen order
func (c *ConvergenceCluster) Participants() []string {
	participants := make([]string, len(c.participants))
	copy(participants, c.participants)
	return participants
}

// Count returns the number of distinct participants
func (c *ConvergenceCluster) Count() int {
	return len(c.participants)
}

// Strength returns the mean strength of contributing chains
func (c *ConvergenceCluster) Strength() float64 {
	if c.chainCount == 0 {
		return 0
	}
	return c.strengthSum / float64(c.chainCount)
}
