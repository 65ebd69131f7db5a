package domain

// LabScores are per-criterion fitness scores out of 100.
type LabScores struct {
	Tech int `json:"tech" yaml:"tech"`
	Cost int `json:"cost" yaml:"cost"`
	Time int `json:"time" yaml:"time"`
	Dist int `json:"dist" yaml:"dist"`
}

// Lab is a domestic testing laboratory candidate.
type Lab struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Chamber       string    `json:"chamber" yaml:"chamber"`
	Accreditation string    `json:"accreditation" yaml:"cert"`
	Distance      string    `json:"distance" yaml:"distance"`
	Cost          string    `json:"cost" yaml:"cost"`
	LeadTime      string    `json:"leadTime" yaml:"lead_time"`
	URL           string    `json:"url" yaml:"url"`
	TotalScore    int       `json:"totalScore" yaml:"total_score"`
	Tags          []string  `json:"tags" yaml:"tags"`
	Scores        LabScores `json:"scores" yaml:"scores"`
	Reason        string    `json:"reason" yaml:"reason"`
}

type LabCriterion string

const (
	CriterionTotal LabCriterion = "total"
	CriterionTech  LabCriterion = "tech"
	CriterionCost  LabCriterion = "cost"
	CriterionTime  LabCriterion = "time"
	CriterionDist  LabCriterion = "dist"
)

// Score returns the lab's score for c, falling back to the total score.
func (l Lab) Score(c LabCriterion) int {
	switch c {
	case CriterionTech:
		return l.Scores.Tech
	case CriterionCost:
		return l.Scores.Cost
	case CriterionTime:
		return l.Scores.Time
	case CriterionDist:
		return l.Scores.Dist
	default:
		return l.TotalScore
	}
}
