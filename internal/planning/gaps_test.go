package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSkillGapsClassification(t *testing.T) {
	analysis := AnalyzeSkillGaps(
		[]string{"Python", "SQL"},
		[]string{"python", "Airflow", "SQL Server"},
	)

	assert.Equal(t, []string{"python"}, analysis.MatchedSkills)
	assert.Equal(t, []string{"SQL Server"}, analysis.WeakSkills)
	assert.Equal(t, []string{"Airflow"}, analysis.MissingSkills)
}

func TestAnalyzeSkillGapsPartition(t *testing.T) {
	required := []string{"Go", "Kubernetes", "Postgres", "Terraform"}
	analysis := AnalyzeSkillGaps([]string{"go", "postgresql"}, required)

	total := len(analysis.MatchedSkills) + len(analysis.WeakSkills) + len(analysis.MissingSkills)
	assert.Equal(t, len(required), total)

	seen := map[string]bool{}
	for _, lists := range [][]string{analysis.MatchedSkills, analysis.WeakSkills, analysis.MissingSkills} {
		for _, s := range lists {
			assert.False(t, seen[s], "skill %s classified twice", s)
			seen[s] = true
		}
	}
}

func TestAnalyzeSkillGapsSubstringBothDirections(t *testing.T) {
	// candidate skill contains the required skill
	analysis := AnalyzeSkillGaps([]string{"Apache Airflow"}, []string{"Airflow"})
	assert.Equal(t, []string{"Airflow"}, analysis.WeakSkills)

	// required skill contains the candidate skill
	analysis = AnalyzeSkillGaps([]string{"SQL"}, []string{"SQL Server"})
	assert.Equal(t, []string{"SQL Server"}, analysis.WeakSkills)
}

func TestAnalyzeSkillGapsSkipsBlankRequired(t *testing.T) {
	analysis := AnalyzeSkillGaps([]string{"Go"}, []string{"", "  ", "Go"})
	assert.Equal(t, []string{"Go"}, analysis.MatchedSkills)
	assert.Empty(t, analysis.MissingSkills)
	assert.Empty(t, analysis.WeakSkills)
}

func TestAnalyzeSkillGapsPreservesOriginalSpelling(t *testing.T) {
	analysis := AnalyzeSkillGaps([]string{"PYTHON"}, []string{"PyThOn"})
	assert.Equal(t, []string{"PyThOn"}, analysis.MatchedSkills)
}

func TestAnalyzeSkillGapsEmptyCandidate(t *testing.T) {
	analysis := AnalyzeSkillGaps(nil, []string{"Go", "SQL"})
	assert.Equal(t, []string{"Go", "SQL"}, analysis.MissingSkills)
	assert.Empty(t, analysis.MatchedSkills)
	assert.Empty(t, analysis.WeakSkills)
}
