// Package pipeline orchestrates the three stages of a run: extraction,
// research, planning. Stages run strictly in order, each stage's output is
// appended to the run state, and any stage error aborts the run with no
// partial result.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/upskill-agent/internal/ingestion"
	"github.com/jonathan/upskill-agent/internal/planning"
	"github.com/jonathan/upskill-agent/internal/store"
	"github.com/jonathan/upskill-agent/internal/types"
)

// Extractor is the extraction stage contract
type Extractor interface {
	Extract(ctx context.Context, candidateText *string, jobText string) (*types.CandidateProfile, *types.JobRequirements, error)
}

// Researcher is the research stage contract
type Researcher interface {
	Research(ctx context.Context, company, role string, requiredSkills, responsibilities []string) (*types.ResearchContext, error)
}

// Planner is the planning stage contract
type Planner interface {
	Plan(ctx context.Context, input planning.PlanInput) (*types.PlanResult, error)
}

// ProgressEvent reports a stage transition during a run
type ProgressEvent struct {
	Stage   string
	Message string
	RunID   string
}

// ProgressCallback receives stage transitions. It runs synchronously on the
// pipeline goroutine, so it should return quickly.
type ProgressCallback func(ProgressEvent)

// Options configures optional pipeline collaborators
type Options struct {
	// Store, when set, persists the finished run keyed by user ID.
	Store store.Store
	// Logger defaults to a no-op logger when nil.
	Logger *zap.Logger
	// OnProgress, when set, receives stage transition events.
	OnProgress ProgressCallback
}

// Pipeline wires the three stages together
type Pipeline struct {
	extractor  Extractor
	researcher Researcher
	planner    Planner
	store      store.Store
	log        *zap.Logger
	onProgress ProgressCallback
}

// New creates a Pipeline from its stages and options
func New(extractor Extractor, researcher Researcher, planner Planner, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		researcher: researcher,
		planner:    planner,
		store:      opts.Store,
		log:        log,
		onProgress: opts.OnProgress,
	}
}

// RunInput carries the raw user inputs of one run
type RunInput struct {
	// UserID keys the persisted analysis. Optional without a store.
	UserID string
	// JDText is the raw job description. Required.
	JDText string
	// ResumePath points at a PDF resume. Optional.
	ResumePath string
}

// Run executes the full pipeline. On any stage error the run aborts and
// returns the error with a nil state; nothing is persisted.
func (p *Pipeline) Run(ctx context.Context, input RunInput) (*types.PipelineState, error) {
	state := &types.PipelineState{
		RunID:  uuid.NewString(),
		UserID: input.UserID,
	}
	log := p.log.With(zap.String("run_id", state.RunID))

	if err := p.runExtraction(ctx, state, input, log); err != nil {
		return nil, err
	}
	if err := p.runResearch(ctx, state, log); err != nil {
		return nil, err
	}
	if err := p.runPlanning(ctx, state, log); err != nil {
		return nil, err
	}

	if p.store != nil && input.UserID != "" {
		if err := p.store.SaveAnalysis(ctx, input.UserID, state); err != nil {
			return nil, err
		}
		log.Info("analysis persisted", zap.String("user_id", input.UserID))
	}

	return state, nil
}

func (p *Pipeline) runExtraction(ctx context.Context, state *types.PipelineState, input RunInput, log *zap.Logger) error {
	p.emit(state.RunID, "main", "parsing documents")

	var resumeText *string
	if input.ResumePath != "" {
		text, err := ingestion.ExtractText(input.ResumePath)
		if err != nil {
			return err
		}
		resumeText = &text
	}

	profile, requirements, err := p.extractor.Extract(ctx, resumeText, input.JDText)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		return err
	}

	state.CandidateProfile = profile
	state.JobRequirements = requirements
	state.Status = types.StatusParsed
	log.Info("documents parsed",
		zap.String("company", requirements.Company),
		zap.String("role", requirements.Role),
		zap.Int("required_skills", len(requirements.RequiredSkills)))

	return state.EnsureParsed()
}

func (p *Pipeline) runResearch(ctx context.Context, state *types.PipelineState, log *zap.Logger) error {
	p.emit(state.RunID, "research", "researching company and role")

	jr := state.JobRequirements
	result, err := p.researcher.Research(ctx, jr.Company, jr.Role, jr.RequiredSkills, jr.Responsibilities)
	if err != nil {
		log.Error("research failed", zap.Error(err))
		return err
	}

	state.CompanyInfo = &result.CompanyInfo
	state.RoleContext = &result.RoleContext
	state.SkillInsights = result.SkillInsights
	state.ResearchSummary = result.Summary
	state.Status = types.StatusResearched
	log.Info("research complete", zap.Int("skill_insights", len(result.SkillInsights)))

	return state.EnsureResearched()
}

func (p *Pipeline) runPlanning(ctx context.Context, state *types.PipelineState, log *zap.Logger) error {
	p.emit(state.RunID, "roadmap", "building learning roadmap")

	result, err := p.planner.Plan(ctx, planning.PlanInput{
		CandidateSkills:  state.CandidateProfile.Skills,
		RequiredSkills:   state.JobRequirements.RequiredSkills,
		SkillInsights:    state.SkillInsights,
		CompanyTechStack: state.CompanyInfo.CommonTechStack,
		RoleContext:      state.RoleContext,
		CompanyInfo:      state.CompanyInfo,
	})
	if err != nil {
		log.Error("planning failed", zap.Error(err))
		return err
	}

	state.GapAnalysis = result.GapAnalysis
	state.RankedSkills = result.RankedSkills
	state.Roadmaps = result.Roadmaps
	state.Projects = result.Projects
	state.Progress = result.Progress
	state.Status = types.StatusRoadmapGenerated
	log.Info("roadmap generated",
		zap.Int("ranked_skills", len(result.RankedSkills)),
		zap.Int("roadmaps", len(result.Roadmaps)),
		zap.Int("projects", len(result.Projects)))

	return nil
}

func (p *Pipeline) emit(runID, stage, message string) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Stage: stage, Message: message, RunID: runID})
	}
}
